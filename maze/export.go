package maze

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Links returns every link between two open cells once, as line segments
// for visualisation. Each link is emitted from its lower id.
func (g *Graph) Links() orb.MultiLineString {
	lines := make(orb.MultiLineString, 0, 2*len(g.cells))

	for _, c := range g.cells {
		if c.Blocked {
			continue
		}
		for _, n := range c.Neighbors {
			if n == NoNeighbor || n < c.ID || g.cells[n].Blocked {
				continue
			}
			lines = append(lines, orb.LineString{c.Point.Orb(), g.cells[n].Point.Orb()})
		}
	}

	return lines
}

// LinksGeoJSON encodes Links as a FeatureCollection with one feature.
func (g *Graph) LinksGeoJSON() ([]byte, error) {
	feature := geojson.NewFeature(g.Links())
	feature.Properties["rows"] = g.rows
	feature.Properties["cols"] = g.cols
	feature.Properties["open"] = g.Open()

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	return fc.MarshalJSON()
}
