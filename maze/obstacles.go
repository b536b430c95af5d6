package maze

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// LoadObstacles reads obstacle polygons from a GeoJSON FeatureCollection.
// Coordinates are in grid units: X is the column, Y is the row.
// Features that are neither Polygon nor MultiPolygon are skipped.
func LoadObstacles(filename string) ([]orb.Polygon, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read obstacles: %w", err)
	}
	return ParseObstacles(data)
}

// ParseObstacles decodes obstacle polygons from GeoJSON bytes.
func ParseObstacles(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse obstacles: %w", err)
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, geometry)
		case orb.MultiPolygon:
			polygons = append(polygons, geometry...)
		}
	}
	return polygons, nil
}

// BlockPolygons blocks every cell whose centre lies inside one of the polygons
// and returns how many cells changed from open to blocked.
func (b *Builder) BlockPolygons(polygons []orb.Polygon) (int, error) {
	if b.built {
		return 0, ErrAlreadyBuilt
	}
	if len(polygons) == 0 {
		return 0, nil
	}

	index := newIndex(b.cells, true)
	blocked := 0
	for _, polygon := range polygons {
		if len(polygon) == 0 {
			continue
		}
		bound := polygon.Bound()
		for _, id := range index.Within(bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()) {
			cell := &b.cells[id]
			if cell.Blocked {
				continue
			}
			if planar.PolygonContains(polygon, cell.Point.Orb()) {
				cell.Blocked = true
				blocked++
			}
		}
	}

	b.log.V(1).Info("obstacles applied", "polygons", len(polygons), "blocked", blocked)
	return blocked, nil
}
