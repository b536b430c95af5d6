package maze

import (
	"github.com/dhconnelly/rtreego"
)

// cellExtent is the half-width of the box stored for each cell centre.
const cellExtent = 0.25

// cellEntry wraps a cell for R-tree storage
type cellEntry struct {
	id    int
	point Point
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *cellEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// Index answers coordinate queries over a graph's cells without a linear scan.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// NewIndex indexes the cells of g. With openOnly, blocked cells are left out,
// so Nearest snaps onto a cell a search can start from.
func NewIndex(g *Graph, openOnly bool) *Index {
	return newIndex(g.cells, openOnly)
}

func newIndex(cells []Cell, openOnly bool) *Index {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, c := range cells {
		if openOnly && c.Blocked {
			continue
		}
		bbox, err := boxAround(float64(c.Point.J), float64(c.Point.I), cellExtent)
		if err != nil {
			continue
		}
		tree.Insert(&cellEntry{id: c.ID, point: c.Point, bbox: bbox})
		size++
	}

	return &Index{tree: tree, size: size}
}

// Len returns the number of indexed cells
func (x *Index) Len() int { return x.size }

// Locate returns the id of the indexed cell at p
func (x *Index) Locate(p Point) (int, bool) {
	bbox, err := boxAround(float64(p.J), float64(p.I), cellExtent/2)
	if err != nil {
		return 0, false
	}
	for _, item := range x.tree.SearchIntersect(bbox) {
		entry := item.(*cellEntry)
		if entry.point == p {
			return entry.id, true
		}
	}
	return 0, false
}

// Nearest returns the indexed cell closest to p. p may lie outside the grid.
func (x *Index) Nearest(p Point) (int, Point, bool) {
	if x.size == 0 {
		return 0, Point{}, false
	}
	item := x.tree.NearestNeighbor(rtreego.Point{float64(p.J), float64(p.I)})
	if item == nil {
		return 0, Point{}, false
	}
	entry := item.(*cellEntry)
	return entry.id, entry.point, true
}

// Within returns the ids of indexed cells whose centres fall in the box
// [minX, maxX] x [minY, maxY], with X the column and Y the row.
func (x *Index) Within(minX, minY, maxX, maxY float64) []int {
	bbox, err := rtreego.NewRect(
		rtreego.Point{minX - cellExtent, minY - cellExtent},
		[]float64{maxX - minX + 2*cellExtent, maxY - minY + 2*cellExtent},
	)
	if err != nil {
		return nil
	}

	results := x.tree.SearchIntersect(bbox)
	ids := make([]int, 0, len(results))
	for _, item := range results {
		entry := item.(*cellEntry)
		cx, cy := float64(entry.point.J), float64(entry.point.I)
		if cx >= minX && cx <= maxX && cy >= minY && cy <= maxY {
			ids = append(ids, entry.id)
		}
	}
	return ids
}

// boxAround computes the square of half-width r centred on (x, y)
func boxAround(x, y, r float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{x - r, y - r},
		[]float64{2 * r, 2 * r},
	)
}
