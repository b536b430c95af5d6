package maze

import (
	"errors"
	"fmt"
)

// NoNeighbor marks an empty neighbor slot at the grid boundary.
const NoNeighbor = -1

var (
	// ErrAsymmetricLink is returned by Validate when a cell lists a neighbor
	// that does not list it back in the opposite slot.
	ErrAsymmetricLink = errors.New("asymmetric neighbor link")

	// ErrDuplicateCoordinate is returned by Validate when two cells share a point.
	ErrDuplicateCoordinate = errors.New("duplicate cell coordinate")
)

// Cell is one grid location. Neighbors hold cell ids, or NoNeighbor.
type Cell struct {
	ID        int
	Point     Point
	Blocked   bool
	Neighbors [4]int
}

// Neighbor returns the id linked in the given direction
func (c Cell) Neighbor(d Direction) (int, bool) {
	id := c.Neighbors[d]
	return id, id != NoNeighbor
}

// Graph is a fixed rows x cols maze. Cells are stored row-major so that a
// cell's id equals I*cols + J. A Graph is never mutated after Build and is
// safe for concurrent readers.
type Graph struct {
	rows, cols int
	cells      []Cell
}

// Rows returns the row count
func (g *Graph) Rows() int { return g.rows }

// Cols returns the column count
func (g *Graph) Cols() int { return g.cols }

// Size returns the number of cells
func (g *Graph) Size() int { return len(g.cells) }

// Cell looks a cell up by id
func (g *Graph) Cell(id int) (Cell, bool) {
	if id < 0 || id >= len(g.cells) {
		return Cell{}, false
	}
	return g.cells[id], true
}

// FindCell looks a cell up by coordinate with a linear scan.
// Use an Index for repeated lookups on large grids.
func (g *Graph) FindCell(p Point) (Cell, bool) {
	for _, c := range g.cells {
		if c.Point == p {
			return c, true
		}
	}
	return Cell{}, false
}

// Neighbors returns the linked neighbor ids of a cell, blocked or not,
// in South, East, North, West order.
func (g *Graph) Neighbors(id int) []int {
	c, ok := g.Cell(id)
	if !ok {
		return nil
	}
	out := make([]int, 0, 4)
	for _, d := range Directions {
		if n, ok := c.Neighbor(d); ok {
			out = append(out, n)
		}
	}
	return out
}

// Adjacent reports whether b is linked from a
func (g *Graph) Adjacent(a, b int) bool {
	c, ok := g.Cell(a)
	if !ok {
		return false
	}
	for _, n := range c.Neighbors {
		if n == b && n != NoNeighbor {
			return true
		}
	}
	return false
}

// Open counts the cells that are not blocked
func (g *Graph) Open() int {
	n := 0
	for _, c := range g.cells {
		if !c.Blocked {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants: unique coordinates and
// symmetric links.
func (g *Graph) Validate() error {
	if len(g.cells) != g.rows*g.cols {
		return fmt.Errorf("%w: %d cells for a %dx%d grid", ErrEmptyMaze, len(g.cells), g.rows, g.cols)
	}

	seen := make(map[Point]int, len(g.cells))
	for _, c := range g.cells {
		if other, ok := seen[c.Point]; ok {
			return fmt.Errorf("%w: cells %d and %d at %v", ErrDuplicateCoordinate, other, c.ID, c.Point)
		}
		seen[c.Point] = c.ID
	}

	for _, c := range g.cells {
		for _, d := range Directions {
			n, ok := c.Neighbor(d)
			if !ok {
				continue
			}
			other, ok := g.Cell(n)
			if !ok {
				return fmt.Errorf("%w: cell %d links %s to missing cell %d", ErrAsymmetricLink, c.ID, d, n)
			}
			if back, _ := other.Neighbor(d.Opposite()); back != c.ID {
				return fmt.Errorf("%w: cell %d links %s to %d, which links %s to %d",
					ErrAsymmetricLink, c.ID, d, n, d.Opposite(), back)
			}
		}
	}

	return nil
}
