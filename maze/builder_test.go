package maze

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func buildGrid(t *testing.T, rows, cols int, blocked ...int) *Graph {
	t.Helper()
	b, err := NewBuilder(rows, cols)
	assert.NoError(t, err)
	for _, id := range blocked {
		assert.NoError(t, b.Block(id))
	}
	g, err := b.Build()
	assert.NoError(t, err)
	return g
}

func TestBuildLinksNeighbors(t *testing.T) {
	g := buildGrid(t, 3, 3, 1, 7)

	tests := []struct {
		id                       int
		south, east, north, west int
	}{
		{id: 0, south: NoNeighbor, east: 1, north: 3, west: NoNeighbor},
		{id: 2, south: NoNeighbor, east: NoNeighbor, north: 5, west: 1},
		{id: 4, south: 1, east: 5, north: 7, west: 3},
		{id: 6, south: 3, east: 7, north: NoNeighbor, west: NoNeighbor},
		{id: 8, south: 5, east: NoNeighbor, north: NoNeighbor, west: 7},
	}
	for _, tt := range tests {
		c, ok := g.Cell(tt.id)
		assert.True(t, ok)
		assert.Equal(t, [4]int{tt.south, tt.east, tt.north, tt.west}, c.Neighbors, "cell %d", tt.id)
	}

	c, _ := g.Cell(1)
	assert.True(t, c.Blocked)
	c, _ = g.Cell(4)
	assert.False(t, c.Blocked)
	assert.Equal(t, 4, len(g.Neighbors(c.ID)))
	assert.Equal(t, Point{I: 1, J: 1}, c.Point)
}

func TestGraphNeighborsOrder(t *testing.T) {
	g := buildGrid(t, 3, 3)

	// blocked cells stay linked; searches skip them
	assert.Equal(t, []int{1, 5, 7, 3}, g.Neighbors(4))
	assert.Equal(t, []int{1, 3}, g.Neighbors(0))
	assert.Equal(t, 0, len(g.Neighbors(42)))
}

func TestGraphIDMatchesCoordinate(t *testing.T) {
	g := buildGrid(t, 4, 5)
	assert.Equal(t, 4, g.Rows())
	assert.Equal(t, 5, g.Cols())
	assert.Equal(t, 20, g.Size())

	for id := 0; id < g.Size(); id++ {
		c, ok := g.Cell(id)
		assert.True(t, ok)
		assert.Equal(t, id, c.Point.I*g.Cols()+c.Point.J)

		found, ok := g.FindCell(c.Point)
		assert.True(t, ok)
		assert.Equal(t, id, found.ID)
	}

	_, ok := g.FindCell(Point{I: 4, J: 0})
	assert.False(t, ok)
	_, ok = g.Cell(-1)
	assert.False(t, ok)
}

func TestGraphLinksAreSymmetric(t *testing.T) {
	g := buildGrid(t, 5, 7, 3, 10, 11, 30)
	assert.NoError(t, g.Validate())

	for id := 0; id < g.Size(); id++ {
		for _, n := range g.Neighbors(id) {
			assert.True(t, g.Adjacent(n, id), "%d -> %d has no link back", id, n)
		}
	}
	assert.False(t, g.Adjacent(0, 8))
}

func TestValidateRejectsAsymmetricLink(t *testing.T) {
	g := buildGrid(t, 2, 2)
	g.cells[0].Neighbors[East] = 3

	err := g.Validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrAsymmetricLink))
}

func TestValidateRejectsDuplicateCoordinate(t *testing.T) {
	g := buildGrid(t, 2, 2)
	g.cells[3].Point = Point{I: 0, J: 0}

	err := g.Validate()
	assert.True(t, errors.Is(err, ErrDuplicateCoordinate))
}

func TestGraphOpen(t *testing.T) {
	assert.Equal(t, 9, buildGrid(t, 3, 3).Open())
	assert.Equal(t, 7, buildGrid(t, 3, 3, 1, 7).Open())
}

func TestBuilderErrors(t *testing.T) {
	t.Run("empty grid", func(t *testing.T) {
		_, err := NewBuilder(0, 3)
		assert.True(t, errors.Is(err, ErrEmptyMaze))
		_, err = NewBuilder(3, -1)
		assert.True(t, errors.Is(err, ErrEmptyMaze))
	})

	t.Run("out of range", func(t *testing.T) {
		b := MustNewBuilder(2, 2)
		assert.True(t, errors.Is(b.Block(4), ErrCellOutOfRange))
		assert.True(t, errors.Is(b.Block(-1), ErrCellOutOfRange))
		assert.True(t, errors.Is(b.BlockPoint(Point{I: 2, J: 0}), ErrCellOutOfRange))
	})

	t.Run("already built", func(t *testing.T) {
		b := MustNewBuilder(2, 2)
		_, err := b.Build()
		assert.NoError(t, err)

		_, err = b.Build()
		assert.True(t, errors.Is(err, ErrAlreadyBuilt))
		assert.True(t, errors.Is(b.Block(0), ErrAlreadyBuilt))
	})

	t.Run("too large", func(t *testing.T) {
		_, err := NewBuilder(3, 4, WithMaxCells(11))
		assert.True(t, errors.Is(err, ErrMazeTooLarge))

		b, err := NewBuilder(3, 4, WithMaxCells(12))
		assert.NoError(t, err)
		assert.Equal(t, 4, b.Cols())

		_, err = NewBuilder(1, DefaultMaxCells+1)
		assert.True(t, errors.Is(err, ErrMazeTooLarge))

		// non-positive limits keep the default
		_, err = NewBuilder(2, 2, WithMaxCells(0))
		assert.NoError(t, err)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewBuilder(0, 0) })
	})
}

func TestBuilderOpenAndBlockPoint(t *testing.T) {
	b := MustNewBuilder(2, 3)
	assert.NoError(t, b.BlockPoint(Point{I: 1, J: 2}))
	assert.NoError(t, b.Block(0))
	assert.NoError(t, b.Open(0))

	g, err := b.Build()
	assert.NoError(t, err)

	c, _ := g.Cell(5)
	assert.True(t, c.Blocked)
	c, _ = g.Cell(0)
	assert.False(t, c.Blocked)
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
	}
	assert.Equal(t, "North", South.Opposite().String())
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{I: 0, J: 0}.Valid())
	assert.False(t, Unset.Valid())
	assert.False(t, Point{I: 2, J: -3}.Valid())
	assert.Equal(t, "(1, 2)", Point{I: 1, J: 2}.String())
}
