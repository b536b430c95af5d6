package maze

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

var (
	// ErrEmptyMaze is returned for a grid with no cells.
	ErrEmptyMaze = errors.New("maze has no cells")

	// ErrCellOutOfRange is returned when a cell id or point is outside the grid.
	ErrCellOutOfRange = errors.New("cell out of range")

	// ErrAlreadyBuilt is returned when a Builder is used after Build.
	ErrAlreadyBuilt = errors.New("maze already built")

	// ErrMazeTooLarge is returned when rows x cols exceeds the cell limit.
	ErrMazeTooLarge = errors.New("maze too large")
)

// DefaultMaxCells bounds rows x cols unless WithMaxCells says otherwise.
const DefaultMaxCells = 1 << 24

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used while building.
func WithLogger(log logr.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithMaxCells sets the largest grid NewBuilder accepts. Values <= 0 keep
// DefaultMaxCells.
func WithMaxCells(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxCells = n
		}
	}
}

// Builder creates cells, collects blocked flags and links neighbors once in Build.
// A Builder is not safe for concurrent use.
type Builder struct {
	rows, cols int
	cells      []Cell
	built      bool
	maxCells   int
	log        logr.Logger
}

// NewBuilder allocates every cell of a rows x cols grid, all open.
func NewBuilder(rows, cols int, opts ...Option) (*Builder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyMaze, rows, cols)
	}

	b := &Builder{
		rows:     rows,
		cols:     cols,
		maxCells: DefaultMaxCells,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}

	// divide rather than multiply so huge headers cannot overflow
	if rows > b.maxCells/cols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrMazeTooLarge, rows, cols, b.maxCells)
	}
	b.cells = make([]Cell, 0, rows*cols)

	id := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			b.cells = append(b.cells, Cell{
				ID:        id,
				Point:     Point{I: i, J: j},
				Neighbors: [4]int{NoNeighbor, NoNeighbor, NoNeighbor, NoNeighbor},
			})
			id++
		}
	}
	return b, nil
}

// MustNewBuilder is NewBuilder that panics on error.
func MustNewBuilder(rows, cols int, opts ...Option) *Builder {
	b, err := NewBuilder(rows, cols, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// Rows returns the row count
func (b *Builder) Rows() int { return b.rows }

// Cols returns the column count
func (b *Builder) Cols() int { return b.cols }

// Block marks a cell as blocked.
func (b *Builder) Block(id int) error {
	return b.setBlocked(id, true)
}

// Open marks a cell as open.
func (b *Builder) Open(id int) error {
	return b.setBlocked(id, false)
}

// BlockPoint marks the cell at p as blocked.
func (b *Builder) BlockPoint(p Point) error {
	if p.I < 0 || p.I >= b.rows || p.J < 0 || p.J >= b.cols {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrCellOutOfRange, p, b.rows, b.cols)
	}
	return b.setBlocked(p.I*b.cols+p.J, true)
}

func (b *Builder) setBlocked(id int, blocked bool) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if id < 0 || id >= len(b.cells) {
		return fmt.Errorf("%w: id %d, grid has %d cells", ErrCellOutOfRange, id, len(b.cells))
	}
	b.cells[id].Blocked = blocked
	return nil
}

// Build links every cell to its four neighbors and returns the finished graph.
// The builder cannot be used afterwards.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	for id := range b.cells {
		cell := &b.cells[id]
		for _, d := range Directions {
			di, dj := d.step()
			i, j := cell.Point.I+di, cell.Point.J+dj
			if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
				cell.Neighbors[d] = NoNeighbor
				continue
			}
			cell.Neighbors[d] = i*b.cols + j
		}
	}

	g := &Graph{rows: b.rows, cols: b.cols, cells: b.cells}
	b.cells = nil

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("maze validation failed: %w", err)
	}

	b.log.V(1).Info("maze built", "rows", g.rows, "cols", g.cols, "open", g.Open())
	return g, nil
}
