package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb/planar"

	"maze-planner/maze"
)

// Calculator returns the non-negative cost between two grid points.
// It serves both as the edge cost between adjacent cells and as the
// A* estimate from a cell to the goal.
type Calculator interface {
	Distance(a, b maze.Point) float64
}

// CalculatorFunc adapts a plain function to Calculator.
type CalculatorFunc func(a, b maze.Point) float64

// Distance implements Calculator
func (f CalculatorFunc) Distance(a, b maze.Point) float64 { return f(a, b) }

// Euclidean is the straight-line distance. It never overestimates the cost
// of a 4-connected walk, so it is admissible and consistent.
type Euclidean struct{}

// Distance implements Calculator
func (Euclidean) Distance(a, b maze.Point) float64 {
	return planar.Distance(a.Orb(), b.Orb())
}

// Manhattan is the 4-connected grid distance.
type Manhattan struct{}

// Distance implements Calculator
func (Manhattan) Distance(a, b maze.Point) float64 {
	return math.Abs(float64(a.I-b.I)) + math.Abs(float64(a.J-b.J))
}

// ParseCalculator maps a name ("euclidean", "manhattan") to a Calculator.
func ParseCalculator(name string) (Calculator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean{}, nil
	case "manhattan":
		return Manhattan{}, nil
	default:
		return nil, fmt.Errorf("unknown distance %q", name)
	}
}
