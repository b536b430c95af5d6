package search

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"maze-planner/maze"
)

// Predecessors maps a discovered cell id to the id it was best reached from.
// The source has no entry.
type Predecessors map[int]int

// Route is an ordered list of cell ids from source to goal inclusive.
// An empty route means no path was found.
type Route []int

// Empty reports whether the route holds no cells
func (r Route) Empty() bool { return len(r) == 0 }

// Len returns the number of cells on the route
func (r Route) Len() int { return len(r) }

// Reconstruct walks the predecessor map back from goal and returns the
// route source-first. If the goal was never reached, the route is empty.
func Reconstruct(preds Predecessors, goal int) Route {
	if _, ok := preds[goal]; !ok {
		return Route{}
	}

	route := Route{goal}
	current := goal
	// A well-formed map reaches the source in at most len(preds) steps.
	for steps := 0; ; steps++ {
		if steps > len(preds) {
			return Route{}
		}
		prev, ok := preds[current]
		if !ok {
			break
		}
		route = append(route, prev)
		current = prev
	}

	// reverse path
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// Contiguous reports whether every consecutive pair of cells is linked in g.
func (r Route) Contiguous(g *maze.Graph) bool {
	for i := 1; i < len(r); i++ {
		if !g.Adjacent(r[i-1], r[i]) {
			return false
		}
	}
	return true
}

// Cost sums the edge cost of each step of the route.
func (r Route) Cost(g *maze.Graph, c Calculator) float64 {
	var total float64
	for i := 1; i < len(r); i++ {
		a, _ := g.Cell(r[i-1])
		b, _ := g.Cell(r[i])
		total += c.Distance(a.Point, b.Point)
	}
	return total
}

// Points maps the route to grid coordinates.
func (r Route) Points(g *maze.Graph) []maze.Point {
	points := make([]maze.Point, 0, len(r))
	for _, id := range r {
		if c, ok := g.Cell(id); ok {
			points = append(points, c.Point)
		}
	}
	return points
}

// LineString returns the route as planar geometry, X the column and Y the row.
func (r Route) LineString(g *maze.Graph) orb.LineString {
	ls := make(orb.LineString, 0, len(r))
	for _, p := range r.Points(g) {
		ls = append(ls, p.Orb())
	}
	return ls
}

// Waypoints keeps only the cells where the route turns, plus both ends.
func (r Route) Waypoints(g *maze.Graph) Route {
	if len(r) <= 2 {
		return append(Route{}, r...)
	}

	ls := r.LineString(g)
	byPoint := make(map[orb.Point]int, len(r))
	for i, p := range ls {
		byPoint[p] = r[i]
	}

	// Threshold 0 drops exactly the collinear interior points.
	simplified := simplify.DouglasPeucker(0).Simplify(ls.Clone())
	kept, ok := simplified.(orb.LineString)
	if !ok {
		return append(Route{}, r...)
	}

	waypoints := make(Route, 0, len(kept))
	for _, p := range kept {
		waypoints = append(waypoints, byPoint[p])
	}
	return waypoints
}
