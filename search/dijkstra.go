package search

import (
	"maze-planner/maze"
)

// Dijkstra builds the full shortest-path tree from the source, then reads the
// goal's route out of it. It does not stop early when the goal is settled.
type Dijkstra struct {
	cost Calculator
	opts Options
}

var _ Searcher = (*Dijkstra)(nil)

// NewDijkstra creates a Dijkstra finder with the given edge cost.
func NewDijkstra(cost Calculator, opts ...Option) *Dijkstra {
	return &Dijkstra{cost: cost, opts: buildOptions(opts)}
}

// Find implements Finder
func (d *Dijkstra) Find(g *maze.Graph, start, goal maze.Point) (Route, error) {
	res, err := d.Search(g, start, goal)
	if err != nil {
		return nil, err
	}
	return res.Route, nil
}

// Search computes the shortest route from start to goal using Dijkstra.
func (d *Dijkstra) Search(g *maze.Graph, start, goal maze.Point) (Result, error) {
	source, target, err := endpoints(g, start, goal)
	if err != nil {
		return Result{}, err
	}
	if source.ID == target.ID {
		return trivial(source), nil
	}

	tree := d.Tree(g, source.ID)

	res := Result{Route: Reconstruct(tree.Predecessors, target.ID), Expanded: tree.Expanded}
	if !res.Route.Empty() {
		res.Found = true
		res.Cost, _ = tree.Distance(target.ID)
	}

	d.opts.Logger.V(1).Info("search finished",
		"strategy", StrategyDijkstra, "start", start, "goal", goal,
		"expanded", res.Expanded, "found", res.Found, "cost", res.Cost)
	return res, nil
}

// Tree is a shortest-path tree rooted at one source cell.
type Tree struct {
	Source       int
	Predecessors Predecessors
	Expanded     int

	dist  []float64
	known []bool
}

// Distance returns the shortest distance from the source to a cell, and
// false if the cell is unreachable.
func (t *Tree) Distance(id int) (float64, bool) {
	if id < 0 || id >= len(t.known) || !t.known[id] {
		return 0, false
	}
	return t.dist[id], true
}

// Reachable reports whether the cell is in the source's component
func (t *Tree) Reachable(id int) bool {
	_, ok := t.Distance(id)
	return ok
}

// RouteTo extracts the route from the source to a cell.
func (t *Tree) RouteTo(id int) Route {
	if id == t.Source {
		return Route{id}
	}
	return Reconstruct(t.Predecessors, id)
}

// Tree explores every cell reachable from source. The source must be an
// open cell of g.
func (d *Dijkstra) Tree(g *maze.Graph, source int) *Tree {
	size := g.Size()
	t := &Tree{
		Source:       source,
		Predecessors: make(Predecessors),
		dist:         make([]float64, size),
		known:        make([]bool, size),
	}
	explored := make([]bool, size)

	open := newFrontier(size)
	t.dist[source] = 0
	t.known[source] = true
	open.Upsert(source, 0)

	for open.Len() > 0 {
		currentID, currentDist := open.Pop()

		// This cell is settled
		explored[currentID] = true
		t.Expanded++
		current, _ := g.Cell(currentID)

		for _, neighborID := range g.Neighbors(currentID) {
			if explored[neighborID] {
				continue
			}
			neighbor, _ := g.Cell(neighborID)
			if neighbor.Blocked {
				continue
			}

			candidate := currentDist + d.cost.Distance(current.Point, neighbor.Point)
			if t.known[neighborID] && !(candidate < t.dist[neighborID]) {
				continue
			}

			t.dist[neighborID] = candidate
			t.known[neighborID] = true
			t.Predecessors[neighborID] = currentID
			open.Upsert(neighborID, candidate)
		}
	}

	return t
}
