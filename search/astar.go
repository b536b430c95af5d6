package search

import (
	"maze-planner/maze"
)

// AStar is a best-first search guided by a heuristic estimate to the goal.
type AStar struct {
	cost      Calculator
	heuristic Calculator
	opts      Options
}

var _ Searcher = (*AStar)(nil)

// NewAStar creates an A* finder. The heuristic must never overestimate the
// remaining cost for routes to be optimal.
func NewAStar(cost, heuristic Calculator, opts ...Option) *AStar {
	return &AStar{cost: cost, heuristic: heuristic, opts: buildOptions(opts)}
}

// Find implements Finder
func (a *AStar) Find(g *maze.Graph, start, goal maze.Point) (Route, error) {
	res, err := a.Search(g, start, goal)
	if err != nil {
		return nil, err
	}
	return res.Route, nil
}

// Search computes the shortest route from start to goal using A*.
func (a *AStar) Search(g *maze.Graph, start, goal maze.Point) (Result, error) {
	source, target, err := endpoints(g, start, goal)
	if err != nil {
		return Result{}, err
	}
	if source.ID == target.ID {
		return trivial(source), nil
	}

	preds, gScore, expanded, found := a.explore(g, source, target)

	res := Result{Expanded: expanded, Found: found}
	if found {
		res.Route = Reconstruct(preds, target.ID)
		res.Cost = gScore
	} else {
		res.Route = Route{}
	}

	a.opts.Logger.V(1).Info("search finished",
		"strategy", StrategyAStar, "start", start, "goal", goal,
		"expanded", res.Expanded, "found", res.Found, "cost", res.Cost)
	return res, nil
}

// explore runs the expansion loop and returns the predecessor map, the cost
// of the goal if it was reached, and the number of expanded cells.
func (a *AStar) explore(g *maze.Graph, source, target maze.Cell) (Predecessors, float64, int, bool) {
	size := g.Size()
	gScore := make([]float64, size)
	known := make([]bool, size)
	explored := make([]bool, size)
	preds := make(Predecessors)

	open := newFrontier(size)
	gScore[source.ID] = 0
	known[source.ID] = true
	open.Upsert(source.ID, a.heuristic.Distance(source.Point, target.Point))

	expanded := 0
	for open.Len() > 0 {
		currentID, _ := open.Pop()

		// Check if we reached the goal
		if currentID == target.ID {
			return preds, gScore[currentID], expanded, true
		}

		explored[currentID] = true
		expanded++
		current, _ := g.Cell(currentID)

		// Explore neighbors
		for _, neighborID := range g.Neighbors(currentID) {
			if explored[neighborID] {
				continue
			}
			neighbor, _ := g.Cell(neighborID)
			if neighbor.Blocked {
				continue
			}

			tentativeG := gScore[currentID] + a.cost.Distance(current.Point, neighbor.Point)
			if known[neighborID] && !(tentativeG < gScore[neighborID]) {
				continue
			}

			// Found a better path to this neighbor
			preds[neighborID] = currentID
			gScore[neighborID] = tentativeG
			known[neighborID] = true
			open.Upsert(neighborID, tentativeG+a.heuristic.Distance(neighbor.Point, target.Point))
		}
	}

	// No path found
	return preds, 0, expanded, false
}
