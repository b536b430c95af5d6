package search

import (
	"errors"
	"fmt"

	"maze-planner/maze"
)

var (
	// ErrInvalidCell is returned when a start or goal point does not resolve
	// to any cell of the graph.
	ErrInvalidCell = errors.New("invalid cell, cell not in maze")

	// ErrBlockedCell is returned when a start or goal point resolves to a
	// blocked cell.
	ErrBlockedCell = errors.New("cell is blocked")
)

// resolve finds the open cell at p, or fails with ErrInvalidCell / ErrBlockedCell.
func resolve(g *maze.Graph, p maze.Point, role string) (maze.Cell, error) {
	if g == nil {
		return maze.Cell{}, fmt.Errorf("%w: %s %v, no maze", ErrInvalidCell, role, p)
	}
	if !p.Valid() {
		return maze.Cell{}, fmt.Errorf("%w: %s %v", ErrInvalidCell, role, p)
	}
	cell, ok := g.FindCell(p)
	if !ok {
		return maze.Cell{}, fmt.Errorf("%w: %s %v", ErrInvalidCell, role, p)
	}
	if cell.Blocked {
		return maze.Cell{}, fmt.Errorf("%w: %s %v", ErrBlockedCell, role, p)
	}
	return cell, nil
}

// endpoints validates both ends of a search before any frontier work.
func endpoints(g *maze.Graph, start, goal maze.Point) (maze.Cell, maze.Cell, error) {
	source, err := resolve(g, start, "start")
	if err != nil {
		return maze.Cell{}, maze.Cell{}, err
	}
	target, err := resolve(g, goal, "goal")
	if err != nil {
		return maze.Cell{}, maze.Cell{}, err
	}
	return source, target, nil
}
