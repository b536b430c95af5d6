package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"maze-planner/maze"
	"maze-planner/search"
)

// planner holds one loaded maze and answers route queries against it.
// It is read-only once built and may serve concurrent requests.
type planner struct {
	graph *maze.Graph
	open  *maze.Index
	log   logr.Logger
}

type RouteRequest struct {
	Start     maze.Point `json:"start"`
	Goal      maze.Point `json:"goal"`
	Algorithm string     `json:"algorithm,omitempty"`
	Heuristic string     `json:"heuristic,omitempty"`
	Snap      bool       `json:"snap,omitempty"` // move start/goal onto the nearest open cell
}

type RouteResponse struct {
	Algorithm search.Strategy `json:"algorithm"`
	Start     maze.Point      `json:"start"`
	Goal      maze.Point      `json:"goal"`
	Route     []int           `json:"route"`
	Waypoints []int           `json:"waypoints,omitempty"`
	Points    []maze.Point    `json:"points,omitempty"`
	Cost      float64         `json:"cost"`
	Expanded  int             `json:"expanded"`
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`

	geometry orb.LineString
}

type CompareResponse struct {
	AStar    RouteResponse `json:"astar"`
	Dijkstra RouteResponse `json:"dijkstra"`
	Agree    bool          `json:"agree"` // equal cost, or both found nothing
}

// loadPlanner parses a maze, blocks obstacle polygons and indexes the open cells.
// Grids over maxCells cells are rejected; maxCells <= 0 means maze.DefaultMaxCells.
func loadPlanner(r io.Reader, obstacles []orb.Polygon, maxCells int, log logr.Logger) (*planner, error) {
	b, err := maze.ParseBuilder(r, maze.WithLogger(log.WithName("maze")), maze.WithMaxCells(maxCells))
	if err != nil {
		return nil, err
	}
	if _, err := b.BlockPolygons(obstacles); err != nil {
		return nil, err
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return newPlanner(g, log), nil
}

func newPlanner(g *maze.Graph, log logr.Logger) *planner {
	return &planner{graph: g, open: maze.NewIndex(g, true), log: log}
}

// route runs one strategy. Invalid or blocked endpoints are returned as errors;
// an unreachable goal is a successful call with Success false.
func (p *planner) route(req RouteRequest) (RouteResponse, error) {
	strategy, err := search.ParseStrategy(req.Algorithm)
	if err != nil {
		return RouteResponse{}, err
	}
	return p.run(strategy, req)
}

func (p *planner) run(strategy search.Strategy, req RouteRequest) (RouteResponse, error) {
	calc, err := search.ParseCalculator(req.Heuristic)
	if err != nil {
		return RouteResponse{}, err
	}
	finder, err := search.New(strategy, calc, search.WithLogger(p.log.WithName("search")))
	if err != nil {
		return RouteResponse{}, err
	}

	start, goal := req.Start, req.Goal
	if req.Snap {
		start = p.snap(start)
		goal = p.snap(goal)
	}

	res, err := finder.Search(p.graph, start, goal)
	if err != nil {
		return RouteResponse{}, err
	}

	resp := RouteResponse{
		Algorithm: strategy,
		Start:     start,
		Goal:      goal,
		Route:     res.Route,
		Cost:      res.Cost,
		Expanded:  res.Expanded,
		Success:   res.Found,
	}
	if !res.Found {
		resp.Message = "No path found"
		return resp, nil
	}
	resp.Waypoints = res.Route.Waypoints(p.graph)
	resp.Points = res.Route.Points(p.graph)
	resp.geometry = res.Route.LineString(p.graph)
	return resp, nil
}

// snap moves p onto the nearest open cell, leaving it alone if it already is one
func (p *planner) snap(pt maze.Point) maze.Point {
	if _, ok := p.open.Locate(pt); ok {
		return pt
	}
	if _, nearest, ok := p.open.Nearest(pt); ok {
		return nearest
	}
	return pt
}

// compare runs both strategies concurrently over the shared graph.
func (p *planner) compare(ctx context.Context, req RouteRequest) (CompareResponse, error) {
	var out CompareResponse
	if err := ctx.Err(); err != nil {
		return CompareResponse{}, err
	}

	var grp errgroup.Group
	grp.Go(func() error {
		resp, err := p.run(search.StrategyAStar, req)
		if err != nil {
			return fmt.Errorf("astar: %w", err)
		}
		out.AStar = resp
		return nil
	})
	grp.Go(func() error {
		resp, err := p.run(search.StrategyDijkstra, req)
		if err != nil {
			return fmt.Errorf("dijkstra: %w", err)
		}
		out.Dijkstra = resp
		return nil
	})
	if err := grp.Wait(); err != nil {
		return CompareResponse{}, err
	}

	out.Agree = out.AStar.Success == out.Dijkstra.Success &&
		almostEqual(out.AStar.Cost, out.Dijkstra.Cost)
	return out, nil
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

// isCellError reports whether err is a caller mistake about start or goal
func isCellError(err error) bool {
	return errors.Is(err, search.ErrInvalidCell) || errors.Is(err, search.ErrBlockedCell)
}
