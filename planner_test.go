package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/go-logr/logr"
	"github.com/paulmach/orb"

	"maze-planner/maze"
	"maze-planner/search"
)

const maze33 = `n_rows = 3
n_cols = 3
1, X
7, X
`

func testPlanner(t *testing.T) *planner {
	t.Helper()
	p, err := loadPlanner(strings.NewReader(maze33), nil, 0, logr.Discard())
	assert.NoError(t, err)
	return p
}

func TestPlannerRoute(t *testing.T) {
	p := testPlanner(t)

	resp, err := p.route(RouteRequest{
		Start: maze.Point{I: 0, J: 0},
		Goal:  maze.Point{I: 2, J: 2},
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, search.StrategyAStar, resp.Algorithm)
	assert.Equal(t, []int{0, 3, 4, 5, 8}, resp.Route)
	assert.Equal(t, []int{0, 3, 5, 8}, resp.Waypoints)
	assert.Equal(t, 5, len(resp.Points))
	assert.Equal(t, 4.0, resp.Cost)
}

func TestPlannerNoPath(t *testing.T) {
	p, err := loadPlanner(strings.NewReader("n_rows = 3\nn_cols = 3\n1, X\n4, X\n7, X\n"), nil, 0, logr.Discard())
	assert.NoError(t, err)

	resp, err := p.route(RouteRequest{
		Start:     maze.Point{I: 0, J: 0},
		Goal:      maze.Point{I: 2, J: 2},
		Algorithm: "dijkstra",
	})
	assert.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "No path found", resp.Message)
	assert.Equal(t, 0, len(resp.Route))
}

func TestPlannerErrors(t *testing.T) {
	p := testPlanner(t)

	_, err := p.route(RouteRequest{Start: maze.Point{I: 0, J: 1}, Goal: maze.Point{I: 2, J: 2}})
	assert.True(t, errors.Is(err, search.ErrBlockedCell))
	assert.True(t, isCellError(err))

	_, err = p.route(RouteRequest{Start: maze.Point{I: 0, J: 0}, Goal: maze.Point{I: 5, J: 5}})
	assert.True(t, errors.Is(err, search.ErrInvalidCell))

	_, err = p.route(RouteRequest{Algorithm: "bfs"})
	assert.Error(t, err)
	assert.False(t, isCellError(err))

	_, err = p.route(RouteRequest{Heuristic: "chebyshev"})
	assert.Error(t, err)
}

func TestPlannerSnap(t *testing.T) {
	p := testPlanner(t)

	resp, err := p.route(RouteRequest{
		Start: maze.Point{I: 0, J: 1},
		Goal:  maze.Point{I: 2, J: 2},
		Snap:  true,
	})
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEqual(t, maze.Point{I: 0, J: 1}, resp.Start)
	assert.Equal(t, maze.Point{I: 2, J: 2}, resp.Goal)

	assert.Equal(t, maze.Point{I: 2, J: 2}, p.snap(maze.Point{I: 7, J: 2}))
}

func TestPlannerCompare(t *testing.T) {
	p := testPlanner(t)

	resp, err := p.compare(context.Background(), RouteRequest{
		Start: maze.Point{I: 0, J: 0},
		Goal:  maze.Point{I: 2, J: 2},
	})
	assert.NoError(t, err)
	assert.True(t, resp.Agree)
	assert.Equal(t, search.StrategyAStar, resp.AStar.Algorithm)
	assert.Equal(t, search.StrategyDijkstra, resp.Dijkstra.Algorithm)
	assert.Equal(t, resp.AStar.Route, resp.Dijkstra.Route)
	assert.True(t, resp.AStar.Expanded < resp.Dijkstra.Expanded)

	_, err = p.compare(context.Background(), RouteRequest{
		Start: maze.Point{I: 0, J: 0},
		Goal:  maze.Point{I: 2, J: 1},
	})
	assert.True(t, errors.Is(err, search.ErrBlockedCell))
}

func TestPlannerCompareCancelled(t *testing.T) {
	p := testPlanner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.compare(ctx, RouteRequest{
		Start: maze.Point{I: 0, J: 0},
		Goal:  maze.Point{I: 2, J: 2},
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadPlannerCellLimit(t *testing.T) {
	_, err := loadPlanner(strings.NewReader(maze33), nil, 8, logr.Discard())
	assert.True(t, errors.Is(err, maze.ErrMazeTooLarge))

	p, err := loadPlanner(strings.NewReader(maze33), nil, 9, logr.Discard())
	assert.NoError(t, err)
	assert.Equal(t, 9, p.graph.Size())
}

func TestLoadPlannerWithObstacles(t *testing.T) {
	// blocks the centre cell as well
	square := orb.Polygon{{{0.5, 0.5}, {1.5, 0.5}, {1.5, 1.5}, {0.5, 1.5}, {0.5, 0.5}}}
	p, err := loadPlanner(strings.NewReader(maze33), []orb.Polygon{square}, 0, logr.Discard())
	assert.NoError(t, err)
	assert.Equal(t, 6, p.graph.Open())

	resp, err := p.route(RouteRequest{Start: maze.Point{I: 0, J: 0}, Goal: maze.Point{I: 2, J: 2}})
	assert.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestLoadPlannerRejectsBadMaze(t *testing.T) {
	_, err := loadPlanner(strings.NewReader("n_rows = 3\n"), nil, 0, logr.Discard())
	assert.True(t, errors.Is(err, maze.ErrMalformedHeader))
}
