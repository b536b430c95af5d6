// Package search finds shortest routes across a maze.Graph.
//
// Two strategies share one contract: AStar expands cells in order of
// accumulated cost plus an estimate to the goal and stops when the goal is
// popped; Dijkstra grows the full shortest-path tree from the source and then
// extracts the goal's route. Both take a Calculator for edge costs, validate
// their endpoints before doing any work, and return an empty Route when the
// goal cannot be reached.
//
// Frontier ties are broken by lower cell id, so results are deterministic.
// A search never mutates the graph, and one graph may be searched from many
// goroutines at once.
package search

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"maze-planner/maze"
)

// Finder is the narrow route-finding contract shared by all strategies.
type Finder interface {
	Find(g *maze.Graph, start, goal maze.Point) (Route, error)
}

// Result contains the outcome of a search
type Result struct {
	Route    Route
	Cost     float64
	Expanded int
	Found    bool
}

// Options defines parameters for a strategy.
type Options struct {
	Logger logr.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger that receives per-search summaries at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

func buildOptions(opts []Option) Options {
	o := Options{Logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Strategy names a search algorithm.
type Strategy string

const (
	StrategyAStar    Strategy = "astar"
	StrategyDijkstra Strategy = "dijkstra"
)

// ParseStrategy accepts the strategy names used on the command line and in requests.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "astar", "a*", "1":
		return StrategyAStar, nil
	case "dijkstra", "2":
		return StrategyDijkstra, nil
	default:
		return "", fmt.Errorf("unknown strategy %q", name)
	}
}

// Searcher is a Finder that also reports search statistics.
type Searcher interface {
	Finder
	Search(g *maze.Graph, start, goal maze.Point) (Result, error)
}

// New builds the named strategy with c as both edge cost and heuristic.
func New(s Strategy, c Calculator, opts ...Option) (Searcher, error) {
	switch s {
	case StrategyAStar:
		return NewAStar(c, c, opts...), nil
	case StrategyDijkstra:
		return NewDijkstra(c, opts...), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", s)
	}
}

// trivial is the result when start and goal are the same cell
func trivial(c maze.Cell) Result {
	return Result{Route: Route{c.ID}, Found: true}
}
