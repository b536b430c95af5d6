package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"maze-planner/internal/log"
	"maze-planner/maze"
	"maze-planner/search"
)

type config struct {
	MazeFile      string
	ObstaclesFile string
	Start         maze.Point
	Goal          maze.Point
	Strategy      search.Strategy
	Heuristic     string
	Compare       bool
	Waypoints     bool
	Addr          string
	MaxCells      int
	LogLevel      string
	LogFormat     log.Format
}

// serving reports whether the HTTP server should run instead of a one-shot search
func (c config) serving() bool { return c.Addr != "" }

// pointFlag parses "i,j" into a maze.Point
type pointFlag struct {
	p   *maze.Point
	set bool
}

func (f *pointFlag) String() string {
	if f.p == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d", f.p.I, f.p.J)
}

func (f *pointFlag) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	*f.p = p
	f.set = true
	return nil
}

func parsePoint(s string) (maze.Point, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return maze.Point{}, fmt.Errorf("expected i,j but got %q", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return maze.Point{}, fmt.Errorf("expected integer row but got %q", fields[0])
	}
	j, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return maze.Point{}, fmt.Errorf("expected integer column but got %q", fields[1])
	}
	return maze.Point{I: i, J: j}, nil
}

// parseConfig reads the command line. Start and goal stay maze.Unset when
// not given so the one-shot mode can prompt for them.
func parseConfig(name string, args []string) (config, error) {
	cfg := config{Start: maze.Unset, Goal: maze.Unset}
	start := &pointFlag{p: &cfg.Start}
	goal := &pointFlag{p: &cfg.Goal}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.MazeFile, "maze", "", "maze file (required)")
	fs.StringVar(&cfg.ObstaclesFile, "obstacles", "", "GeoJSON file of obstacle polygons to block")
	fs.Var(start, "start", "start cell as i,j")
	fs.Var(goal, "goal", "goal cell as i,j")
	algorithm := fs.String("algorithm", "astar", "astar|dijkstra")
	fs.StringVar(&cfg.Heuristic, "heuristic", "euclidean", "euclidean|manhattan")
	fs.BoolVar(&cfg.Compare, "compare", false, "run both strategies and report each")
	fs.BoolVar(&cfg.Waypoints, "waypoints", false, "print only the cells where the route turns")
	fs.StringVar(&cfg.Addr, "serve", "", "listen address; when set, run the HTTP server")
	fs.IntVar(&cfg.MaxCells, "max-cells", maze.DefaultMaxCells, "largest maze accepted, in cells (rows x cols)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "debug|info|warn|error")
	format := fs.String("log-format", string(log.FormatConsole), "console|json")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.MazeFile == "" {
		return config{}, errors.New("-maze is required")
	}

	if cfg.MaxCells <= 0 {
		return config{}, fmt.Errorf("-max-cells must be positive, got %d", cfg.MaxCells)
	}

	strategy, err := search.ParseStrategy(*algorithm)
	if err != nil {
		return config{}, err
	}
	cfg.Strategy = strategy

	if _, err := search.ParseCalculator(cfg.Heuristic); err != nil {
		return config{}, err
	}

	switch log.Format(*format) {
	case log.FormatConsole, log.FormatJSON:
		cfg.LogFormat = log.Format(*format)
	default:
		return config{}, fmt.Errorf("unknown log format %q", *format)
	}

	return cfg, nil
}
