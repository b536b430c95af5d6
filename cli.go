package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"maze-planner/maze"
)

// prompter asks for missing start and goal coordinates on an input stream.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) integer(label string) (int, error) {
	fmt.Fprintln(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	text := strings.TrimSpace(p.in.Text())
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("expected integer but got %q", text)
	}
	return v, nil
}

func (p *prompter) point(what string) (maze.Point, error) {
	fmt.Fprintf(p.out, "Specify %s point: \n", what)
	i, err := p.integer("The x-coordinate:")
	if err != nil {
		return maze.Point{}, err
	}
	j, err := p.integer("The y-coordinate:")
	if err != nil {
		return maze.Point{}, err
	}
	return maze.Point{I: i, J: j}, nil
}

// runOnce answers a single query and prints the route ids to out.
func runOnce(ctx context.Context, cfg config, p *planner, in io.Reader, out io.Writer) error {
	prompt := newPrompter(in, out)
	if cfg.Start == maze.Unset {
		pt, err := prompt.point("starting")
		if err != nil {
			return fmt.Errorf("failed to read start: %w", err)
		}
		cfg.Start = pt
	}
	if cfg.Goal == maze.Unset {
		pt, err := prompt.point("goal")
		if err != nil {
			return fmt.Errorf("failed to read goal: %w", err)
		}
		cfg.Goal = pt
	}

	req := RouteRequest{
		Start:     cfg.Start,
		Goal:      cfg.Goal,
		Algorithm: string(cfg.Strategy),
		Heuristic: cfg.Heuristic,
	}

	if cfg.Compare {
		resp, err := p.compare(ctx, req)
		if err != nil {
			return err
		}
		printRoute(out, resp.AStar, cfg.Waypoints)
		printRoute(out, resp.Dijkstra, cfg.Waypoints)
		if !resp.Agree {
			fmt.Fprintln(out, "strategies disagree on cost")
		}
		return nil
	}

	resp, err := p.route(req)
	if err != nil {
		return err
	}
	printRoute(out, resp, cfg.Waypoints)
	return nil
}

// printRoute writes "<algorithm>: id, id, ... (cost c)" or the no-path message.
func printRoute(out io.Writer, resp RouteResponse, waypoints bool) {
	if !resp.Success {
		fmt.Fprintf(out, "%s: %s\n", resp.Algorithm, resp.Message)
		return
	}
	ids := resp.Route
	if waypoints {
		ids = resp.Waypoints
	}
	fmt.Fprintf(out, "%s: %s (cost %g, expanded %d)\n", resp.Algorithm, joinIDs(ids), resp.Cost, resp.Expanded)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
