package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/zerologr"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"maze-planner/internal/log"
	"maze-planner/maze"
)

func main() {
	cfg, err := parseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := log.New(cfg.LogFormat, cfg.LogLevel)
	if err := run(cfg, *logger); err != nil {
		logger.Error().Err(err).Msg("maze-planner failed")
		os.Exit(1)
	}
}

func run(cfg config, logger zerolog.Logger) error {
	searchLog := zerologr.New(&logger)

	var obstacles []orb.Polygon
	if cfg.ObstaclesFile != "" {
		polygons, err := maze.LoadObstacles(cfg.ObstaclesFile)
		if err != nil {
			return err
		}
		obstacles = polygons
		logger.Info().Int("polygons", len(obstacles)).Str("file", cfg.ObstaclesFile).Msg("obstacles loaded")
	}

	f, err := os.Open(cfg.MazeFile)
	if err != nil {
		return fmt.Errorf("failed to open maze: %w", err)
	}
	p, err := loadPlanner(f, obstacles, cfg.MaxCells, searchLog)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.MazeFile, err)
	}

	logger.Info().
		Str("file", cfg.MazeFile).
		Int("rows", p.graph.Rows()).
		Int("cols", p.graph.Cols()).
		Int("open", p.graph.Open()).
		Msg("maze loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.serving() {
		return runOnce(ctx, cfg, p, os.Stdin, os.Stdout)
	}
	return serve(ctx, cfg.Addr, newServer(p, obstacles, cfg.MaxCells, logger, searchLog))
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, addr string, s *server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		s.log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info().Msg("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return grp.Wait()
}
