package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-logr/logr"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"maze-planner/maze"
	"maze-planner/search"
)

// maxMazeBytes caps the body accepted by PUT /maze.
const maxMazeBytes = 8 << 20

type server struct {
	mu        sync.RWMutex
	planner   *planner
	obstacles []orb.Polygon
	maxCells  int
	log       zerolog.Logger
	searchLog logr.Logger
}

func newServer(p *planner, obstacles []orb.Polygon, maxCells int, log zerolog.Logger, searchLog logr.Logger) *server {
	return &server{planner: p, obstacles: obstacles, maxCells: maxCells, log: log, searchLog: searchLog}
}

func (s *server) current() *planner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planner
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/compare", corsMiddleware(s.compareHandler))
	mux.HandleFunc("/maze", corsMiddleware(s.mazeHandler))
	mux.HandleFunc("/maze/lines", corsMiddleware(s.linesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps search errors to HTTP codes
func errorStatus(err error) int {
	if isCellError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}

// decodeRoute reads a RouteRequest and checks a maze is loaded
func (s *server) decodeRoute(w http.ResponseWriter, r *http.Request) (*planner, RouteRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, RouteRequest{}, false
	}

	// a point left out of the body must not decode to the valid cell (0, 0)
	req := RouteRequest{Start: maze.Unset, Goal: maze.Unset}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Warn().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, RouteRequest{}, false
	}

	p := s.current()
	if p == nil {
		http.Error(w, "No maze loaded. PUT /maze first", http.StatusBadRequest)
		return nil, RouteRequest{}, false
	}
	return p, req, true
}

// POST /route - Compute a route between two cells
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	p, req, ok := s.decodeRoute(w, r)
	if !ok {
		return
	}

	s.log.Debug().
		Stringer("start", req.Start).
		Stringer("goal", req.Goal).
		Str("algorithm", req.Algorithm).
		Msg("route request received")

	resp, err := p.route(req)
	if err != nil {
		s.log.Info().Err(err).Msg("route rejected")
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	if resp.Success {
		s.log.Info().
			Str("algorithm", string(resp.Algorithm)).
			Int("cells", len(resp.Route)).
			Int("waypoints", len(resp.Waypoints)).
			Float64("cost", resp.Cost).
			Int("expanded", resp.Expanded).
			Msg("path found")
	} else {
		s.log.Info().Str("algorithm", string(resp.Algorithm)).Msg("no path found")
	}

	if r.URL.Query().Get("format") == "geojson" {
		writeJSON(w, http.StatusOK, routeFeature(resp))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// routeFeature wraps a route as a GeoJSON LineString feature
func routeFeature(resp RouteResponse) *geojson.Feature {
	var geometry orb.Geometry = resp.geometry
	if len(resp.geometry) < 2 {
		// a LineString needs two points; report a lone cell or nothing as a MultiPoint
		mp := orb.MultiPoint{}
		for _, pt := range resp.Points {
			mp = append(mp, pt.Orb())
		}
		geometry = mp
	}
	f := geojson.NewFeature(geometry)
	f.Properties["algorithm"] = string(resp.Algorithm)
	f.Properties["route"] = resp.Route
	f.Properties["cost"] = resp.Cost
	f.Properties["expanded"] = resp.Expanded
	f.Properties["success"] = resp.Success
	return f
}

// POST /compare - Run A* and Dijkstra side by side
func (s *server) compareHandler(w http.ResponseWriter, r *http.Request) {
	p, req, ok := s.decodeRoute(w, r)
	if !ok {
		return
	}

	resp, err := p.compare(r.Context(), req)
	if err != nil {
		s.log.Info().Err(err).Msg("compare rejected")
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	if !resp.Agree {
		s.log.Warn().
			Float64("astar", resp.AStar.Cost).
			Float64("dijkstra", resp.Dijkstra.Cost).
			Msg("strategies disagree on cost")
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /maze - describe the loaded maze; PUT /maze - replace it
func (s *server) mazeHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p := s.current()
		if p == nil {
			http.Error(w, "No maze loaded", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"rows": p.graph.Rows(),
			"cols": p.graph.Cols(),
			"size": p.graph.Size(),
			"open": p.graph.Open(),
		})
	case http.MethodPut:
		s.replaceMaze(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeConflict(w http.ResponseWriter) {
	writeJSON(w, http.StatusConflict, map[string]interface{}{
		"success": false,
		"error":   "maze already loaded",
		"message": "Set force=true to replace it.",
	})
}

func (s *server) replaceMaze(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	if s.current() != nil && !force {
		writeConflict(w)
		return
	}

	p, err := loadPlanner(http.MaxBytesReader(w, r.Body, maxMazeBytes), s.obstacles, s.maxCells, s.searchLog)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, maze.ErrMazeTooLarge) {
			s.log.Warn().Err(err).Msg("maze rejected")
			http.Error(w, "Maze too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.log.Warn().Err(err).Msg("maze rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// another PUT may have installed a maze while this one was parsing
	s.mu.Lock()
	if s.planner != nil && !force {
		s.mu.Unlock()
		writeConflict(w)
		return
	}
	s.planner = p
	s.mu.Unlock()

	s.log.Info().Int("rows", p.graph.Rows()).Int("cols", p.graph.Cols()).Int("open", p.graph.Open()).Msg("maze replaced")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"rows":    p.graph.Rows(),
		"cols":    p.graph.Cols(),
		"open":    p.graph.Open(),
	})
}

// GET /maze/lines - Get open links as line strings for visualization
func (s *server) linesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := s.current()
	if p == nil {
		http.Error(w, "No maze loaded", http.StatusNotFound)
		return
	}

	data, err := p.graph.LinksGeoJSON()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to encode links")
		http.Error(w, "failed to encode links", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	status := "ready"
	size := 0
	if p == nil {
		status = "waiting for maze"
	} else {
		size = p.graph.Size()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     status,
		"hasMaze":    p != nil,
		"numCells":   size,
		"strategies": []search.Strategy{search.StrategyAStar, search.StrategyDijkstra},
	})
}
