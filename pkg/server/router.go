package server

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// systemRoutes are served without API middleware.
var systemRoutes = []string{"/health", "/ready", "/metrics"}

// setupRoutes builds the mux: system probes and metrics, every registered API
// route behind middleware, and the index on "/".
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	for pattern, h := range s.handlers {
		mux.HandleFunc(pattern, s.withMiddleware(pattern, h))
	}

	mux.HandleFunc("/", s.handleIndex)
	return mux
}

// routes lists API routes sorted, followed by the system routes.
func (s *Server) routes() []string {
	out := make([]string, 0, len(s.handlers)+len(systemRoutes))
	for pattern := range s.handlers {
		out = append(out, pattern)
	}
	sort.Strings(out)
	for _, p := range systemRoutes {
		out = append(out, http.MethodGet+" "+p)
	}
	return out
}

// handleIndex describes the service on "/" and answers 404 for any path no
// other route matched.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		slog.Debug("route not found", "method", r.Method, "path", r.URL.Path)
		WriteError(w, r, http.StatusNotFound, dxerrors.ErrCodeNotFound, "Route not found", false,
			map[string]any{"path": r.URL.Path})
		return
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, IndexResponse{
		Name:      s.name,
		Version:   s.version,
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
