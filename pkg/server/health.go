package server

import (
	"net/http"
	"time"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
)

const (
	statusHealthy  = "healthy"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// handleHealth serves GET /health. Liveness does not depend on readiness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, func() (string, string) { return statusHealthy, "" })
}

// handleReady serves GET /ready with 503 until Run has started listening.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.probe(w, r, func() (string, string) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if !s.ready {
			return statusNotReady, "service is initializing"
		}
		return statusReady, ""
	})
}

func (s *Server) probe(w http.ResponseWriter, r *http.Request, check func() (status, reason string)) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	status, reason := check()
	code := http.StatusOK
	if reason != "" {
		code = http.StatusServiceUnavailable
	}
	serializer.RespondJSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
}
