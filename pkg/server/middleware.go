package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"

	// HeaderRequestID is echoed back on every API response.
	HeaderRequestID = "X-Request-Id"
)

// RequestID returns the id assigned to the request by the middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersion returns the API version negotiated for the request.
func APIVersion(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyAPIVersion).(string)
	if v == "" {
		return DefaultAPIVersion
	}
	return v
}

// statusRecorder captures the response status for logs and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// withMiddleware wraps an API handler with request id, version negotiation,
// rate limiting, body size limits, panic recovery, logging and metrics.
func (s *Server) withMiddleware(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		version := negotiateAPIVersion(r)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, contextKeyAPIVersion, version)
		r = r.WithContext(ctx)

		w.Header().Set(HeaderRequestID, requestID)
		w.Header().Set(HeaderAPIVersion, version)
		rec := &statusRecorder{ResponseWriter: w}

		defer func() {
			if p := recover(); p != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", fmt.Sprint(p), "requestId", requestID)
				if rec.status == 0 {
					WriteError(rec, r, http.StatusInternalServerError, dxerrors.ErrCodeInternal,
						"Internal server error", true, nil)
				}
			}

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			httpRequestsTotal.WithLabelValues(pattern, r.Method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
			slog.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
				"requestId", requestID,
			)
		}()

		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			WriteError(rec, r, http.StatusTooManyRequests, dxerrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.limiter.Limit()),
					"burst": s.limiter.Burst(),
				})
			return
		}

		if r.Body != nil && s.config.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(rec, r.Body, s.config.MaxBodyBytes)
		}

		next(rec, r)
	}
}
