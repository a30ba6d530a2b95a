package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(handlers map[string]http.HandlerFunc, cfg *Config) *Server {
	return New(
		WithName("dx-test"),
		WithVersion("v0.0.0-test"),
		WithConfig(cfg),
		WithHandler(handlers),
	)
}

func serve(h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestProbes(t *testing.T) {
	s := newTestServer(nil, nil)
	h := s.Handler()

	decode := func(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
		t.Helper()
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	w := serve(h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, statusHealthy, decode(t, w).Status)

	w = serve(h, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, statusNotReady, resp.Status)
	assert.NotEmpty(t, resp.Reason)

	s.SetReady(true)
	w = serve(h, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, statusReady, decode(t, w).Status)

	w = serve(h, http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
}

func TestIndex(t *testing.T) {
	noContent := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }
	h := newTestServer(map[string]http.HandlerFunc{
		"/v1/validate":          noContent,
		"GET /v1/kinds/{kind}": noContent,
	}, nil).Handler()

	w := serve(h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp IndexResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dx-test", resp.Name)
	assert.Equal(t, "v0.0.0-test", resp.Version)
	assert.False(t, resp.Ready)
	assert.Equal(t, []string{
		"/v1/validate",
		"GET /v1/kinds/{kind}",
		"GET /health",
		"GET /ready",
		"GET /metrics",
	}, resp.Routes)

	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "/v1/kinds/expect_column_to_exist", nil).Code)

	w = serve(h, http.MethodGet, "/v2/validate", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	errResp := decodeError(t, w)
	assert.Equal(t, string(dxerrors.ErrCodeNotFound), errResp.Code)
	assert.Equal(t, "/v2/validate", errResp.Details["path"])
}

func TestMiddleware_RequestIDAndVersion(t *testing.T) {
	var seenID, seenVersion string
	h := newTestServer(map[string]http.HandlerFunc{
		"/v1/validate": func(w http.ResponseWriter, r *http.Request) {
			seenID = RequestID(r.Context())
			seenVersion = APIVersion(r.Context())
			w.WriteHeader(http.StatusOK)
		},
	}, nil).Handler()

	const id = "0b6c1f56-6c51-4b0e-8d3c-3a0f3f0f2a11"
	tests := []struct {
		name   string
		header map[string]string
		check  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "generated",
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.NotEmpty(t, seenID)
				assert.Equal(t, seenID, w.Header().Get(HeaderRequestID))
				assert.Equal(t, DefaultAPIVersion, seenVersion)
			},
		},
		{
			name:   "propagated",
			header: map[string]string{HeaderRequestID: id},
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, id, seenID)
				assert.Equal(t, id, w.Header().Get(HeaderRequestID))
			},
		},
		{
			name:   "invalid id replaced",
			header: map[string]string{HeaderRequestID: "not-a-uuid"},
			check: func(t *testing.T, _ *httptest.ResponseRecorder) {
				assert.NotEqual(t, "not-a-uuid", seenID)
				assert.NotEmpty(t, seenID)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenID, seenVersion = "", ""
			w := serve(h, http.MethodPost, "/v1/validate", tt.header)
			require.Equal(t, http.StatusOK, w.Code)
			tt.check(t, w)
		})
	}
}

func TestMiddleware_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0.0001
	cfg.RateLimitBurst = 1

	h := newTestServer(map[string]http.HandlerFunc{
		"/v1/kinds": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
	}, cfg).Handler()

	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/v1/kinds", nil).Code)

	w := serve(h, http.MethodGet, "/v1/kinds", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	resp := decodeError(t, w)
	assert.Equal(t, string(dxerrors.ErrCodeRateLimitExceeded), resp.Code)
	assert.True(t, resp.Retryable)

	// probes are not rate limited
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health", nil).Code)
}

func TestMiddleware_RecoversPanic(t *testing.T) {
	h := newTestServer(map[string]http.HandlerFunc{
		"/v1/validate": func(http.ResponseWriter, *http.Request) { panic("evaluation exploded") },
	}, nil).Handler()

	w := serve(h, http.MethodPost, "/v1/validate", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(dxerrors.ErrCodeInternal), decodeError(t, w).Code)
}

func TestDefaultConfig_Env(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantPort  int
		wantRate  float64
		wantBurst int
	}{
		{
			name:      "overrides",
			env:       map[string]string{EnvPort: "9090", EnvRateLimit: "5"},
			wantPort:  9090,
			wantRate:  5,
			wantBurst: 10,
		},
		{
			name:      "invalid values ignored",
			env:       map[string]string{EnvPort: "abc", EnvRateLimit: "-1"},
			wantPort:  8080,
			wantRate:  100,
			wantBurst: 200,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantRate, float64(cfg.RateLimit))
			assert.Equal(t, tt.wantBurst, cfg.RateLimitBurst)
		})
	}
}
