package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorCodeMapping(t *testing.T) {
	tests := []struct {
		code      dxerrors.ErrorCode
		status    int
		retryable bool
	}{
		{dxerrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{dxerrors.ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{dxerrors.ErrCodeNotFound, http.StatusNotFound, false},
		{dxerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed, false},
		{dxerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests, true},
		{dxerrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{dxerrors.ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{dxerrors.ErrCodeInternal, http.StatusInternalServerError, true},
		{"UnknownColumn", http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromCode(tt.code))
			assert.Equal(t, tt.retryable, retryableFromCode(tt.code))
		})
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, nil))

	got := mergeDetails(
		map[string]any{"kind": "expect_column_to_exist", "column": "age"},
		map[string]any{"column": "height"},
	)
	assert.Equal(t, map[string]any{"kind": "expect_column_to_exist", "column": "height"}, got)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest, "Invalid expectations", false,
		map[string]any{"index": 2})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeError(t, w)
	assert.Equal(t, string(dxerrors.ErrCodeInvalidRequest), resp.Code)
	assert.Equal(t, "Invalid expectations", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, 2.0, resp.Details["index"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError_GeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusNotFound, dxerrors.ErrCodeNotFound, "Route not found", false, nil)

	resp := decodeError(t, w)
	assert.NotEmpty(t, resp.RequestID)
	assert.Nil(t, resp.Details)
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dxerrors.ErrorCode
		wantMsg    string
		wantError  string
		wantDetail map[string]any
	}{
		{
			name:       "structured with cause and context",
			err:        dxerrors.WrapWithContext(dxerrors.ErrCodeUnavailable, "registry unavailable", errors.New("self-test failed"), map[string]any{"kind": "expect_column_to_exist"}),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dxerrors.ErrCodeUnavailable,
			wantMsg:    "registry unavailable",
			wantError:  "self-test failed",
			wantDetail: map[string]any{"kind": "expect_column_to_exist", "suite": "sample"},
		},
		{
			name:       "structured without cause",
			err:        dxerrors.New(dxerrors.ErrCodeInvalidRequest, "dataset cannot be nil"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dxerrors.ErrCodeInvalidRequest,
			wantMsg:    "dataset cannot be nil",
			wantError:  "[INVALID_REQUEST] dataset cannot be nil",
			wantDetail: map[string]any{"suite": "sample"},
		},
		{
			name:       "plain error falls back to internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dxerrors.ErrCodeInternal,
			wantMsg:    "Failed to validate dataset",
			wantError:  "boom",
			wantDetail: map[string]any{"suite": "sample"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErrorFromErr(w, httptest.NewRequest(http.MethodPost, "/v1/validate", nil), tt.err,
				"Failed to validate dataset", map[string]any{"suite": "sample"})

			require.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Equal(t, tt.wantError, resp.Details["error"])
			for k, v := range tt.wantDetail {
				assert.Equal(t, v, resp.Details[k], k)
			}
		})
	}
}
