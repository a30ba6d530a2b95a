package serializer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindView struct {
	Kind   string   `json:"kind" yaml:"kind"`
	Params []string `json:"params" yaml:"params"`
}

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   any
		want   string
	}{
		{
			name:   "struct",
			status: http.StatusOK,
			data:   kindView{Kind: "expect_column_mean_to_be_between", Params: []string{"min_value", "max_value"}},
			want:   `{"kind":"expect_column_mean_to_be_between","params":["min_value","max_value"]}`,
		},
		{
			name:   "error status",
			status: http.StatusBadRequest,
			data:   map[string]any{"code": "INVALID_REQUEST"},
			want:   `{"code":"INVALID_REQUEST"}`,
		},
		{
			name:   "nil",
			status: http.StatusOK,
			data:   nil,
			want:   "null",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondJSON(w, tt.status, tt.data)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, contentTypeJSON, w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]any{"observed": make(chan int)})

	// nothing was written before the failure
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "observed")
}

func TestRespond_Negotiation(t *testing.T) {
	tests := []struct {
		name        string
		accept      string
		contentType string
		body        string
	}{
		{"default", "", contentTypeJSON, `"kind":"expect_column_to_exist"`},
		{"json", "application/json", contentTypeJSON, `"kind":"expect_column_to_exist"`},
		{"yaml", "application/yaml", contentTypeYAML, "kind: expect_column_to_exist"},
		{"x-yaml", "application/x-yaml", contentTypeYAML, "kind: expect_column_to_exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/v1/kinds/expect_column_to_exist", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			Respond(w, r, http.StatusOK, kindView{Kind: "expect_column_to_exist"})

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"", FormatJSON},
		{"application/json", FormatJSON},
		{"application/yaml", FormatYAML},
		{"application/x-yaml; charset=utf-8", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/v1/validate", nil)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			assert.Equal(t, tt.want, FormatFromContentType(r))
		})
	}
}
