/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NVIDIA/data-expectations/pkg/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidSuite = `{
  "dataset": {"columns": [{"name": "age", "type": "numeric", "values": [1]}]},
  "expectations": [
    {"expectation": "expect_column_values_to_not_be_null", "column": "age"},
    {"expectation": "expect_column_mean_to_be_between", "column": "age"},
    {"expectation": "expect_column_value_to_be_null", "column": "age"}
  ]
}`

func TestHandleValidate(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
		wantCode    string
	}{
		{"sample yaml", http.MethodPost, "application/yaml", string(suite.SampleYAML()), http.StatusOK, ""},
		{"get", http.MethodGet, "", "", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"malformed", http.MethodPost, "application/json", "{", http.StatusBadRequest, "INVALID_REQUEST"},
		{"no dataset", http.MethodPost, "application/json", `{"expectations": []}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"invalid expectations", http.MethodPost, "application/json", invalidSuite, http.StatusBadRequest, "INVALID_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/validate", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			New().HandleValidate(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantCode != "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantCode, resp["code"])
			}
		})
	}
}

func TestHandleValidate_Report(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(suite.SampleYAML()))
	req.Header.Set("Content-Type", "application/x-yaml")
	w := httptest.NewRecorder()
	New(WithVersion("test")).HandleValidate(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Kind    string `json:"kind"`
		Success bool   `json:"success"`
		Results []struct {
			Expectation struct {
				Expectation string `json:"expectation"`
				Column      string `json:"column"`
			} `json:"expectation"`
			Success bool           `json:"success"`
			Details map[string]any `json:"details"`
		} `json:"results"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

	assert.Equal(t, "ValidationReport", report.Kind)
	assert.False(t, report.Success)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "expect_column_values_to_be_increasing", report.Results[0].Expectation.Expectation)
	assert.True(t, report.Results[0].Success)
	assert.Equal(t, "column_2", report.Results[1].Expectation.Column)
	assert.False(t, report.Results[1].Success)
	assert.Equal(t, []any{2.0}, report.Results[1].Details["unexpected_index_list"])
	assert.True(t, report.Results[2].Success)
	assert.Equal(t, 2, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestHandleValidate_EntryErrorsWithoutDataset(t *testing.T) {
	body := `{"expectations": [{"expectation": "expect_column_mean_to_be_between", "column": "age"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	w := httptest.NewRecorder()
	New().HandleValidate(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
		Details struct {
			Errors []entryError `json:"errors"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid expectations", resp.Message)
	require.Len(t, resp.Details.Errors, 1)
	assert.Equal(t, 0, resp.Details.Errors[0].Index)
}

func TestHandleValidate_EntryErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(invalidSuite))
	w := httptest.NewRecorder()
	New().HandleValidate(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Details struct {
			Errors []entryError `json:"errors"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Details.Errors, 2)
	assert.Equal(t, 1, resp.Details.Errors[0].Index)
	assert.Equal(t, "ConstraintViolation", resp.Details.Errors[0].Code)
	assert.Equal(t, 2, resp.Details.Errors[1].Index)
	assert.Equal(t, "UnknownExpectationKind", resp.Details.Errors[1].Code)
}
