/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"log/slog"
	"net/http"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/NVIDIA/data-expectations/pkg/server"
	"github.com/NVIDIA/data-expectations/pkg/suite"
)

// HandleValidate validates the dataset of a suite document posted as JSON or
// YAML and responds with the report. Construction errors of the suite's
// expectations are answered with 400 and one entry per failing expectation.
//
//	POST /v1/validate
func (v *Validator) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	s, err := suite.Decode(r.Body, serializer.FormatFromContentType(r))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"Invalid suite document", false, map[string]any{
				"error": err.Error(),
			})
		return
	}
	specs, err := s.Specs(v.Registry)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"Invalid expectations", false, map[string]any{
				"errors": entryErrors(err),
			})
		return
	}
	if s.Dataset == nil {
		server.WriteError(w, r, http.StatusBadRequest, dxerrors.ErrCodeInvalidRequest,
			"Suite has no dataset", false, nil)
		return
	}

	report, err := v.Validate(r.Context(), s.Dataset, specs)
	if err != nil {
		slog.Debug("validation aborted", "error", err)
		server.WriteErrorFromErr(w, r, err, "Failed to validate dataset", nil)
		return
	}

	serializer.Respond(w, r, http.StatusOK, report)
}

type entryError struct {
	Index       int    `json:"index"`
	Expectation string `json:"expectation"`
	Code        string `json:"code"`
	Message     string `json:"message"`
}

func entryErrors(err error) []entryError {
	entries := suite.EntryErrors(err)
	out := make([]entryError, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryError{
			Index:       e.Index,
			Expectation: string(e.Kind),
			Code:        errorCode(e.Err),
			Message:     e.Err.Error(),
		})
	}
	return out
}
