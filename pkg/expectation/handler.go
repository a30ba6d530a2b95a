/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"errors"
	"net/http"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/NVIDIA/data-expectations/pkg/server"
)

// SchemaView is the API representation of a Schema.
type SchemaView struct {
	Schema      `json:",inline" yaml:",inline"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// KindList is the response of GET /v1/kinds.
type KindList struct {
	Kinds []SchemaView `json:"kinds" yaml:"kinds"`
}

// HandleKinds serves the registry to dynamic clients that render one input
// per declared parameter.
//
//	GET /v1/kinds          every schema in declaration order
//	GET /v1/kinds/{kind}   a single schema
func (r *Registry) HandleKinds(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, req, http.StatusMethodNotAllowed, dxerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": req.Method,
			})
		return
	}

	if kind := req.PathValue("kind"); kind != "" {
		s, err := r.Lookup(Kind(kind))
		if err != nil {
			details := map[string]any{"kind": kind}
			var uk *UnknownKindError
			if errors.As(err, &uk) && uk.Suggestion != "" {
				details["suggestion"] = uk.Suggestion
			}
			server.WriteError(w, req, http.StatusNotFound, dxerrors.ErrCodeNotFound,
				err.Error(), false, details)
			return
		}
		serializer.Respond(w, req, http.StatusOK, SchemaView{Schema: s, DisplayName: s.DisplayName()})
		return
	}

	schemas := r.Schemas()
	resp := KindList{Kinds: make([]SchemaView, len(schemas))}
	for i, s := range schemas {
		resp.Kinds[i] = SchemaView{Schema: s, DisplayName: s.DisplayName()}
	}
	serializer.Respond(w, req, http.StatusOK, resp)
}
