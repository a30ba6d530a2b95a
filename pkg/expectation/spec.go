/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Parameters that reference dataset columns.
const (
	ArgColumnA    = "column_A"
	ArgColumnB    = "column_B"
	ArgColumnList = "column_list"
)

// Spec is a validated expectation: a kind bound to a column and typed
// parameter values. A Spec is immutable; construct it with Build.
type Spec struct {
	kind    Kind
	column  string
	params  Params
	family  Family
	scope   Scope
	support SupportLevel
	missing MissingColumnPolicy
}

// Kind returns the expectation kind.
func (s *Spec) Kind() Kind { return s.kind }

// Column returns the target column, or "" for kinds without a single column.
func (s *Spec) Column() string { return s.column }

// Params returns a copy of the bound parameter values, defaults included.
func (s *Spec) Params() Params { return s.params.clone() }

// Family returns the evaluation family of the kind.
func (s *Spec) Family() Family { return s.family }

// Scope returns the scope of the kind.
func (s *Spec) Scope() Scope { return s.scope }

// Support returns the support level of the kind.
func (s *Spec) Support() SupportLevel { return s.support }

// MissingColumnPolicy returns what evaluating against a missing column produces.
func (s *Spec) MissingColumnPolicy() MissingColumnPolicy { return s.missing }

// Columns returns every column the spec references, in argument order.
func (s *Spec) Columns() []string {
	switch s.scope {
	case ScopeColumn:
		return []string{s.column}
	case ScopeColumnPair:
		return []string{s.params.String(ArgColumnA), s.params.String(ArgColumnB)}
	case ScopeMultiColumn:
		return s.params.Strings(ArgColumnList)
	default:
		return nil
	}
}

// String returns a short description such as
// "expect_column_values_to_not_be_null(age)".
func (s *Spec) String() string {
	cols := s.Columns()
	if len(cols) == 0 {
		return string(s.kind)
	}
	return fmt.Sprintf("%s(%s)", s.kind, strings.Join(cols, ", "))
}

// specDoc is the serialized form of a Spec. It matches the entries of a
// suite's expectations list so a serialized spec can be read back.
type specDoc struct {
	Expectation Kind   `json:"expectation" yaml:"expectation"`
	Column      string `json:"column,omitempty" yaml:"column,omitempty"`
	Args        Params `json:"args" yaml:"args"`
}

// MarshalJSON implements json.Marshaler.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(specDoc{Expectation: s.kind, Column: s.column, Args: s.params})
}

// MarshalYAML implements yaml.Marshaler.
func (s *Spec) MarshalYAML() (any, error) {
	return specDoc{Expectation: s.kind, Column: s.column, Args: s.params}, nil
}

// Build validates raw parameters against the kind's schema and returns an
// immutable Spec.
//
// Raw string values are trimmed; blank strings count as absent. Other raw
// values must already have the declared type. Checks run in a fixed order so
// the same input always yields the same error: the column argument, unknown
// parameter names (sorted), each declared parameter in declaration order, then
// the kind's cross-parameter constraints. Column existence is not checked here;
// evaluation reports missing columns against the actual dataset.
func (r *Registry) Build(kind Kind, column string, raw map[string]any) (*Spec, error) {
	schema, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}

	switch schema.Scope {
	case ScopeColumn:
		if column == "" {
			return nil, &MissingParameterError{Kind: kind, Name: "column"}
		}
	default:
		if column != "" {
			return nil, &ConstraintError{Kind: kind, Name: "column", Reason: fmt.Sprintf("is not accepted by %s expectations", schema.Scope)}
		}
	}

	names := schema.ParamNames()
	var unknown []string
	for name := range raw {
		if _, ok := schema.Param(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		reason := "is not a parameter of this expectation"
		if s := closest(unknown[0], names); s != "" {
			reason += fmt.Sprintf(", did you mean %q?", s)
		}
		return nil, &ConstraintError{Kind: kind, Name: unknown[0], Reason: reason}
	}

	params := make(Params, len(schema.Params))
	for _, p := range schema.Params {
		v, ok := normalize(p, raw[p.Name])
		if !ok {
			if p.Required {
				return nil, &MissingParameterError{Kind: kind, Name: p.Name}
			}
			if p.Default != nil {
				params[p.Name] = p.Default
			}
			continue
		}
		if err := p.validate(kind, v); err != nil {
			return nil, err
		}
		params[p.Name] = v
	}

	if schema.check != nil {
		if err := schema.check(kind, params); err != nil {
			return nil, err
		}
	}

	return &Spec{
		kind:    kind,
		column:  column,
		params:  params.clone(),
		family:  schema.Family,
		scope:   schema.Scope,
		support: schema.Support,
		missing: schema.MissingColumn,
	}, nil
}

// Build constructs a Spec against the default registry.
func Build(kind Kind, column string, raw map[string]any) (*Spec, error) {
	return Default().Build(kind, column, raw)
}

// closest returns the candidate within edit distance 3 of name, if any.
func closest(name string, candidates []string) string {
	best, bestDist := "", 4
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
