/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Registry is a static catalog of expectation kinds. It is populated once by
// NewRegistry and only read afterwards, so it is safe for concurrent use.
type Registry struct {
	schemas map[Kind]Schema
	order   []Kind
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the built-in registry. It is built on first use and panics
// if the built-in catalog fails its self-test.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(catalog()...)
		if err != nil {
			panic(fmt.Sprintf("built-in expectation catalog is inconsistent: %v", err))
		}
		slog.Debug("expectation registry initialized", "kinds", len(r.order))
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry builds a registry from schemas, preserving their order. It fails
// on duplicate kinds or when any schema fails SelfTest.
func NewRegistry(schemas ...Schema) (*Registry, error) {
	r := &Registry{
		schemas: make(map[Kind]Schema, len(schemas)),
		order:   make([]Kind, 0, len(schemas)),
	}
	for _, s := range schemas {
		if s.Kind == "" {
			return nil, errors.New("schema with empty kind")
		}
		if _, dup := r.schemas[s.Kind]; dup {
			return nil, fmt.Errorf("duplicate expectation kind %q", s.Kind)
		}
		r.schemas[s.Kind] = s
		r.order = append(r.order, s.Kind)
	}
	if err := r.SelfTest(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns the schema of kind.
func (r *Registry) Lookup(kind Kind) (Schema, error) {
	s, ok := r.schemas[kind]
	if !ok {
		return Schema{}, &UnknownKindError{Kind: kind, Suggestion: r.suggest(kind)}
	}
	return s, nil
}

// ListKinds returns every registered kind in declaration order.
func (r *Registry) ListKinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Schemas returns every registered schema in declaration order.
func (r *Registry) Schemas() []Schema {
	out := make([]Schema, len(r.order))
	for i, k := range r.order {
		out[i] = r.schemas[k]
	}
	return out
}

// SelfTest checks that each schema is internally consistent: parameter names
// are unique, required parameters carry no default, every default satisfies
// its own declaration, bounds are ordered, and the parameters a scope relies
// on are declared. All problems are returned joined.
func (r *Registry) SelfTest() error {
	var errs []error
	for _, k := range r.order {
		if err := selfTest(r.schemas[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func selfTest(s Schema) error {
	var errs []error
	seen := make(map[string]bool, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" || p.Name == "column" {
			errs = append(errs, fmt.Errorf("%s: invalid parameter name %q", s.Kind, p.Name))
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate parameter %q", s.Kind, p.Name))
		}
		seen[p.Name] = true

		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			errs = append(errs, fmt.Errorf("%s: parameter %q has min %v > max %v", s.Kind, p.Name, *p.Min, *p.Max))
		}
		if p.Type == ParamEnum && len(p.Enum) == 0 {
			errs = append(errs, fmt.Errorf("%s: enum parameter %q declares no values", s.Kind, p.Name))
		}
		if p.Default == nil {
			continue
		}
		if p.Required {
			errs = append(errs, fmt.Errorf("%s: required parameter %q has a default", s.Kind, p.Name))
		}
		if err := p.validate(s.Kind, p.Default); err != nil {
			errs = append(errs, fmt.Errorf("default of %q: %w", p.Name, err))
		}
	}

	requires := map[Scope][]string{
		ScopeColumnPair:  {ArgColumnA, ArgColumnB},
		ScopeMultiColumn: {ArgColumnList},
	}
	for _, name := range requires[s.Scope] {
		p, ok := s.Param(name)
		if !ok || !p.Required {
			errs = append(errs, fmt.Errorf("%s: %s scope requires parameter %q", s.Kind, s.Scope, name))
		}
	}

	switch s.MissingColumn {
	case MissingColumnFail, MissingColumnError:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown missing column policy %q", s.Kind, s.MissingColumn))
	}
	return errors.Join(errs...)
}

func (r *Registry) suggest(kind Kind) Kind {
	var best Kind
	bestDist := len(kind)/3 + 1
	for _, k := range r.order {
		if d := levenshtein.ComputeDistance(string(kind), string(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
