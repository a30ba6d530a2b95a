/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/NVIDIA/data-expectations/pkg/header"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
)

//go:embed data/sample.yaml
var sampleYAML []byte

// Entry is one expectation of a suite as written by its author. Args are raw
// values; they are validated when the suite is turned into specs.
type Entry struct {
	Expectation expectation.Kind `json:"expectation" yaml:"expectation"`
	Column      string           `json:"column,omitempty" yaml:"column,omitempty"`
	Args        map[string]any   `json:"args,omitempty" yaml:"args,omitempty"`
}

// Suite is an ordered list of expectations together with the dataset they
// are validated against.
type Suite struct {
	header.Header `json:",inline" yaml:",inline"`

	// Dataset is the materialized table under validation.
	Dataset *dataset.Dataset `json:"dataset,omitempty" yaml:"dataset,omitempty"`

	// Expectations in report order.
	Expectations []Entry `json:"expectations" yaml:"expectations"`
}

// EntryError is a construction error of one suite entry.
type EntryError struct {
	Index int
	Kind  expectation.Kind
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("expectations[%d] (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Load reads a suite from path. The format follows the file extension; "-"
// reads JSON from stdin.
func Load(path string) (*Suite, error) {
	s, err := serializer.FromFile[Suite](path)
	if err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, fmt.Errorf("invalid suite %q: %w", path, err)
	}
	slog.Debug("loaded suite", "path", path, "expectations", len(s.Expectations))
	return s, nil
}

// Decode reads a single suite document from r.
func Decode(r io.Reader, format serializer.Format) (*Suite, error) {
	reader, err := serializer.NewReader(format, r)
	if err != nil {
		return nil, err
	}
	var s Suite
	if err := reader.Deserialize(&s); err != nil {
		return nil, err
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Parse decodes a suite document held in memory.
func Parse(data []byte, format serializer.Format) (*Suite, error) {
	return Decode(bytes.NewReader(data), format)
}

// Sample returns a fresh copy of the built-in example suite.
func Sample() (*Suite, error) {
	return Parse(sampleYAML, serializer.FormatYAML)
}

// SampleYAML returns the document Sample is parsed from.
func SampleYAML() []byte {
	return bytes.Clone(sampleYAML)
}

func (s *Suite) check() error {
	return s.Expect(header.KindExpectationSuite)
}

// Specs builds every entry against reg, or against the default registry when
// reg is nil. All failing entries are reported, each as an *EntryError, joined
// in entry order.
func (s *Suite) Specs(reg *expectation.Registry) ([]*expectation.Spec, error) {
	if reg == nil {
		reg = expectation.Default()
	}

	specs := make([]*expectation.Spec, 0, len(s.Expectations))
	var errs []error
	for i, e := range s.Expectations {
		spec, err := reg.Build(e.Expectation, e.Column, e.Args)
		if err != nil {
			errs = append(errs, &EntryError{Index: i, Kind: e.Expectation, Err: err})
			continue
		}
		specs = append(specs, spec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}

// EntryErrors returns the *EntryError values joined into err by Specs.
func EntryErrors(err error) []*EntryError {
	var out []*EntryError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var ee *EntryError
			if errors.As(e, &ee) {
				out = append(out, ee)
			}
		}
		return out
	}
	var ee *EntryError
	if errors.As(err, &ee) {
		out = append(out, ee)
	}
	return out
}
