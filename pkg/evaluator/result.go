/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"math"

	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

// Keys of Result.Details.
const (
	DetailElementCount          = "element_count"
	DetailMissingCount          = "missing_count"
	DetailUnexpectedCount       = "unexpected_count"
	DetailUnexpectedPercent     = "unexpected_percent"
	DetailUnexpectedIndexList   = "unexpected_index_list"
	DetailPartialUnexpectedList = "partial_unexpected_list"
	DetailMissingColumns        = "missing_columns"
	DetailReason                = "reason"
)

// ReasonInsufficientData is the Details reason of results computed over a
// column without enough non-null values.
const ReasonInsufficientData = "insufficient data"

// Result is the outcome of evaluating one spec against one dataset.
type Result struct {
	// Expectation is the evaluated spec.
	Expectation *expectation.Spec `json:"expectation" yaml:"expectation"`

	// Success reports whether the dataset meets the expectation.
	Success bool `json:"success" yaml:"success"`

	// ObservedValue is the computed statistic or count the decision was based on.
	ObservedValue any `json:"observedValue" yaml:"observedValue"`

	// Details carries diagnostics such as offending row indices.
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Exception is set when the evaluation failed with an error instead of
	// producing an outcome. Success is always false then.
	Exception *Exception `json:"exception,omitempty" yaml:"exception,omitempty"`
}

// Exception captures an error contained at the runner boundary.
type Exception struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Errored reports whether the result carries an exception.
func (r Result) Errored() bool { return r.Exception != nil }

// Reason returns the Details reason, if any.
func (r Result) Reason() string {
	s, _ := r.Details[DetailReason].(string)
	return s
}

func insufficient(spec *expectation.Spec, details map[string]any) Result {
	if details == nil {
		details = make(map[string]any)
	}
	details[DetailReason] = ReasonInsufficientData
	return Result{Expectation: spec, Success: false, Details: details}
}

// observed returns f, or its text form when f is NaN or infinite so results
// stay JSON encodable.
func observed(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}
