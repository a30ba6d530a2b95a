/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/data-expectations/pkg/evaluator"
	"github.com/NVIDIA/data-expectations/pkg/header"
)

// MetadataRunID is the report metadata key holding the unique run identifier.
const MetadataRunID = "run-id"

// Report is the outcome of validating a dataset against an ordered list of
// expectations.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Success is true when every result succeeded. An empty run succeeds.
	Success bool `json:"success" yaml:"success"`

	// Results in the order the specs were given.
	Results []evaluator.Result `json:"results" yaml:"results"`

	// Summary contains aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary aggregates the results of a run.
type Summary struct {
	// Total is the number of evaluated specs.
	Total int `json:"total" yaml:"total"`

	// Passed is the number of successful results.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the number of unsuccessful results, errored ones included.
	Failed int `json:"failed" yaml:"failed"`

	// Errored is the number of results that carry an exception.
	Errored int `json:"errored" yaml:"errored"`

	// SuccessPercent is Passed as a percentage of Total, 100 for an empty run.
	SuccessPercent float64 `json:"successPercent" yaml:"successPercent"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewReport returns an empty report with results allocated for n specs.
func NewReport(n int) *Report {
	return &Report{
		Results: make([]evaluator.Result, n),
	}
}

// summarize derives Success and Summary from Results.
func (r *Report) summarize(d time.Duration) {
	s := Summary{Total: len(r.Results), Duration: d}
	for _, res := range r.Results {
		switch {
		case res.Success:
			s.Passed++
		default:
			s.Failed++
		}
		if res.Errored() {
			s.Errored++
		}
	}
	s.SuccessPercent = 100
	if s.Total > 0 {
		s.SuccessPercent = 100 * float64(s.Passed) / float64(s.Total)
	}
	r.Summary = s
	r.Success = s.Failed == 0
}

// Failed returns the unsuccessful results in report order.
func (r *Report) Failed() []evaluator.Result {
	var out []evaluator.Result
	for _, res := range r.Results {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}

// TableHeader implements serializer.Tabular.
func (r *Report) TableHeader() []string {
	return []string{"#", "EXPECTATION", "SUCCESS", "OBSERVED", "DETAIL"}
}

// TableRows implements serializer.Tabular.
func (r *Report) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for i, res := range r.Results {
		name := ""
		if res.Expectation != nil {
			name = res.Expectation.String()
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			name,
			strconv.FormatBool(res.Success),
			formatObserved(res.ObservedValue),
			detail(res),
		})
	}
	return rows
}

func formatObserved(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', 6, 64)
	default:
		return fmt.Sprint(t)
	}
}

// detail summarizes the most useful diagnostic of a result in one cell.
func detail(res evaluator.Result) string {
	switch {
	case res.Exception != nil:
		return fmt.Sprintf("%s: %s", res.Exception.Code, res.Exception.Message)
	case res.Reason() != "":
		return res.Reason()
	}
	if n, ok := res.Details[evaluator.DetailUnexpectedCount].(int); ok && n > 0 {
		return fmt.Sprintf("%d unexpected, rows %v", n, res.Details[evaluator.DetailUnexpectedIndexList])
	}
	if missing, ok := res.Details[evaluator.DetailMissingColumns].([]string); ok && len(missing) > 0 {
		return "missing " + strings.Join(missing, ",")
	}
	return ""
}
