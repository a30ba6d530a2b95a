/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"math"
	"slices"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

// rowCheck collects per-row outcomes of kinds that test rows one by one.
// Rows counted as missing are skipped; every other row is evaluated and
// either meets the expectation or is recorded as unexpected.
type rowCheck struct {
	elements   int
	missing    int
	evaluated  int
	unexpected []int
	values     []any
}

func newRowCheck(elements int) *rowCheck {
	return &rowCheck{elements: elements}
}

func (c *rowCheck) skip() { c.missing++ }

func (c *rowCheck) pass() { c.evaluated++ }

func (c *rowCheck) fail(row int, v any) {
	c.evaluated++
	c.unexpected = append(c.unexpected, row)
	c.values = append(c.values, v)
}

func (c *rowCheck) details(p expectation.Params) map[string]any {
	limit := p.Int(expectation.ArgMaxUnexpected)
	return map[string]any{
		DetailElementCount:          c.elements,
		DetailMissingCount:          c.missing,
		DetailUnexpectedCount:       len(c.unexpected),
		DetailUnexpectedPercent:     percent(len(c.unexpected), c.evaluated),
		DetailUnexpectedIndexList:   head(c.unexpected, limit),
		DetailPartialUnexpectedList: head(c.values, limit),
	}
}

// result passes when the fraction of evaluated rows meeting the expectation
// is at least mostly. The observed value is that fraction. No evaluated rows
// means insufficient data.
func (c *rowCheck) result(in *Input) Result {
	details := c.details(in.Params)
	if c.evaluated == 0 {
		return insufficient(in.Spec, details)
	}
	frac := float64(c.evaluated-len(c.unexpected)) / float64(c.evaluated)
	return Result{
		Success:       frac >= in.Params.Float(expectation.ArgMostly),
		ObservedValue: frac,
		Details:       details,
	}
}

// eachValue runs pred over the non-null values of the first column.
func eachValue(in *Input, pred func(v dataset.Value) bool) Result {
	col := in.Columns[0]
	c := newRowCheck(col.Len())
	for i, v := range col.Values {
		switch {
		case v.IsNull():
			c.skip()
		case pred(v):
			c.pass()
		default:
			c.fail(i, v)
		}
	}
	return c.result(in)
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}

// head returns at most n leading elements, never nil.
func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// inBounds reports whether v satisfies the min_value and max_value
// parameters. An unset bound never fails; NaN never passes.
func inBounds(v float64, p expectation.Params) bool {
	if math.IsNaN(v) {
		return false
	}
	if lo := p.OptFloat(expectation.ArgMinValue); lo != nil {
		if v < *lo || (p.Bool(expectation.ArgStrictMin) && v == *lo) {
			return false
		}
	}
	if hi := p.OptFloat(expectation.ArgMaxValue); hi != nil {
		if v > *hi || (p.Bool(expectation.ArgStrictMax) && v == *hi) {
			return false
		}
	}
	return true
}

// requireType returns a *ColumnTypeError unless col has one of the types.
func requireType(in *Input, col *dataset.Column, types ...dataset.Type) error {
	if slices.Contains(types, col.Type) {
		return nil
	}
	return &ColumnTypeError{Kind: in.Spec.Kind(), Column: col.Name, Type: col.Type, Want: types}
}
