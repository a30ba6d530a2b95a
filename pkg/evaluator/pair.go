/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

// eachPair runs pred over the rows of column_A and column_B that
// ignore_row_if keeps. Both columns must have the same type.
func eachPair(in *Input, pred func(a, b dataset.Value) bool) (Result, error) {
	a, b := in.Columns[0], in.Columns[1]
	if a.Type != b.Type {
		return Result{}, requireType(in, b, a.Type)
	}

	ignore := in.Params.String(expectation.ArgIgnoreRowIf)
	c := newRowCheck(a.Len())
	for i := range a.Values {
		va, vb := a.Values[i], b.Values[i]
		switch {
		case ignore == expectation.IgnoreBothMissing && va.IsNull() && vb.IsNull():
			c.skip()
		case ignore == expectation.IgnoreEitherMissing && (va.IsNull() || vb.IsNull()):
			c.skip()
		case pred(va, vb):
			c.pass()
		default:
			c.fail(i, []dataset.Value{va, vb})
		}
	}
	return c.result(in), nil
}

// pairAGreaterThanB fails kept rows with a null on either side.
func pairAGreaterThanB(in *Input) (Result, error) {
	orEqual := in.Params.Bool(expectation.ArgOrEqual)
	return eachPair(in, func(a, b dataset.Value) bool {
		cmp, ok := a.Compare(b)
		if !ok {
			return false
		}
		return cmp > 0 || (orEqual && cmp == 0)
	})
}

// pairValuesEqual treats two nulls as equal when such rows are not skipped.
func pairValuesEqual(in *Input) (Result, error) {
	return eachPair(in, func(a, b dataset.Value) bool {
		return a.Equal(b)
	})
}
