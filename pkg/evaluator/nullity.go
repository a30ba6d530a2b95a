/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

func valuesNotNull(in *Input) (Result, error) {
	return nullity(in, false), nil
}

func valuesNull(in *Input) (Result, error) {
	return nullity(in, true), nil
}

// nullity checks every row for (non-)nullness. Unlike other row-wise kinds
// the observed value is the number of unexpected rows, and an empty column
// passes with an observed value of 0.
func nullity(in *Input, wantNull bool) Result {
	col := in.Columns[0]
	c := newRowCheck(col.Len())
	for i, v := range col.Values {
		if v.IsNull() == wantNull {
			c.pass()
			continue
		}
		if wantNull {
			c.fail(i, v)
		} else {
			c.fail(i, nil)
		}
	}

	details := c.details(in.Params)
	delete(details, DetailMissingCount)
	if !wantNull {
		delete(details, DetailPartialUnexpectedList)
	}

	success := true
	if c.evaluated > 0 {
		frac := float64(c.evaluated-len(c.unexpected)) / float64(c.evaluated)
		success = frac >= in.Params.Float(expectation.ArgMostly)
	}
	return Result{Success: success, ObservedValue: len(c.unexpected), Details: details}
}
