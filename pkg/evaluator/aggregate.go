/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"fmt"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/montanaflynn/stats"
)

type statFunc func(stats.Float64Data) (float64, error)

// statBetween computes stat over the non-null values of a numeric column and
// checks it against the bounds. Fewer than minValues values is insufficient
// data.
func statBetween(minValues int, stat statFunc) Func {
	return func(in *Input) (Result, error) {
		col := in.Columns[0]
		if err := requireType(in, col, dataset.TypeNumeric); err != nil {
			return Result{}, err
		}

		values, _ := col.Floats()
		details := map[string]any{
			DetailElementCount: col.Len(),
			DetailMissingCount: col.NullCount(),
		}
		if len(values) < minValues {
			return insufficient(in.Spec, details), nil
		}

		v, err := stat(values)
		if err != nil {
			return Result{}, fmt.Errorf("%s: column %q: %w", in.Spec.Kind(), col.Name, err)
		}
		return Result{Success: inBounds(v, in.Params), ObservedValue: observed(v), Details: details}, nil
	}
}

func distinctCount(col *dataset.Column) int {
	seen := make(map[string]struct{})
	for _, v := range col.Values {
		if !v.IsNull() {
			seen[v.Key()] = struct{}{}
		}
	}
	return len(seen)
}

func uniqueValueCountBetween(in *Input) (Result, error) {
	col := in.Columns[0]
	details := map[string]any{
		DetailElementCount: col.Len(),
		DetailMissingCount: col.NullCount(),
	}
	if col.NonNullCount() == 0 {
		return insufficient(in.Spec, details), nil
	}
	n := distinctCount(col)
	return Result{Success: inBounds(float64(n), in.Params), ObservedValue: n, Details: details}, nil
}

func proportionUniqueBetween(in *Input) (Result, error) {
	col := in.Columns[0]
	nonNull := col.NonNullCount()
	details := map[string]any{
		DetailElementCount: col.Len(),
		DetailMissingCount: col.Len() - nonNull,
	}
	if nonNull == 0 {
		return insufficient(in.Spec, details), nil
	}
	p := float64(distinctCount(col)) / float64(nonNull)
	return Result{Success: inBounds(p, in.Params), ObservedValue: p, Details: details}, nil
}
