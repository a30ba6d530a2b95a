/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"slices"

	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

func tableRowCountBetween(in *Input) (Result, error) {
	n := in.Dataset.RowCount()
	return Result{Success: inBounds(float64(n), in.Params), ObservedValue: n}, nil
}

func tableRowCountEqual(in *Input) (Result, error) {
	n := in.Dataset.RowCount()
	return Result{Success: n == in.Params.Int(expectation.ArgValue), ObservedValue: n}, nil
}

func tableColumnCountEqual(in *Input) (Result, error) {
	n := in.Dataset.ColumnCount()
	return Result{Success: n == in.Params.Int(expectation.ArgValue), ObservedValue: n}, nil
}

func tableColumnCountBetween(in *Input) (Result, error) {
	n := in.Dataset.ColumnCount()
	return Result{Success: inBounds(float64(n), in.Params), ObservedValue: n}, nil
}

// columnMismatch is one position where the dataset's columns differ from the
// expected ordered list.
type columnMismatch struct {
	Index    int    `json:"index" yaml:"index"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Found    string `json:"found,omitempty" yaml:"found,omitempty"`
}

func tableColumnsMatchOrderedList(in *Input) (Result, error) {
	names := in.Dataset.ColumnNames()
	want := in.Params.Strings(expectation.ArgColumnList)

	mismatched := []columnMismatch{}
	for i := 0; i < max(len(names), len(want)); i++ {
		var m columnMismatch
		if i < len(want) {
			m.Expected = want[i]
		}
		if i < len(names) {
			m.Found = names[i]
		}
		if m.Expected != m.Found {
			m.Index = i
			mismatched = append(mismatched, m)
		}
	}

	return Result{
		Success:       len(mismatched) == 0,
		ObservedValue: names,
		Details:       map[string]any{"mismatched": mismatched},
	}, nil
}

func tableColumnsMatchSet(in *Input) (Result, error) {
	names := in.Dataset.ColumnNames()
	want := in.Params.Strings(expectation.ArgColumnSet)

	missing := []string{}
	for _, w := range want {
		if !slices.Contains(names, w) {
			missing = append(missing, w)
		}
	}
	unexpected := []string{}
	for _, n := range names {
		if !slices.Contains(want, n) {
			unexpected = append(unexpected, n)
		}
	}

	success := len(missing) == 0
	if in.Params.Bool(expectation.ArgExactMatch) && len(unexpected) > 0 {
		success = false
	}

	return Result{
		Success:       success,
		ObservedValue: names,
		Details: map[string]any{
			DetailMissingColumns: missing,
			"unexpected_columns": unexpected,
		},
	}, nil
}

func columnToExist(in *Input) (Result, error) {
	column := in.Spec.Column()
	idx := slices.Index(in.Dataset.ColumnNames(), column)
	res := Result{
		Success:       idx >= 0,
		ObservedValue: idx >= 0,
		Details:       map[string]any{},
	}
	if idx < 0 {
		res.Details[DetailMissingColumns] = []string{column}
	}
	if in.Params.Has(expectation.ArgColumnIndex) {
		res.Details["column_index"] = idx
		if idx != in.Params.Int(expectation.ArgColumnIndex) {
			res.Success = false
		}
	}
	return res, nil
}

func valuesOfType(in *Input) (Result, error) {
	col := in.Columns[0]
	want := in.Params.String(expectation.ArgType)
	return Result{Success: string(col.Type) == want, ObservedValue: string(col.Type)}, nil
}
