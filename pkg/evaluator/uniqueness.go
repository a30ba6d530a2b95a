/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"strings"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
)

// valuesUnique marks every occurrence of a repeated value as unexpected,
// not only the second and later ones.
func valuesUnique(in *Input) (Result, error) {
	col := in.Columns[0]
	counts := make(map[string]int)
	for _, v := range col.Values {
		if !v.IsNull() {
			counts[v.Key()]++
		}
	}
	return eachValue(in, func(v dataset.Value) bool {
		return counts[v.Key()] == 1
	}), nil
}

// compoundColumnsUnique skips rows whose values are all null.
func compoundColumnsUnique(in *Input) (Result, error) {
	rows := in.Dataset.RowCount()
	keys := make([]string, rows)
	counts := make(map[string]int)
	allNull := make([]bool, rows)

	for i := 0; i < rows; i++ {
		parts := make([]string, len(in.Columns))
		allNull[i] = true
		for j, col := range in.Columns {
			v := col.Values[i]
			if !v.IsNull() {
				allNull[i] = false
			}
			parts[j] = v.Key()
		}
		if allNull[i] {
			continue
		}
		keys[i] = strings.Join(parts, "\x1f")
		counts[keys[i]]++
	}

	c := newRowCheck(rows)
	for i := 0; i < rows; i++ {
		switch {
		case allNull[i]:
			c.skip()
		case counts[keys[i]] == 1:
			c.pass()
		default:
			c.fail(i, rowValues(in.Columns, i))
		}
	}
	return c.result(in), nil
}

func rowValues(cols []*dataset.Column, row int) []dataset.Value {
	out := make([]dataset.Value, len(cols))
	for i, col := range cols {
		out[i] = col.Values[row]
	}
	return out
}
