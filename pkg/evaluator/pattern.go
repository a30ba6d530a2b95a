/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

func valuesBetween(in *Input) (Result, error) {
	if err := requireType(in, in.Columns[0], dataset.TypeNumeric); err != nil {
		return Result{}, err
	}
	return eachValue(in, func(v dataset.Value) bool {
		f, _ := v.Float()
		return inBounds(f, in.Params)
	}), nil
}

// matchRegex tests the text form of each value. want is false for the
// negated kind.
func matchRegex(want bool) Func {
	return func(in *Input) (Result, error) {
		re, err := regexp.Compile(in.Params.String(expectation.ArgRegex))
		if err != nil {
			return Result{}, &expectation.ConstraintError{
				Kind:   in.Spec.Kind(),
				Name:   expectation.ArgRegex,
				Reason: fmt.Sprintf("is not a valid regular expression: %v", err),
			}
		}
		return eachValue(in, func(v dataset.Value) bool {
			return re.MatchString(v.String()) == want
		}), nil
	}
}

// inSet converts value_set to the column's type before comparing. Elements
// are not type-checked at construction, so an element that does not convert
// is reported here.
func inSet(want bool) Func {
	return func(in *Input) (Result, error) {
		col := in.Columns[0]
		set := make(map[string]struct{})
		for i, raw := range in.Params.Values(expectation.ArgValueSet) {
			v, err := dataset.ParseValue(col.Type, raw)
			if err != nil {
				return Result{}, &expectation.ConstraintError{
					Kind:   in.Spec.Kind(),
					Name:   expectation.ArgValueSet,
					Reason: fmt.Sprintf("element %d is not a %s value: %v", i, col.Type, err),
				}
			}
			set[v.Key()] = struct{}{}
		}

		return eachValue(in, func(v dataset.Value) bool {
			_, ok := set[v.Key()]
			return ok == want
		}), nil
	}
}

func valueLengthsBetween(in *Input) (Result, error) {
	if err := requireType(in, in.Columns[0], dataset.TypeText, dataset.TypeCategorical); err != nil {
		return Result{}, err
	}
	return eachValue(in, func(v dataset.Value) bool {
		return inBounds(float64(utf8.RuneCountInString(v.String())), in.Params)
	}), nil
}
