/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

// monotonic compares each non-null value with the preceding non-null value.
// direction is 1 for increasing and -1 for decreasing. The first value is
// never unexpected; a value that cannot be compared with its predecessor is.
func monotonic(direction int) Func {
	return func(in *Input) (Result, error) {
		strictly := in.Params.Bool(expectation.ArgStrictly)

		var prev dataset.Value
		return eachValue(in, func(v dataset.Value) bool {
			defer func() { prev = v }()
			if prev.IsNull() {
				return true
			}
			cmp, ok := v.Compare(prev)
			if !ok {
				return false
			}
			cmp *= direction
			return cmp > 0 || (!strictly && cmp == 0)
		}), nil
	}
}
