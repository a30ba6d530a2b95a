/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package evaluator applies a single expectation spec to a dataset.
//
// # Overview
//
// Evaluation is a pure function of the dataset and the spec: it never
// modifies the dataset, keeps no state between calls and returns equal
// results for equal inputs. Statistical kinds draw from a generator seeded by
// the spec's seed parameter.
//
// # Usage
//
//	spec, err := expectation.Build(expectation.KindColumnMeanBetween, "age",
//	    map[string]any{"min_value": 20, "max_value": 50})
//	if err != nil {
//	    return err
//	}
//	res, err := evaluator.Evaluate(ds, spec)
//
// # Outcomes and errors
//
// An unmet expectation is a Result with Success false, never an error.
// Row-wise kinds report offending rows in Details under
// "unexpected_index_list", capped by the max_unexpected_indices parameter.
// Kinds computed over non-null values fail with reason "insufficient data"
// when there are none; nullity kinds pass on an empty column.
//
// Errors are returned when the spec cannot be evaluated at all:
//   - *UnknownColumnError for a missing column, except for kinds such as
//     expect_column_to_exist where absence is the thing being tested
//   - *ColumnTypeError when the column's type does not support the kind
//   - *DegenerateDataError, for example z-scores of a constant column
//
// Each error has a stable Code used by the validator when it records the
// error on the result.
package evaluator
