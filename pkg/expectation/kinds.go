/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

// Kind identifies an expectation type. Values use the great_expectations
// method names so suites written for that library read the same here.
type Kind string

// Table-level kinds.
const (
	KindTableRowCountBetween         Kind = "expect_table_row_count_to_be_between"
	KindTableRowCountEqual           Kind = "expect_table_row_count_to_equal"
	KindTableColumnCountEqual        Kind = "expect_table_column_count_to_equal"
	KindTableColumnCountBetween      Kind = "expect_table_column_count_to_be_between"
	KindTableColumnsMatchOrderedList Kind = "expect_table_columns_to_match_ordered_list"
	KindTableColumnsMatchSet         Kind = "expect_table_columns_to_match_set"
)

// Column-level kinds.
const (
	KindColumnToExist                   Kind = "expect_column_to_exist"
	KindColumnMinBetween                Kind = "expect_column_min_to_be_between"
	KindColumnMaxBetween                Kind = "expect_column_max_to_be_between"
	KindColumnMeanBetween               Kind = "expect_column_mean_to_be_between"
	KindColumnMedianBetween             Kind = "expect_column_median_to_be_between"
	KindColumnSumBetween                Kind = "expect_column_sum_to_be_between"
	KindColumnStdevBetween              Kind = "expect_column_stdev_to_be_between"
	KindColumnUniqueValueCountBetween   Kind = "expect_column_unique_value_count_to_be_between"
	KindColumnProportionUniqueBetween   Kind = "expect_column_proportion_of_unique_values_to_be_between"
	KindColumnValuesNotNull             Kind = "expect_column_values_to_not_be_null"
	KindColumnValuesNull                Kind = "expect_column_values_to_be_null"
	KindColumnValuesBetween             Kind = "expect_column_values_to_be_between"
	KindColumnValuesMatchRegex          Kind = "expect_column_values_to_match_regex"
	KindColumnValuesNotMatchRegex       Kind = "expect_column_values_to_not_match_regex"
	KindColumnValuesInSet               Kind = "expect_column_values_to_be_in_set"
	KindColumnValuesNotInSet            Kind = "expect_column_values_to_not_be_in_set"
	KindColumnValueLengthsBetween       Kind = "expect_column_value_lengths_to_be_between"
	KindColumnValuesUnique              Kind = "expect_column_values_to_be_unique"
	KindColumnValuesIncreasing          Kind = "expect_column_values_to_be_increasing"
	KindColumnValuesDecreasing          Kind = "expect_column_values_to_be_decreasing"
	KindColumnValuesOfType              Kind = "expect_column_values_to_be_of_type"
	KindColumnResampledMeanSatisfy      Kind = "expect_column_resampled_mean_to_satisfy"
	KindColumnValuesNormallyDistributed Kind = "expect_column_values_to_be_normally_distributed"
	KindColumnValueZScoresLessThan      Kind = "expect_column_value_z_scores_to_be_less_than"
)

// Multi-column kinds.
const (
	KindColumnPairAGreaterThanB Kind = "expect_column_pair_values_a_to_be_greater_than_b"
	KindColumnPairValuesEqual   Kind = "expect_column_pair_values_to_be_equal"
	KindCompoundColumnsUnique   Kind = "expect_compound_columns_to_be_unique"
)

// Family groups kinds that share evaluation semantics.
type Family string

const (
	FamilyTable       Family = "table"
	FamilyExistence   Family = "existence"
	FamilyRange       Family = "range"
	FamilyNullity     Family = "nullity"
	FamilyPattern     Family = "pattern"
	FamilyUniqueness  Family = "uniqueness"
	FamilyOrdering    Family = "ordering"
	FamilyType        Family = "type"
	FamilyMultiColumn Family = "multi-column"
	FamilyStatistical Family = "statistical"
)

// Scope says which part of the dataset a kind applies to.
type Scope string

const (
	// ScopeTable kinds take no column.
	ScopeTable Scope = "table"
	// ScopeColumn kinds require the column argument.
	ScopeColumn Scope = "column"
	// ScopeColumnPair kinds name their columns in column_A and column_B.
	ScopeColumnPair Scope = "column-pair"
	// ScopeMultiColumn kinds name their columns in column_list.
	ScopeMultiColumn Scope = "multi-column"
)

// SupportLevel records how thoroughly a kind's parameters are validated at
// construction time.
type SupportLevel string

const (
	// SupportFull kinds have every parameter value schema-validated.
	SupportFull SupportLevel = "full"
	// SupportPartial kinds accept list parameters whose elements are not
	// type-checked. Bad elements surface as evaluation errors.
	SupportPartial SupportLevel = "partial"
)

// MissingColumnPolicy says what evaluating a kind against a dataset that lacks
// a referenced column produces.
type MissingColumnPolicy string

const (
	// MissingColumnFail produces an ordinary failing result.
	MissingColumnFail MissingColumnPolicy = "fail"
	// MissingColumnError produces an UnknownColumn evaluation error.
	MissingColumnError MissingColumnPolicy = "error"
)
