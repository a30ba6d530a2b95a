/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"fmt"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"k8s.io/utils/ptr"
)

// Parameter names shared across kinds.
const (
	ArgMinValue      = "min_value"
	ArgMaxValue      = "max_value"
	ArgStrictMin     = "strict_min"
	ArgStrictMax     = "strict_max"
	ArgMostly        = "mostly"
	ArgMaxUnexpected = "max_unexpected_indices"
	ArgRegex         = "regex"
	ArgValueSet      = "value_set"
	ArgColumnSet     = "column_set"
	ArgExactMatch    = "exact_match"
	ArgColumnIndex   = "column_index"
	ArgValue         = "value"
	ArgType          = "type_"
	ArgStrictly      = "strictly"
	ArgOrEqual       = "or_equal"
	ArgIgnoreRowIf   = "ignore_row_if"
	ArgOperator      = "operator"
	ArgThreshold     = "threshold"
	ArgResamples     = "resamples"
	ArgSeed          = "seed"
	ArgConfidence    = "confidence"
	ArgAlpha         = "alpha"
	ArgDoubleSided   = "double_sided"
)

// Defaults of the shared integer parameters.
const (
	DefaultMaxUnexpected = 20
	DefaultResamples     = 1000
	DefaultSeed          = 42
)

// Comparison operators accepted by the operator parameter.
var Operators = []string{">", ">=", "==", "!=", "<", "<="}

// Values of the ignore_row_if parameter of column-pair kinds.
const (
	IgnoreBothMissing   = "both_values_are_missing"
	IgnoreEitherMissing = "either_value_is_missing"
	IgnoreNeither       = "neither"
)

func minValueParam(desc string, lower *float64) Param {
	return Param{Name: ArgMinValue, Type: ParamNumber, Min: lower, Description: desc}
}

func maxValueParam(desc string, lower *float64) Param {
	return Param{Name: ArgMaxValue, Type: ParamNumber, Min: lower, Description: desc}
}

func boundParams(subject string, lower *float64) []Param {
	return []Param{
		minValueParam("Lower bound of the "+subject+"; unset means no lower bound", lower),
		maxValueParam("Upper bound of the "+subject+"; unset means no upper bound", lower),
		{Name: ArgStrictMin, Type: ParamBoolean, Default: false, Description: "Exclude min_value itself"},
		{Name: ArgStrictMax, Type: ParamBoolean, Default: false, Description: "Exclude max_value itself"},
	}
}

func rowParams() []Param {
	return []Param{
		{Name: ArgMostly, Type: ParamNumber, Default: 1.0, Min: ptr.To(0.0), Max: ptr.To(1.0),
			Description: "Minimum fraction of evaluated rows that must meet the expectation"},
		{Name: ArgMaxUnexpected, Type: ParamInteger, Default: DefaultMaxUnexpected, Min: ptr.To(0.0), Max: ptr.To(10000.0),
			Description: "Maximum number of offending row indices reported"},
	}
}

func withRows(params ...Param) []Param {
	return append(params, rowParams()...)
}

// checkBounds rejects specs with no bound at all and specs whose lower bound
// exceeds the upper bound.
func checkBounds(kind Kind, p Params) error {
	lo, hi := p.OptFloat(ArgMinValue), p.OptFloat(ArgMaxValue)
	if lo == nil && hi == nil {
		return &ConstraintError{Kind: kind, Name: ArgMinValue, Reason: "and max_value cannot both be unset"}
	}
	if lo != nil && hi != nil && *lo > *hi {
		return &ConstraintError{Kind: kind, Name: ArgMinValue, Reason: fmt.Sprintf("must be <= max_value (%v > %v)", *lo, *hi)}
	}
	return nil
}

func checkNonEmptyNames(name string, min int) func(Kind, Params) error {
	return func(kind Kind, p Params) error {
		names := p.Strings(name)
		if len(names) < min {
			return &ConstraintError{Kind: kind, Name: name, Reason: fmt.Sprintf("must name at least %d column(s)", min)}
		}
		for _, n := range names {
			if n == "" {
				return &ConstraintError{Kind: kind, Name: name, Reason: "must not contain empty column names"}
			}
		}
		return nil
	}
}

func checkValueSet(kind Kind, p Params) error {
	if len(p.Values(ArgValueSet)) == 0 {
		return &ConstraintError{Kind: kind, Name: ArgValueSet, Reason: "must not be empty"}
	}
	return nil
}

func checkPair(kind Kind, p Params) error {
	if p.String(ArgColumnA) == p.String(ArgColumnB) {
		return &ConstraintError{Kind: kind, Name: ArgColumnB, Reason: "must differ from column_A"}
	}
	return nil
}

func pairParams() []Param {
	return []Param{
		{Name: ArgColumnA, Type: ParamString, Required: true, Description: "First column"},
		{Name: ArgColumnB, Type: ParamString, Required: true, Description: "Second column"},
		{Name: ArgIgnoreRowIf, Type: ParamEnum, Default: IgnoreBothMissing,
			Enum:        []string{IgnoreBothMissing, IgnoreEitherMissing, IgnoreNeither},
			Description: "Which rows with missing values are skipped"},
	}
}

func columnRange(kind Kind, subject, desc string, lower *float64) Schema {
	return Schema{
		Kind:          kind,
		Description:   desc,
		Family:        FamilyRange,
		Scope:         ScopeColumn,
		Support:       SupportFull,
		MissingColumn: MissingColumnError,
		Params:        boundParams(subject, lower),
		check:         checkBounds,
	}
}

func columnRows(kind Kind, family Family, desc string, params ...Param) Schema {
	return Schema{
		Kind:          kind,
		Description:   desc,
		Family:        family,
		Scope:         ScopeColumn,
		Support:       SupportFull,
		MissingColumn: MissingColumnError,
		Params:        withRows(params...),
	}
}

// catalog returns the built-in kinds in the order ListKinds reports them.
func catalog() []Schema {
	zero := ptr.To(0.0)

	regexRows := columnRows(KindColumnValuesMatchRegex, FamilyPattern,
		"Each non-null value, rendered as text, contains a match of regex",
		Param{Name: ArgRegex, Type: ParamRegex, Required: true, Description: "RE2 regular expression"})
	notRegexRows := columnRows(KindColumnValuesNotMatchRegex, FamilyPattern,
		"No non-null value, rendered as text, contains a match of regex",
		Param{Name: ArgRegex, Type: ParamRegex, Required: true, Description: "RE2 regular expression"})

	inSet := columnRows(KindColumnValuesInSet, FamilyPattern,
		"Each non-null value is a member of value_set",
		Param{Name: ArgValueSet, Type: ParamValueList, Required: true, Description: "Allowed values"})
	inSet.Support = SupportPartial
	inSet.check = checkValueSet

	notInSet := columnRows(KindColumnValuesNotInSet, FamilyPattern,
		"No non-null value is a member of value_set",
		Param{Name: ArgValueSet, Type: ParamValueList, Required: true, Description: "Forbidden values"})
	notInSet.Support = SupportPartial
	notInSet.check = checkValueSet

	between := columnRows(KindColumnValuesBetween, FamilyPattern,
		"Each non-null value lies between min_value and max_value",
		boundParams("values", nil)...)
	between.check = checkBounds

	lengths := columnRows(KindColumnValueLengthsBetween, FamilyPattern,
		"The length of each non-null value, rendered as text, lies between min_value and max_value",
		boundParams("value lengths", zero)[:2]...)
	lengths.check = checkBounds

	compound := Schema{
		Kind:          KindCompoundColumnsUnique,
		Description:   "Each combination of values across column_list is unique",
		Family:        FamilyUniqueness,
		Scope:         ScopeMultiColumn,
		Support:       SupportFull,
		MissingColumn: MissingColumnError,
		Params: withRows(Param{Name: ArgColumnList, Type: ParamStringList, Required: true,
			Description: "Columns forming the compound key"}),
		check: checkNonEmptyNames(ArgColumnList, 2),
	}

	return []Schema{
		{
			Kind:          KindTableRowCountBetween,
			Description:   "The number of rows lies between min_value and max_value",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				minValueParam("Minimum row count", zero),
				maxValueParam("Maximum row count", zero),
			},
			check: checkBounds,
		},
		{
			Kind:          KindTableRowCountEqual,
			Description:   "The number of rows equals value",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				{Name: ArgValue, Type: ParamInteger, Required: true, Min: zero, Description: "Expected row count"},
			},
		},
		{
			Kind:          KindTableColumnCountEqual,
			Description:   "The number of columns equals value",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				{Name: ArgValue, Type: ParamInteger, Required: true, Min: zero, Description: "Expected column count"},
			},
		},
		{
			Kind:          KindTableColumnCountBetween,
			Description:   "The number of columns lies between min_value and max_value",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				minValueParam("Minimum column count", zero),
				maxValueParam("Maximum column count", zero),
			},
			check: checkBounds,
		},
		{
			Kind:          KindTableColumnsMatchOrderedList,
			Description:   "The dataset's columns are exactly column_list, in order",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				{Name: ArgColumnList, Type: ParamStringList, Required: true, Description: "Expected column names in order"},
			},
			check: checkNonEmptyNames(ArgColumnList, 1),
		},
		{
			Kind:          KindTableColumnsMatchSet,
			Description:   "The dataset's columns match column_set, ignoring order",
			Family:        FamilyTable,
			Scope:         ScopeTable,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				{Name: ArgColumnSet, Type: ParamStringList, Required: true, Description: "Expected column names"},
				{Name: ArgExactMatch, Type: ParamBoolean, Default: true,
					Description: "When false, the dataset may carry columns beyond column_set"},
			},
			check: checkNonEmptyNames(ArgColumnSet, 1),
		},
		{
			Kind:          KindColumnToExist,
			Description:   "The column is present; a missing column is a failing result, not an error",
			Family:        FamilyExistence,
			Scope:         ScopeColumn,
			Support:       SupportFull,
			MissingColumn: MissingColumnFail,
			Params: []Param{
				{Name: ArgColumnIndex, Type: ParamInteger, Min: zero, Description: "Required zero-based position of the column"},
			},
		},
		columnRange(KindColumnMinBetween, "minimum", "The minimum of the non-null values lies between min_value and max_value", nil),
		columnRange(KindColumnMaxBetween, "maximum", "The maximum of the non-null values lies between min_value and max_value", nil),
		columnRange(KindColumnMeanBetween, "mean", "The mean of the non-null values lies between min_value and max_value", nil),
		columnRange(KindColumnMedianBetween, "median", "The median of the non-null values lies between min_value and max_value", nil),
		columnRange(KindColumnSumBetween, "sum", "The sum of the non-null values lies between min_value and max_value", nil),
		columnRange(KindColumnStdevBetween, "sample standard deviation", "The sample standard deviation of the non-null values lies between min_value and max_value", zero),
		columnRange(KindColumnUniqueValueCountBetween, "distinct value count", "The number of distinct non-null values lies between min_value and max_value", zero),
		{
			Kind:          KindColumnProportionUniqueBetween,
			Description:   "The fraction of non-null values that are distinct lies between min_value and max_value",
			Family:        FamilyRange,
			Scope:         ScopeColumn,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params: []Param{
				{Name: ArgMinValue, Type: ParamNumber, Min: zero, Max: ptr.To(1.0), Description: "Lower bound of the proportion"},
				{Name: ArgMaxValue, Type: ParamNumber, Min: zero, Max: ptr.To(1.0), Description: "Upper bound of the proportion"},
				{Name: ArgStrictMin, Type: ParamBoolean, Default: false, Description: "Exclude min_value itself"},
				{Name: ArgStrictMax, Type: ParamBoolean, Default: false, Description: "Exclude max_value itself"},
			},
			check: checkBounds,
		},
		columnRows(KindColumnValuesNotNull, FamilyNullity, "Values are not null; mostly sets the minimum non-null fraction"),
		columnRows(KindColumnValuesNull, FamilyNullity, "Values are null; mostly sets the minimum null fraction"),
		between,
		regexRows,
		notRegexRows,
		inSet,
		notInSet,
		lengths,
		columnRows(KindColumnValuesUnique, FamilyUniqueness, "Each non-null value occurs once"),
		compound,
		columnRows(KindColumnValuesIncreasing, FamilyOrdering, "Non-null values never decrease from one row to the next",
			Param{Name: ArgStrictly, Type: ParamBoolean, Default: false, Description: "Require a strict increase"}),
		columnRows(KindColumnValuesDecreasing, FamilyOrdering, "Non-null values never increase from one row to the next",
			Param{Name: ArgStrictly, Type: ParamBoolean, Default: false, Description: "Require a strict decrease"}),
		{
			Kind:          KindColumnValuesOfType,
			Description:   "The column's declared logical type is type_",
			Family:        FamilyType,
			Scope:         ScopeColumn,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params: []Param{
				{Name: ArgType, Type: ParamEnum, Required: true, Enum: dataset.SupportedTypesAsStrings(), Description: "Expected logical type"},
			},
		},
		{
			Kind:          KindColumnPairAGreaterThanB,
			Description:   "In each row column_A is greater than column_B",
			Family:        FamilyMultiColumn,
			Scope:         ScopeColumnPair,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params: withRows(append(pairParams(),
				Param{Name: ArgOrEqual, Type: ParamBoolean, Default: false, Description: "Also accept equal values"})...),
			check: checkPair,
		},
		{
			Kind:          KindColumnPairValuesEqual,
			Description:   "In each row column_A equals column_B",
			Family:        FamilyMultiColumn,
			Scope:         ScopeColumnPair,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params:        withRows(pairParams()...),
			check:         checkPair,
		},
		{
			Kind: KindColumnResampledMeanSatisfy,
			Description: "A bootstrap confidence bound of the mean compares to threshold with operator. " +
				"> and >= use the lower bound, < and <= the upper bound, == and != test whether threshold lies inside the interval",
			Family:        FamilyStatistical,
			Scope:         ScopeColumn,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params: []Param{
				{Name: ArgOperator, Type: ParamEnum, Default: ">=", Enum: Operators, Description: "Comparison operator"},
				{Name: ArgThreshold, Type: ParamNumber, Required: true, Description: "Value the bound is compared against"},
				{Name: ArgResamples, Type: ParamInteger, Default: DefaultResamples, Min: ptr.To(1.0), Max: ptr.To(100000.0),
					Description: "Number of bootstrap resamples"},
				{Name: ArgSeed, Type: ParamInteger, Default: DefaultSeed, Description: "Random seed; equal seeds give equal results"},
				{Name: ArgConfidence, Type: ParamNumber, Default: 0.95, Min: ptr.To(0.5), Max: ptr.To(0.999),
					Description: "Confidence level of the interval"},
			},
		},
		{
			Kind:          KindColumnValuesNormallyDistributed,
			Description:   "A Jarque-Bera test does not reject normality at level alpha (needs at least 3 values)",
			Family:        FamilyStatistical,
			Scope:         ScopeColumn,
			Support:       SupportFull,
			MissingColumn: MissingColumnError,
			Params: []Param{
				{Name: ArgAlpha, Type: ParamNumber, Default: 0.05, Min: ptr.To(0.0001), Max: ptr.To(0.5), Description: "Significance level"},
			},
		},
		columnRows(KindColumnValueZScoresLessThan, FamilyStatistical, "The z-score of each non-null value is below threshold",
			Param{Name: ArgThreshold, Type: ParamNumber, Required: true, Min: zero, Description: "Maximum z-score"},
			Param{Name: ArgDoubleSided, Type: ParamBoolean, Default: true, Description: "Compare absolute z-scores"}),
	}
}
