/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"sync"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/montanaflynn/stats"
)

// Evaluator applies one spec to one dataset.
type Evaluator interface {
	Evaluate(ds *dataset.Dataset, spec *expectation.Spec) (Result, error)
}

// Input is passed to a Func.
type Input struct {
	Dataset *dataset.Dataset
	Spec    *expectation.Spec
	Params  expectation.Params

	// Columns holds the referenced columns in Spec.Columns order. For kinds
	// whose missing-column policy is fail, absent columns are left out.
	Columns []*dataset.Column
}

// Func computes the result of one kind. It must not modify the dataset and
// must return the same result for the same input.
type Func func(in *Input) (Result, error)

// Engine dispatches specs to the function registered for their kind.
// An Engine is safe for concurrent use.
type Engine struct {
	funcs map[expectation.Kind]Func
}

// Option is a functional option for configuring Engine instances.
type Option func(*Engine)

// WithFunc registers fn for kind, replacing a built-in function. Use it
// together with a custom expectation.Registry.
func WithFunc(kind expectation.Kind, fn Func) Option {
	return func(e *Engine) {
		e.funcs[kind] = fn
	}
}

// New returns an Engine with every built-in kind registered.
func New(opts ...Option) *Engine {
	e := &Engine{funcs: builtins()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the shared Engine with the built-in kinds.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Evaluate evaluates spec against ds with the default engine.
func Evaluate(ds *dataset.Dataset, spec *expectation.Spec) (Result, error) {
	return Default().Evaluate(ds, spec)
}

// Evaluate resolves the spec's columns and runs the kind's function.
//
// A missing column is an *UnknownColumnError unless the kind's policy makes
// it an ordinary failing result, as for expect_column_to_exist. Data the
// kind cannot be computed over yields a *ColumnTypeError or a
// *DegenerateDataError. Too few non-null values is not an error: the result
// fails with reason "insufficient data".
func (e *Engine) Evaluate(ds *dataset.Dataset, spec *expectation.Spec) (Result, error) {
	if spec == nil {
		return Result{}, dxerrors.New(dxerrors.ErrCodeInvalidRequest, "expectation spec is nil")
	}
	if ds == nil {
		return Result{}, dxerrors.New(dxerrors.ErrCodeInvalidRequest, "dataset is nil")
	}

	fn, ok := e.funcs[spec.Kind()]
	if !ok {
		return Result{}, &UnsupportedKindError{Kind: spec.Kind()}
	}

	in := &Input{Dataset: ds, Spec: spec, Params: spec.Params()}
	for _, name := range spec.Columns() {
		col, ok := ds.Column(name)
		if !ok {
			if spec.MissingColumnPolicy() == expectation.MissingColumnFail {
				continue
			}
			return Result{}, &UnknownColumnError{Kind: spec.Kind(), Column: name}
		}
		in.Columns = append(in.Columns, col)
	}

	res, err := fn(in)
	if err != nil {
		return Result{}, err
	}
	res.Expectation = spec
	return res, nil
}

func builtins() map[expectation.Kind]Func {
	return map[expectation.Kind]Func{
		expectation.KindTableRowCountBetween:         tableRowCountBetween,
		expectation.KindTableRowCountEqual:           tableRowCountEqual,
		expectation.KindTableColumnCountEqual:        tableColumnCountEqual,
		expectation.KindTableColumnCountBetween:      tableColumnCountBetween,
		expectation.KindTableColumnsMatchOrderedList: tableColumnsMatchOrderedList,
		expectation.KindTableColumnsMatchSet:         tableColumnsMatchSet,

		expectation.KindColumnToExist: columnToExist,

		expectation.KindColumnMinBetween:              statBetween(1, stats.Min),
		expectation.KindColumnMaxBetween:              statBetween(1, stats.Max),
		expectation.KindColumnMeanBetween:             statBetween(1, stats.Mean),
		expectation.KindColumnMedianBetween:           statBetween(1, stats.Median),
		expectation.KindColumnSumBetween:              statBetween(1, stats.Sum),
		expectation.KindColumnStdevBetween:            statBetween(2, stats.StandardDeviationSample),
		expectation.KindColumnUniqueValueCountBetween: uniqueValueCountBetween,
		expectation.KindColumnProportionUniqueBetween: proportionUniqueBetween,

		expectation.KindColumnValuesNotNull: valuesNotNull,
		expectation.KindColumnValuesNull:    valuesNull,

		expectation.KindColumnValuesBetween:       valuesBetween,
		expectation.KindColumnValuesMatchRegex:    matchRegex(true),
		expectation.KindColumnValuesNotMatchRegex: matchRegex(false),
		expectation.KindColumnValuesInSet:         inSet(true),
		expectation.KindColumnValuesNotInSet:      inSet(false),
		expectation.KindColumnValueLengthsBetween: valueLengthsBetween,

		expectation.KindColumnValuesUnique:    valuesUnique,
		expectation.KindCompoundColumnsUnique: compoundColumnsUnique,

		expectation.KindColumnValuesIncreasing: monotonic(1),
		expectation.KindColumnValuesDecreasing: monotonic(-1),

		expectation.KindColumnValuesOfType: valuesOfType,

		expectation.KindColumnPairAGreaterThanB: pairAGreaterThanB,
		expectation.KindColumnPairValuesEqual:   pairValuesEqual,

		expectation.KindColumnResampledMeanSatisfy:      resampledMeanSatisfy,
		expectation.KindColumnValuesNormallyDistributed: normallyDistributed,
		expectation.KindColumnValueZScoresLessThan:      zScoresLessThan,
	}
}
