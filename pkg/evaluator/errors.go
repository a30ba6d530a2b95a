/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package evaluator

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
)

// Evaluation error codes, stable across releases.
const (
	CodeUnknownColumn     = "UnknownColumn"
	CodeInvalidColumnType = "InvalidColumnType"
	CodeDegenerateData    = "DegenerateData"
	CodeUnsupportedKind   = "UnsupportedKind"
)

var (
	ErrUnknownColumn     = errors.New("unknown column")
	ErrInvalidColumnType = errors.New("invalid column type")
	ErrDegenerateData    = errors.New("degenerate data")
	ErrUnsupportedKind   = errors.New("unsupported expectation kind")
)

// UnknownColumnError is returned when a spec references a column the dataset
// lacks and the kind does not treat that as an ordinary failure.
type UnknownColumnError struct {
	Kind   expectation.Kind
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("%s: unknown column %q", e.Kind, e.Column)
}

func (e *UnknownColumnError) Is(target error) bool { return target == ErrUnknownColumn }

// Code returns the stable error code.
func (e *UnknownColumnError) Code() string { return CodeUnknownColumn }

// ColumnTypeError is returned when a kind cannot be computed over the
// column's declared type.
type ColumnTypeError struct {
	Kind   expectation.Kind
	Column string
	Type   dataset.Type
	Want   []dataset.Type
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("%s: column %q has type %s, want one of %v", e.Kind, e.Column, e.Type, e.Want)
}

func (e *ColumnTypeError) Is(target error) bool { return target == ErrInvalidColumnType }

// Code returns the stable error code.
func (e *ColumnTypeError) Code() string { return CodeInvalidColumnType }

// DegenerateDataError is returned when the data admits no meaningful
// statistic, for example z-scores over a column with zero variance.
type DegenerateDataError struct {
	Kind   expectation.Kind
	Column string
	Reason string
}

func (e *DegenerateDataError) Error() string {
	return fmt.Sprintf("%s: column %q: %s", e.Kind, e.Column, e.Reason)
}

func (e *DegenerateDataError) Is(target error) bool { return target == ErrDegenerateData }

// Code returns the stable error code.
func (e *DegenerateDataError) Code() string { return CodeDegenerateData }

// UnsupportedKindError is returned by an Engine that has no function for a
// registered kind.
type UnsupportedKindError struct {
	Kind expectation.Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("no evaluator registered for %s", e.Kind)
}

func (e *UnsupportedKindError) Is(target error) bool { return target == ErrUnsupportedKind }

// Code returns the stable error code.
func (e *UnsupportedKindError) Code() string { return CodeUnsupportedKind }
