/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package expectation

import (
	"errors"
	"fmt"
)

// Construction error codes, stable across releases.
const (
	CodeUnknownKind         = "UnknownExpectationKind"
	CodeMissingParameter    = "MissingRequiredParameter"
	CodeInvalidParameter    = "InvalidParameterType"
	CodeConstraintViolation = "ConstraintViolation"
)

// Sentinels matched by the typed construction errors through errors.Is.
var (
	ErrUnknownKind              = errors.New("unknown expectation kind")
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	ErrInvalidParameterType     = errors.New("invalid parameter type")
	ErrConstraintViolation      = errors.New("constraint violation")
)

// UnknownKindError is returned when a kind is not in the registry.
type UnknownKindError struct {
	Kind       Kind
	Suggestion Kind
}

func (e *UnknownKindError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown expectation kind %q, did you mean %q?", e.Kind, e.Suggestion)
	}
	return fmt.Sprintf("unknown expectation kind %q", e.Kind)
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// Code returns the stable error code.
func (e *UnknownKindError) Code() string { return CodeUnknownKind }

// MissingParameterError is returned when a required parameter is absent.
// Name is "column" for column-scoped kinds built without a column.
type MissingParameterError struct {
	Kind Kind
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Kind, e.Name)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingRequiredParameter }

// Code returns the stable error code.
func (e *MissingParameterError) Code() string { return CodeMissingParameter }

// ParameterTypeError is returned when a value cannot be used as the declared type.
type ParameterTypeError struct {
	Kind     Kind
	Name     string
	Expected ParamType
	Got      string
}

func (e *ParameterTypeError) Error() string {
	return fmt.Sprintf("%s: parameter %q must be %s, got %s", e.Kind, e.Name, e.Expected, e.Got)
}

func (e *ParameterTypeError) Is(target error) bool { return target == ErrInvalidParameterType }

// Code returns the stable error code.
func (e *ParameterTypeError) Code() string { return CodeInvalidParameter }

// ConstraintError is returned when a value has the right type but fails a
// declared constraint.
type ConstraintError struct {
	Kind   Kind
	Name   string
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s", e.Kind, e.Name, e.Reason)
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraintViolation }

// Code returns the stable error code.
func (e *ConstraintError) Code() string { return CodeConstraintViolation }
