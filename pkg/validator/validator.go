/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/NVIDIA/data-expectations/pkg/dataset"
	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/evaluator"
	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/NVIDIA/data-expectations/pkg/header"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// CodeEvaluationPanic is the exception code of an evaluation that panicked.
	CodeEvaluationPanic = "EvaluationPanic"

	// CodeEvaluationError is the exception code of errors without a code.
	CodeEvaluationError = "EvaluationError"

	// DetailErrorKind is the Details key naming the contained error's code.
	DetailErrorKind = "error_kind"
)

// Validator runs ordered lists of expectation specs against a dataset.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// Evaluator evaluates single specs. Defaults to evaluator.Default().
	Evaluator evaluator.Evaluator

	// Parallelism is the maximum number of concurrent evaluations.
	// Values below 2 evaluate sequentially.
	Parallelism int

	// Registry builds specs from suites submitted to HandleValidate.
	// Defaults to expectation.Default().
	Registry *expectation.Registry
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithEvaluator returns an Option that sets the evaluator used for each spec.
func WithEvaluator(e evaluator.Evaluator) Option {
	return func(v *Validator) {
		v.Evaluator = e
	}
}

// WithParallelism returns an Option that bounds concurrent evaluations.
func WithParallelism(n int) Option {
	return func(v *Validator) {
		v.Parallelism = n
	}
}

// WithRegistry returns an Option that sets the registry used by HandleValidate.
func WithRegistry(r *expectation.Registry) Option {
	return func(v *Validator) {
		v.Registry = r
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.Evaluator == nil {
		v.Evaluator = evaluator.Default()
	}
	if v.Registry == nil {
		v.Registry = expectation.Default()
	}
	return v
}

// Validate evaluates specs in order against ds and returns a report with one
// result per spec at the spec's index. Evaluation errors and panics are
// contained in the failing result of the spec that raised them. The context
// is checked between evaluations; a canceled run returns ctx.Err().
func (v *Validator) Validate(ctx context.Context, ds *dataset.Dataset, specs []*expectation.Spec) (*Report, error) {
	start := time.Now()

	if ds == nil {
		return nil, dxerrors.New(dxerrors.ErrCodeInvalidRequest, "dataset cannot be nil")
	}

	report := NewReport(len(specs))
	report.Init(header.KindValidationReport, header.APIVersionV1Alpha1, v.Version)
	report.Metadata[MetadataRunID] = uuid.New().String()

	var g errgroup.Group
	g.SetLimit(max(1, v.Parallelism))

	for i, spec := range specs {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			validationRunTotal.WithLabelValues("canceled").Inc()
			return nil, err
		}
		g.Go(func() error {
			// queued behind the limit; the run may have been canceled since
			if ctx.Err() != nil {
				return nil
			}
			report.Results[i] = v.evaluate(ds, spec)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		validationRunTotal.WithLabelValues("canceled").Inc()
		return nil, err
	}

	report.summarize(time.Since(start))

	status := "pass"
	if !report.Success {
		status = "fail"
	}
	validationRunTotal.WithLabelValues(status).Inc()
	validationRunDuration.Observe(report.Summary.Duration.Seconds())

	slog.Debug("validation completed",
		"run", report.Metadata[MetadataRunID],
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"errored", report.Summary.Errored,
		"success", report.Success,
		"duration", report.Summary.Duration)

	return report, nil
}

// evaluate evaluates a single spec and never fails: errors and panics become
// an unsuccessful result carrying an Exception.
func (v *Validator) evaluate(ds *dataset.Dataset, spec *expectation.Spec) (res evaluator.Result) {
	start := time.Now()
	kind := "unknown"
	if spec != nil {
		kind = string(spec.Kind())
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("expectation evaluation panicked",
				"kind", kind,
				"panic", r,
				"stack", string(debug.Stack()))
			res = contained(spec, CodeEvaluationPanic, fmt.Sprintf("panic: %v", r))
		}
		evaluationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		evaluationTotal.WithLabelValues(kind, outcome(res)).Inc()
	}()

	if spec == nil {
		return contained(nil, string(dxerrors.ErrCodeInvalidRequest), "expectation spec cannot be nil")
	}

	res, err := v.Evaluator.Evaluate(ds, spec)
	if err != nil {
		code := errorCode(err)
		slog.Debug("expectation errored",
			"kind", kind,
			"column", spec.Column(),
			"code", code,
			"error", err)
		return contained(spec, code, err.Error())
	}

	res.Expectation = spec
	slog.Debug("expectation evaluated",
		"kind", kind,
		"column", spec.Column(),
		"success", res.Success,
		"observed", res.ObservedValue)
	return res
}

func contained(spec *expectation.Spec, code, message string) evaluator.Result {
	return evaluator.Result{
		Expectation: spec,
		Success:     false,
		Details:     map[string]any{DetailErrorKind: code},
		Exception:   &evaluator.Exception{Code: code, Message: message},
	}
}

// errorCode returns the Code of the first error in err's chain that has one,
// then the structured error code, then CodeEvaluationError.
func errorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	var se *dxerrors.StructuredError
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return CodeEvaluationError
}

func outcome(res evaluator.Result) string {
	switch {
	case res.Errored():
		return "error"
	case res.Success:
		return "pass"
	default:
		return "fail"
	}
}
