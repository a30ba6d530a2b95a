/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator runs ordered lists of expectations against a dataset and
// assembles the validation report.
//
// # Overview
//
// Every spec is evaluated, in the given order, against the same read-only
// dataset. A failing spec never stops later ones; the report surfaces all
// violations of a run at once. The report succeeds when every result
// succeeds, so an empty spec list yields a successful report.
//
// # Usage
//
//	v := validator.New(validator.WithVersion(version), validator.WithParallelism(4))
//	report, err := v.Validate(ctx, ds, specs)
//	if err != nil {
//	    return err
//	}
//	for _, r := range report.Failed() {
//	    fmt.Printf("%s: observed %v\n", r.Expectation, r.ObservedValue)
//	}
//
// # Containment
//
// Errors returned by the evaluator and panics raised during evaluation are
// converted into an unsuccessful result of the offending spec. The result's
// Exception holds the error code and message, and Details["error_kind"]
// repeats the code. Validate itself only fails for a nil dataset or a
// canceled context.
//
// # Concurrency
//
// WithParallelism(n) evaluates up to n specs concurrently. Results are stored
// at their spec's index, so the report order never depends on completion
// order. The context is checked before each evaluation is started; an
// evaluation that already started runs to completion.
package validator
