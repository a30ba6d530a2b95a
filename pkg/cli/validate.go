/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/NVIDIA/data-expectations/pkg/suite"
	"github.com/NVIDIA/data-expectations/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate the dataset of a suite against its expectations",
		Description: `Evaluates every expectation of a suite, in order, against the suite's
dataset and writes the validation report. A failing expectation never stops
the evaluation of later ones.

# Suite format

  kind: ExpectationSuite
  apiVersion: dx.nvidia.com/v1alpha1
  dataset:
    columns:
      - name: age
        type: numeric
        values: [25, 30, null, 40]
  expectations:
    - expectation: expect_column_mean_to_be_between
      column: age
      args:
        min_value: 20
        max_value: 50

# Examples

Validate and print a table:
  dxctl validate --suite suite.yaml --format table

Fail the pipeline when any expectation fails:
  dxctl validate -s suite.yaml -o report.json --fail-on-error

Skip the statistical checks of a suite:
  dxctl validate -s suite.yaml --skip "*distributed" --skip "*resampled*"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "suite",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Suite file path (JSON or YAML, '-' reads JSON from stdin)",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Value:   1,
				Usage:   "Maximum number of expectations evaluated concurrently",
			},
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "Skip expectations whose kind or column matches a pattern (supports prefix*, *suffix and *contains*, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with a non-zero code when any expectation fails",
			},
			outputFlag,
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			path := cmd.String("suite")
			s, err := suite.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load suite from %q: %w", path, err)
			}

			if skip := cmd.StringSlice("skip"); len(skip) > 0 {
				before := len(s.Expectations)
				s = s.Without(skip)
				slog.Debug("skipped expectations", "patterns", skip, "skipped", before-len(s.Expectations))
			}

			// construction errors are reported even when there is nothing to validate
			specs, err := s.Specs(nil)
			if err != nil {
				return fmt.Errorf("invalid expectations in %q:\n%w", path, err)
			}
			if s.Dataset == nil {
				return fmt.Errorf("suite %q has no dataset", path)
			}

			v := validator.New(
				validator.WithVersion(version),
				validator.WithParallelism(cmd.Int("parallel")),
			)
			report, err := v.Validate(ctx, s.Dataset, specs)
			if err != nil {
				return fmt.Errorf("failed to validate: %w", err)
			}

			slog.Info("validation completed",
				"suite", path,
				"success", report.Success,
				"passed", report.Summary.Passed,
				"failed", report.Summary.Failed,
				"errored", report.Summary.Errored)

			if err := writeOutput(ctx, cmd, report); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if !report.Success && cmd.Bool("fail-on-error") {
				return fmt.Errorf("%w: %d of %d", ErrExpectationsFailed, report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}
}
