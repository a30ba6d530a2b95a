/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/NVIDIA/data-expectations/pkg/suite"
)

func sampleCmd() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Write the built-in sample suite",
		Description: `Writes an example suite with a small dataset and three expectations. Use it
as a starting point for new suites:

  dxctl sample -o suite.yaml
  dxctl validate -s suite.yaml`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag(serializer.FormatYAML),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := suite.Sample()
			if err != nil {
				return fmt.Errorf("failed to load sample suite: %w", err)
			}
			return writeOutput(ctx, cmd, s)
		},
	}
}
