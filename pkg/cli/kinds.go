/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/data-expectations/pkg/expectation"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
)

func kindsCmd() *cli.Command {
	return &cli.Command{
		Name:      "kinds",
		Usage:     "List expectation kinds or show the parameters of one kind",
		ArgsUsage: "[KIND]",
		Description: `Without an argument, lists every registered expectation kind in declaration
order. With a KIND, shows its parameter schema.

# Examples

  dxctl kinds
  dxctl kinds expect_column_values_to_be_in_set --format yaml`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag(serializer.FormatTable),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := expectation.Default()

			if cmd.Args().Len() > 1 {
				return fmt.Errorf("expected at most one kind, got %d", cmd.Args().Len())
			}
			if kind := cmd.Args().First(); kind != "" {
				s, err := reg.Lookup(expectation.Kind(kind))
				if err != nil {
					return err
				}
				return writeOutput(ctx, cmd, schemaView{SchemaView: expectation.SchemaView{Schema: s, DisplayName: s.DisplayName()}})
			}

			return writeOutput(ctx, cmd, kindList(reg.Schemas()))
		},
	}
}

// kindList renders the registry as one row per kind in table format.
type kindList []expectation.Schema

func (l kindList) TableHeader() []string {
	return []string{"KIND", "FAMILY", "SCOPE", "SUPPORT", "PARAMETERS"}
}

func (l kindList) TableRows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, s := range l {
		rows = append(rows, []string{
			string(s.Kind),
			string(s.Family),
			string(s.Scope),
			string(s.Support),
			strings.Join(s.ParamNames(), ", "),
		})
	}
	return rows
}

// schemaView renders a single schema as one row per parameter in table format.
type schemaView struct {
	expectation.SchemaView `json:",inline" yaml:",inline"`
}

func (v schemaView) TableHeader() []string {
	return []string{"PARAMETER", "TYPE", "REQUIRED", "DEFAULT", "DESCRIPTION"}
}

func (v schemaView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Params))
	for _, p := range v.Params {
		def := ""
		if p.Default != nil {
			def = fmt.Sprint(p.Default)
		}
		typ := string(p.Type)
		if len(p.Enum) > 0 {
			typ += " (" + strings.Join(p.Enum, "|") + ")"
		}
		rows = append(rows, []string{p.Name, typ, strconv.FormatBool(p.Required), def, p.Description})
	}
	return rows
}
