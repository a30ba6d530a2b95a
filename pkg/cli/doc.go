/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the dxctl command-line interface.
//
// # Commands
//
// validate - Validate a suite's dataset against its expectations:
//
//	dxctl validate --suite suite.yaml [--output FILE] [--format yaml|json|table]
//	dxctl validate -s suite.json -p 4 --fail-on-error
//
// kinds - List registered expectation kinds, or show one kind's parameters:
//
//	dxctl kinds
//	dxctl kinds expect_column_values_to_be_in_set --format yaml
//
// sample - Write the built-in sample suite:
//
//	dxctl sample -o suite.yaml
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL      Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, invalid suite, execution failure)
//	2  Context canceled or timeout
//	3  Expectations failed (validate --fail-on-error)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/data-expectations/pkg/cli.version=1.0.0'"
package cli
