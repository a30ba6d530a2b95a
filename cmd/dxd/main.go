/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/NVIDIA/data-expectations/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		os.Exit(1)
	}
}
