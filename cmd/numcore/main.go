// SPDX-License-Identifier: MIT

// Command numcore solves, inverts and multiplies dense matrices read from
// YAML problem files, and reports which numeric kernels the host supports.
//
// Usage:
//
//	numcore solve -f problem.yaml
//	numcore invert -f problem.yaml --check
//	numcore multiply -f problem.yaml --trans-a
//	numcore info
//	numcore serve-metrics --addr :9464
package main

import (
	"os"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
