// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/numcore/backend"
	"github.com/katalvlaran/numcore/scalar"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the scalar kinds and the kernels active on this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeInfo(cmd.OutOrStdout(), a, backend.Info())
		},
	}
}

func writeInfo(w io.Writer, a *app, ri backend.RuntimeInfo) error {
	blas := make(map[scalar.Kind]bool, len(ri.BLASKinds))
	for _, k := range ri.BLASKinds {
		blas[k] = true
	}
	ordered := make(map[scalar.Kind]bool, len(ri.OrderedKinds))
	for _, k := range ri.OrderedKinds {
		ordered[k] = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "numcore %s (%s)\n", version, commit)
	fmt.Fprintf(&sb, "arch:           %s\n", ri.Arch)
	fmt.Fprintf(&sb, "implementation: %s\n", ri.Implementation)
	fmt.Fprintf(&sb, "cpu features:   %s\n", strings.Join(ri.Features, " "))
	fmt.Fprintf(&sb, "avx2=%t fma=%t neon=%t\n", ri.HasAVX2, ri.HasFMA, ri.HasNEON)
	if a.cfg != nil {
		fmt.Fprintf(&sb, "allocator:      %s\n", a.cfg.Arena.Allocator)
	}
	sb.WriteString("\nKIND        FAMILY         SIZE  BLAS  ORDERED\n")
	for _, k := range scalar.Kinds() {
		fmt.Fprintf(&sb, "%-11s %-14s %4d  %-5t %t\n", k, k.Family(), k.Size(), blas[k], ordered[k])
	}
	_, err := io.WriteString(w, sb.String())

	return err
}
