// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/numcore/matrix"
	"github.com/katalvlaran/numcore/scalar"
)

type multiplyFlags struct {
	file   string
	output string
	transA bool
	transB bool
}

func (f *multiplyFlags) transposes() (matrix.Transpose, matrix.Transpose) {
	tA, tB := matrix.NoTrans, matrix.NoTrans
	if f.transA {
		tA = matrix.Trans
	}
	if f.transB {
		tB = matrix.Trans
	}

	return tA, tB
}

func newMultiplyCmd(a *app) *cobra.Command {
	f := &multiplyFlags{}
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Compute op(a)·op(b) with an optional transpose on either side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readProblem(f.file)
			if err != nil {
				return err
			}
			if err = p.require("a", "b"); err != nil {
				return err
			}
			kind, err := p.kind()
			if err != nil {
				return err
			}
			tA, tB := f.transposes()
			switch kind {
			case scalar.Float64:
				return multiply(cmd.OutOrStdout(), a, f.output, tA, tB, p.A, p.B)
			case scalar.Float32:
				return multiply(cmd.OutOrStdout(), a, f.output, tA, tB, narrow[float32](p.A), narrow[float32](p.B))
			}

			return fmt.Errorf("%w: multiply reads float32 or float64 problems, got %s", matrix.ErrUnsupported, kind)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Problem YAML file")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "Output format: text or yaml")
	cmd.Flags().BoolVar(&f.transA, "trans-a", false, "Use the transpose of a")
	cmd.Flags().BoolVar(&f.transB, "trans-b", false, "Use the transpose of b")

	return cmd
}

func multiply[T float32 | float64](w io.Writer, a *app, format string, tA, tB matrix.Transpose, ra, rb [][]T) error {
	ma, err := matrix.NewMatrixFromRows(ra, a.alloc())
	if err != nil {
		return err
	}
	defer ma.Release()
	mb, err := matrix.NewMatrixFromRows(rb, a.alloc())
	if err != nil {
		return err
	}
	defer mb.Release()

	c, err := ma.Gemm(tA, tB, mb)
	if err != nil {
		return fmt.Errorf("multiply: %w", err)
	}
	defer c.Release()
	rows, err := c.ToRows()
	if err != nil {
		return err
	}

	return printResult(w, format, "c", rows, c)
}
