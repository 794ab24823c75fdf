// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/numcore/internal/logger"
	"github.com/katalvlaran/numcore/matrix"
	"github.com/katalvlaran/numcore/scalar"
)

// ErrCheckFailed is returned by --check when a result misses the configured
// tolerance.
var ErrCheckFailed = errors.New("numcore: result check failed")

type linearFlags struct {
	file   string
	output string
	check  bool
}

func (f *linearFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Problem YAML file")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "Output format: text or yaml")
	cmd.Flags().BoolVar(&f.check, "check", false, "Verify the result against the configured epsilon")
}

// loadSquare reads the float64 coefficient matrix of a solve/invert problem.
func (a *app) loadSquare(p *problem, keys ...string) (*matrix.Matrix[float64], error) {
	if err := p.require(append([]string{"matrix"}, keys...)...); err != nil {
		return nil, err
	}
	kind, err := p.kind()
	if err != nil {
		return nil, err
	}
	if kind != scalar.Float64 {
		return nil, fmt.Errorf("%w: LU problems are float64, got %s", matrix.ErrUnsupported, kind)
	}

	return matrix.NewMatrixFromRows(p.Matrix, a.alloc())
}

func newSolveCmd(a *app) *cobra.Command {
	f := &linearFlags{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve matrix·x = rhs by LU decomposition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readProblem(f.file)
			if err != nil {
				return err
			}
			m, err := a.loadSquare(p, "rhs")
			if err != nil {
				return err
			}
			defer m.Release()
			b, err := matrix.NewVectorFrom(p.RHS, a.alloc())
			if err != nil {
				return err
			}
			defer b.Release()

			x, err := matrix.Solve(m, b)
			if err != nil {
				return fmt.Errorf("solve: %w", err)
			}
			defer x.Release()

			if f.check {
				if err = a.checkResidual(m, x, b); err != nil {
					return err
				}
			}
			xs, err := x.ToSlice()
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), f.output, "x", xs, x)
		},
	}
	f.register(cmd)

	return cmd
}

// checkResidual fails when |m·x - b| exceeds epsilon·max(1, |b|).
func (a *app) checkResidual(m *matrix.Matrix[float64], x, b *matrix.Vector[float64]) error {
	mx, err := m.MulVec(x)
	if err != nil {
		return err
	}
	defer mx.Release()
	if _, err = mx.SubInPlace(b); err != nil {
		return err
	}
	res, err := mx.Magnitude()
	if err != nil {
		return err
	}
	scale, err := b.Magnitude()
	if err != nil {
		return err
	}
	limit := a.cfg.Epsilon * max(1, scale)
	logger.Log.Info("solve residual", "residual", res, "limit", limit)
	if res > limit {
		return fmt.Errorf("%w: residual %g exceeds %g", ErrCheckFailed, res, limit)
	}

	return nil
}

func newInvertCmd(a *app) *cobra.Command {
	f := &linearFlags{}
	cmd := &cobra.Command{
		Use:   "invert",
		Short: "Invert a square matrix by LU decomposition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readProblem(f.file)
			if err != nil {
				return err
			}
			m, err := a.loadSquare(p)
			if err != nil {
				return err
			}
			defer m.Release()

			inv, err := matrix.Inverse(m)
			if err != nil {
				return fmt.Errorf("invert: %w", err)
			}
			defer inv.Release()

			if f.check {
				if err = a.checkInverse(m, inv); err != nil {
					return err
				}
			}
			rows, err := inv.ToRows()
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), f.output, "inverse", rows, inv)
		},
	}
	f.register(cmd)

	return cmd
}

func (a *app) checkInverse(m, inv *matrix.Matrix[float64]) error {
	prod, err := m.MulMatrix(inv)
	if err != nil {
		return err
	}
	defer prod.Release()
	id, err := matrix.Identity[float64](m.Rows(), a.alloc())
	if err != nil {
		return err
	}
	defer id.Release()

	ok, err := matrix.AllClose(prod, id, 0, a.cfg.Epsilon)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: matrix·inverse differs from identity by more than %g", ErrCheckFailed, a.cfg.Epsilon)
	}

	return nil
}
