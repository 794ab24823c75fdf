// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/config"
	"github.com/katalvlaran/numcore/internal/logger"
	"github.com/katalvlaran/numcore/matrix"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	arena *buffer.Arena
}

// alloc places containers in the arena configured for this run.
func (a *app) alloc() matrix.Option { return matrix.WithArena(a.arena) }

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	if a.arena, err = cfg.Apply(); err != nil {
		return err
	}
	a.cfg = cfg
	logger.Log.Debug("numcore starting", "config", cfg.String())

	return nil
}

// teardown closes the run's arena. Buffers still live at this point are
// leaks and are reported as an error.
func (a *app) teardown(*cobra.Command, []string) error {
	if a.arena == nil {
		return nil
	}
	if buffer.Default() == a.arena {
		buffer.SetDefault(nil)
	}
	if leaked := a.arena.Close(); leaked > 0 {
		return fmt.Errorf("numcore: %d buffers still live at exit", leaked)
	}

	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "numcore",
		Short: "numcore - dense linear algebra from the command line",
		Long: `numcore runs dense linear-algebra operations on problems described
in YAML files.

Problem files use these keys:
  kind:   element kind (float64 by default; multiply also accepts float32)
  matrix: square coefficient matrix for solve and invert
  rhs:    right-hand side for solve
  a, b:   operands for multiply`,
		Version:            fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a numcore YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override: debug, info, warn, error")

	root.AddCommand(
		newSolveCmd(a),
		newInvertCmd(a),
		newMultiplyCmd(a),
		newInfoCmd(a),
		newServeMetricsCmd(a),
	)

	return root
}
