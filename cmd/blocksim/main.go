// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command blocksim edits and runs block circuits.
//
//	blocksim              # interactive editor
//	blocksim run script   # run editor commands from a file, or stdin
//	blocksim demo toggle  # simulate a prefab and print its waveforms
//
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/db47h/blocksim/internal/command"
	"github.com/db47h/blocksim/internal/config"
	"github.com/db47h/blocksim/internal/editor"
	"github.com/db47h/blocksim/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blocksim",
	Short: "Block based digital logic simulator",
	Long: `blocksim simulates circuits built out of Input, Output, logic gate and
Memory blocks connected by wires. Every clock tick, Input blocks emit the
next bit of their stream, signals settle through the gates, Output blocks
record what they see and Memory blocks latch their input for the next tick.

Run without arguments to start the interactive editor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		// the editor owns the terminal: only log to a file
		if n := cmd.Name(); (n == "blocksim" || n == "edit") && cfg.Logging.File == "" {
			logger = zap.NewNop()
			return nil
		}
		if logger, err = logging.New(cfg.Logging, verbose); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runEdit,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Start the interactive editor",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run editor commands from a file",
	Long: `Runs editor commands, one per line, from a file or from stdin if no file
or "-" is given. Lines starting with '#' are ignored. Execution stops at the
first failing command.

Example:
  add input
  add not
  add output
  connect 1.out 2.in
  connect 2.out 3.in
  stream 1 110
  tick 3
  show 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	return editor.Run(command.New(cfg, logger))
}

func runRun(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	s := command.New(cfg, logger)
	logger.Debug("running script", zap.Stringer("circuit", s.Circuit().ID()))
	return s.Run(r, cmd.OutOrStdout())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
