// Package main implements rewardctl, the CLI surface for the reward
// evaluation pipeline. Host training frameworks are expected to embed the
// internal/reward package directly; this binary exists so the pipeline can
// be exercised, debugged, and wired into shell-based RL tooling without
// writing a language binding (see SPEC_FULL.md §C.3).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rewardforge/internal/telemetry"
)

var (
	verbose          bool
	workspace        string
	telemetryEnabled bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rewardctl",
	Short: "rewardctl scores language-model completions against Python test harnesses",
	Long: `rewardctl runs the execution-reward pipeline: extract candidate code from a
completion, rewrite its test harness to run every assertion instead of
failing fast, execute the combined program inside a resource-limited
sandbox, and report pass/fail per item.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		} else if abs, err := filepath.Abs(ws); err == nil {
			ws = abs
		}
		if err := telemetry.Initialize(ws, telemetryEnabled); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize telemetry: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		telemetry.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory for telemetry output (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&telemetryEnabled, "telemetry", false, "write category-based structured logs under .rewardforge/logs/")

	rootCmd.AddCommand(scoreCmd, sandboxCmd, watchCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
