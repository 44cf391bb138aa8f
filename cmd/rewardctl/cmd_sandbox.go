package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rewardforge/internal/sandbox"
)

var (
	sandboxFile        string
	sandboxWallTimeout int
	sandboxMemoryLimit int
	sandboxCPUTime     int
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a single Python program under the resource-limited sandbox and print the result",
	Long: `sandbox exposes spec operation 7 (the sandbox runner) directly: it takes
a self-contained Python program (already stitched with its wrapped test
harness, if any) and reports (all_passed, passed, total) as JSON.`,
	RunE: runSandbox,
}

func init() {
	sandboxCmd.Flags().StringVar(&sandboxFile, "file", "", "path to the program to run (default: read from stdin)")
	sandboxCmd.Flags().IntVar(&sandboxWallTimeout, "wall-timeout", 15, "wall_timeout_s")
	sandboxCmd.Flags().IntVar(&sandboxMemoryLimit, "memory-limit", 512, "memory_limit_mb")
	sandboxCmd.Flags().IntVar(&sandboxCPUTime, "cpu-time", 12, "cpu_time_s")
}

func runSandbox(cmd *cobra.Command, args []string) error {
	var program []byte
	var err error
	if sandboxFile != "" {
		program, err = os.ReadFile(sandboxFile)
	} else {
		program, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	runner := sandbox.Default()
	if !runner.IsAvailable() {
		return fmt.Errorf("%w", sandbox.ErrSandboxUnavailable)
	}

	result, err := runner.Run(context.Background(), string(program), sandbox.Limits{
		WallTimeoutS:  sandboxWallTimeout,
		MemoryLimitMB: sandboxMemoryLimit,
		CPUTimeS:      sandboxCPUTime,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
