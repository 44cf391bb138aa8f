package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"rewardforge/internal/config"
	"rewardforge/internal/reward"
)

var (
	manifestPath string
	configPath   string
	formatOnly   bool
	useUI        bool

	wallTimeoutFlag int
	memoryLimitFlag int
	cpuTimeFlag     int
	workerCountFlag int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a batch manifest's completions",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a JSON batch manifest ({completions, tests, entry_points})")
	scoreCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML EvaluatorConfig file")
	scoreCmd.Flags().BoolVar(&formatOnly, "format", false, "score the format reward instead of the execution reward (skips the sandbox entirely)")
	scoreCmd.Flags().BoolVar(&useUI, "ui", false, "show a live progress bar while scoring")
	scoreCmd.Flags().IntVar(&wallTimeoutFlag, "wall-timeout", 0, "override wall_timeout_s")
	scoreCmd.Flags().IntVar(&memoryLimitFlag, "memory-limit", 0, "override memory_limit_mb")
	scoreCmd.Flags().IntVar(&cpuTimeFlag, "cpu-time", 0, "override cpu_time_s")
	scoreCmd.Flags().IntVar(&workerCountFlag, "workers", 0, "override worker_count")
	_ = scoreCmd.MarkFlagRequired("manifest")
}

func buildConfig(cmd *cobra.Command) (reward.EvaluatorConfig, error) {
	cfg := reward.DefaultEvaluatorConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("wall-timeout") {
		cfg.WallTimeoutS = wallTimeoutFlag
	}
	if cmd.Flags().Changed("memory-limit") {
		cfg.MemoryLimitMB = memoryLimitFlag
	}
	if cmd.Flags().Changed("cpu-time") {
		cfg.CPUTimeS = cpuTimeFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.WorkerCount = workerCountFlag
	}
	cfg.TelemetryEnabled = telemetryEnabled
	return cfg, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	evaluator, err := reward.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	if formatOnly {
		rewards := evaluator.ScoreFormat(manifest.Completions)
		for _, r := range rewards {
			fmt.Println(r)
		}
		return nil
	}

	ctx := context.Background()

	var rewards []float64
	if useUI && len(manifest.Completions) > 0 {
		rewards, err = scoreWithProgressUI(ctx, evaluator, manifest)
	} else {
		rewards, err = evaluator.ScoreExecution(ctx, manifest.Completions, manifest.Tests, manifest.EntryPoints)
	}
	if err != nil {
		return err
	}

	for _, r := range rewards {
		fmt.Println(r)
	}

	return printSummary(rewards, evaluator)
}

func scoreWithProgressUI(ctx context.Context, evaluator *reward.Evaluator, manifest config.BatchManifest) ([]float64, error) {
	total := len(manifest.Completions)
	p := newProgressModel(total)
	program := tea.NewProgram(p)

	done := make(chan struct{})
	evaluator.OnItemComplete = func() {
		program.Send(progressTickMsg{})
	}

	var rewards []float64
	var runErr error
	go func() {
		rewards, runErr = evaluator.ScoreExecution(ctx, manifest.Completions, manifest.Tests, manifest.EntryPoints)
		program.Send(progressDoneMsg{})
		close(done)
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("progress UI: %w", err)
	}
	<-done
	return rewards, runErr
}

func printSummary(rewards []float64, evaluator *reward.Evaluator) error {
	snap := evaluator.AuditSnapshot()

	passed := 0
	for _, r := range rewards {
		if r == 1.0 {
			passed++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Batch summary\n\n")
	fmt.Fprintf(&sb, "- **items scored**: %d\n", len(rewards))
	fmt.Fprintf(&sb, "- **rewarded (1.0)**: %d (%.1f%%)\n", passed, percent(passed, len(rewards)))
	fmt.Fprintf(&sb, "- **sandbox runs started**: %d\n", snap.Started)
	fmt.Fprintf(&sb, "- **sandbox runs completed**: %d\n", snap.Completed)
	fmt.Fprintf(&sb, "- **sandbox runs killed (timeout)**: %d\n", snap.Killed)
	fmt.Fprintf(&sb, "- **sandbox runs errored**: %d\n", snap.Errored)
	if snap.TotalTests > 0 {
		fmt.Fprintf(&sb, "- **assertions passed across batch**: %d/%d\n", snap.TotalPassed, snap.TotalTests)
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(sb.String())
		return nil
	}
	out, err := renderer.Render(sb.String())
	if err != nil {
		fmt.Print(sb.String())
		return nil
	}
	fmt.Print(out)
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
