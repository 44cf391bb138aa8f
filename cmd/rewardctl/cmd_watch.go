package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"rewardforge/internal/config"
	"rewardforge/internal/reward"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory for dropped batch manifests and score them as they arrive",
	Long: `watch is new CLI surface for an RL loop that writes rollout batches to
disk rather than calling into this module as a library: each *.json file
dropped into the watched directory is treated as a batch manifest, scored,
and a sibling <name>.rewards.json is written next to it.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch for manifest files")
	watchCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML EvaluatorConfig file")
	_ = watchCmd.MarkFlagRequired("dir")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	evaluator, err := reward.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("watch %s: %w", watchDir, err)
	}

	fmt.Fprintf(os.Stderr, "watching %s for batch manifests (*.json)...\n", watchDir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") || strings.HasSuffix(event.Name, ".rewards.json") {
				continue
			}
			if err := scoreDroppedManifest(evaluator, event.Name); err != nil {
				fmt.Fprintf(os.Stderr, "error scoring %s: %v\n", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}

func scoreDroppedManifest(evaluator *reward.Evaluator, path string) error {
	manifest, err := config.LoadManifest(path)
	if err != nil {
		return err
	}

	rewards, err := evaluator.ScoreExecution(context.Background(), manifest.Completions, manifest.Tests, manifest.EntryPoints)
	if err != nil {
		return err
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".rewards.json"
	data, err := json.MarshalIndent(map[string]any{"rewards": rewards}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}
