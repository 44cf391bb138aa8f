// Package config loads EvaluatorConfig from an optional YAML file,
// layered under CLI flag overrides, in the teacher's flag > file > default
// precedence style (internal/config/config.go in the teacher repo).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rewardforge/internal/reward"
)

// Load reads an EvaluatorConfig from a YAML file. Any field absent from the
// file keeps its DefaultEvaluatorConfig value.
func Load(path string) (reward.EvaluatorConfig, error) {
	cfg := reward.DefaultEvaluatorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// BatchManifest is the on-disk shape consumed by `rewardctl score
// --manifest` and the `watch` subcommand — new CLI surface the module
// needs since, unlike the Rust original, this module ships as a
// standalone binary rather than a library embedded in a training process
// (see SPEC_FULL.md §C.3).
type BatchManifest struct {
	Completions []string `json:"completions" yaml:"completions"`
	Tests       []string `json:"tests" yaml:"tests"`
	EntryPoints []string `json:"entry_points" yaml:"entry_points"`
}

// LoadManifest reads a JSON batch manifest from path.
func LoadManifest(path string) (BatchManifest, error) {
	var m BatchManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}
