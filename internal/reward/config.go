package reward

import (
	"fmt"
	"runtime"
)

// EvaluatorConfig is immutable after construction. Grounded on
// reward_evaluator.rs's EvaluatorConfig, renamed to spec §3's field names.
type EvaluatorConfig struct {
	WallTimeoutS     int  `yaml:"wall_timeout_s"`
	MemoryLimitMB    int  `yaml:"memory_limit_mb"`
	CPUTimeS         int  `yaml:"cpu_time_s"`
	WorkerCount      int  `yaml:"worker_count"`
	TelemetryEnabled bool `yaml:"telemetry_enabled"`
}

// DefaultEvaluatorConfig returns the original implementation's defaults
// (EvaluatorConfig::default() in reward_evaluator.rs), with worker_count
// resolved to the spec §6 default-evaluator value of 32.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		WallTimeoutS:  15,
		MemoryLimitMB: 512,
		CPUTimeS:      12,
		WorkerCount:   32,
	}
}

// Validate checks the invariants from spec §3. cpu_time_s > wall_timeout_s
// is only a warning (returned alongside a nil error) per spec §3's
// "violating it only triggers a warning."
func (c EvaluatorConfig) Validate() (warning string, err error) {
	if c.WallTimeoutS < 1 {
		return "", fmt.Errorf("%w: wall_timeout_s must be >= 1, got %d", ErrInvalidConfig, c.WallTimeoutS)
	}
	if c.MemoryLimitMB < 64 {
		return "", fmt.Errorf("%w: memory_limit_mb must be >= 64, got %d", ErrInvalidConfig, c.MemoryLimitMB)
	}
	if c.CPUTimeS < 1 {
		return "", fmt.Errorf("%w: cpu_time_s must be >= 1, got %d", ErrInvalidConfig, c.CPUTimeS)
	}
	if c.WorkerCount < 0 {
		return "", fmt.Errorf("%w: worker_count must be >= 1 when set, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.CPUTimeS > c.WallTimeoutS {
		warning = fmt.Sprintf("cpu_time_s (%d) exceeds wall_timeout_s (%d); the wall clock will dominate", c.CPUTimeS, c.WallTimeoutS)
	}
	return warning, nil
}

// resolvedWorkerCount returns the configured worker count, defaulting to
// the host CPU count when unset, per spec §3's "(optional integer >= 1;
// default = host CPU count)".
func (c EvaluatorConfig) resolvedWorkerCount() int {
	if c.WorkerCount > 0 {
		return c.WorkerCount
	}
	return runtime.NumCPU()
}
