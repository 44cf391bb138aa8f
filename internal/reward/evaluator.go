package reward

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"rewardforge/internal/sandbox"
	"rewardforge/internal/telemetry"
)

const typingPrelude = "from typing import List, Optional, Dict, Set, Tuple, Any\n\n"

// Evaluator is the public façade (spec §4.6). Construct once per
// configuration; internally it owns a sandbox.Runner and participates in
// the process-wide worker pool singleton.
type Evaluator struct {
	config EvaluatorConfig
	runner sandbox.Runner
	audit  *sandbox.AuditLogger

	// OnItemComplete, if set, is called after each item's reward is
	// computed (from whichever worker goroutine computed it). Used by the
	// CLI's optional progress UI; never required for correctness.
	OnItemComplete func()
}

// NewEvaluator validates config and, on first construction anywhere in the
// process, sizes the global worker pool. Subsequent constructions reuse the
// existing pool (spec §4.6, §9).
func NewEvaluator(config EvaluatorConfig) (*Evaluator, error) {
	warning, err := config.Validate()
	if err != nil {
		return nil, err
	}
	// Telemetry is process-wide and initialised once; an earlier
	// telemetry.Initialize call (such as the CLI's) takes precedence.
	if config.TelemetryEnabled {
		_ = telemetry.Initialize("", true)
	}
	log := telemetry.Get(telemetry.CategoryEvaluator)
	if warning != "" {
		log.Warn(warning, nil)
	}

	InitialisePoolOnce(config.resolvedWorkerCount())

	return &Evaluator{
		config: config,
		runner: sandbox.Default(),
		audit:  sandbox.NewAuditLogger(),
	}, nil
}

// AuditSnapshot exposes accumulated execution metrics for CLI reporting.
func (e *Evaluator) AuditSnapshot() sandbox.ExecutionMetricsSnapshot {
	return e.audit.Snapshot()
}

// ScoreFormat delegates to the stateless format checker (spec §4.2).
func (e *Evaluator) ScoreFormat(completions []string) []float64 {
	return ScoreFormat(completions)
}

// ScoreExecution runs the full extract -> validate -> wrap -> sandbox
// pipeline over a batch, fanned out across the worker pool (spec §4.6, §5).
func (e *Evaluator) ScoreExecution(ctx context.Context, completions, tests, entryPoints []string) ([]float64, error) {
	if len(completions) != len(tests) || len(completions) != len(entryPoints) {
		return nil, fmt.Errorf("%w: completions=%d tests=%d entry_points=%d",
			ErrLengthMismatch, len(completions), len(tests), len(entryPoints))
	}

	rewards := make([]float64, len(completions))

	err := currentPool().runBounded(ctx, len(completions), func(ctx context.Context, i int) error {
		rewards[i] = e.evaluateSingle(ctx, completions[i], tests[i], entryPoints[i])
		if e.OnItemComplete != nil {
			e.OnItemComplete()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

// evaluateSingle implements spec §4.6's per-item step order exactly.
// Per-item runtime hazards never return an error — they fall through to
// 0.0, per the propagation asymmetry in spec §7.
func (e *Evaluator) evaluateSingle(ctx context.Context, completion, test, entryPoint string) float64 {
	requestID := uuid.NewString()

	if test == "" || test == "null" {
		return 0.0
	}

	code := ExtractCode(completion)
	if strings.TrimSpace(code) == "" {
		return 0.0
	}

	codeWithPrelude := typingPrelude + code

	if !ValidateEntryPoint(codeWithPrelude, entryPoint) {
		return 0.0
	}

	wrappedTests := WrapTestsForCompleteExecution(test, entryPoint)
	fullProgram := codeWithPrelude + "\n\n" + wrappedTests

	limits := sandbox.Limits{
		WallTimeoutS:  e.config.WallTimeoutS,
		MemoryLimitMB: e.config.MemoryLimitMB,
		CPUTimeS:      e.config.CPUTimeS,
	}

	start := time.Now()
	e.audit.Log(sandbox.AuditEvent{Type: sandbox.AuditEventStart, Timestamp: start, RequestID: requestID})

	result, err := e.runner.Run(ctx, fullProgram, limits)
	duration := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		telemetry.Get(telemetry.CategoryEvaluator).Warn("execution error", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		e.audit.Log(sandbox.AuditEvent{Type: sandbox.AuditEventError, Timestamp: time.Now(), RequestID: requestID, Duration: duration, Err: err})
		return 0.0
	}

	e.audit.Log(sandbox.AuditEvent{Type: sandbox.AuditEventComplete, Timestamp: time.Now(), RequestID: requestID, Duration: duration, Result: result})

	if result.AllPassed {
		return 1.0
	}
	return 0.0
}

// Package-level default-evaluator singleton, mirroring bindings.rs's
// DEFAULT_EVALUATOR: Lazy<RewardEvaluator> and spec §6 item 4.
var (
	defaultEvaluator     *Evaluator
	defaultEvaluatorOnce sync.Once
	defaultEvaluatorErr  error
)

func defaultInstance() (*Evaluator, error) {
	defaultEvaluatorOnce.Do(func() {
		defaultEvaluator, defaultEvaluatorErr = NewEvaluator(DefaultEvaluatorConfig())
	})
	return defaultEvaluator, defaultEvaluatorErr
}

// DefaultScoreFormat scores format reward (spec §6 item 4). Format scoring
// is stateless, so this does not construct the process-wide default
// evaluator.
func DefaultScoreFormat(completions []string) []float64 {
	return ScoreFormat(completions)
}

// DefaultScoreExecution scores execution reward using the process-wide
// default evaluator (spec §6 item 4).
func DefaultScoreExecution(ctx context.Context, completions, tests, entryPoints []string) ([]float64, error) {
	ev, err := defaultInstance()
	if err != nil {
		return nil, err
	}
	return ev.ScoreExecution(ctx, completions, tests, entryPoints)
}
