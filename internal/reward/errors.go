package reward

import "errors"

// Error taxonomy per spec §7. Configuration and programmer errors are loud
// (returned); per-item runtime hazards never produce a Go error — they
// collapse into a 0.0 reward, see evaluator.go's evaluateSingle.
var (
	ErrInvalidConfig  = errors.New("reward: invalid evaluator configuration")
	ErrLengthMismatch = errors.New("reward: completions, tests, and entry_points must have equal length")
)
