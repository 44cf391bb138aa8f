package sandbox

import "context"

// Runner executes one self-contained program under resource isolation.
// Implemented per-platform (FirejailRunner on linux; an unavailable stub
// elsewhere), and satisfied by a fake in tests that don't want to depend on
// a real firejail/python3 installation.
type Runner interface {
	IsAvailable() bool
	Run(ctx context.Context, program string, limits Limits) (*RunResult, error)
}

// Default returns the platform's Runner implementation.
func Default() Runner {
	return NewFirejailRunner()
}
