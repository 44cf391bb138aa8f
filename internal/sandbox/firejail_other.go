//go:build !linux

package sandbox

import (
	"context"
	"fmt"
)

// FirejailRunner is a stub outside Linux: firejail is Linux-only (it wraps
// seccomp/namespaces), mirroring the teacher's platform_darwin.go and
// platform_windows.go, which likewise have no Firejail path and fall back
// to a different executor or report unavailability. This module has no
// Docker/namespace fallback in scope, so non-Linux hosts get a hard
// SandboxUnavailable at first use, per spec §6's "absence of either is a
// hard configuration error at first use."
type FirejailRunner struct{}

func NewFirejailRunner() *FirejailRunner { return &FirejailRunner{} }

func (r *FirejailRunner) IsAvailable() bool { return false }

func (r *FirejailRunner) Run(ctx context.Context, program string, limits Limits) (*RunResult, error) {
	return nil, fmt.Errorf("%w: firejail sandboxing is only implemented on linux", ErrSandboxUnavailable)
}
