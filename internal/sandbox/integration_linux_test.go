//go:build integration && linux

package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These exercise a real firejail + python3 installation and are excluded
// from the default test run (go test ./...) via the integration build tag,
// consistent with spec §A.4's CommandRunner seam policy.

func TestFirejailRunner_PassingProgram(t *testing.T) {
	r := NewFirejailRunner()
	if !r.IsAvailable() {
		t.Skip("firejail not installed")
	}

	program := "print('TESTS_PASSED:2/2')\nexit(0)\n"
	result, err := r.Run(context.Background(), program, Limits{WallTimeoutS: 5, MemoryLimitMB: 128, CPUTimeS: 5})
	require.NoError(t, err)
	assert.True(t, result.AllPassed)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, 2, result.Total)
}

func TestFirejailRunner_TimeoutLeavesNoChild(t *testing.T) {
	r := NewFirejailRunner()
	if !r.IsAvailable() {
		t.Skip("firejail not installed")
	}

	start := time.Now()
	result, err := r.Run(context.Background(), "while True:\n    pass\n", Limits{WallTimeoutS: 1, MemoryLimitMB: 64, CPUTimeS: 1})
	require.NoError(t, err)
	assert.False(t, result.AllPassed)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestFirejailRunner_MemoryLimitKills(t *testing.T) {
	r := NewFirejailRunner()
	if !r.IsAvailable() {
		t.Skip("firejail not installed")
	}

	program := "x = bytearray(10 * 1024 * 1024 * 1024)\nprint('TESTS_PASSED:1/1')\n"
	result, err := r.Run(context.Background(), program, Limits{WallTimeoutS: 5, MemoryLimitMB: 128, CPUTimeS: 5})
	require.NoError(t, err)
	assert.False(t, result.AllPassed)
}
