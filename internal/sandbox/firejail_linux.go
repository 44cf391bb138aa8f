//go:build linux

package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"rewardforge/internal/telemetry"
)

var testResultsPattern = regexp.MustCompile(`TESTS_PASSED:(\d+)/(\d+)`)

// FirejailRunner launches firejail the same way the Rust original's
// run_sandboxed_tests did: --private, --private-dev, --net=none, --x11=none,
// --nodbus, rlimit-as/cpu/nproc/fsize, python3 -u <tempfile>, stdout piped,
// stderr discarded, empty PYTHONPATH. Grounded on
// theRebelliousNerd-codenerd/internal/tactile/platform_linux.go's
// FirejailExecutor.buildFirejailArgs, narrowed to this one invocation shape.
type FirejailRunner struct {
	firejailPath string
	pythonPath   string

	detectOnce sync.Once
	available  bool
}

// NewFirejailRunner returns a runner that probes for firejail on PATH on
// first use. Detection is lazy and cached, mirroring the teacher's
// detectFirejail one-shot check.
func NewFirejailRunner() *FirejailRunner {
	return &FirejailRunner{pythonPath: "python3"}
}

func (r *FirejailRunner) detect() {
	r.detectOnce.Do(func() {
		path, err := exec.LookPath("firejail")
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := exec.CommandContext(ctx, path, "--version").Run(); err != nil {
			return
		}
		r.firejailPath = path
		r.available = true
	})
}

// IsAvailable reports whether firejail was found and responds to --version.
func (r *FirejailRunner) IsAvailable() bool {
	r.detect()
	return r.available
}

// Run materialises program into a temp .py file and executes it inside
// firejail, enforcing limits, then parses the TESTS_PASSED:P/T marker.
func (r *FirejailRunner) Run(ctx context.Context, program string, limits Limits) (*RunResult, error) {
	log := telemetry.Get(telemetry.CategorySandbox)

	if len(strings.TrimSpace(program)) == 0 {
		return &RunResult{}, nil
	}

	r.detect()
	if !r.available {
		return nil, fmt.Errorf("%w: firejail not found on PATH", ErrSandboxUnavailable)
	}

	tmp, err := os.CreateTemp("", "rewardforge-*.py")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(program); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: %v", ErrTempIO, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempIO, err)
	}

	memoryLimitBytes := int64(limits.MemoryLimitMB) * 1_000_000
	cpuTime := limits.CPUTimeS
	if cpuTime <= 0 {
		cpuTime = 1
	}

	args := []string{
		"--quiet",
		"--private",
		"--private-dev",
		"--net=none",
		"--x11=none",
		"--nodbus",
		fmt.Sprintf("--rlimit-as=%d", memoryLimitBytes),
		fmt.Sprintf("--rlimit-cpu=%d", cpuTime),
		"--rlimit-nproc=10",
		"--rlimit-fsize=10000000",
		r.pythonPath,
		"-u",
		tmpPath,
	}

	timeout := time.Duration(limits.WallTimeoutS) * time.Second
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, r.firejailPath, args...)
	cmd.Env = append(os.Environ(), "PYTHONPATH=")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdoutBuf bytes.Buffer
	stdout := &limitedWriter{w: &stdoutBuf, max: 1 << 20}
	cmd.Stdout = stdout
	cmd.Stderr = nil // discarded, matching Stdio::null() in the original

	start := time.Now()
	log.Debug("sandbox start", map[string]interface{}{"timeout_s": limits.WallTimeoutS})

	runErr := cmd.Run()
	duration := time.Since(start)

	if execCtx.Err() == context.DeadlineExceeded {
		killProcessGroup(cmd)
		log.Warn("sandbox timeout", map[string]interface{}{"duration_ms": duration.Milliseconds()})
		return &RunResult{}, nil
	}

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// Spawn/wait failure distinct from a non-zero exit code.
			return nil, fmt.Errorf("%w: %v", ErrChildWait, runErr)
		}
	}

	exitCode := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}

	passed, total := parseTestResults(stdoutBuf.String())
	result := &RunResult{
		Passed:    passed,
		Total:     total,
		AllPassed: exitCode == 0 && passed == total && total > 0,
	}
	log.Debug("sandbox complete", map[string]interface{}{
		"passed": passed, "total": total, "exit_code": exitCode, "duration_ms": duration.Milliseconds(),
	})
	return result, nil
}

func parseTestResults(output string) (passed, total int) {
	m := testResultsPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, 0
	}
	p, err1 := strconv.Atoi(m[1])
	t, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return p, t
}

// killProcessGroup kills the child and its whole process group, bounding
// the blast radius of a forkbomb under --rlimit-nproc. Adapted from the
// teacher's tactile.killProcessGroup (platform_unix.go).
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	// Run starts the child with Setpgid, so its process group id is its pid.
	// The group is signalled by that id because the child itself has
	// usually been reaped by cmd.Run by the time this is called.
	pid := cmd.Process.Pid
	_ = syscall.Kill(-pid, syscall.SIGKILL)
	_ = cmd.Process.Kill()
	_, _ = cmd.Process.Wait()
}
