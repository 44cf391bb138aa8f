package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseTestResults(t *testing.T) {
	cases := []struct {
		name       string
		output     string
		wantPassed int
		wantTotal  int
	}{
		{"no marker", "hello world\n", 0, 0},
		{"exact marker", "TESTS_PASSED:3/5\n", 3, 5},
		{"marker amid noise", "starting\nTESTS_PASSED:2/2\ndone\n", 2, 2},
		{"zero of zero", "TESTS_PASSED:0/0\n", 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			passed, total := parseTestResults(c.output)
			assert.Equal(t, c.wantPassed, passed)
			assert.Equal(t, c.wantTotal, total)
		})
	}
}

func TestFirejailRunner_EmptyProgramShortCircuits(t *testing.T) {
	r := NewFirejailRunner()
	result, err := r.Run(context.Background(), "   \n\t", Limits{WallTimeoutS: 1, MemoryLimitMB: 64, CPUTimeS: 1})
	require.NoError(t, err)
	assert.Equal(t, &RunResult{}, result)
}

func TestAuditLogger_RecordsMetrics(t *testing.T) {
	logger := NewAuditLogger()

	var seen []AuditEventType
	logger.AddCallback(func(e AuditEvent) { seen = append(seen, e.Type) })

	logger.Log(AuditEvent{Type: AuditEventStart, Timestamp: time.Now()})
	logger.Log(AuditEvent{
		Type:      AuditEventComplete,
		Timestamp: time.Now(),
		Duration:  50 * time.Millisecond,
		Result:    &RunResult{AllPassed: true, Passed: 2, Total: 2},
	})
	logger.Log(AuditEvent{Type: AuditEventKilled, Timestamp: time.Now()})

	snap := logger.Snapshot()
	assert.Equal(t, int64(1), snap.Started)
	assert.Equal(t, int64(1), snap.Completed)
	assert.Equal(t, int64(1), snap.Killed)
	assert.Equal(t, int64(2), snap.TotalPassed)
	assert.Equal(t, int64(2), snap.TotalTests)
	assert.Equal(t, []AuditEventType{AuditEventStart, AuditEventComplete, AuditEventKilled}, seen)
}

func TestLimitedWriter_TruncatesWithoutShortWrite(t *testing.T) {
	var buf bufferStub
	lw := &limitedWriter{w: &buf, max: 4}

	n, err := lw.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n) // reports full length so the child never sees a short write
	assert.True(t, lw.truncated)
	assert.Equal(t, "hell", buf.String())
}

type bufferStub struct{ data []byte }

func (b *bufferStub) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *bufferStub) String() string { return string(b.data) }
