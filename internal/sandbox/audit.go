package sandbox

import (
	"sync"
	"time"
)

// AuditLogger fans out AuditEvents to registered callbacks and keeps a
// running ExecutionMetrics snapshot. Adapted from the teacher's
// tactile.AuditLogger, with the Mangle-fact export (ToFacts) dropped — this
// module has no Datalog kernel to feed.
type AuditLogger struct {
	mu        sync.RWMutex
	callbacks []func(AuditEvent)
	metrics   *ExecutionMetrics
}

func NewAuditLogger() *AuditLogger {
	return &AuditLogger{metrics: NewExecutionMetrics()}
}

func (l *AuditLogger) AddCallback(cb func(AuditEvent)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callbacks = append(l.callbacks, cb)
}

func (l *AuditLogger) Log(event AuditEvent) {
	l.mu.RLock()
	callbacks := append([]func(AuditEvent){}, l.callbacks...)
	l.mu.RUnlock()

	l.metrics.RecordEvent(event)
	for _, cb := range callbacks {
		cb(event)
	}
}

func (l *AuditLogger) Snapshot() ExecutionMetricsSnapshot {
	return l.metrics.Snapshot()
}

// ExecutionMetrics accumulates counters across a batch run.
type ExecutionMetrics struct {
	mu            sync.Mutex
	started       int64
	completed     int64
	killed        int64
	errored       int64
	totalPassed   int64
	totalTests    int64
	totalDuration time.Duration
}

func NewExecutionMetrics() *ExecutionMetrics { return &ExecutionMetrics{} }

func (m *ExecutionMetrics) RecordEvent(event AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case AuditEventStart:
		m.started++
	case AuditEventComplete:
		m.completed++
		m.totalDuration += event.Duration
		if event.Result != nil {
			m.totalPassed += int64(event.Result.Passed)
			m.totalTests += int64(event.Result.Total)
		}
	case AuditEventKilled:
		m.killed++
	case AuditEventError:
		m.errored++
	}
}

// ExecutionMetricsSnapshot is an immutable point-in-time read of the counters.
type ExecutionMetricsSnapshot struct {
	Started       int64
	Completed     int64
	Killed        int64
	Errored       int64
	TotalPassed   int64
	TotalTests    int64
	TotalDuration time.Duration
}

func (m *ExecutionMetrics) Snapshot() ExecutionMetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ExecutionMetricsSnapshot{
		Started:       m.started,
		Completed:     m.completed,
		Killed:        m.killed,
		Errored:       m.errored,
		TotalPassed:   m.totalPassed,
		TotalTests:    m.totalTests,
		TotalDuration: m.totalDuration,
	}
}
