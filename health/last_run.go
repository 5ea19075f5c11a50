package health

import (
	"sync"
	"time"
)

// LastRun is a Check reporting whether the most recent conformance run passed.
// It is not alive until the first run has been recorded.
type LastRun struct {
	// MaxAge, when set, marks the component dead once the last recorded run
	// is older than MaxAge, e.g. because runs hang.
	MaxAge time.Duration

	mu         sync.RWMutex
	recorded   bool
	passed     bool
	finishedAt time.Time

	// now is overridden in tests.
	now func() time.Time
}

func (l *LastRun) Name() string {
	return "last_run"
}

// IsAlive implements Check.
func (l *LastRun) IsAlive() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.recorded || !l.passed {
		return false
	}
	if l.MaxAge > 0 && l.clock().Sub(l.finishedAt) > l.MaxAge {
		return false
	}
	return true
}

// Record stores the outcome of a finished run.
func (l *LastRun) Record(passed bool, finishedAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recorded = true
	l.passed = passed
	l.finishedAt = finishedAt
}

// FinishedAt returns when the last recorded run finished, or the zero time.
func (l *LastRun) FinishedAt() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.finishedAt
}

func (l *LastRun) clock() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}
