package dispatcher

import (
	"sync"
	"time"

	"github.com/Krazal/WebEdit/internal/dispatcher/handler"
)

// Metrics counts dispatches per command and per outcome.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*ActionMetrics
	outcomes map[handler.ResultStatus]uint64

	total    uint64
	panics   uint64
	duration time.Duration
}

// ActionMetrics holds the counters of one command.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
}

func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*ActionMetrics),
		outcomes: make(map[handler.ResultStatus]uint64),
	}
}

// RecordDispatch adds one finished command.
func (m *Metrics) RecordDispatch(name string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	m.duration += d
	m.outcomes[status]++

	am, ok := m.commands[name]
	if !ok {
		am = &ActionMetrics{Name: name}
		m.commands[name] = am
	}
	am.DispatchCount++
	am.TotalDuration += d
	am.MaxDuration = max(am.MaxDuration, d)
	am.LastStatus = status
	if status == handler.StatusError {
		am.ErrorCount++
	}
}

// RecordPanic counts a recovered handler panic. The dispatch itself is
// recorded separately as an error.
func (m *Metrics) RecordPanic(string) {
	m.mu.Lock()
	m.panics++
	m.mu.Unlock()
}

// ActionStats returns a copy of the counters for name, or nil when the
// command never ran.
func (m *Metrics) ActionStats(name string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am, ok := m.commands[name]
	if !ok {
		return nil
	}
	c := *am
	return &c
}

// MetricsSnapshot is a point-in-time view of the totals.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalErrors     uint64
	TotalPanics     uint64
	// Rejections counts commands that ended without effect, such as a
	// Replace Tag on an empty line.
	Rejections uint64
	// Suggestions counts commands that opened a suggestion list.
	Suggestions     uint64
	Cancellations   uint64
	AverageDuration time.Duration
	ActionCount     int
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalDispatches: m.total,
		TotalErrors:     m.outcomes[handler.StatusError],
		TotalPanics:     m.panics,
		Rejections:      m.outcomes[handler.StatusNoOp],
		Suggestions:     m.outcomes[handler.StatusPending],
		Cancellations:   m.outcomes[handler.StatusCancelled],
		ActionCount:     len(m.commands),
	}
	if m.total > 0 {
		s.AverageDuration = m.duration / time.Duration(m.total)
	}
	return s
}
