package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts hint session outcomes and event handling time.
type Metrics struct {
	activations atomic.Uint64
	failures    atomic.Uint64
	jumps       atomic.Uint64
	cancels     atomic.Uint64
	disruptions atomic.Uint64
	reloads     atomic.Uint64

	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	eventMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordActivation records an Activate call and whether it succeeded.
func (m *Metrics) RecordActivation(err error) {
	if err != nil {
		m.failures.Add(1)
		return
	}
	m.activations.Add(1)
}

// RecordJump records a committed jump.
func (m *Metrics) RecordJump() {
	m.jumps.Add(1)
}

// RecordCancel records a session ended by the user without a jump.
func (m *Metrics) RecordCancel() {
	m.cancels.Add(1)
}

// RecordDisruption records a session ended by a focus, viewport or
// reload change.
func (m *Metrics) RecordDisruption() {
	m.disruptions.Add(1)
}

// RecordReload records a document or configuration reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.eventCount.Add(1)
	m.eventTotalNs.Add(ns)

	for {
		old := m.eventMaxNs.Load()
		if ns <= old {
			break
		}
		if m.eventMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	eventCount := m.eventCount.Load()
	var avgEventNs int64
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}

	return MetricsSnapshot{
		Uptime:      time.Since(m.startTime),
		Activations: m.activations.Load(),
		Failures:    m.failures.Load(),
		Jumps:       m.jumps.Load(),
		Cancels:     m.cancels.Load(),
		Disruptions: m.disruptions.Load(),
		Reloads:     m.reloads.Load(),
		EventCount:  eventCount,
		AvgEventNs:  avgEventNs,
		MaxEventNs:  m.eventMaxNs.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime      time.Duration
	Activations uint64
	Failures    uint64
	Jumps       uint64
	Cancels     uint64
	Disruptions uint64
	Reloads     uint64
	EventCount  uint64
	AvgEventNs  int64
	MaxEventNs  int64
}

// JumpRate returns the percentage of activations that ended in a jump.
func (s MetricsSnapshot) JumpRate() float64 {
	if s.Activations == 0 {
		return 0
	}
	return float64(s.Jumps) / float64(s.Activations) * 100
}

// String summarizes the snapshot for the log.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("%d activations (%d failed), %d jumps (%.0f%%), %d cancelled, %d disrupted, %d reloads, %d events (avg %s, max %s)",
		s.Activations, s.Failures, s.Jumps, s.JumpRate(), s.Cancels, s.Disruptions, s.Reloads,
		s.EventCount, time.Duration(s.AvgEventNs), time.Duration(s.MaxEventNs))
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
