package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/keynorm/internal/input/key"
)

// Metrics counts normalized key events and config reloads.
type Metrics struct {
	// Events by action
	eventCount   atomic.Uint64
	pressCount   atomic.Uint64
	repeatCount  atomic.Uint64
	releaseCount atomic.Uint64

	// Events carrying text
	textCount      atomic.Uint64
	composingCount atomic.Uint64

	// Handling time
	inputTotalNs atomic.Int64
	inputMaxNs   atomic.Int64

	// Config reloads
	reloadCount   atomic.Uint64
	reloadFailed  atomic.Uint64
	lastReloadNs  atomic.Int64
	startUnixNano atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.startUnixNano.Store(time.Now().UnixNano())
	return m
}

// RecordEvent records one key event and the time taken to handle it.
func (m *Metrics) RecordEvent(ev key.Event, duration time.Duration) {
	m.eventCount.Add(1)
	switch ev.Action {
	case key.ActionPress:
		m.pressCount.Add(1)
	case key.ActionRepeat:
		m.repeatCount.Add(1)
	case key.ActionRelease:
		m.releaseCount.Add(1)
	}
	if ev.UTF8 != "" {
		m.textCount.Add(1)
	}
	if ev.Composing {
		m.composingCount.Add(1)
	}

	ns := duration.Nanoseconds()
	m.inputTotalNs.Add(ns)
	for {
		old := m.inputMaxNs.Load()
		if ns <= old {
			break
		}
		if m.inputMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordReload records a config reload attempt. A non-nil err counts
// as a failure.
func (m *Metrics) RecordReload(err error) {
	m.reloadCount.Add(1)
	if err != nil {
		m.reloadFailed.Add(1)
		return
	}
	m.lastReloadNs.Store(time.Now().UnixNano())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	eventCount := m.eventCount.Load()

	var avgInputNs int64
	if eventCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(eventCount)
	}

	var lastReload time.Time
	if ns := m.lastReloadNs.Load(); ns != 0 {
		lastReload = time.Unix(0, ns)
	}

	return MetricsSnapshot{
		Uptime:         time.Since(time.Unix(0, m.startUnixNano.Load())),
		EventCount:     eventCount,
		PressCount:     m.pressCount.Load(),
		RepeatCount:    m.repeatCount.Load(),
		ReleaseCount:   m.releaseCount.Load(),
		TextCount:      m.textCount.Load(),
		ComposingCount: m.composingCount.Load(),
		AvgInputTimeNs: avgInputNs,
		MaxInputTimeNs: m.inputMaxNs.Load(),
		ReloadCount:    m.reloadCount.Load(),
		ReloadFailed:   m.reloadFailed.Load(),
		LastReload:     lastReload,
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.eventCount.Store(0)
	m.pressCount.Store(0)
	m.repeatCount.Store(0)
	m.releaseCount.Store(0)
	m.textCount.Store(0)
	m.composingCount.Store(0)
	m.inputTotalNs.Store(0)
	m.inputMaxNs.Store(0)
	m.reloadCount.Store(0)
	m.reloadFailed.Store(0)
	m.lastReloadNs.Store(0)
	m.startUnixNano.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	EventCount     uint64
	PressCount     uint64
	RepeatCount    uint64
	ReleaseCount   uint64
	TextCount      uint64
	ComposingCount uint64
	AvgInputTimeNs int64
	MaxInputTimeNs int64
	ReloadCount    uint64
	ReloadFailed   uint64
	LastReload     time.Time
}

// TextRate returns the percentage of events that produced text.
func (s MetricsSnapshot) TextRate() float64 {
	if s.EventCount == 0 {
		return 0
	}
	return float64(s.TextCount) / float64(s.EventCount) * 100
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

// Metrics returns the application's metrics instance.
func (a *App) Metrics() *Metrics {
	return a.metrics
}
