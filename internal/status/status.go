// Package status provides a thread-safe status tracker for the
// tank-monitor daemon. The control loop writes to it every cycle; the
// startup, shutdown and heartbeat log payloads are rendered from its
// snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/tank-monitor/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	MeasureIntervalMs int64
	TickMs            int64
	HeartbeatMs       int64
	Window            int
	SerialPort        string
	RelayCloseAt      string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Severity  logic.Severity
	LevelMm   int
	HaveLevel bool
	Samples   int // raw samples attempted
	Dropouts  int // samples with no valid reading
	Counts    logic.EventCounts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RecordSample counts one sampling attempt; invalid readings are
// counted as dropouts.
func (t *Tracker) RecordSample(valid bool) {
	t.mu.Lock()
	t.snap.Samples++
	if !valid {
		t.snap.Dropouts++
	}
	t.mu.Unlock()
}

// SetLevel records the current filtered water level and severity.
// Called from the loop after every completed classification.
func (t *Tracker) SetLevel(levelMm int, sev logic.Severity) {
	t.mu.Lock()
	t.snap.LevelMm = levelMm
	t.snap.HaveLevel = true
	t.snap.Severity = sev
	t.mu.Unlock()
}

// CountTransition records that the given severity was entered.
func (t *Tracker) CountTransition(to logic.Severity) {
	t.mu.Lock()
	t.snap.Counts.Count(to)
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
