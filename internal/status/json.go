package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details. LevelMm is null until the
// filter has produced its first value.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Severity      string     `json:"severity"`
	LevelMm       *int       `json:"level_mm"`
	Samples       int        `json:"samples"`
	Dropouts      int        `json:"dropouts"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"severity_counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of severity transition counts.
type CountsJSON struct {
	Normal int `json:"normal"`
	Low    int `json:"low"`
	Bottom int `json:"bottom"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	MeasureIntervalMs int64  `json:"measure_interval_ms"`
	TickMs            int64  `json:"tick_ms"`
	HeartbeatMs       int64  `json:"heartbeat_ms"`
	Window            int    `json:"moving_average_window"`
	SerialPort        string `json:"serial_port"`
	RelayCloseAt      string `json:"relay_close_at"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Severity:      snap.Severity.String(),
		Samples:       snap.Samples,
		Dropouts:      snap.Dropouts,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Normal: snap.Counts.Normal,
			Low:    snap.Counts.Low,
			Bottom: snap.Counts.Bottom,
		},
		Config: ConfigJSON{
			MeasureIntervalMs: snap.Config.MeasureIntervalMs,
			TickMs:            snap.Config.TickMs,
			HeartbeatMs:       snap.Config.HeartbeatMs,
			Window:            snap.Config.Window,
			SerialPort:        snap.Config.SerialPort,
			RelayCloseAt:      snap.Config.RelayCloseAt,
		},
	}
	if snap.HaveLevel {
		level := snap.LevelMm
		inner.LevelMm = &level
	}
	return inner
}

// FormatStatusEvent returns the JSON status payload logged for system
// events (STARTUP, SHUTDOWN, HEARTBEAT).
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
