// Package logic contains pure business logic for water level classification.
// This package has NO external dependencies (no serial, GPIO, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

// Severity classifies the tank fill level. The order matters:
// higher values are more severe, and BOTTOM dominates LOW when
// both hysteresis latches are active.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityLow
	SeverityBottom
)

// String returns the canonical name used in logs and config.
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "NORMAL"
	case SeverityLow:
		return "LOW"
	case SeverityBottom:
		return "BOTTOM"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a severity name (as used in configuration)
// back to a Severity.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "NORMAL":
		return SeverityNormal, true
	case "LOW":
		return SeverityLow, true
	case "BOTTOM":
		return SeverityBottom, true
	}
	return SeverityNormal, false
}

// Sample is a single raw distance measurement. Valid is false when the
// sensor produced no usable reading (no echo, or outside its range).
type Sample struct {
	DistanceMm int
	Valid      bool
}

// EventCounts tracks how many times each severity has been entered
// since startup.
type EventCounts struct {
	Normal int
	Low    int
	Bottom int
}

// Count increments the counter for the severity just entered.
func (c *EventCounts) Count(s Severity) {
	switch s {
	case SeverityNormal:
		c.Normal++
	case SeverityLow:
		c.Low++
	case SeverityBottom:
		c.Bottom++
	}
}
