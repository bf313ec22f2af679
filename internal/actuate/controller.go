// Package actuate maps severities to LED blink patterns and relay
// commands, and drives blink timing independently of the sampling
// cadence. Time is injectable; the package never sleeps.
package actuate

import (
	"time"

	"github.com/sweeney/tank-monitor/internal/gpio"
	"github.com/sweeney/tank-monitor/internal/logic"
)

// Pattern is an LED blink pattern.
type Pattern int

const (
	PatternOff Pattern = iota
	PatternSlow
	PatternFast
)

// String returns the pattern name used in logs.
func (p Pattern) String() string {
	switch p {
	case PatternOff:
		return "OFF"
	case PatternSlow:
		return "SLOW_BLINK"
	case PatternFast:
		return "FAST_BLINK"
	}
	return "UNKNOWN"
}

// Config holds actuation parameters. The blink durations are
// half-periods: the time the LED spends in each state. RelayCloseAt is
// the severity at or above which the relay is commanded closed.
type Config struct {
	SlowBlink    time.Duration
	FastBlink    time.Duration
	RelayCloseAt logic.Severity
}

// Controller drives the status LED and safety relay.
//
// Severity mapping (with the default RelayCloseAt of BOTTOM):
//
//	NORMAL  LED off         relay open
//	LOW     slow blink      relay open
//	BOTTOM  fast blink      relay closed
//
// Blink toggling happens in Tick, which the control loop calls far
// more often than it samples, so the blink rate is not quantized to
// the measure interval. The relay changes synchronously with severity
// transitions in Apply, and the line is only written when the command
// actually changes.
type Controller struct {
	led   gpio.Output
	relay gpio.Output
	cfg   Config

	pattern    Pattern
	ledOn      bool
	lastToggle time.Time

	relayClosed  bool
	relayWritten bool
}

// New creates a controller. Both outputs are expected to start low
// (LED off, relay open); the first Apply establishes the relay command.
func New(led, relay gpio.Output, cfg Config) *Controller {
	return &Controller{led: led, relay: relay, cfg: cfg}
}

// Apply updates the actuation state for a new severity. A pattern
// change resets the blink phase and turns the LED on, so the new rate
// starts cleanly instead of inheriting stale toggle timing.
func (c *Controller) Apply(sev logic.Severity, now time.Time) error {
	if p := patternFor(sev); p != c.pattern {
		c.pattern = p
		c.lastToggle = now
		c.ledOn = p != PatternOff
		if err := c.led.Set(c.ledOn); err != nil {
			return err
		}
	}

	closed := sev >= c.cfg.RelayCloseAt
	if !c.relayWritten || closed != c.relayClosed {
		c.relayWritten = true
		c.relayClosed = closed
		if err := c.relay.Set(closed); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances blink timing. While a blink pattern is active, the LED
// flips whenever a half-period has elapsed since the last toggle.
func (c *Controller) Tick(now time.Time) error {
	if c.pattern == PatternOff {
		return nil
	}
	if now.Sub(c.lastToggle) < c.interval() {
		return nil
	}
	c.ledOn = !c.ledOn
	c.lastToggle = now
	return c.led.Set(c.ledOn)
}

// Pattern returns the active blink pattern.
func (c *Controller) Pattern() Pattern {
	return c.pattern
}

// RelayClosed reports the current relay command.
func (c *Controller) RelayClosed() bool {
	return c.relayClosed
}

func (c *Controller) interval() time.Duration {
	if c.pattern == PatternFast {
		return c.cfg.FastBlink
	}
	return c.cfg.SlowBlink
}

func patternFor(sev logic.Severity) Pattern {
	switch sev {
	case logic.SeverityLow:
		return PatternSlow
	case logic.SeverityBottom:
		return PatternFast
	}
	return PatternOff
}
