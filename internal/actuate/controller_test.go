package actuate

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/tank-monitor/internal/gpio"
	"github.com/sweeney/tank-monitor/internal/logic"
)

func testConfig() Config {
	return Config{
		SlowBlink:    700 * time.Millisecond,
		FastBlink:    200 * time.Millisecond,
		RelayCloseAt: logic.SeverityBottom,
	}
}

func TestSeverityMapping(t *testing.T) {
	tests := []struct {
		sev         logic.Severity
		pattern     Pattern
		relayClosed bool
	}{
		{logic.SeverityNormal, PatternOff, false},
		{logic.SeverityLow, PatternSlow, false},
		{logic.SeverityBottom, PatternFast, true},
	}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.sev.String(), func(t *testing.T) {
			led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
			c := New(led, relay, testConfig())

			if err := c.Apply(tt.sev, now); err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			if c.Pattern() != tt.pattern {
				t.Errorf("pattern: got %s, want %s", c.Pattern(), tt.pattern)
			}
			if c.RelayClosed() != tt.relayClosed {
				t.Errorf("relay closed: got %v, want %v", c.RelayClosed(), tt.relayClosed)
			}
			if relay.Value != tt.relayClosed {
				t.Errorf("relay line: got %v, want %v", relay.Value, tt.relayClosed)
			}
		})
	}
}

func TestSlowBlinkTogglesTwicePer1400ms(t *testing.T) {
	// Ticking at 10ms granularity for 1400ms in LOW must toggle the LED
	// exactly twice with a 700ms half-period.
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	c := New(led, relay, testConfig())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := c.Apply(logic.SeverityLow, start); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	led.Reset() // count only toggles produced by ticking

	for ms := 10; ms <= 1400; ms += 10 {
		if err := c.Tick(start.Add(time.Duration(ms) * time.Millisecond)); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}

	if got := len(led.Writes); got != 2 {
		t.Fatalf("expected exactly 2 LED toggles, got %d (%v)", got, led.Writes)
	}
	// On at Apply, off at 700ms, on again at 1400ms.
	if led.Writes[0] != false || led.Writes[1] != true {
		t.Errorf("unexpected toggle sequence: %v", led.Writes)
	}
}

func TestFastBlinkUsesFastInterval(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	c := New(led, relay, testConfig())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Apply(logic.SeverityBottom, start)
	led.Reset()

	for ms := 10; ms <= 1000; ms += 10 {
		c.Tick(start.Add(time.Duration(ms) * time.Millisecond))
	}

	// 200ms half-period over 1000ms: toggles at 200, 400, 600, 800, 1000.
	if got := len(led.Writes); got != 5 {
		t.Errorf("expected 5 LED toggles, got %d", got)
	}
}

func TestPatternChangeResetsPhase(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	c := New(led, relay, testConfig())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Apply(logic.SeverityLow, start)

	// 600ms into the slow phase, escalate to BOTTOM. The fast pattern
	// must not inherit the stale 600ms of elapsed phase.
	at600 := start.Add(600 * time.Millisecond)
	c.Tick(at600)
	c.Apply(logic.SeverityBottom, at600)
	led.Reset()

	// 100ms after the change: only half the fast interval has elapsed
	// since the reset, so no toggle yet.
	c.Tick(at600.Add(100 * time.Millisecond))
	if len(led.Writes) != 0 {
		t.Fatalf("expected no toggle 100ms after pattern change, got %v", led.Writes)
	}

	// 200ms after the change: first fast toggle.
	c.Tick(at600.Add(200 * time.Millisecond))
	if len(led.Writes) != 1 {
		t.Errorf("expected 1 toggle 200ms after pattern change, got %d", len(led.Writes))
	}
}

func TestNoTickingWhileOff(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	c := New(led, relay, testConfig())

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Apply(logic.SeverityNormal, start)
	led.Reset()

	for ms := 10; ms <= 2000; ms += 10 {
		c.Tick(start.Add(time.Duration(ms) * time.Millisecond))
	}
	if len(led.Writes) != 0 {
		t.Errorf("LED must stay dark in NORMAL, got %d writes", len(led.Writes))
	}
}

func TestRelayWrittenOnlyOnChange(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	c := New(led, relay, testConfig())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		c.Apply(logic.SeverityLow, now.Add(time.Duration(i)*time.Second))
	}
	// One initial write establishing the open command, nothing after.
	if len(relay.Writes) != 1 {
		t.Fatalf("expected 1 relay write, got %d", len(relay.Writes))
	}

	c.Apply(logic.SeverityBottom, now.Add(10*time.Second))
	if len(relay.Writes) != 2 || relay.Value != true {
		t.Errorf("expected relay closed after BOTTOM, writes=%v", relay.Writes)
	}

	c.Apply(logic.SeverityLow, now.Add(20*time.Second))
	if len(relay.Writes) != 3 || relay.Value != false {
		t.Errorf("expected relay reopened after leaving BOTTOM, writes=%v", relay.Writes)
	}
}

func TestRelayPolicyCloseAtLow(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	cfg := testConfig()
	cfg.RelayCloseAt = logic.SeverityLow
	c := New(led, relay, cfg)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.Apply(logic.SeverityNormal, now)
	if relay.Value {
		t.Error("relay should stay open in NORMAL")
	}
	c.Apply(logic.SeverityLow, now.Add(time.Second))
	if !relay.Value {
		t.Error("relay should close at LOW under the LOW policy")
	}
}

func TestApplyPropagatesLEDError(t *testing.T) {
	led, relay := gpio.NewFakeOutput(), gpio.NewFakeOutput()
	led.SetError = errors.New("led fault")
	c := New(led, relay, testConfig())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if err := c.Apply(logic.SeverityLow, now); err == nil {
		t.Error("expected LED error to propagate")
	}
}
