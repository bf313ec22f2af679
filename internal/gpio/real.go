//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealOutputs owns the GPIO chip handle and the LED and relay lines.
// Both lines are requested from a single chip open, and released
// together on Close.
type RealOutputs struct {
	chip  *gpiocdev.Chip
	led   *gpiocdev.Line
	relay *gpiocdev.Line
}

// NewRealOutputs requests the LED and relay lines as outputs, both
// driven low initially (LED off, relay released).
func NewRealOutputs(pinLED, pinRelay int) (*RealOutputs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	ledLine, err := chip.RequestLine(pinLED, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
	}

	relayLine, err := chip.RequestLine(pinRelay, gpiocdev.AsOutput(0))
	if err != nil {
		ledLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request relay pin %d: %w", pinRelay, err)
	}

	return &RealOutputs{
		chip:  chip,
		led:   ledLine,
		relay: relayLine,
	}, nil
}

// LED returns the status LED output.
func (o *RealOutputs) LED() Output {
	return &realLine{o.led}
}

// Relay returns the safety relay output.
func (o *RealOutputs) Relay() Output {
	return &realLine{o.relay}
}

// Close drives both lines low and releases GPIO resources, so the LED
// is dark and the relay released after shutdown rather than frozen in
// whatever state the loop last commanded.
func (o *RealOutputs) Close() error {
	var errs []error

	if o.led != nil {
		if err := o.led.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED pin: %w", err))
		}
		if err := o.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	if o.relay != nil {
		if err := o.relay.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear relay pin: %w", err))
		}
		if err := o.relay.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close relay pin: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// realLine adapts a gpiocdev line to the Output interface.
type realLine struct {
	line *gpiocdev.Line
}

func (l *realLine) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := l.line.SetValue(v); err != nil {
		return fmt.Errorf("set line: %w", err)
	}
	return nil
}
