//go:build !linux

package gpio

import "errors"

// RealOutputs is not available on non-Linux platforms.
type RealOutputs struct{}

// NewRealOutputs returns an error on non-Linux platforms.
func NewRealOutputs(pinLED, pinRelay int) (*RealOutputs, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// LED is not implemented on non-Linux platforms.
func (o *RealOutputs) LED() Output { return unsupported{} }

// Relay is not implemented on non-Linux platforms.
func (o *RealOutputs) Relay() Output { return unsupported{} }

// Close is not implemented on non-Linux platforms.
func (o *RealOutputs) Close() error { return nil }

type unsupported struct{}

func (unsupported) Set(bool) error {
	return errors.New("gpio: not supported")
}
