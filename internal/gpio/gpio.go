// Package gpio provides discrete GPIO output driving with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package gpio

// Output drives a single digital output line.
type Output interface {
	// Set drives the line high (true) or low (false).
	Set(on bool) error
}

// Default pin assignments (chip line offsets) from the reference
// deployment; overridable in configuration.
const (
	DefaultPinLED   = 15 // status LED
	DefaultPinRelay = 16 // safety relay
)
