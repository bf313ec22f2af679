// Package sensor reads raw distance measurements from an ultrasonic
// ranging module. The real implementation talks to an A02YY module over
// a serial port. The fake implementation allows testing without
// hardware.
package sensor

// Reading is a single raw distance measurement. Valid is false when the
// sensor produced no usable reading: no echo arrived within the
// deadline, or the distance fell inside the dead zone or past the tank
// bottom. DistanceMm may still carry the rejected raw value for
// logging.
type Reading struct {
	DistanceMm int
	Valid      bool
}

// Sampler produces one raw reading per call. Implementations must
// return promptly: a reading that does not arrive within a bounded
// deadline is reported as an invalid Reading, not by blocking.
type Sampler interface {
	Sample() (Reading, error)
}
