package sensor

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// A02YY protocol: write the trigger byte, the module answers with a
// four byte frame 0xFF 0xFF <high> <low> carrying the distance in mm.
const (
	triggerByte = 0x55
	frameHeader = 0xFF
	frameLen    = 4

	// DefaultBaudRate is the fixed module baud rate.
	DefaultBaudRate = 9600

	// sampleDeadline bounds how long Sample waits for a frame. The
	// control loop relies on this: a missing echo becomes an invalid
	// Reading, never a stalled loop.
	sampleDeadline = 300 * time.Millisecond

	// readTimeout slices the deadline into short port reads so the
	// deadline check runs even when no bytes arrive.
	readTimeout = 50 * time.Millisecond
)

// A02YY reads distances from an A02YY ultrasonic module over a serial
// port. Distances outside [minMm, maxMm] (inside the sensor dead zone,
// or past the tank bottom) are reported as invalid.
type A02YY struct {
	port  serial.Port
	minMm int
	maxMm int
}

// OpenA02YY opens the serial port and configures it for the module.
func OpenA02YY(portName string, baudRate, minMm, maxMm int) (*A02YY, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	return &A02YY{port: port, minMm: minMm, maxMm: maxMm}, nil
}

// Sample triggers one measurement and waits for the response frame.
// A missing or unparseable response within the deadline yields an
// invalid Reading and a nil error; only port-level failures return an
// error.
func (s *A02YY) Sample() (Reading, error) {
	// Drop stale bytes from a previous cycle so the frame we parse
	// belongs to this trigger.
	if err := s.port.ResetInputBuffer(); err != nil {
		return Reading{}, fmt.Errorf("reset input buffer: %w", err)
	}
	if _, err := s.port.Write([]byte{triggerByte}); err != nil {
		return Reading{}, fmt.Errorf("write trigger: %w", err)
	}

	deadline := time.Now().Add(sampleDeadline)
	buf := make([]byte, 0, 2*frameLen)
	chunk := make([]byte, frameLen)

	for time.Now().Before(deadline) {
		n, err := s.port.Read(chunk)
		if err != nil {
			return Reading{}, fmt.Errorf("read sensor: %w", err)
		}
		if n == 0 {
			continue // read timeout slice, check deadline again
		}
		buf = append(buf, chunk[:n]...)
		if d, ok := parseFrame(buf); ok {
			return checkRange(d, s.minMm, s.maxMm), nil
		}
	}

	// No echo.
	return Reading{}, nil
}

// Close closes the serial port.
func (s *A02YY) Close() error {
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("close serial port: %w", err)
	}
	return nil
}

// parseFrame scans buf for a complete 0xFF 0xFF <high> <low> frame and
// returns the distance in mm. Garbage before the header is skipped.
func parseFrame(buf []byte) (int, bool) {
	for i := 0; i+frameLen <= len(buf); i++ {
		if buf[i] == frameHeader && buf[i+1] == frameHeader {
			return int(buf[i+2])<<8 | int(buf[i+3]), true
		}
	}
	return 0, false
}

// checkRange marks distances outside [minMm, maxMm] invalid while
// keeping the raw value for logging.
func checkRange(distanceMm, minMm, maxMm int) Reading {
	return Reading{
		DistanceMm: distanceMm,
		Valid:      distanceMm >= minMm && distanceMm <= maxMm,
	}
}
