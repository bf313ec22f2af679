package sensor

import "errors"

// FakeSampler is a test double that returns scripted readings.
type FakeSampler struct {
	// Readings contains scripted readings to return.
	// Each call to Sample() consumes the next one.
	Readings []Reading

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// SampleError, if set, will be returned by Sample()
	SampleError error
}

// NewFakeSampler creates a FakeSampler with the given readings.
func NewFakeSampler(readings []Reading) *FakeSampler {
	return &FakeSampler{Readings: readings}
}

// Sample returns the next scripted reading.
// If readings are exhausted, returns the last one repeatedly.
func (f *FakeSampler) Sample() (Reading, error) {
	if f.SampleError != nil {
		return Reading{}, f.SampleError
	}

	if len(f.Readings) == 0 {
		return Reading{}, errors.New("no readings configured")
	}

	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}

	return r, nil
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the sampler to the beginning of its readings.
func (f *FakeSampler) Reset() {
	f.index = 0
	f.Closed = false
}
