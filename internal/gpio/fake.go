package gpio

// FakeOutput is a test double that records every level written to it.
type FakeOutput struct {
	// Value is the most recently written level.
	Value bool

	// Writes records every Set call in order.
	Writes []bool

	// SetError, if set, will be returned by Set()
	SetError error
}

// NewFakeOutput creates a FakeOutput driven low.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the written level.
func (f *FakeOutput) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Value = on
	f.Writes = append(f.Writes, on)
	return nil
}

// Toggles counts how many writes changed the level, starting from low.
func (f *FakeOutput) Toggles() int {
	n := 0
	prev := false
	for _, w := range f.Writes {
		if w != prev {
			n++
			prev = w
		}
	}
	return n
}

// Reset clears the recorded writes.
func (f *FakeOutput) Reset() {
	f.Value = false
	f.Writes = nil
}
