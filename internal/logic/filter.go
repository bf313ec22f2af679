package logic

// MovingAverage smooths raw distance samples over a fixed window.
// It keeps a ring of the last N valid samples and a running sum, so an
// update is O(1) regardless of the window size. The capacity is fixed
// at construction; resizing requires a restart.
type MovingAverage struct {
	ring  []int
	next  int
	count int
	sum   int
}

// NewMovingAverage creates a filter over the last window valid samples.
// The window must be >= 1; configuration validation enforces this
// before the filter is built.
func NewMovingAverage(window int) *MovingAverage {
	if window < 1 {
		window = 1
	}
	return &MovingAverage{ring: make([]int, window)}
}

// Update feeds one raw sample into the filter. Invalid samples are a
// no-op so a sensor dropout never corrupts the average: the previous
// filtered value is simply retained.
func (m *MovingAverage) Update(s Sample) {
	if !s.Valid {
		return
	}
	if m.count == len(m.ring) {
		m.sum -= m.ring[m.next]
	} else {
		m.count++
	}
	m.ring[m.next] = s.DistanceMm
	m.sum += s.DistanceMm
	m.next = (m.next + 1) % len(m.ring)
}

// Value returns the current filtered distance in mm. The second return
// is false until the first valid sample has been seen. Before the
// window fills, the average is over the samples seen so far.
func (m *MovingAverage) Value() (int, bool) {
	if m.count == 0 {
		return 0, false
	}
	return m.sum / m.count, true
}

// Window returns the fixed filter capacity.
func (m *MovingAverage) Window() int {
	return len(m.ring)
}
