package logic

// Classifier is the hysteresis state machine that turns water levels
// into a Severity. It owns two independent latches, one per threshold
// pair. Each latch activates when the level drops below its ON
// threshold and releases when the level rises above its OFF threshold;
// levels inside the [on, off] dead band leave it unchanged, which is
// what prevents oscillation around a threshold.
//
// The combined severity is derived, not latched: BOTTOM wins whenever
// its latch is active, even if the LOW latch is active at the same
// time. The classifier is not safe for concurrent use; the control
// loop is its single owner.
type Classifier struct {
	criticalOnMm  int
	criticalOffMm int
	bottomOnMm    int
	bottomOffMm   int

	lowActive    bool
	bottomActive bool
}

// NewClassifier creates a classifier with the given threshold pairs.
// Threshold ordering (off > on for each pair, bottom on < critical on)
// is enforced by configuration validation before this is called.
func NewClassifier(criticalOnMm, criticalOffMm, bottomOnMm, bottomOffMm int) *Classifier {
	return &Classifier{
		criticalOnMm:  criticalOnMm,
		criticalOffMm: criticalOffMm,
		bottomOnMm:    bottomOnMm,
		bottomOffMm:   bottomOffMm,
	}
}

// Classify updates both latches against the given water level and
// returns the combined severity for this cycle. Both latches can flip
// in the same call (a level crashing straight through both ON
// thresholds activates both); the returned severity is still BOTTOM
// because of the dominance rule.
func (c *Classifier) Classify(levelMm int) Severity {
	c.lowActive = updateLatch(c.lowActive, levelMm, c.criticalOnMm, c.criticalOffMm)
	c.bottomActive = updateLatch(c.bottomActive, levelMm, c.bottomOnMm, c.bottomOffMm)
	return c.Current()
}

// Current returns the severity derived from the latches without
// updating them.
func (c *Classifier) Current() Severity {
	switch {
	case c.bottomActive:
		return SeverityBottom
	case c.lowActive:
		return SeverityLow
	}
	return SeverityNormal
}

// updateLatch applies the hysteresis rule for one latch: activate
// strictly below on, release strictly above off, hold inside [on, off].
func updateLatch(active bool, levelMm, onMm, offMm int) bool {
	if !active && levelMm < onMm {
		return true
	}
	if active && levelMm > offMm {
		return false
	}
	return active
}
