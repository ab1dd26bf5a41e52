package engine

import "math/bits"

// StepMask is a fixed-width bitset over the steps of one bar. All
// accessors bounds-check against the mask's length, so an out-of-range
// step index is a silent no-op on write and false on read rather than a
// stray bit in someone else's step.
type StepMask struct {
	bits uint64
	n    int
}

// NewStepMask returns an empty mask over n steps (clamped to MaxSteps).
func NewStepMask(n int) StepMask {
	if n < 0 {
		n = 0
	}
	if n > MaxSteps {
		n = MaxSteps
	}
	return StepMask{n: n}
}

// Len returns the number of steps the mask covers.
func (m StepMask) Len() int { return m.n }

// IsSet reports whether step fires.
func (m StepMask) IsSet(step int) bool {
	if step < 0 || step >= m.n {
		return false
	}
	return m.bits&(1<<uint(step)) != 0
}

// Set marks step as firing.
func (m *StepMask) Set(step int) {
	if step < 0 || step >= m.n {
		return
	}
	m.bits |= 1 << uint(step)
}

// Clear unmarks step.
func (m *StepMask) Clear(step int) {
	if step < 0 || step >= m.n {
		return
	}
	m.bits &^= 1 << uint(step)
}

// Count returns the number of firing steps.
func (m StepMask) Count() int { return bits.OnesCount64(m.bits) }

// Bits returns the raw bit pattern (bit i = step i).
func (m StepMask) Bits() uint64 { return m.bits }

// Overlaps reports whether any step fires in both masks.
func (m StepMask) Overlaps(o StepMask) bool { return m.bits&o.bits != 0 }

// Diff returns the number of steps on which the two masks disagree.
func (m StepMask) Diff(o StepMask) int { return bits.OnesCount64(m.bits ^ o.bits) }
