package engine

// DRIFT: pattern evolution via a dual-seed scheme. The pattern seed is
// fixed until an explicit reseed and defines the pattern's character;
// the phrase seed is rederived from it at every phrase boundary. Each
// step uses whichever seed its metric stability earns it: at DRIFT=0
// everything is locked to the pattern seed, and as DRIFT rises the weak
// positions defect to the evolving phrase seed first, the bar downbeat
// last.

// DefaultPatternSeed is the host-facing default for fresh installs.
// The engine itself treats every 32-bit value, zero included, as a
// distinct pattern seed.
const DefaultPatternSeed uint32 = 0x12345678

// Step stability by metric class, strongest first.
const (
	stabilityDownbeat  = 1.0
	stabilityHalfBar   = 0.9
	stabilityQuarter   = 0.7
	stabilityEighth    = 0.5
	stabilitySixteenth = 0.3
	stabilityOffbeat   = 0.1
)

// StepStability returns the fixed stability constant for a step.
func StepStability(step, n int) float64 {
	if step == 0 {
		return stabilityDownbeat
	}
	switch {
	case step%16 == 0:
		return stabilityHalfBar
	case step%8 == 0:
		return stabilityQuarter
	case step%4 == 0:
		return stabilityEighth
	case step%2 == 0:
		return stabilitySixteenth
	default:
		return stabilityOffbeat
	}
}

// DriftState is the only engine state that outlives a bar. It is owned
// by whoever drives the engine and mutated only at bar/phrase
// boundaries.
type DriftState struct {
	PatternSeed uint32
	PhraseSeed  uint32
	PhraseCount uint32

	reseedPending bool
	pendingSeed   uint32
}

// NewDriftState initializes the seed pair. The seed is used verbatim;
// the step hash mixes a zero seed as well as any other.
func NewDriftState(seed uint32) DriftState {
	return DriftState{
		PatternSeed: seed,
		PhraseSeed:  hashCombine(seed, 0),
	}
}

// SeedFor selects the governing seed for a step: the locked pattern
// seed while the step's stability holds against DRIFT, the evolving
// phrase seed once it doesn't. At drift=1 only the bar downbeat
// (stability 1.0) stays locked.
func (d *DriftState) SeedFor(drift float64, step, n int) uint32 {
	if StepStability(step, n) >= drift {
		return d.PatternSeed
	}
	return d.PhraseSeed
}

// LockedRatio reports what fraction of steps use the locked seed at the
// given drift. Useful for display, not used in generation.
func LockedRatio(drift float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	locked := 0
	for step := 0; step < n; step++ {
		if StepStability(step, n) >= drift {
			locked++
		}
	}
	return float64(locked) / float64(n)
}

// EndPhrase rolls the phrase seed and applies any queued reseed. Call
// once per phrase boundary.
func (d *DriftState) EndPhrase() {
	if d.reseedPending {
		d.applyReseed(d.pendingSeed)
		d.reseedPending = false
	}
	d.PhraseCount++
	d.PhraseSeed = hashCombine(d.PatternSeed, d.PhraseCount)
}

// RequestReseed queues a reseed for the next phrase boundary so the
// pattern doesn't lurch mid-phrase. A zero seed derives a fresh one
// from the current state.
func (d *DriftState) RequestReseed(seed uint32) {
	d.reseedPending = true
	d.pendingSeed = seed
}

// Reseed changes the pattern seed immediately.
func (d *DriftState) Reseed(seed uint32) {
	d.applyReseed(seed)
	d.reseedPending = false
}

func (d *DriftState) applyReseed(seed uint32) {
	if seed == 0 {
		seed = hashCombine(d.PatternSeed, d.PhraseCount+0x5eed)
		if seed == 0 {
			seed = DefaultPatternSeed
		}
	}
	d.PatternSeed = seed
	d.PhraseCount = 0
	d.PhraseSeed = hashCombine(seed, 0)
}
