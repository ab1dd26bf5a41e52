package engine

// Phrase-end fills: on the last bar of a phrase the aux voice hands the
// bar's tail over to a burst of fill triggers. Density follows ENERGY,
// regularity follows SHAPE (even spacing, then spaced-with-jitter, then
// random), collisions resolve to the nearest empty step, and triggers
// landing next to a primary hit are velocity-ducked so the fill
// decorates the pattern instead of masking it.

const (
	minFillTriggers = 2
	maxFillTriggers = 12

	// SHAPE boundaries for the fill's own regularity zones.
	fillShapeEvenEnd   = 0.30
	fillShapeSpacedEnd = 0.70

	fillBaseVelocity  = 0.65
	fillVelocityBonus = 0.35
	fillDuckFactor    = 0.30
)

const (
	saltFillJitter   = 0x46494C31 // "FIL1"
	saltFillRandom   = 0x46494C32 // "FIL2"
	saltFillVelocity = 0x46494C33 // "FIL3"
)

// fillTrigger is one placed fill hit, step relative to the zone start.
type fillTrigger struct {
	step     int
	velocity float64
}

// fillBurst is the pre-sized result of one fill generation.
type fillBurst struct {
	triggers [maxFillTriggers]fillTrigger
	count    int
	start    int
	duration int
}

// fillZone returns the fill window: the last quarter of the bar.
func fillZone(n int) (start, duration int) {
	duration = n / 4
	return n - duration, duration
}

// nearestEmpty finds the closest unused slot to step, searching left
// then right at growing distance. Returns -1 when the zone is full.
func nearestEmpty(step, duration int, used uint64) int {
	step = ((step % duration) + duration) % duration
	if used&(1<<uint(step)) == 0 {
		return step
	}
	for off := 1; off < duration; off++ {
		left := (step - off + duration) % duration
		if used&(1<<uint(left)) == 0 {
			return left
		}
		right := (step + off) % duration
		if used&(1<<uint(right)) == 0 {
			return right
		}
	}
	return -1
}

// nearPrimary reports whether a primary hit lies within window steps of
// the fill-relative step.
func nearPrimary(step, start int, primary StepMask, window, n int) bool {
	abs := (start + step) % n
	for off := -window; off <= window; off++ {
		check := ((abs+off)%n + n) % n
		if primary.IsSet(check) {
			return true
		}
	}
	return false
}

// spacedWithJitter nudges the even position by a seeded amount that
// grows as SHAPE crosses the middle zone.
func spacedWithJitter(i, count, duration int, shape float64, seed uint32) int {
	base := i * duration / count
	norm := clamp01((shape - fillShapeEvenEnd) / (fillShapeSpacedEnd - fillShapeEvenEnd))
	jitter := hashToUnit(hashStep(seed^saltFillJitter, i)) - 0.5
	pos := base + int(jitter*norm*2.5)
	return ((pos % duration) + duration) % duration
}

// GenerateFill places the phrase-end burst. Trigger count is
// 2 + floor(ENERGY*10), capped by the zone; base velocity scales
// 0.65-1.0 with ENERGY and ducks to 30% within one step of a primary
// hit. Deterministic in all inputs.
func GenerateFill(energy, shape float64, primary StepMask, n int, seed uint32, burst *fillBurst) {
	energy = clamp01(energy)
	shape = clamp01(shape)
	burst.count = 0
	burst.start, burst.duration = fillZone(n)

	count := minFillTriggers + int(energy*10)
	if count > maxFillTriggers {
		count = maxFillTriggers
	}
	if count > burst.duration {
		count = burst.duration
	}

	baseVel := fillBaseVelocity + fillVelocityBonus*energy
	var used uint64
	for i := 0; i < count; i++ {
		var target int
		switch {
		case shape < fillShapeEvenEnd:
			target = i * burst.duration / count
		case shape < fillShapeSpacedEnd:
			target = spacedWithJitter(i, count, burst.duration, shape, seed)
		default:
			u := hashToUnit(hashStep(seed^saltFillRandom, i))
			target = int(u*float64(burst.duration)) % burst.duration
		}
		step := nearestEmpty(target, burst.duration, used)
		if step < 0 {
			continue
		}
		used |= 1 << uint(step)

		v := baseVel
		if nearPrimary(step, burst.start, primary, 1, n) {
			v *= fillDuckFactor
		}
		v *= 0.9 + 0.1*hashToUnit(hashStep(seed^saltFillVelocity, step))
		burst.triggers[burst.count] = fillTrigger{step: step, velocity: clamp01(v)}
		burst.count++
	}
}
