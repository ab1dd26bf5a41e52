package engine

import "math"

// Deterministic integer hashing. Everything pseudo-random in the engine
// flows through hashStep, so a (seed, step) pair always yields the same
// value and distinct seeds never collapse to the same sequence (the
// murmur-style finalizer mixes every input bit into every output bit,
// unlike a bare XOR-with-constant).

// Per-concern salts XORed into the seed so the noise streams for
// selection, velocity, jitter and displacement are decorrelated.
const (
	saltVoice1   uint32 = 0x564f4331 // "VOC1"
	saltVoice2   uint32 = 0x564f4332 // "VOC2"
	saltVoice3   uint32 = 0x564f4333 // "VOC3"
	saltVelocity uint32 = 0x56454c4f // "VELO"
	saltJitter   uint32 = 0x4a545452 // "JTTR"
	saltDisplace uint32 = 0x4453504c // "DSPL"
	saltGap      uint32 = 0x47415053 // "GAPS"
)

// hashStep maps a (seed, step) pair to a well-mixed 32-bit value.
func hashStep(seed uint32, step int) uint32 {
	h := seed
	h ^= uint32(step)*0x9e3779b9 + (h << 6) + (h >> 2)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// hashCombine folds value into seed, boost-style, then finalizes.
func hashCombine(seed, value uint32) uint32 {
	h := seed ^ (value + 0x9e3779b9 + (seed << 6) + (seed >> 2))
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// hashToUnit maps a hash to (0,1), kept strictly off both endpoints so
// log(-log(u)) stays finite.
func hashToUnit(h uint32) float64 {
	u := float64(h>>8) / float64(1<<24)
	const eps = 1e-7
	if u < eps {
		return eps
	}
	if u > 1-eps {
		return 1 - eps
	}
	return u
}

// stepNoise is the uniform (0,1) noise stream for a (seed, step) pair.
func stepNoise(seed uint32, step int) float64 {
	return hashToUnit(hashStep(seed, step))
}

// gumbel transforms uniform noise into a Gumbel-distributed value, the
// trick that turns independent per-step draws into weighted sampling
// without replacement when combined with log-weights.
func gumbel(u float64) float64 {
	return -math.Log(-math.Log(u))
}
