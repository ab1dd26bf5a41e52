package engine

import "math"

// Timing stack: swing, jitter and rare step displacement, all expressed
// as signed sample offsets against the step grid. The hit mask is never
// modified here; even displacement only shifts when the trigger sounds.

// Swing caps per zone (ratio of the step pair given to the first step;
// 0.5 is straight).
func swingCapFor(zone Zone) float64 {
	switch zone {
	case ZoneMinimal:
		return 0.54
	case ZoneGroove:
		return 0.58
	case ZoneBuild:
		return 0.62
	default:
		return 0.66
	}
}

// Jitter budget per zone, milliseconds at full flavor.
func jitterMsFor(zone Zone) float64 {
	switch zone {
	case ZoneMinimal:
		return 1
	case ZoneGroove:
		return 3
	case ZoneBuild:
		return 6
	default:
		return 12
	}
}

// Displacement gating: probability scale and maximum shift per zone.
// Only BUILD and PEAK displace at all.
func displaceFor(zone Zone) (probScale float64, maxShift int) {
	switch zone {
	case ZoneBuild:
		return 0.20, 1
	case ZonePeak:
		return 0.40, 2
	default:
		return 0, 0
	}
}

// ComputeTiming fills out[0:n] with per-step sample offsets for the
// firing steps. flavor is the SHAPE-derived humanization intensity;
// elig limits where displacement may land.
func ComputeTiming(hits, elig StepMask, flavor float64, zone Zone, seeds *[MaxSteps]uint32, salt uint32, n int, stepSamples, sampleRate float64, out *[MaxSteps]int) {
	swing := math.Min(0.50+flavor*0.16, swingCapFor(zone))
	jitterMax := flavor * jitterMsFor(zone) * sampleRate / 1000
	probScale, maxShift := displaceFor(zone)

	for step := 0; step < n; step++ {
		out[step] = 0
		if !hits.IsSet(step) {
			continue
		}
		offset := 0.0

		// Swing delays the off-sixteenths by the excess over straight.
		if step%2 == 1 {
			offset += (swing - 0.5) * stepSamples
		}

		// Seeded bipolar jitter.
		if jitterMax > 0 {
			offset += (stepNoise(seeds[step]^salt^saltJitter, step)*2 - 1) * jitterMax
		}

		// Rare displacement: relocate the trigger a whole step or
		// two, only at high flavor, only onto an eligible empty
		// position.
		if maxShift > 0 {
			h := hashStep(seeds[step]^salt^saltDisplace, step)
			if hashToUnit(h) < probScale*flavor {
				shift := displacementShift(h, maxShift)
				target := ((step+shift)%n + n) % n
				if elig.IsSet(target) && !hits.IsSet(target) {
					offset += float64(shift) * stepSamples
				}
			}
		}

		// A trigger never strays more than two and a half steps.
		limit := stepSamples * 2.5
		out[step] = int(clamp(offset, -limit, limit))
	}
	for step := n; step < MaxSteps; step++ {
		out[step] = 0
	}
}

// displacementShift derives a nonzero shift in [-max, max] from spare
// hash bits.
func displacementShift(h uint32, max int) int {
	shift := 1 + int((h>>24)%uint32(max))
	if h&(1<<31) != 0 {
		return -shift
	}
	return shift
}
