package engine

import "math"

// Weight field generation. Each voice gets a per-step desirability array
// in [0,1], a pure function of SHAPE/AXIS-X/AXIS-Y and the voice role.
// The seed never enters here; randomness comes later from the selection
// noise, which keeps parameter sweeps continuous.

// SHAPE zone boundaries with crossfade windows. Inside a window the two
// neighboring profiles are linearly blended so a sweep never jumps.
const (
	shapeStableEnd = 0.28
	shapeXfade1End = 0.32
	shapeSyncEnd   = 0.68
	shapeXfade2End = 0.72
)

// Fixed seed for the wild profile's positional noise. Not a user seed:
// the chaotic texture must be the same for the same SHAPE.
const wildProfileSeed uint32 = 0x57494c44 // "WILD"

// Metric position classes on the 16th-note grid.
const (
	classDownbeat = iota // step 0 of each 16-step bar
	classQuarter         // every 4th step
	classEighth          // remaining even steps
	classOffbeat         // odd steps
)

func posClass(step int) int {
	switch {
	case step%16 == 0:
		return classDownbeat
	case step%4 == 0:
		return classQuarter
	case step%2 == 0:
		return classEighth
	default:
		return classOffbeat
	}
}

// metricWeight is the position-importance lookup shared with velocity
// and drift stability.
func metricWeight(step int) float64 {
	switch posClass(step) {
	case classDownbeat:
		return 1.0
	case classQuarter:
		return 0.75
	case classEighth:
		return 0.5
	default:
		return 0.25
	}
}

// Stable profile: humanized four-on-the-floor weighting, strong metric
// hierarchy. Indexed [role][class].
var stableProfile = [NumVoices][4]float64{
	RolePrimary:   {1.00, 0.78, 0.32, 0.08},
	RoleSecondary: {0.25, 0.70, 0.55, 0.12},
	RoleAux:       {0.15, 0.45, 0.85, 0.30},
}

// Syncopated profile: downbeats suppressed, anticipations boosted.
var syncProfile = [NumVoices][4]float64{
	RolePrimary:   {0.40, 0.55, 0.70, 0.50},
	RoleSecondary: {0.20, 0.50, 0.75, 0.55},
	RoleAux:       {0.15, 0.40, 0.80, 0.60},
}

func stableWeight(role Role, step int) float64 {
	w := stableProfile[role][posClass(step)]
	// Secondary leans on the backbeat.
	if role == RoleSecondary && step%16 == 8 {
		w = math.Min(1.0, w*1.5)
	}
	// Aux favors off-beat eighths.
	if role == RoleAux && step%4 == 2 {
		w = math.Min(1.0, w*1.15)
	}
	return w
}

func syncWeight(role Role, step int) float64 {
	w := syncProfile[role][posClass(step)]
	// Anticipation: the 16th just before a quarter.
	if step%4 == 3 {
		if role == RolePrimary {
			w = math.Max(w, 0.85)
		} else {
			w = math.Max(w, 0.90)
		}
	}
	return w
}

func wildWeight(role Role, step int) float64 {
	noise := stepNoise(wildProfileSeed+uint32(role), step)
	// Faint metric floor so even full chaos keeps a trace of pulse.
	return clamp01(0.15*metricWeight(step) + 0.85*(0.10+0.90*noise))
}

// shapeBlend returns the interpolation weights (stable, sync, wild) for
// a SHAPE value, crossfaded at the zone boundaries.
func shapeBlend(shape float64) (ws, wy, ww float64) {
	switch {
	case shape < shapeStableEnd:
		return 1, 0, 0
	case shape < shapeXfade1End:
		t := (shape - shapeStableEnd) / (shapeXfade1End - shapeStableEnd)
		return 1 - t, t, 0
	case shape < shapeSyncEnd:
		return 0, 1, 0
	case shape < shapeXfade2End:
		t := (shape - shapeSyncEnd) / (shapeXfade2End - shapeSyncEnd)
		return 0, 1 - t, t
	default:
		return 0, 0, 1
	}
}

// GenerateWeights fills w[0:n] with the voice's weight field for the
// given parameters. Entries beyond n are zeroed.
func GenerateWeights(p Params, role Role, n int, w *[MaxSteps]float64) {
	ws, wy, ww := shapeBlend(p.Shape)
	bias := (p.AxisX - 0.5) * 2 // [-1,1], + = anticipatory

	for step := 0; step < n; step++ {
		v := 0.0
		if ws > 0 {
			v += ws * stableWeight(role, step)
		}
		if wy > 0 {
			v += wy * syncWeight(role, step)
		}
		if ww > 0 {
			v += ww * wildWeight(role, step)
		}

		// AXIS-X: bidirectional on-beat/off-beat tilt. Off-beat
		// positions have low metric weight, so posStrength is
		// positive there and negative on strong beats.
		mw := metricWeight(step)
		posStrength := 1 - 2*mw
		v *= 1 + bias*posStrength*0.8

		// Broken-beat coupling: at high SHAPE a strong positive
		// X bias also pulls the downbeats down.
		if p.Shape > 0.6 && bias > 0.4 && posClass(step) == classDownbeat {
			v *= 1 - (bias-0.4)*(p.Shape-0.6)*2.0
		}

		// AXIS-Y: below neutral flattens toward uniform, above
		// neutral sharpens toward the strongest metric positions.
		if p.AxisY < 0.5 {
			u := (0.5 - p.AxisY) * 2
			v = lerp(v, 0.55, u*0.85)
		} else if p.AxisY > 0.5 {
			pk := (p.AxisY - 0.5) * 2
			v *= math.Pow(mw, 2*pk)
		}

		w[step] = clamp01(v)
	}
	for step := n; step < MaxSteps; step++ {
		w[step] = 0
	}
}
