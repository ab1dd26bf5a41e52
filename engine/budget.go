package engine

import "math"

// Hit budget and eligibility. The budget is how many hits a voice aims
// for this bar; eligibility is which steps it may use at all.

// Budget anchor points: target hit count as a fraction of pattern
// length at the zone boundary energies. Piecewise-linear between
// anchors, so the count never steps down as energy rises.
var budgetAnchors = [...]struct {
	energy float64
	frac   float64 // of pattern length; minimum 1 hit applies below
}{
	{0.00, 0},      // floor of 1 hit enforced separately
	{0.20, 1.0 / 10},
	{0.50, 1.0 / 6},
	{0.75, 1.0 / 4},
	{1.00, 1.0 / 3},
}

func baseBudget(energy float64, n int) float64 {
	fn := float64(n)
	for i := 1; i < len(budgetAnchors); i++ {
		a, b := budgetAnchors[i-1], budgetAnchors[i]
		if energy <= b.energy {
			t := (energy - a.energy) / (b.energy - a.energy)
			lo := math.Max(1, a.frac*fn)
			hi := math.Max(1, b.frac*fn)
			return lerp(lo, hi, t)
		}
	}
	return math.Max(1, budgetAnchors[len(budgetAnchors)-1].frac*fn)
}

// SHAPE multiplier endpoints per role: stable trends sparser, wild
// denser, with the secondary voice diverging harder in the wild zone so
// the two voices read differently as SHAPE climbs. Tunable feel
// constants, not correctness constants.
var shapeMultEnds = [NumVoices][2]float64{
	RolePrimary:   {0.80, 1.15},
	RoleSecondary: {0.85, 1.25},
	RoleAux:       {0.90, 1.20},
}

func shapeMultiplier(shape float64, role Role) float64 {
	ws, wy, ww := shapeBlend(shape)
	ends := shapeMultEnds[role]
	return ws*ends[0] + wy*1.0 + ww*ends[1]
}

// Overall role density relative to the primary voice.
var roleScale = [NumVoices]float64{
	RolePrimary:   1.0,
	RoleSecondary: 0.8,
	RoleAux:       0.7,
}

// HitBudget returns the target hit count for a voice, before guard
// rails. Monotone non-decreasing in energy, clamped to [1, 2n/3].
func HitBudget(p Params, n int, role Role) int {
	raw := baseBudget(p.Energy, n) * shapeMultiplier(p.Shape, role) * roleScale[role]
	k := int(math.Round(raw))
	if k < 1 {
		k = 1
	}
	if max := n * 2 / 3; k > max {
		k = max
	}
	return k
}

// Eligibility returns the steps a voice is allowed to fire on at the
// given zone. Low zones pin voices to the strong grid; higher zones and
// higher SHAPE open up the off-positions.
func Eligibility(zone Zone, shape float64, n int, role Role) StepMask {
	m := NewStepMask(n)
	for step := 0; step < n; step++ {
		if stepEligible(zone, shape, step, role) {
			m.Set(step)
		}
	}
	return m
}

func stepEligible(zone Zone, shape float64, step int, role Role) bool {
	class := posClass(step)
	switch zone {
	case ZoneMinimal:
		if role == RoleAux {
			// Aux lives on the eighth grid even when sparse.
			return class != classOffbeat
		}
		return class == classDownbeat || class == classQuarter
	case ZoneGroove:
		if class != classOffbeat {
			return true
		}
		// Odd 16ths unlock as SHAPE leaves the stable zone.
		return shape > 0.40
	case ZoneBuild:
		if class != classOffbeat {
			return true
		}
		return shape > shapeStableEnd
	default: // ZonePeak
		return true
	}
}
