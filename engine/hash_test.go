package engine

import "testing"

func TestHashStepNoSeedCollapse(t *testing.T) {
	// No two small seeds may produce the same noise sequence.
	const seeds = 16
	const steps = 32
	var seq [seeds][steps]uint32
	for s := 0; s < seeds; s++ {
		for step := 0; step < steps; step++ {
			seq[s][step] = hashStep(uint32(s), step)
		}
	}
	for a := 0; a < seeds; a++ {
		for b := a + 1; b < seeds; b++ {
			if seq[a] == seq[b] {
				t.Errorf("seeds %d and %d collapse to the same sequence", a, b)
			}
		}
	}
}

func TestHashToUnitRange(t *testing.T) {
	for seed := uint32(0); seed < 64; seed++ {
		for step := 0; step < 64; step++ {
			u := stepNoise(seed, step)
			if u <= 0 || u >= 1 {
				t.Fatalf("stepNoise(%d,%d) = %v, want in (0,1)", seed, step, u)
			}
		}
	}
}

func TestHashCombineDistinct(t *testing.T) {
	seen := make(map[uint32][2]uint32)
	for seed := uint32(0); seed < 8; seed++ {
		for v := uint32(0); v < 64; v++ {
			h := hashCombine(seed, v)
			if prev, ok := seen[h]; ok {
				t.Fatalf("hashCombine collision: (%d,%d) and (%d,%d)", prev[0], prev[1], seed, v)
			}
			seen[h] = [2]uint32{seed, v}
		}
	}
}

func TestGumbelFinite(t *testing.T) {
	// Endpoint-clamped noise must keep the Gumbel transform finite.
	for _, u := range []float64{hashToUnit(0), hashToUnit(0xffffffff), 0.5} {
		g := gumbel(u)
		if g != g || g > 1e6 || g < -1e6 {
			t.Errorf("gumbel(%v) = %v, want finite", u, g)
		}
	}
}
