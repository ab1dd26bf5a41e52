package engine

import "testing"

func seedArray(seed uint32, n int) [MaxSteps]uint32 {
	var seeds [MaxSteps]uint32
	for i := 0; i < n; i++ {
		seeds[i] = seed
	}
	return seeds
}

func uniformWeights(v float64, n int) [MaxSteps]float64 {
	var w [MaxSteps]float64
	for i := 0; i < n; i++ {
		w[i] = v
	}
	return w
}

func fullEligibility(n int) StepMask {
	m := NewStepMask(n)
	for i := 0; i < n; i++ {
		m.Set(i)
	}
	return m
}

func TestSelectHitsExactBudget(t *testing.T) {
	n := 32
	w := uniformWeights(0.5, n)
	seeds := seedArray(1234, n)
	for _, k := range []int{1, 3, 5, 8, 12} {
		m := SelectHits(&w, fullEligibility(n), k, &seeds, saltVoice1, n)
		if m.Count() != k {
			t.Errorf("k=%d: selected %d hits", k, m.Count())
		}
		if m.Bits()>>uint(n) != 0 {
			t.Errorf("k=%d: bits set beyond pattern length", k)
		}
	}
}

func TestSelectHitsRespectsEligibility(t *testing.T) {
	n := 32
	w := uniformWeights(0.8, n)
	seeds := seedArray(42, n)
	elig := NewStepMask(n)
	for step := 0; step < n; step += 4 {
		elig.Set(step)
	}
	m := SelectHits(&w, elig, 5, &seeds, saltVoice1, n)
	if m.Count() != 5 {
		t.Fatalf("selected %d hits, want 5", m.Count())
	}
	for step := 0; step < n; step++ {
		if m.IsSet(step) && !elig.IsSet(step) {
			t.Errorf("ineligible step %d selected", step)
		}
	}

	// Budget above the eligible count degrades to the eligible count.
	m = SelectHits(&w, elig, 20, &seeds, saltVoice1, n)
	if m.Count() != 8 {
		t.Errorf("selected %d hits from 8 eligible steps", m.Count())
	}
}

func TestSelectHitsDeterministic(t *testing.T) {
	n := 32
	var w [MaxSteps]float64
	GenerateWeights(Params{Shape: 0.4, AxisX: 0.5, AxisY: 0.5}, RolePrimary, n, &w)
	seeds := seedArray(777, n)
	a := SelectHits(&w, fullEligibility(n), 6, &seeds, saltVoice1, n)
	b := SelectHits(&w, fullEligibility(n), 6, &seeds, saltVoice1, n)
	if a.Bits() != b.Bits() {
		t.Fatal("same inputs selected different steps")
	}
}

func TestSelectHitsSeedSensitive(t *testing.T) {
	n := 32
	w := uniformWeights(0.5, n)
	masks := make(map[uint64]bool)
	for _, seed := range []uint32{0x1111, 0x2222, 0x3333, 0x4444} {
		seeds := seedArray(seed, n)
		m := SelectHits(&w, fullEligibility(n), 5, &seeds, saltVoice1, n)
		masks[m.Bits()] = true
	}
	if len(masks) < 3 {
		t.Fatalf("4 seeds produced only %d distinct selections", len(masks))
	}
}

func TestSelectHitsFavorsWeight(t *testing.T) {
	// One overwhelming weight should always be picked.
	n := 16
	w := uniformWeights(0, n) // floored to the epsilon weight
	w[5] = 1.0
	for _, seed := range []uint32{1, 2, 3, 4, 5, 6, 7, 8} {
		seeds := seedArray(seed, n)
		m := SelectHits(&w, fullEligibility(n), 1, &seeds, saltVoice1, n)
		if !m.IsSet(5) {
			t.Errorf("seed %d: k=1 did not pick the dominant step", seed)
		}
	}
}
