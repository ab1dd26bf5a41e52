package engine

import "testing"

func maskOf(n int, steps ...int) StepMask {
	m := NewStepMask(n)
	for _, s := range steps {
		m.Set(s)
	}
	return m
}

func TestFindGapsWrapAround(t *testing.T) {
	var gaps [MaxSteps]gapRun
	// A single hit mid-pattern leaves one wrap-around gap.
	count := findGaps(maskOf(16, 5), 16, &gaps)
	if count != 1 {
		t.Fatalf("gap count = %d, want 1", count)
	}
	if gaps[0].start != 6 || gaps[0].length != 15 {
		t.Fatalf("gap = %+v, want start=6 length=15", gaps[0])
	}
}

func TestFindGapsInterior(t *testing.T) {
	var gaps [MaxSteps]gapRun
	count := findGaps(maskOf(16, 0, 4, 8, 12), 16, &gaps)
	if count != 4 {
		t.Fatalf("gap count = %d, want 4", count)
	}
	for i := 0; i < count; i++ {
		if gaps[i].length != 3 {
			t.Errorf("gap %d length = %d, want 3", i, gaps[i].length)
		}
	}
}

func TestFindGapsEmptyMask(t *testing.T) {
	var gaps [MaxSteps]gapRun
	count := findGaps(NewStepMask(32), 32, &gaps)
	if count != 1 || gaps[0].length != 32 {
		t.Fatalf("empty mask: got %d gaps, first %+v", count, gaps[0])
	}
}

func TestComplementDisjoint(t *testing.T) {
	n := 32
	var w [MaxSteps]float64
	GenerateWeights(Params{Shape: 0.4, AxisX: 0.5, AxisY: 0.5}, RoleSecondary, n, &w)
	primary := maskOf(n, 0, 7, 13, 20, 26)
	for _, drift := range []float64{0, 0.2, 0.5, 0.9} {
		for _, seed := range []uint32{1, 2, 3, 4} {
			seeds := seedArray(seed, n)
			sec := PlaceComplement(primary, &w, 5, drift, &seeds, n)
			if sec.Overlaps(primary) {
				t.Errorf("drift=%v seed=%d: secondary overlaps primary", drift, seed)
			}
		}
	}
}

func TestComplementBudgetCap(t *testing.T) {
	n := 32
	w := uniformWeights(0.5, n)
	primary := maskOf(n, 0, 16)
	for _, budget := range []int{1, 3, 6, 10} {
		seeds := seedArray(99, n)
		sec := PlaceComplement(primary, &w, budget, 0.5, &seeds, n)
		if sec.Count() > budget {
			t.Errorf("budget=%d: placed %d hits", budget, sec.Count())
		}
		if sec.Count() == 0 {
			t.Errorf("budget=%d: placed nothing", budget)
		}
	}
}

func TestComplementSeedSensitiveBothPaths(t *testing.T) {
	n := 32
	var w [MaxSteps]float64
	GenerateWeights(Params{Shape: 0.3, AxisX: 0.5, AxisY: 0.5}, RoleSecondary, n, &w)
	primary := maskOf(n, 0, 10, 21)
	// Both the even-spacing path (low drift) and the weighted path
	// (high drift) must react to the seed.
	for _, drift := range []float64{0.0, 0.9} {
		masks := make(map[uint64]bool)
		for _, seed := range []uint32{0xa1, 0xb2, 0xc3, 0xd4} {
			seeds := seedArray(seed, n)
			sec := PlaceComplement(primary, &w, 4, drift, &seeds, n)
			masks[sec.Bits()] = true
		}
		if len(masks) < 3 {
			t.Errorf("drift=%v: 4 seeds produced only %d distinct placements", drift, len(masks))
		}
	}
}

func TestComplementEveryGapSeeded(t *testing.T) {
	n := 32
	w := uniformWeights(0.5, n)
	primary := maskOf(n, 0, 8, 16, 24)
	seeds := seedArray(5, n)
	sec := PlaceComplement(primary, &w, 4, 0.5, &seeds, n)
	// Four equal gaps, budget 4: each gap gets exactly one hit.
	var gaps [MaxSteps]gapRun
	count := findGaps(primary, n, &gaps)
	for i := 0; i < count; i++ {
		hits := 0
		for off := 0; off < gaps[i].length; off++ {
			if sec.IsSet((gaps[i].start + off) % n) {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("gap %d received %d hits, want 1", i, hits)
		}
	}
}
