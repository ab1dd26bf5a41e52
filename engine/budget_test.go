package engine

import "testing"

func TestBudgetMonotonicInEnergy(t *testing.T) {
	for role := RolePrimary; role <= RoleAux; role++ {
		for _, shape := range []float64{0, 0.3, 0.5, 0.7, 1} {
			prev := 0
			for e := 0.0; e <= 1.0; e += 0.01 {
				k := HitBudget(Params{Energy: e, Shape: shape}, 32, role)
				if k < prev {
					t.Fatalf("role=%d shape=%v: budget dropped from %d to %d at energy=%v",
						role, shape, prev, k, e)
				}
				prev = k
			}
		}
	}
}

func TestBudgetBounds(t *testing.T) {
	for _, n := range []int{16, 24, 32, 64} {
		for _, e := range []float64{0, 0.2, 0.5, 0.75, 1} {
			for _, shape := range []float64{0, 0.5, 1} {
				for role := RolePrimary; role <= RoleAux; role++ {
					k := HitBudget(Params{Energy: e, Shape: shape}, n, role)
					if k < 1 {
						t.Errorf("n=%d e=%v shape=%v role=%d: budget %d < 1", n, e, shape, role, k)
					}
					if k > n*2/3 {
						t.Errorf("n=%d e=%v shape=%v role=%d: budget %d > %d", n, e, shape, role, k, n*2/3)
					}
				}
			}
		}
	}
}

func TestShapeMultiplierDivergence(t *testing.T) {
	// Wild zone: the secondary voice densifies faster than the primary.
	if shapeMultiplier(1, RoleSecondary) <= shapeMultiplier(1, RolePrimary) {
		t.Error("secondary multiplier should exceed primary in the wild zone")
	}
	// Stable zone trends sparser for both.
	if shapeMultiplier(0, RolePrimary) >= 1 {
		t.Error("primary multiplier should be below 1 in the stable zone")
	}
	// Syncopated zone is neutral.
	if m := shapeMultiplier(0.5, RolePrimary); m != 1 {
		t.Errorf("syncopated multiplier = %v, want 1", m)
	}
}

func TestEligibilityByZone(t *testing.T) {
	tests := []struct {
		zone  Zone
		shape float64
		role  Role
		step  int
		want  bool
	}{
		{ZoneMinimal, 0, RolePrimary, 0, true},   // downbeat
		{ZoneMinimal, 0, RolePrimary, 4, true},   // quarter
		{ZoneMinimal, 0, RolePrimary, 2, false},  // eighth locked out
		{ZoneMinimal, 0, RolePrimary, 1, false},  // offbeat locked out
		{ZoneMinimal, 0, RoleAux, 2, true},       // aux keeps the eighth grid
		{ZoneGroove, 0, RolePrimary, 2, true},    // eighths open
		{ZoneGroove, 0, RolePrimary, 1, false},   // odd 16ths need shape
		{ZoneGroove, 0.5, RolePrimary, 1, true},  // unlocked by shape
		{ZoneBuild, 0.1, RolePrimary, 1, false},  // still stable shape
		{ZoneBuild, 0.4, RolePrimary, 1, true},   // syncopated shape
		{ZonePeak, 0, RolePrimary, 1, true},      // everything open
	}
	for _, tc := range tests {
		m := Eligibility(tc.zone, tc.shape, 32, tc.role)
		if got := m.IsSet(tc.step); got != tc.want {
			t.Errorf("zone=%v shape=%v role=%d step=%d: eligible=%v, want %v",
				tc.zone, tc.shape, tc.role, tc.step, got, tc.want)
		}
	}
}

func TestClampLength(t *testing.T) {
	tests := []struct{ in, want int }{
		{16, 16}, {24, 24}, {32, 32}, {64, 64},
		{0, 16}, {17, 16}, {23, 24}, {48, 32},
		{60, 64}, {128, 64},
	}
	for _, tc := range tests {
		if got := ClampLength(tc.in); got != tc.want {
			t.Errorf("ClampLength(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
