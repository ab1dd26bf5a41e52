package engine

import (
	"math"
	"testing"
)

func TestGenerateWeightsDeterministic(t *testing.T) {
	p := Params{Energy: 0.5, Shape: 0.37, AxisX: 0.7, AxisY: 0.3}
	var a, b [MaxSteps]float64
	GenerateWeights(p, RolePrimary, 32, &a)
	GenerateWeights(p, RolePrimary, 32, &b)
	if a != b {
		t.Fatal("same parameters produced different weight arrays")
	}
}

func TestWeightsInRange(t *testing.T) {
	shapes := []float64{0, 0.28, 0.3, 0.32, 0.5, 0.68, 0.7, 0.72, 1}
	axes := []float64{0, 0.5, 1}
	for _, shape := range shapes {
		for _, x := range axes {
			for _, y := range axes {
				for role := RolePrimary; role <= RoleAux; role++ {
					var w [MaxSteps]float64
					GenerateWeights(Params{Shape: shape, AxisX: x, AxisY: y}, role, 32, &w)
					for step := 0; step < 32; step++ {
						if w[step] < 0 || w[step] > 1 {
							t.Fatalf("shape=%v x=%v y=%v role=%d step=%d: weight %v out of range",
								shape, x, y, role, step, w[step])
						}
					}
				}
			}
		}
	}
}

func TestAxisYPeakyFavorsDownbeat(t *testing.T) {
	var w [MaxSteps]float64
	GenerateWeights(Params{Shape: 0, AxisX: 0.5, AxisY: 1}, RolePrimary, 32, &w)
	if w[0] <= w[1] {
		t.Errorf("peaky AXIS-Y: downbeat %v should dominate offbeat %v", w[0], w[1])
	}
	if w[0] <= w[2] {
		t.Errorf("peaky AXIS-Y: downbeat %v should dominate eighth %v", w[0], w[2])
	}
}

func TestAxisXBidirectional(t *testing.T) {
	p := Params{Shape: 0.5, AxisY: 0.5}
	var lo, hi [MaxSteps]float64
	p.AxisX = 0
	GenerateWeights(p, RolePrimary, 32, &lo)
	p.AxisX = 1
	GenerateWeights(p, RolePrimary, 32, &hi)

	// Positive bias lifts the offbeat and drops the downbeat; negative
	// bias does the reverse. Step 1 is an offbeat, step 0 the downbeat.
	if hi[1] <= lo[1] {
		t.Errorf("offbeat: want AxisX=1 weight %v > AxisX=0 weight %v", hi[1], lo[1])
	}
	if hi[0] >= lo[0] {
		t.Errorf("downbeat: want AxisX=1 weight %v < AxisX=0 weight %v", hi[0], lo[0])
	}
}

func TestShapeCrossfadeContinuity(t *testing.T) {
	// Sweeping across the stable/syncopated boundary in small
	// increments must never move any single weight by more than the
	// crossfade slope allows.
	const steps = 8
	p := Params{AxisX: 0.5, AxisY: 0.5}
	var prev, cur [MaxSteps]float64
	p.Shape = 0.28
	GenerateWeights(p, RolePrimary, 32, &prev)
	for i := 1; i <= steps; i++ {
		p.Shape = 0.28 + 0.04*float64(i)/steps
		GenerateWeights(p, RolePrimary, 32, &cur)
		for step := 0; step < 32; step++ {
			if d := math.Abs(cur[step] - prev[step]); d > 0.2 {
				t.Fatalf("shape=%v step=%d: weight jumped by %v", p.Shape, step, d)
			}
		}
		prev = cur
	}
}

func TestSecondaryBackbeatEmphasis(t *testing.T) {
	var w [MaxSteps]float64
	GenerateWeights(Params{Shape: 0, AxisX: 0.5, AxisY: 0.5}, RoleSecondary, 32, &w)
	if w[8] <= w[0] {
		t.Errorf("secondary stable profile: backbeat %v should beat downbeat %v", w[8], w[0])
	}
}
