package engine

import "testing"

func TestTimingSilentStepsHaveNoOffset(t *testing.T) {
	n := 32
	hits := maskOf(n, 0, 6, 17)
	seeds := seedArray(1, n)
	var out [MaxSteps]int
	ComputeTiming(hits, fullEligibility(n), 0.8, ZonePeak, &seeds, saltVoice1, n, 6000, 48000, &out)
	for step := 0; step < n; step++ {
		if !hits.IsSet(step) && out[step] != 0 {
			t.Errorf("silent step %d has offset %d", step, out[step])
		}
	}
}

func TestTimingSwingDelaysOffSixteenths(t *testing.T) {
	n := 32
	hits := maskOf(n, 0, 1, 2, 3)
	seeds := seedArray(7, n)
	var out [MaxSteps]int
	const stepSamples = 6000 // 120bpm at 48kHz
	ComputeTiming(hits, fullEligibility(n), 0.5, ZoneGroove, &seeds, saltVoice1, n, stepSamples, 48000, &out)

	// Swing at flavor 0.5 in GROOVE is capped at 0.58: off-16ths are
	// pushed 480 samples late, far beyond the 72-sample jitter budget.
	for _, step := range []int{1, 3} {
		if out[step] <= 0 {
			t.Errorf("off-sixteenth %d not delayed: offset %d", step, out[step])
		}
		if out[step] > 480+72 {
			t.Errorf("off-sixteenth %d delayed %d samples, beyond the 0.58 cap plus jitter", step, out[step])
		}
	}
	// Even steps only carry jitter.
	for _, step := range []int{0, 2} {
		if out[step] > 100 || out[step] < -100 {
			t.Errorf("even step %d offset %d exceeds jitter budget", step, out[step])
		}
	}
}

func TestTimingOffsetsBounded(t *testing.T) {
	n := 32
	seeds := seedArray(0xace, n)
	const stepSamples = 6000.0
	limit := int(stepSamples * 2.5)
	for _, zone := range []Zone{ZoneMinimal, ZoneGroove, ZoneBuild, ZonePeak} {
		for _, flavor := range []float64{0, 0.5, 1} {
			hits := maskOf(n, 0, 3, 9, 14, 22, 29)
			var out [MaxSteps]int
			ComputeTiming(hits, fullEligibility(n), flavor, zone, &seeds, saltVoice2, n, stepSamples, 48000, &out)
			for step := 0; step < n; step++ {
				if out[step] > limit || out[step] < -limit {
					t.Errorf("zone=%v flavor=%v step=%d: offset %d beyond limit", zone, flavor, step, out[step])
				}
			}
		}
	}
}

func TestTimingMinimalZoneStaysTight(t *testing.T) {
	n := 32
	hits := maskOf(n, 1, 5, 9)
	seeds := seedArray(3, n)
	var out [MaxSteps]int
	const stepSamples = 6000
	ComputeTiming(hits, fullEligibility(n), 1, ZoneMinimal, &seeds, saltVoice1, n, stepSamples, 48000, &out)
	// Full flavor in MINIMAL: swing capped at 0.54 (240 samples) plus
	// at most 1ms jitter (48 samples); no displacement.
	for step := 0; step < n; step++ {
		if out[step] > 300 || out[step] < -300 {
			t.Errorf("step %d offset %d too loose for MINIMAL", step, out[step])
		}
	}
}

func TestTimingZeroFlavorStraight(t *testing.T) {
	n := 32
	hits := maskOf(n, 0, 1, 2, 3)
	seeds := seedArray(11, n)
	var out [MaxSteps]int
	ComputeTiming(hits, fullEligibility(n), 0, ZoneGroove, &seeds, saltVoice1, n, 6000, 48000, &out)
	for step := 0; step < n; step++ {
		if out[step] != 0 {
			t.Errorf("flavor=0: step %d has offset %d", step, out[step])
		}
	}
}

func TestTimingDeterministic(t *testing.T) {
	n := 32
	hits := maskOf(n, 0, 5, 11, 19, 26)
	seeds := seedArray(21, n)
	var a, b [MaxSteps]int
	ComputeTiming(hits, fullEligibility(n), 0.9, ZonePeak, &seeds, saltVoice3, n, 6000, 48000, &a)
	ComputeTiming(hits, fullEligibility(n), 0.9, ZonePeak, &seeds, saltVoice3, n, 6000, 48000, &b)
	if a != b {
		t.Fatal("same inputs produced different timing offsets")
	}
}
