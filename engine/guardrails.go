package engine

// Guard rails: the must-never-sound-bad layer. Soft repair first (a
// swap that preserves the hit count), then hard rails in fixed order.
// Hard rails may move the realized count away from the budget by a few
// hits; that is the accepted cost of the musicality floor.

// Longest permitted silent run on the primary voice, per zone. MINIMAL
// is exempt: sparseness is its point.
func maxGapFor(zone Zone, n int) int {
	switch zone {
	case ZoneGroove:
		return 8
	case ZoneBuild:
		return 6
	case ZonePeak:
		return 4
	default:
		return n
	}
}

// Longest permitted run of consecutive secondary-voice hits, per zone.
func maxRunFor(zone Zone) int {
	switch zone {
	case ZoneMinimal:
		return 2
	case ZoneGroove:
		return 3
	case ZoneBuild:
		return 4
	default:
		return 6
	}
}

// downbeatRequired reports whether the zone insists on a primary hit at
// step 0.
func downbeatRequired(zone Zone) bool { return zone >= ZoneGroove }

// EnforceGuardRails applies soft repair then the hard rails to both
// voices, keeping them disjoint throughout.
func EnforceGuardRails(primary, secondary *StepMask, primaryWeights *[MaxSteps]float64, zone Zone, n int) {
	softRepairDownbeat(primary, primaryWeights, zone)
	hardRails(primary, secondary, zone, n)
}

// softRepairDownbeat restores a missing protected downbeat by swapping
// out the primary voice's weakest hit, so the budget is untouched. The
// downbeat itself is never the swap victim.
func softRepairDownbeat(primary *StepMask, weights *[MaxSteps]float64, zone Zone) {
	if !downbeatRequired(zone) || primary.IsSet(0) || primary.Count() == 0 {
		return
	}
	victim := -1
	for step := 1; step < primary.Len(); step++ {
		if !primary.IsSet(step) {
			continue
		}
		if victim == -1 || weights[step] < weights[victim] {
			victim = step
		}
	}
	if victim == -1 {
		return
	}
	primary.Clear(victim)
	primary.Set(0)
}

func hardRails(primary, secondary *StepMask, zone Zone, n int) {
	// 1. Downbeat belongs to the primary voice alone, however it got
	// there (selection, soft repair, or forced here).
	if downbeatRequired(zone) {
		primary.Set(0)
		secondary.Clear(0)
	}

	// 2. Break silent runs longer than the zone's max gap, forcing
	// hits from the gap start at max-gap intervals.
	maxGap := maxGapFor(zone, n)
	if maxGap < n {
		var gaps [MaxSteps]gapRun
		count := findGaps(*primary, n, &gaps)
		for i := 0; i < count; i++ {
			g := gaps[i]
			if g.length <= maxGap {
				continue
			}
			for off := 0; ; off += maxGap {
				step := (g.start + off) % n
				primary.Set(step)
				secondary.Clear(step)
				if g.length-1-off <= maxGap {
					break
				}
			}
		}
	}

	// 3. Trim secondary runs above the zone maximum, keeping the head
	// of each run.
	trimRuns(secondary, maxRunFor(zone), n)
}

// trimRuns clears every hit past the first max of each circular run.
func trimRuns(mask *StepMask, max, n int) {
	if mask.Count() <= max {
		return
	}
	// Anchor the circular walk at a silent step.
	anchor := -1
	for step := 0; step < n; step++ {
		if !mask.IsSet(step) {
			anchor = step
			break
		}
	}
	if anchor == -1 {
		// Fully saturated: keep max, drop one, repeat.
		for step := 0; step < n; step++ {
			if step%(max+1) == max {
				mask.Clear(step)
			}
		}
		return
	}
	orig := *mask
	run := 0
	for i := 1; i <= n; i++ {
		step := (anchor + i) % n
		if !orig.IsSet(step) {
			run = 0
			continue
		}
		run++
		if run > max {
			mask.Clear(step)
		}
	}
}
