package engine

import "math"

// COMPLEMENT voice relation: the secondary voice lives strictly in the
// primary voice's gaps. Budget is spread across gaps proportionally to
// gap length; placement inside a gap is evenly spaced at low DRIFT and
// weight-biased at higher DRIFT, both perturbed by the seed so two
// seeds never collapse to the same fill.

// Salt for the complement noise stream.
const saltComplement uint32 = 0x434f4d50 // "COMP"

// DRIFT below this uses even in-gap spacing, above it weighted
// selection.
const complementDriftSplit = 0.3

type gapRun struct {
	start  int // first silent step
	length int
}

// findGaps collects the maximal silent runs of hits, merging the
// wrap-around run at the pattern boundary into one logical gap.
// Returns the gap count; gaps land in the caller-provided array.
func findGaps(hits StepMask, n int, gaps *[MaxSteps]gapRun) int {
	if hits.Count() == 0 {
		gaps[0] = gapRun{start: 0, length: n}
		return 1
	}
	count := 0
	runStart := -1
	for step := 0; step < n; step++ {
		if !hits.IsSet(step) {
			if runStart < 0 {
				runStart = step
			}
			continue
		}
		if runStart >= 0 {
			gaps[count] = gapRun{start: runStart, length: step - runStart}
			count++
			runStart = -1
		}
	}
	if runStart >= 0 {
		gaps[count] = gapRun{start: runStart, length: n - runStart}
		count++
	}
	// Wrap-around: a trailing gap that meets a leading gap is one gap.
	if count > 1 && gaps[0].start == 0 && !hits.IsSet(n-1) {
		last := &gaps[count-1]
		if last.start+last.length == n {
			last.length += gaps[0].length
			copy(gaps[:count-1], gaps[1:count])
			count--
		}
	}
	return count
}

// PlaceComplement builds the secondary voice's hit mask: disjoint from
// primary by construction, budget spread across gaps, seed-sensitive at
// every DRIFT setting.
func PlaceComplement(primary StepMask, weights *[MaxSteps]float64, budget int, drift float64, seeds *[MaxSteps]uint32, n int) StepMask {
	mask := NewStepMask(n)
	if budget <= 0 || n <= 0 {
		return mask
	}

	var gaps [MaxSteps]gapRun
	count := findGaps(primary, n, &gaps)
	if count == 0 {
		return mask
	}

	var alloc [MaxSteps]int
	distributeBudget(gaps[:count], budget, &alloc)

	for i := 0; i < count; i++ {
		if alloc[i] == 0 {
			continue
		}
		if drift < complementDriftSplit {
			placeEven(&mask, gaps[i], alloc[i], seeds, i, n)
		} else {
			placeWeighted(&mask, gaps[i], alloc[i], weights, seeds, n)
		}
	}
	return mask
}

// distributeBudget gives every gap one hit while budget allows (largest
// gaps first), then hands the remainder to whichever gap has the most
// headroom. No gap ever gets more hits than steps.
func distributeBudget(gaps []gapRun, budget int, alloc *[MaxSteps]int) {
	remaining := budget
	for remaining > 0 {
		best := -1
		bestRoom := 0
		for i := range gaps {
			room := gaps[i].length - alloc[i]
			// First-round ties go to longer gaps naturally via room.
			if room > bestRoom {
				best, bestRoom = i, room
			}
		}
		if best == -1 {
			return
		}
		// Seed a hit in every empty gap before doubling up anywhere.
		if alloc[best] == 0 || allGapsSeeded(gaps, alloc) {
			alloc[best]++
			remaining--
			continue
		}
		// Some gap is still empty; prefer the largest empty one.
		best = -1
		bestRoom = 0
		for i := range gaps {
			if alloc[i] == 0 && gaps[i].length > bestRoom {
				best, bestRoom = i, gaps[i].length
			}
		}
		if best == -1 {
			return
		}
		alloc[best]++
		remaining--
	}
}

func allGapsSeeded(gaps []gapRun, alloc *[MaxSteps]int) bool {
	for i := range gaps {
		if alloc[i] == 0 && gaps[i].length > 0 {
			return false
		}
	}
	return true
}

// placeEven spaces count hits evenly through the gap with a seed-derived
// rotation, so even the "locked" placement differs between seeds.
func placeEven(mask *StepMask, gap gapRun, count int, seeds *[MaxSteps]uint32, gapIndex, n int) {
	if count > gap.length {
		count = gap.length
	}
	stride := gap.length / count
	if stride < 1 {
		stride = 1
	}
	anchor := seeds[gap.start%n] ^ saltGap
	phase := int(hashStep(anchor, gapIndex) % uint32(stride))
	for j := 0; j < count; j++ {
		mask.Set((gap.start + phase + j*stride) % n)
	}
}

// placeWeighted runs a small Gumbel top-K restricted to the gap.
func placeWeighted(mask *StepMask, gap gapRun, count int, weights *[MaxSteps]float64, seeds *[MaxSteps]uint32, n int) {
	if count > gap.length {
		count = gap.length
	}
	var scores [MaxSteps]float64
	for off := 0; off < gap.length; off++ {
		step := (gap.start + off) % n
		w := weights[step]
		if w < weightFloor {
			w = weightFloor
		}
		scores[off] = math.Log(w) + gumbel(stepNoise(seeds[step]^saltComplement, step))
	}
	for picked := 0; picked < count; picked++ {
		best := -1
		bestScore := math.Inf(-1)
		for off := 0; off < gap.length; off++ {
			step := (gap.start + off) % n
			if mask.IsSet(step) {
				continue
			}
			if scores[off] > bestScore {
				best, bestScore = off, scores[off]
			}
		}
		if best == -1 {
			return
		}
		mask.Set((gap.start + best) % n)
		if best+1 < gap.length {
			scores[best+1] -= adjacentPenalty
		}
		if best-1 >= 0 {
			scores[best-1] -= adjacentPenalty
		}
	}
}
