package engine

import "math"

// Weighted hit selection: Gumbel top-K. Adding Gumbel noise to the
// log-weights and taking the K best positions samples K steps without
// replacement, proportional to weight, fully reproducible for a given
// seed array. Two anti-clustering measures stack on top: a score
// penalty on the neighbors of every pick, and a hard minimum spacing
// that is relaxed in three passes (full, half, none) so the budget is
// still met when the spacing is infeasible.

const (
	weightFloor     = 1e-6
	adjacentPenalty = 1.5
	maxMinSpacing   = 4
)

func minSpacingFor(n, k int) int {
	if k <= 0 {
		return 0
	}
	s := n / (2 * k)
	if s > maxMinSpacing {
		s = maxMinSpacing
	}
	if s < 0 {
		s = 0
	}
	return s
}

func circularDist(a, b, n int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if n-d < d {
		d = n - d
	}
	return d
}

// SelectHits picks k steps from the eligible positions, favoring high
// weights. seeds holds the per-step governing seed from the drift
// selector; salt decorrelates this voice's noise stream from the
// others. Returns fewer than k bits only when eligibility runs out.
func SelectHits(weights *[MaxSteps]float64, elig StepMask, k int, seeds *[MaxSteps]uint32, salt uint32, n int) StepMask {
	mask := NewStepMask(n)
	if k <= 0 || n <= 0 {
		return mask
	}
	if k > n {
		k = n
	}

	ineligible := math.Inf(-1)
	var scores [MaxSteps]float64
	for step := 0; step < n; step++ {
		if !elig.IsSet(step) {
			scores[step] = ineligible
			continue
		}
		w := weights[step]
		if w < weightFloor {
			w = weightFloor
		}
		scores[step] = math.Log(w) + gumbel(stepNoise(seeds[step]^salt, step))
	}

	spacing := minSpacingFor(n, k)
	passes := [3]int{spacing, spacing / 2, 0}
	for _, s := range passes {
		for mask.Count() < k {
			best := -1
			bestScore := ineligible
			for step := 0; step < n; step++ {
				if mask.IsSet(step) || math.IsInf(scores[step], -1) {
					continue
				}
				if s > 0 && tooClose(mask, step, s, n) {
					continue
				}
				if best == -1 || scores[step] > bestScore {
					best, bestScore = step, scores[step]
				}
			}
			if best == -1 {
				break
			}
			mask.Set(best)
			scores[(best+1)%n] -= adjacentPenalty
			scores[(best+n-1)%n] -= adjacentPenalty
		}
		if mask.Count() >= k {
			break
		}
	}
	return mask
}

func tooClose(selected StepMask, step, spacing, n int) bool {
	for s := 0; s < n; s++ {
		if selected.IsSet(s) && circularDist(step, s, n) <= spacing {
			return true
		}
	}
	return false
}
