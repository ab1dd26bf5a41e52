package engine

// Velocity: loudness per firing step. ACCENT widens the dynamic window
// in both directions (floor drops, ceiling rises) and scales the seeded
// micro-variation, while the step's metric weight decides where in the
// window it lands. The hard output floor exists because downstream
// hardware can't render triggers below it reliably.

const (
	velocityHardFloor = 0.30
	velocityFloorBase = 0.80
	velocityFloorDrop = 0.50
	velocityCeilBase  = 0.88
	velocityCeilRise  = 0.12
	variationBase     = 0.02
	variationRise     = 0.05
)

// ComputeVelocity fills out[0:n] for the firing steps of the mask.
// Non-firing positions are zeroed and carry no meaning.
func ComputeVelocity(hits StepMask, accent float64, seeds *[MaxSteps]uint32, salt uint32, n int, out *[MaxSteps]float64) {
	floor := velocityFloorBase - velocityFloorDrop*accent
	ceiling := velocityCeilBase + velocityCeilRise*accent
	variation := variationBase + variationRise*accent

	for step := 0; step < n; step++ {
		if !hits.IsSet(step) {
			out[step] = 0
			continue
		}
		v := floor + metricWeight(step)*(ceiling-floor)
		v += (stepNoise(seeds[step]^salt^saltVelocity, step)*2 - 1) * variation
		out[step] = clamp(v, velocityHardFloor, 1.0)
	}
	for step := n; step < MaxSteps; step++ {
		out[step] = 0
	}
}
