package engine

// Engine ties the pipeline together: once per bar it snapshots the
// parameters, runs weight generation, budgeting, drift-seeded
// selection, the complement relation, guard rails, velocity and timing,
// and hands back a finished Bar. GenerateBar allocates nothing and
// never blocks; the drift seed pair and the phrase clock are the only
// state that survives the call, mutated only at bar/phrase boundaries.

// VoicePattern is one voice's finished output for a bar. Velocity and
// Offsets are meaningful only at steps set in Hits.
type VoicePattern struct {
	Hits     StepMask
	Velocity [MaxSteps]float64
	Offsets  [MaxSteps]int // signed sample offsets
}

// Bar is the complete result of one generation call, replaced wholesale
// each bar.
type Bar struct {
	Length int
	Voices [NumVoices]VoicePattern
}

// Engine owns the drift state and the clock-derived step geometry.
type Engine struct {
	Drift         DriftState
	SampleRate    float64
	Tempo         float64
	BarsPerPhrase int

	barInPhrase int
}

// New returns an engine with the given pattern seed, at 48kHz / 120bpm
// / 4-bar phrases until told otherwise.
func New(seed uint32) *Engine {
	return &Engine{
		Drift:         NewDriftState(seed),
		SampleRate:    48000,
		Tempo:         120,
		BarsPerPhrase: 4,
	}
}

// StepSamples returns the length of one 16th-note step in samples.
func (e *Engine) StepSamples() float64 {
	if e.Tempo <= 0 {
		return 0
	}
	return e.SampleRate * 60 / e.Tempo / 4
}

var voiceSalts = [NumVoices]uint32{saltVoice1, saltVoice2, saltVoice3}

// GenerateBar runs the full pipeline for one bar. Pure apart from
// reading the drift seed pair; call EndBar afterwards to advance the
// phrase clock.
func (e *Engine) GenerateBar(p Params, length int) Bar {
	p = p.Clamped()
	n := ClampLength(length)
	zone := ZoneFor(p.Energy)

	// Per-step governing seed, fixed for the whole pipeline so every
	// stage sees the same drift decision.
	var seeds [MaxSteps]uint32
	for step := 0; step < n; step++ {
		seeds[step] = e.Drift.SeedFor(p.Drift, step, n)
	}

	var weights [NumVoices][MaxSteps]float64
	var elig [NumVoices]StepMask
	var budget [NumVoices]int
	for role := RolePrimary; role <= RoleAux; role++ {
		GenerateWeights(p, role, n, &weights[role])
		elig[role] = Eligibility(zone, p.Shape, n, role)
		budget[role] = HitBudget(p, n, role)
	}

	primary := SelectHits(&weights[RolePrimary], elig[RolePrimary], budget[RolePrimary], &seeds, saltVoice1, n)
	secondary := PlaceComplement(primary, &weights[RoleSecondary], budget[RoleSecondary], p.Drift, &seeds, n)
	EnforceGuardRails(&primary, &secondary, &weights[RolePrimary], zone, n)
	aux := SelectHits(&weights[RoleAux], elig[RoleAux], budget[RoleAux], &seeds, saltVoice3, n)

	// On the phrase's final bar the aux voice yields its tail to a fill.
	var fill fillBurst
	fillBar := e.BarsPerPhrase > 0 && e.barInPhrase == e.BarsPerPhrase-1
	if fillBar {
		GenerateFill(p.Energy, p.Shape, primary, n, e.Drift.PatternSeed, &fill)
		for s := fill.start; s < fill.start+fill.duration; s++ {
			aux.Clear(s)
		}
		for i := 0; i < fill.count; i++ {
			aux.Set(fill.start + fill.triggers[i].step)
		}
	}

	bar := Bar{Length: n}
	masks := [NumVoices]StepMask{primary, secondary, aux}
	stepSamples := e.StepSamples()
	for v := 0; v < NumVoices; v++ {
		bar.Voices[v].Hits = masks[v]
		ComputeVelocity(masks[v], p.Accent, &seeds, voiceSalts[v], n, &bar.Voices[v].Velocity)
		ComputeTiming(masks[v], elig[v], p.Shape, zone, &seeds, voiceSalts[v], n, stepSamples, e.SampleRate, &bar.Voices[v].Offsets)
	}
	if fillBar {
		for i := 0; i < fill.count; i++ {
			bar.Voices[RoleAux].Velocity[fill.start+fill.triggers[i].step] = fill.triggers[i].velocity
		}
	}
	return bar
}

// EndBar advances the bar-within-phrase counter, rolling the phrase
// seed (and applying any queued reseed) at the phrase boundary.
func (e *Engine) EndBar() {
	e.barInPhrase++
	if e.barInPhrase >= e.BarsPerPhrase {
		e.barInPhrase = 0
		e.Drift.EndPhrase()
	}
}

// Reset re-synchronizes the phrase clock, e.g. on transport reset.
func (e *Engine) Reset() {
	e.barInPhrase = 0
}

// RequestReseed queues a reseed for the next phrase boundary.
func (e *Engine) RequestReseed(seed uint32) { e.Drift.RequestReseed(seed) }

// Reseed changes the pattern seed immediately.
func (e *Engine) Reseed(seed uint32) { e.Drift.Reseed(seed) }
