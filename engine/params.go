package engine

// MaxSteps is the fixed capacity of every per-step array. Pattern lengths
// above it are not representable in a single uint64 hit mask.
const MaxSteps = 64

// NumVoices is the number of generated voices per bar.
const NumVoices = 3

// Voice roles. Primary carries the pattern, secondary fills primary's
// gaps, aux runs independently on top.
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
	RoleAux
)

// Zone is the named energy range. Guard rails, eligibility and timing
// limits all key off the zone rather than raw energy.
type Zone int

const (
	ZoneMinimal Zone = iota
	ZoneGroove
	ZoneBuild
	ZonePeak
)

// Energy thresholds between zones.
const (
	zoneGrooveStart = 0.20
	zoneBuildStart  = 0.50
	zonePeakStart   = 0.75
)

func (z Zone) String() string {
	switch z {
	case ZoneMinimal:
		return "minimal"
	case ZoneGroove:
		return "groove"
	case ZoneBuild:
		return "build"
	case ZonePeak:
		return "peak"
	}
	return "unknown"
}

// ZoneFor maps an energy value to its zone.
func ZoneFor(energy float64) Zone {
	switch {
	case energy < zoneGrooveStart:
		return ZoneMinimal
	case energy < zoneBuildStart:
		return ZoneGroove
	case energy < zonePeakStart:
		return ZoneBuild
	default:
		return ZonePeak
	}
}

// Params is the per-bar control snapshot. All values are expected in
// [0,1]; Clamped() is applied at the top of every bar generation so
// out-of-range front-end values never propagate.
type Params struct {
	Energy float64 `json:"energy"`
	Shape  float64 `json:"shape"`
	AxisX  float64 `json:"axisX"`
	AxisY  float64 `json:"axisY"`
	Drift  float64 `json:"drift"`
	Accent float64 `json:"accent"`
}

// DefaultParams is a neutral groove starting point.
func DefaultParams() Params {
	return Params{
		Energy: 0.45,
		Shape:  0.15,
		AxisX:  0.5,
		AxisY:  0.5,
		Drift:  0.2,
		Accent: 0.4,
	}
}

// Clamped returns the params with every field clamped to [0,1].
func (p Params) Clamped() Params {
	p.Energy = clamp01(p.Energy)
	p.Shape = clamp01(p.Shape)
	p.AxisX = clamp01(p.AxisX)
	p.AxisY = clamp01(p.AxisY)
	p.Drift = clamp01(p.Drift)
	p.Accent = clamp01(p.Accent)
	return p
}

// Supported pattern lengths, 16th-note steps.
var supportedLengths = [...]int{16, 24, 32, 64}

// ClampLength snaps a requested pattern length to the nearest supported
// value.
func ClampLength(n int) int {
	best := supportedLengths[0]
	bestDist := abs(n - best)
	for _, l := range supportedLengths[1:] {
		if d := abs(n - l); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
