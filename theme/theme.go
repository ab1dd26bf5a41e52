package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	StepEmpty    rune // · no hit
	StepHit      rune // ● hit
	StepPlayhead rune // ▶ playhead on a silent step
	StepBoth     rune // ◉ playhead on a hit

	MeterFull  rune // ▮ filled meter cell
	MeterEmpty rune // ▯ empty meter cell
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StepEmpty:    '·',
			StepHit:      '●',
			StepPlayhead: '▶',
			StepBoth:     '◉',

			MeterFull:  '▮',
			MeterEmpty: '▯',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.15
	RoleFG      = 0.45
	RoleAccent  = 0.60
	RoleCursor  = 0.70
	RoleWarning = 0.85
	RoleBright  = 1.0
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Bright() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBright))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Velocity maps a hit velocity (engine range 0.30-1.0) onto the upper
// half of the palette so loud hits glow.
func (t *Theme) Velocity(v float64) lipgloss.Color {
	norm := 0.4 + (v-0.30)/0.70*0.6
	if norm < 0.4 {
		norm = 0.4
	}
	if norm > 1 {
		norm = 1
	}
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
