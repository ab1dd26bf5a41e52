package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pulse/engine"
	"go-pulse/player"
	"go-pulse/theme"
	"go-pulse/widgets"
)

// Parameter rows the cursor walks over.
const (
	rowEnergy = iota
	rowShape
	rowAxisX
	rowAxisY
	rowDrift
	rowAccent
	rowTempo
	rowLength
	numRows
)

var rowNames = [numRows]string{
	"energy", "shape", "axis-x", "axis-y", "drift", "accent", "tempo", "length",
}

var voiceNames = [engine.NumVoices]string{"kick ", "snare", "hat  "}

type Model struct {
	player   *player.Player
	th       *theme.Theme
	cursor   int
	portName string
	quitting bool
}

type stepMsg int
type barMsg engine.Bar

func NewModel(p *player.Player, th *theme.Theme, portName string) Model {
	return Model{player: p, th: th, portName: portName}
}

func listenForStep(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		return stepMsg(<-p.StepChan)
	}
}

func listenForBar(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		return barMsg(<-p.BarChan)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(listenForStep(m.player), listenForBar(m.player))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.player.Stop()
			return m, tea.Quit

		case "j", "down":
			if m.cursor < numRows-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "h", "left":
			m.adjust(-1)

		case "l", "right":
			m.adjust(1)

		case "H", "shift+left":
			m.adjust(-4)

		case "L", "shift+right":
			m.adjust(4)

		case " ":
			m.player.Toggle()

		case "r":
			// Soft reseed: takes effect at the next phrase boundary.
			m.player.Reseed(0, false)

		case "R":
			m.player.Reseed(0, true)
		}

	case stepMsg:
		return m, listenForStep(m.player)

	case barMsg:
		return m, listenForBar(m.player)
	}

	return m, nil
}

// adjust nudges the selected row by delta ticks.
func (m *Model) adjust(delta int) {
	switch m.cursor {
	case rowTempo:
		m.player.SetTempo(m.player.Tempo() + delta*5)
	case rowLength:
		m.player.SetLength(nextLength(m.player.Length(), delta))
	default:
		p := m.player.Params()
		step := 0.05 * float64(delta)
		switch m.cursor {
		case rowEnergy:
			p.Energy += step
		case rowShape:
			p.Shape += step
		case rowAxisX:
			p.AxisX += step
		case rowAxisY:
			p.AxisY += step
		case rowDrift:
			p.Drift += step
		case rowAccent:
			p.Accent += step
		}
		m.player.SetParams(p)
	}
}

var lengths = []int{16, 24, 32, 64}

func nextLength(cur, delta int) int {
	idx := 0
	for i, l := range lengths {
		if l == cur {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(lengths) {
		idx = len(lengths) - 1
	}
	return lengths[idx]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	bar := m.player.CurrentBar()
	step := m.player.CurrentStep()
	playing := m.player.Playing()
	p := m.player.Params()

	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(m.th.Accent()).Bold(true)
	b.WriteString(title.Render("go-pulse"))
	b.WriteString("\n\n")

	// Voice grid.
	label := lipgloss.NewStyle().Foreground(m.th.Muted())
	for v := 0; v < engine.NumVoices; v++ {
		b.WriteString(label.Render(voiceNames[v]))
		b.WriteString(" ")
		b.WriteString(m.renderVoiceRow(bar, v, step, playing))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Parameter meters.
	values := [numRows]float64{
		p.Energy, p.Shape, p.AxisX, p.AxisY, p.Drift, p.Accent, 0, 0,
	}
	cursorStyle := lipgloss.NewStyle().Foreground(m.th.Cursor())
	for row := 0; row < numRows; row++ {
		marker := "  "
		if row == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker)
		switch row {
		case rowTempo:
			b.WriteString(fmt.Sprintf("%-8s %d bpm", "tempo", m.player.Tempo()))
		case rowLength:
			b.WriteString(fmt.Sprintf("%-8s %d steps", "length", m.player.Length()))
		default:
			b.WriteString(widgets.RenderMeter(rowNames[row], values[row], 20,
				m.th.Symbols.MeterFull, m.th.Symbols.MeterEmpty, m.th.Accent(), m.th.Muted()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Status line.
	playState := "stop"
	if playing {
		playState = "play"
	}
	status := lipgloss.NewStyle().Foreground(m.th.FG())
	b.WriteString(status.Render(fmt.Sprintf("%s  zone:%s  seed:%08x  out:%s",
		playState, engine.ZoneFor(p.Energy), m.player.Seed(), m.portName)))
	b.WriteString("\n\n")

	help := lipgloss.NewStyle().Foreground(m.th.Muted())
	b.WriteString(help.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "j/k", Desc: "select parameter"},
			{Key: "h/l H/L", Desc: "adjust (coarse with shift)"},
			{Key: "space", Desc: "play/stop"},
			{Key: "r/R", Desc: "reseed (phrase/now)"},
			{Key: "q", Desc: "quit"},
		}},
	})))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderVoiceRow(bar engine.Bar, v, playhead int, playing bool) string {
	voice := bar.Voices[v]
	empty := lipgloss.NewStyle().Foreground(m.th.Muted())
	head := lipgloss.NewStyle().Foreground(m.th.Bright())

	var row strings.Builder
	for s := 0; s < bar.Length; s++ {
		if s > 0 && s%4 == 0 {
			row.WriteString(" ")
		}
		hit := voice.Hits.IsSet(s)
		atHead := playing && s == playhead
		switch {
		case atHead && hit:
			row.WriteString(head.Render(string(m.th.Symbols.StepBoth)))
		case atHead:
			row.WriteString(head.Render(string(m.th.Symbols.StepPlayhead)))
		case hit:
			style := lipgloss.NewStyle().Foreground(m.th.Velocity(voice.Velocity[s]))
			row.WriteString(style.Render(string(m.th.Symbols.StepHit)))
		default:
			row.WriteString(empty.Render(string(m.th.Symbols.StepEmpty)))
		}
	}
	return row.String()
}
