package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Small render helpers shared by the TUI and kept free of app state.

// RenderMeter draws a labeled horizontal meter: "energy ▮▮▮▯▯▯▯▯ 0.38"
func RenderMeter(label string, value float64, width int, full, empty rune, fillColor, restColor lipgloss.Color) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value*float64(width) + 0.5)
	var bar strings.Builder
	fillStyle := lipgloss.NewStyle().Foreground(fillColor)
	restStyle := lipgloss.NewStyle().Foreground(restColor)
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString(fillStyle.Render(string(full)))
		} else {
			bar.WriteString(restStyle.Render(string(empty)))
		}
	}
	return fmt.Sprintf("%-8s %s %.2f", label, bar.String(), value)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
