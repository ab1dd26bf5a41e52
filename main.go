package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-pulse/config"
	"go-pulse/debug"
	"go-pulse/engine"
	"go-pulse/player"
	"go-pulse/theme"
	"go-pulse/tui"
)

func main() {
	if os.Getenv("GO_PULSE_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	th := theme.New(theme.LoadGPLOrDefault(cfg.UI.PalettePath))

	seed := engine.DefaultPatternSeed
	if cfg.Pattern.PersistSeed {
		seed = cfg.Pattern.Seed
	}
	eng := engine.New(seed)
	eng.BarsPerPhrase = cfg.Pattern.BarsPerPhrase

	pl := player.New(eng, cfg.Output.Notes, cfg.Output.Channel, cfg.Pattern.Length, cfg.UI.LastTempo)
	pl.SetParams(cfg.Params)
	defer pl.Close()

	portName, err := pl.OpenPort(cfg.Output.PortName)
	if err != nil {
		// Run anyway: the pattern view works without a synth attached.
		portName = "(none)"
		debug.Log("main", "MIDI output unavailable: %v", err)
	}

	m := tui.NewModel(pl, th, portName)
	prog := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := prog.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cfg.UI.LastTempo = pl.Tempo()
	cfg.Pattern.Length = pl.Length()
	cfg.Params = pl.Params()
	if cfg.Pattern.PersistSeed {
		cfg.Pattern.Seed = pl.Seed()
	}
	if err := cfg.Save(); err != nil {
		fmt.Printf("saving config: %v\n", err)
	}
}
