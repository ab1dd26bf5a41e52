package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-pulse/engine"
)

// JSON config at ~/.config/go-pulse/config.json. Holds everything the
// host app needs across restarts, including the optionally persisted
// pattern seed so a song keeps its character after a power cycle.

// OutputConfig defines the MIDI output routing.
type OutputConfig struct {
	PortName string                  `json:"portName,omitempty"`
	Channel  uint8                   `json:"channel"`
	Notes    [engine.NumVoices]uint8 `json:"notes"`
}

// PatternConfig stores the generator settings.
type PatternConfig struct {
	Length        int  `json:"length"`
	BarsPerPhrase int  `json:"barsPerPhrase"`
	PersistSeed   bool `json:"persistSeed"`
	// Seed is only written back when PersistSeed is set.
	Seed uint32 `json:"seed,omitempty"`
}

// UIConfig stores UI preferences.
type UIConfig struct {
	LastTempo   int    `json:"lastTempo,omitempty"`
	PalettePath string `json:"palettePath,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Output  OutputConfig  `json:"output"`
	Pattern PatternConfig `json:"pattern"`
	Params  engine.Params `json:"params"`
	UI      UIConfig      `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults: GM kick,
// snare and closed hat on channel 10's usual notes.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Channel: 9,
			Notes:   [engine.NumVoices]uint8{36, 38, 42},
		},
		Pattern: PatternConfig{
			Length:        32,
			BarsPerPhrase: 4,
		},
		Params: engine.DefaultParams(),
		UI: UIConfig{
			LastTempo: 120,
		},
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pulse"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := Path()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalize repairs hand-edited configs rather than rejecting them.
func (c *Config) normalize() {
	c.Pattern.Length = engine.ClampLength(c.Pattern.Length)
	if c.Pattern.BarsPerPhrase < 1 {
		c.Pattern.BarsPerPhrase = 4
	}
	if c.UI.LastTempo < 20 || c.UI.LastTempo > 300 {
		c.UI.LastTempo = 120
	}
	if c.Output.Channel > 15 {
		c.Output.Channel = 9
	}
	c.Params = c.Params.Clamped()
}
