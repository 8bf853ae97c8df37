package config

import (
	_ "embed"

	"github.com/vovakirdan/last-letter/internal/core"
)

//go:embed defaults/lastletter.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
// It matches defaults/lastletter.yaml.
func Default() Config {
	palette := core.NeonPalette()
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = string(c)
	}

	return Config{
		Gameplay: GameplayConfig{
			StartHealth:      3,
			SpawnIntervalMs:  1500,
			BaseSpeed:        50,
			SpeedJitter:      0.2,
			EdgeMargin:       20,
			SpawnY:           -30,
			FloorMargin:      40,
			ExplosionGraceMs: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Initial:    1.0,
			Step:       0.2,
			IntervalMs: 15000,
			Max:        4.0,
		},
		Audio: AudioConfig{
			Muted:      false,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Display: DisplayConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Palette: colors,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}

// PaletteColors converts the configured palette to core colors.
func (c Config) PaletteColors() []core.Color {
	out := make([]core.Color, len(c.Palette))
	for i, p := range c.Palette {
		out[i] = core.Color(p)
	}
	return out
}
