// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables for Last Letter.
type Config struct {
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
	Display    DisplayConfig    `yaml:"display"`
	Palette    []string         `yaml:"palette"`
}

// GameplayConfig defines letter spawning and scoring parameters.
// Distances are in play-area pixels, durations in milliseconds.
type GameplayConfig struct {
	StartHealth      int     `yaml:"start_health"`
	SpawnIntervalMs  float64 `yaml:"spawn_interval_ms"`  // Base ms between spawns at difficulty 1.0
	BaseSpeed        float64 `yaml:"base_speed"`         // Base fall speed in px/s at difficulty 1.0
	SpeedJitter      float64 `yaml:"speed_jitter"`       // 0.2 = speed varies by ±20%
	EdgeMargin       float64 `yaml:"edge_margin"`        // Horizontal spawn keep-out from both edges
	SpawnY           float64 `yaml:"spawn_y"`            // Initial y, above the visible area
	FloorMargin      float64 `yaml:"floor_margin"`       // Letter height; crossing is y >= floor - margin
	ExplosionGraceMs float64 `yaml:"explosion_grace_ms"` // How long a hit letter stays for its animation
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`     // false keeps difficulty at Initial
	Initial    float64 `yaml:"initial"`     // Difficulty at session start
	Step       float64 `yaml:"step"`        // Added once per interval boundary
	IntervalMs float64 `yaml:"interval_ms"` // Game time between steps
	Max        float64 `yaml:"max"`         // Ceiling
}

// AudioConfig defines sound effect parameters.
type AudioConfig struct {
	Muted      bool    `yaml:"muted"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DisplayConfig maps terminal cells to play-area pixels.
type DisplayConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// MinDifficulty is the lowest difficulty a session can have.
const MinDifficulty = 1.0

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyInsane DifficultyPreset = "insane"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists all known presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyNormal, DifficultyHard, DifficultyInsane, DifficultyFixed}
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", name)
}

// InitialLevelForPreset returns the starting difficulty for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 2.0
	case DifficultyInsane:
		return 3.0
	default:
		return MinDifficulty
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every invalid value in the config.
func (c Config) Validate() error {
	var errs []error

	g := c.Gameplay
	if g.StartHealth <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.start_health must be positive, got %d", g.StartHealth))
	}
	if g.SpawnIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.spawn_interval_ms must be positive, got %g", g.SpawnIntervalMs))
	}
	if g.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.base_speed must be positive, got %g", g.BaseSpeed))
	}
	if g.SpeedJitter < 0 || g.SpeedJitter >= 1 {
		errs = append(errs, fmt.Errorf("gameplay.speed_jitter must be in [0, 1), got %g", g.SpeedJitter))
	}
	if g.EdgeMargin < 0 || g.FloorMargin < 0 || g.ExplosionGraceMs < 0 {
		errs = append(errs, errors.New("gameplay margins and grace period must not be negative"))
	}

	d := c.Difficulty
	if d.Max < MinDifficulty {
		errs = append(errs, fmt.Errorf("difficulty.max must be at least %g, got %g", MinDifficulty, d.Max))
	}
	if d.Initial < MinDifficulty || d.Initial > d.Max {
		errs = append(errs, fmt.Errorf("difficulty.initial must be in [%g, %g], got %g", MinDifficulty, d.Max, d.Initial))
	}
	if d.Step < 0 {
		errs = append(errs, fmt.Errorf("difficulty.step must not be negative, got %g", d.Step))
	}
	if d.Enabled && d.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("difficulty.interval_ms must be positive, got %g", d.IntervalMs))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be in [0, 1], got %g", c.Audio.Volume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		errs = append(errs, errors.New("display cell size must be positive"))
	}
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette must have at least one color"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
