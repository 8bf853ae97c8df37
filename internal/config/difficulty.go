package config

import (
	"math"

	"github.com/vovakirdan/last-letter/internal/core"
)

// DifficultyManager derives the difficulty ramp and the spawn cadence from
// the configured tunables.
type DifficultyManager struct {
	cfg      DifficultyConfig
	gameplay GameplayConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, gameplay GameplayConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:      cfg,
		gameplay: gameplay,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Step > 0
}

// Initial returns the clamped starting difficulty.
func (d *DifficultyManager) Initial() float64 {
	return core.ClampF(d.cfg.Initial, MinDifficulty, d.cfg.Max)
}

// Advance returns the difficulty after game time moved from prevMs to nowMs.
// The level rises by one step when at least one interval boundary was crossed.
// Several boundaries crossed at once still count as one step.
func (d *DifficultyManager) Advance(level, prevMs, nowMs float64) float64 {
	if !d.IsEnabled() || d.cfg.IntervalMs <= 0 {
		return level
	}
	if math.Floor(prevMs/d.cfg.IntervalMs) < math.Floor(nowMs/d.cfg.IntervalMs) {
		// Never lower the level, even if it started above the ceiling.
		return math.Max(level, math.Min(level+d.cfg.Step, d.cfg.Max))
	}
	return level
}

// SpawnInterval returns the ms between spawns at the given level.
func (d *DifficultyManager) SpawnInterval(level float64) float64 {
	return d.gameplay.SpawnIntervalMs / math.Max(level, MinDifficulty)
}

// LetterSpeed returns the base fall speed in px/s at the given level.
func (d *DifficultyManager) LetterSpeed(level float64) float64 {
	return d.gameplay.BaseSpeed * level
}
