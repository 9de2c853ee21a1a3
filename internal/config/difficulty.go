package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on progress
// through a game (levels cleared or score).
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(levelsCleared int, score int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "levels":
		progress = float64(levelsCleared) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Cadence shortens a pursuer move interval as difficulty rises.
// The result never drops below the configured floor, nor rises above base.
func (d *DifficultyManager) Cadence(base time.Duration, levelsCleared int, score int) time.Duration {
	level := d.Level(levelsCleared, score)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return base
	}
	result := time.Duration(float64(base) / speed).Round(time.Millisecond)
	floor := time.Duration(d.cfg.Scaling.MinCadenceMS) * time.Millisecond
	if result < floor {
		result = min(floor, base)
	}
	return result
}

// PowerDuration shortens power mode as difficulty rises.
func (d *DifficultyManager) PowerDuration(base time.Duration, levelsCleared int, score int) time.Duration {
	level := d.Level(levelsCleared, score)
	cut := clampF(level*d.cfg.Scaling.PowerReduction, 0.0, 0.9)
	return time.Duration(float64(base) * (1.0 - cut)).Round(time.Millisecond)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
