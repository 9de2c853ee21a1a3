// Package config provides YAML-based game configuration loading and
// difficulty management for the maze-chase game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MazeChaseConfig contains all configuration for the maze-chase game.
type MazeChaseConfig struct {
	Timing     MazeChaseTiming   `yaml:"timing"`
	Gameplay   MazeChaseGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// MazeChaseTiming defines movement cadences and timers, in milliseconds.
type MazeChaseTiming struct {
	PlayerCadenceMS int   `yaml:"player_cadence_ms"`
	GhostCadenceMS  []int `yaml:"ghost_cadence_ms"` // One entry per pursuer, ids 0..3
	PowerDurationMS int   `yaml:"power_duration_ms"`
	LevelPauseMS    int   `yaml:"level_pause_ms"` // 0 waits for a key press
}

// MazeChaseGameplay defines scoring and session parameters.
type MazeChaseGameplay struct {
	Lives       int    `yaml:"lives"`
	DotPoints   int    `yaml:"dot_points"`
	PowerPoints int    `yaml:"power_points"`
	CaptureBase int    `yaml:"capture_base"`
	SaveSlot    string `yaml:"save_slot"` // Name of the storage slot used by save/load
}

// PlayerCadence returns the player's move interval.
func (t MazeChaseTiming) PlayerCadence() time.Duration {
	return time.Duration(t.PlayerCadenceMS) * time.Millisecond
}

// GhostCadence returns the move interval of pursuer id.
func (t MazeChaseTiming) GhostCadence(id int) time.Duration {
	if id < 0 || id >= len(t.GhostCadenceMS) {
		return 0
	}
	return time.Duration(t.GhostCadenceMS[id]) * time.Millisecond
}

// PowerDuration returns how long power mode lasts.
func (t MazeChaseTiming) PowerDuration() time.Duration {
	return time.Duration(t.PowerDurationMS) * time.Millisecond
}

// LevelPause returns the delay before the next level starts on its own.
func (t MazeChaseTiming) LevelPause() time.Duration {
	return time.Duration(t.LevelPauseMS) * time.Millisecond
}

// Validate reports the first invalid field, if any.
func (c MazeChaseConfig) Validate() error {
	var errs []error
	if c.Timing.PlayerCadenceMS <= 0 {
		errs = append(errs, fmt.Errorf("timing.player_cadence_ms must be positive, got %d", c.Timing.PlayerCadenceMS))
	}
	if len(c.Timing.GhostCadenceMS) != 4 {
		errs = append(errs, fmt.Errorf("timing.ghost_cadence_ms needs 4 entries, got %d", len(c.Timing.GhostCadenceMS)))
	}
	for i, ms := range c.Timing.GhostCadenceMS {
		if ms <= 0 {
			errs = append(errs, fmt.Errorf("timing.ghost_cadence_ms[%d] must be positive, got %d", i, ms))
		}
	}
	if c.Timing.PowerDurationMS <= 0 {
		errs = append(errs, fmt.Errorf("timing.power_duration_ms must be positive, got %d", c.Timing.PowerDurationMS))
	}
	if c.Timing.LevelPauseMS < 0 {
		errs = append(errs, fmt.Errorf("timing.level_pause_ms must not be negative, got %d", c.Timing.LevelPauseMS))
	}
	if c.Gameplay.Lives <= 0 || c.Gameplay.Lives > 255 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be in 1..255, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.CaptureBase <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.capture_base must be positive, got %d", c.Gameplay.CaptureBase))
	}
	return errors.Join(errs...)
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "levels", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Levels cleared or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Pursuer speed gain at max difficulty
	PowerReduction  float64 `yaml:"power_reduction"`  // Fraction of power mode removed at max difficulty
	MinCadenceMS    int     `yaml:"min_cadence_ms"`   // Floor for any pursuer cadence
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.0
	case DifficultyHard:
		return 0.5
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
