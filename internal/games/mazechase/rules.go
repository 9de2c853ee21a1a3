package mazechase

import (
	"time"

	"github.com/vovakirdan/maze-chase/internal/config"
)

// Rules are the tunable numbers of a game.
type Rules struct {
	PlayerCadence time.Duration
	GhostCadence  [NumGhosts]time.Duration
	PowerDuration time.Duration
	Lives         int
	DotPoints     int
	PowerPoints   int
	CaptureBase   int
}

// DefaultRules returns the reference rules.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultMazeChaseConfig())
}

// RulesFromConfig converts loaded configuration into rules.
func RulesFromConfig(cfg config.MazeChaseConfig) Rules {
	r := Rules{
		PlayerCadence: cfg.Timing.PlayerCadence(),
		PowerDuration: cfg.Timing.PowerDuration(),
		Lives:         cfg.Gameplay.Lives,
		DotPoints:     cfg.Gameplay.DotPoints,
		PowerPoints:   cfg.Gameplay.PowerPoints,
		CaptureBase:   cfg.Gameplay.CaptureBase,
	}
	for id := range r.GhostCadence {
		r.GhostCadence[id] = cfg.Timing.GhostCadence(id)
	}
	return r
}

// ForLevel returns the rules with pursuer cadences and power duration
// scaled by difficulty for the given number of cleared levels.
func (r Rules) ForLevel(d *config.DifficultyManager, levelsCleared, score int) Rules {
	if d == nil {
		return r
	}
	out := r
	for id, c := range r.GhostCadence {
		out.GhostCadence[id] = d.Cadence(c, levelsCleared, score)
	}
	out.PowerDuration = d.PowerDuration(r.PowerDuration, levelsCleared, score)
	return out
}
