package config

import (
	_ "embed"
)

//go:embed defaults/mazechase.yaml
var defaultMazeChaseYAML []byte

// DefaultMazeChaseConfig returns the default maze-chase configuration.
func DefaultMazeChaseConfig() MazeChaseConfig {
	return MazeChaseConfig{
		Timing: MazeChaseTiming{
			PlayerCadenceMS: 400,
			GhostCadenceMS:  []int{500, 525, 550, 600},
			PowerDurationMS: 15000,
			LevelPauseMS:    0,
		},
		Gameplay: MazeChaseGameplay{
			Lives:       3,
			DotPoints:   10,
			PowerPoints: 50,
			CaptureBase: 200,
			SaveSlot:    "default",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "levels",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				PowerReduction:  0.5,
				MinCadenceMS:    250,
			},
		},
	}
}
