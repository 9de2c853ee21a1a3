package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMazeChase loads maze-chase configuration.
// Search order: customPath -> ~/.mazechase/configs/mazechase.yaml -> ./configs/mazechase.yaml -> embedded default
func LoadMazeChase(customPath string) (MazeChaseConfig, error) {
	// Fields missing from a file keep their defaults
	cfg := DefaultMazeChaseConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("mazechase.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "mazechase.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMazeChaseYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMazeChaseConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or invalid files are skipped.
func tryLoad(path string) (MazeChaseConfig, bool) {
	cfg := DefaultMazeChaseConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mazechase", "configs", filename)
}

// ApplyMazeChasePreset modifies the config based on a difficulty preset.
func ApplyMazeChasePreset(cfg *MazeChaseConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = max(cfg.Gameplay.Lives, 5)
		cfg.Difficulty.Scaling.SpeedMultiplier /= 2
	case DifficultyHard:
		cfg.Gameplay.Lives = min(cfg.Gameplay.Lives, 2)
	}
}
