package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the project-local config location.
const LocalConfigPath = "configs/lastletter.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.lastletter/config.yaml -> ./configs/lastletter.yaml -> embedded default.
// Files only need to set the keys they change; everything else keeps its default.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory.
	// Missing files fall through; a file that fails to parse is an error.
	for _, path := range []string{userConfigPath("config.yaml"), LocalConfigPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lastletter", filename)
}

// SelectPreset resolves the --difficulty value. An empty name leaves the
// difficulty section of cfg as loaded and plays on the normal board.
func SelectPreset(cfg *Config, name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	preset, err := ParsePreset(name)
	if err != nil {
		return "", err
	}
	ApplyPreset(cfg, preset)
	return preset, nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.Initial = MinDifficulty
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Initial = min(InitialLevelForPreset(preset), cfg.Difficulty.Max)

	// Harder presets leave less room for error
	switch preset {
	case DifficultyInsane:
		cfg.Gameplay.StartHealth = 1
	case DifficultyHard:
		cfg.Gameplay.StartHealth = min(cfg.Gameplay.StartHealth, 2)
	}
}
