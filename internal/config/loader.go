package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadSnek loads Snek configuration.
// Search order: customPath -> ~/.snek/configs/snek.yaml -> ./configs/snek.yaml -> embedded default.
// Files are layered over the defaults, so they only need the keys they change.
// An unreadable or invalid custom path is an error; other candidates are
// skipped when they cannot be used.
func LoadSnek(customPath string) (SnekConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnekConfig{}, fmt.Errorf("config: failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeSnek(data)
		if err != nil {
			return SnekConfig{}, fmt.Errorf("config: invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snek.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeSnek(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snek.yaml")); err == nil {
		if cfg, err := decodeSnek(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeSnek(defaultSnekYAML)
	if err != nil {
		return DefaultSnekConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeSnek layers YAML over the defaults and validates the result.
func decodeSnek(data []byte) (SnekConfig, error) {
	cfg := DefaultSnekConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnekConfig{}, fmt.Errorf("failed to parse: %w", err)
	}

	// A probability table replaces the default one instead of merging into it
	var probe struct {
		Items struct {
			Probabilities map[string]float64 `yaml:"probabilities"`
		} `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &probe); err == nil && probe.Items.Probabilities != nil {
		cfg.Items.Probabilities = probe.Items.Probabilities
	}

	if err := cfg.Validate(); err != nil {
		return SnekConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c SnekConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snek", "configs", filename)
}

// ApplySnekPreset modifies the config based on a difficulty preset.
func ApplySnekPreset(cfg *SnekConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust item mix based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Items.SpawnInterval = 2500 * time.Millisecond
		cfg.Items.Probabilities = map[string]float64{"apple": 0.65, "lemon": 0.1, "bomb": 0.25}
	case DifficultyHard:
		cfg.Items.SpawnInterval = 1500 * time.Millisecond
		cfg.Items.Probabilities = map[string]float64{"apple": 0.4, "lemon": 0.15, "bomb": 0.45}
	}
}
