// Package config provides YAML-based game configuration loading and
// difficulty management for Snek.
package config

import (
	"fmt"
	"math"
	"time"
)

// SnekConfig contains all configuration for the Snek game.
type SnekConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snake      SnakeConfig      `yaml:"snake"`
	Items      ItemsConfig      `yaml:"items"`
	Animation  AnimationConfig  `yaml:"animation"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sizes boards for levels that carry no layout.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeConfig defines how the snake starts.
type SnakeConfig struct {
	StartLength    int    `yaml:"start_length"`    // head and tail included
	StartDirection string `yaml:"start_direction"` // up, right, down or left
}

// ItemsConfig defines the item spawner.
type ItemsConfig struct {
	SpawnInterval   time.Duration      `yaml:"spawn_interval"`
	DespawnInterval time.Duration      `yaml:"despawn_interval"`
	Probabilities   map[string]float64 `yaml:"probabilities"` // apple, lemon, bomb
}

// AnimationConfig defines animation frame counts.
type AnimationConfig struct {
	ExplosionFrames int `yaml:"explosion_frames"`
}

// TimingConfig defines how fast the game runs.
type TimingConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval"`    // session time per move
	MoveEveryTicks int           `yaml:"move_every_ticks"` // platform ticks per move at base speed
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// ItemKinds lists the item names accepted in items.probabilities, in the
// order their weights are laid out for the spawner.
var ItemKinds = []string{"apple", "lemon", "bomb"}

// Directions lists the accepted snake.start_direction values.
var Directions = []string{"up", "right", "down", "left"}

// maxBoardSide matches the largest level size the level parser accepts.
const maxBoardSide = 256

// Validate checks the config for values the game cannot run with.
func (c SnekConfig) Validate() error {
	if c.Board.Width < 5 || c.Board.Height < 5 {
		return fmt.Errorf("config: board must be at least 5x5, got %dx%d", c.Board.Width, c.Board.Height)
	}
	if c.Board.Width > maxBoardSide || c.Board.Height > maxBoardSide {
		return fmt.Errorf("config: board must be at most %dx%d, got %dx%d", maxBoardSide, maxBoardSide, c.Board.Width, c.Board.Height)
	}
	if c.Snake.StartLength < 2 {
		return fmt.Errorf("config: snake.start_length must be at least 2, got %d", c.Snake.StartLength)
	}
	if !contains(Directions, c.Snake.StartDirection) {
		return fmt.Errorf("config: unknown snake.start_direction %q", c.Snake.StartDirection)
	}
	if c.Items.SpawnInterval <= 0 || c.Items.DespawnInterval <= 0 {
		return fmt.Errorf("config: item intervals must be positive")
	}
	if c.Timing.TickInterval <= 0 {
		return fmt.Errorf("config: timing.tick_interval must be positive")
	}
	if c.Timing.MoveEveryTicks < 1 {
		return fmt.Errorf("config: timing.move_every_ticks must be at least 1, got %d", c.Timing.MoveEveryTicks)
	}
	if c.Animation.ExplosionFrames < 1 {
		return fmt.Errorf("config: animation.explosion_frames must be at least 1, got %d", c.Animation.ExplosionFrames)
	}

	sum := 0.0
	for name, w := range c.Items.Probabilities {
		if !contains(ItemKinds, name) {
			return fmt.Errorf("config: unknown item %q in items.probabilities", name)
		}
		if w < 0 {
			return fmt.Errorf("config: probability of %s is negative", name)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("config: item probabilities sum to %g, expected 1", sum)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
