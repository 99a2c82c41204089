package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snek.yaml
var defaultSnekYAML []byte

// DefaultSnekConfig returns the default Snek configuration.
func DefaultSnekConfig() SnekConfig {
	return SnekConfig{
		Board: BoardConfig{
			Width:  32,
			Height: 20,
		},
		Snake: SnakeConfig{
			StartLength:    5,
			StartDirection: "up",
		},
		Items: ItemsConfig{
			SpawnInterval:   2 * time.Second,
			DespawnInterval: 60 * time.Second,
			Probabilities: map[string]float64{
				"apple": 0.5,
				"lemon": 0.1,
				"bomb":  0.4,
			},
		},
		Animation: AnimationConfig{
			ExplosionFrames: 4,
		},
		Timing: TimingConfig{
			TickInterval:   125 * time.Millisecond,
			MoveEveryTicks: 8, // ~7.5 moves per second at 60fps
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snek":
		return defaultSnekYAML
	default:
		return nil
	}
}
