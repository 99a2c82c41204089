package snek

import (
	"github.com/vovakirdan/tui-snek/internal/config"
	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
)

var itemTypes = map[string]core.TileType{
	"apple": core.TileApple,
	"lemon": core.TileLemon,
	"bomb":  core.TileBomb,
}

// CoreConfig converts the YAML game config into the immutable value handed
// to every core constructor. Item weights are laid out in config.ItemKinds
// order so a seed always draws the same sequence.
func CoreConfig(sc config.SnekConfig) core.Config {
	cfg := core.DefaultConfig()

	cfg.Width = sc.Board.Width
	cfg.Height = sc.Board.Height
	cfg.StartLength = sc.Snake.StartLength
	if d, ok := core.ParseDirection(sc.Snake.StartDirection); ok {
		cfg.StartDirection = d
	}

	if sc.Timing.TickInterval > 0 {
		cfg.TickInterval = sc.Timing.TickInterval
	}
	cfg.SpawnInterval = sc.Items.SpawnInterval
	cfg.DespawnInterval = sc.Items.DespawnInterval

	cfg.ItemWeights = cfg.ItemWeights[:0:0]
	for _, kind := range config.ItemKinds {
		w, ok := sc.Items.Probabilities[kind]
		if !ok || w <= 0 {
			continue
		}
		cfg.ItemWeights = append(cfg.ItemWeights, core.ItemWeight{Type: itemTypes[kind], Weight: w})
	}

	cfg.AnimationFrames = map[core.TileType]int{
		core.TileExplodingBomb: max(sc.Animation.ExplosionFrames, 1),
	}
	return cfg
}
