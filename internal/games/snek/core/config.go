package core

import "time"

// ItemWeight is one row of the item probability table.
type ItemWeight struct {
	Type   TileType
	Weight float64
}

// Config is the immutable configuration passed into every core constructor.
// It replaces any notion of global settings: build one per session.
type Config struct {
	// Width and Height size the board for levels that carry no layout.
	Width  int
	Height int

	// StartLength is the initial snake length including head and tail (min 2).
	StartLength    int
	StartDirection Direction

	// TickInterval is how much session time one tick represents.
	// Spawn and despawn intervals are measured in session time, so the
	// spawner never looks at the wall clock.
	TickInterval    time.Duration
	SpawnInterval   time.Duration
	DespawnInterval time.Duration

	// ItemWeights is the spawn probability table; weights sum to 1.
	ItemWeights []ItemWeight

	// AnimationFrames gives the frame count of each animated tile type.
	AnimationFrames map[TileType]int
}

// DefaultConfig returns the stock game settings.
func DefaultConfig() Config {
	return Config{
		Width:           32,
		Height:          20,
		StartLength:     5,
		StartDirection:  DirUp,
		TickInterval:    125 * time.Millisecond,
		SpawnInterval:   2 * time.Second,
		DespawnInterval: 60 * time.Second,
		ItemWeights: []ItemWeight{
			{Type: TileApple, Weight: 0.5},
			{Type: TileLemon, Weight: 0.1},
			{Type: TileBomb, Weight: 0.4},
		},
		AnimationFrames: map[TileType]int{
			TileExplodingBomb: 4,
		},
	}
}

// Frames returns the configured frame count for an animated type (min 1).
func (c Config) Frames(t TileType) int {
	if n, ok := c.AnimationFrames[t]; ok && n > 0 {
		return n
	}
	return 1
}
