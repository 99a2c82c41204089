package snek

import "github.com/vovakirdan/tui-snek/internal/games/snek/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateStart       GameStateType = "start"
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	CoreTicks      uint64
	Level          string
	Score          int
	SnakeLen       int
	HeadX          int
	HeadY          int
	Dir            core.Direction
	Reversed       bool
	Items          int
	MoveEveryTicks int
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.IsGameOver():
		state = StateGameOver
	case !g.started:
		state = StateStart
	case g.session.IsPaused():
		state = StatePaused
	}

	snake := g.session.Snake()
	head := snake.Head()

	return Snapshot{
		Tick:           g.tick,
		CoreTicks:      g.session.Ticks(),
		Level:          g.level.ID,
		Score:          g.session.Score(),
		SnakeLen:       snake.Len(),
		HeadX:          head.X,
		HeadY:          head.Y,
		Dir:            snake.Heading(),
		Reversed:       g.session.ControlsReversed(),
		Items:          g.session.Spawner().Len(),
		MoveEveryTicks: g.moveEvery(),
		State:          state,
	}
}
