package core

import (
	"math/rand"
	"time"
)

// State is the session lifecycle state.
type State int

const (
	StatePaused State = iota
	StateRunning
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Input is the direction sampled for one tick. Without a direction the snake
// keeps its heading.
type Input struct {
	Direction    Direction
	HasDirection bool
}

// Move returns an Input requesting d.
func Move(d Direction) Input {
	return Input{Direction: d, HasDirection: true}
}

// TickResult reports what happened during one tick.
type TickResult struct {
	State      State
	Moved      bool
	Direction  Direction
	Target     Tile
	Resolution Resolution
	Spawn      SpawnReport
}

// Session is the per-tick orchestrator. It owns one grid, snake and spawner
// and rebuilds all of them together on Restart, so no partially reset state
// is ever observable.
type Session struct {
	cfg   Config
	level LevelData
	rng   *rand.Rand

	grid    *Grid
	snake   *Snake
	spawner *ItemSpawner

	state    State
	score    int
	reversed bool
	ticks    uint64
	elapsed  time.Duration
	cause    TileType
}

// NewSession builds a fresh session for level. It starts Paused, waiting for
// the player to start it.
func NewSession(cfg Config, level LevelData, rng *rand.Rand) *Session {
	s := &Session{
		cfg:   cfg,
		level: level,
		rng:   rng,
	}
	s.reset()
	s.state = StatePaused
	return s
}

// reset replaces every component with a fresh one.
func (s *Session) reset() {
	grid := BuildGrid(s.level, s.cfg)
	snake := NewSnake(grid, s.level.StartPosition(), s.cfg.StartDirection, s.cfg.StartLength)
	spawner := NewItemSpawner(grid, s.cfg, s.rng)

	// Items that came with the level age out like spawned ones
	for _, t := range grid.Tiles() {
		if t.Type.IsItem() {
			spawner.Track(t.Pos, t.Type, 0)
		}
	}

	s.grid = grid
	s.snake = snake
	s.spawner = spawner
	s.score = 0
	s.reversed = false
	s.ticks = 0
	s.elapsed = 0
	s.cause = TileEmpty
}

// Restart starts over on a new grid with a fresh snake, spawner, zero score
// and normal controls, and sets the session Running.
func (s *Session) Restart() {
	s.reset()
	s.state = StateRunning
}

// SetLevel replaces the level used by the next Restart.
func (s *Session) SetLevel(level LevelData) {
	s.level = level
}

// TogglePause flips between Paused and Running. It does nothing after game over.
func (s *Session) TogglePause() {
	switch s.state {
	case StatePaused:
		s.state = StateRunning
	case StateRunning:
		s.state = StatePaused
	}
}

// EffectiveDirection translates a requested direction into the one the snake
// will actually take: inverted while controls are reversed, and replaced by
// the current heading when it would turn the snake back onto itself.
func (s *Session) EffectiveDirection(requested Direction) Direction {
	heading := s.snake.Heading()
	if !requested.Valid() {
		return heading
	}
	d := requested
	if s.reversed {
		d = d.Opposite()
	}
	if d == heading.Opposite() {
		return heading
	}
	return d
}

// Tick advances the session by one step: animations first, then (only while
// Running) direction translation, the rule table with the resulting move or
// game over, and finally the spawner.
func (s *Session) Tick(in Input) TickResult {
	s.ticks++
	s.grid.AdvanceAnimations()

	if s.state != StateRunning {
		return TickResult{State: s.state}
	}
	s.elapsed += s.cfg.TickInterval

	dir := s.snake.Heading()
	if in.HasDirection {
		dir = s.EffectiveDirection(in.Direction)
	}

	target := s.snake.PeekNext(dir)
	res := Resolve(target.Type, s.reversed)
	result := TickResult{
		Direction:  dir,
		Target:     target,
		Resolution: res,
	}

	if res.TriggerAnimation {
		s.grid.SetAnimated(target.Pos.X, target.Pos.Y, TileExplodingBomb, DirUp, Animation{
			Frames: s.cfg.Frames(TileExplodingBomb),
			Cycles: 1,
			After:  TileEmpty,
		})
	}
	if res.Outcome == OutcomeGameOver {
		if res.ConsumesItem {
			s.spawner.Consume(target.Pos)
		}
		s.state = StateGameOver
		s.cause = target.Type
		result.State = s.state
		return result
	}

	s.score += res.ScoreDelta
	s.reversed = res.Reversed
	s.snake.Step(dir, res.Grow)
	if res.ConsumesItem {
		s.spawner.Consume(target.Pos)
	}
	result.Moved = true

	result.Spawn = s.spawner.Tick(s.elapsed)
	result.State = s.state
	return result
}

// TakeDirty hands the changed tiles to a renderer and clears the dirty set.
func (s *Session) TakeDirty() []Tile {
	return s.grid.TakeDirty()
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// IsGameOver reports whether the session has ended.
func (s *Session) IsGameOver() bool {
	return s.state == StateGameOver
}

// IsPaused reports whether the session is paused.
func (s *Session) IsPaused() bool {
	return s.state == StatePaused
}

// ControlsReversed reports whether submitted directions are being inverted.
func (s *Session) ControlsReversed() bool {
	return s.reversed
}

// GameOverCause returns the tile type that ended the session.
func (s *Session) GameOverCause() TileType {
	return s.cause
}

// Grid returns the current grid. It is replaced on Restart.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Snake returns the current snake. It is replaced on Restart.
func (s *Session) Snake() *Snake {
	return s.snake
}

// Spawner returns the current item spawner. It is replaced on Restart.
func (s *Session) Spawner() *ItemSpawner {
	return s.spawner
}

// Ticks returns the number of ticks since the last reset.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Elapsed returns the session time spent Running since the last reset.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Level returns the level the next Restart builds from.
func (s *Session) Level() LevelData {
	return s.level
}
