// Package snek wires the tick-driven Snek core to the platform: it loads the
// configuration and levels, turns platform input into core ticks, and keeps a
// tile buffer for rendering that is refreshed from the grid's dirty set.
package snek

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-snek/internal/config"
	platformcore "github.com/vovakirdan/tui-snek/internal/core"
	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels"
	"github.com/vovakirdan/tui-snek/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "snek"

var (
	settingsMu sync.RWMutex

	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	startLevel string
	logger     *log.Logger
	catalog    []levels.Level
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names leave the config file's difficulty untouched.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel selects the level the next Reset loads, by ID.
// An empty ID means the first level of the catalog.
func SetStartLevel(id string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	startLevel = id
}

// SetLogger sets the logger games report lifecycle events to.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

// SetLevels replaces the level catalog. Running games pick the new
// definition of their level up on the next restart.
func SetLevels(lv []levels.Level) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	catalog = append([]levels.Level(nil), lv...)
}

func currentLevels() []levels.Level {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return catalog
}

// Game implements the Snek game.
type Game struct {
	settings   config.SnekConfig
	cfg        core.Config
	difficulty *config.DifficultyManager
	log        *log.Logger

	rng     *rand.Rand
	session *core.Session
	level   levels.Level

	// Screen layout
	screenW  int
	screenH  int
	boardX   int
	boardY   int
	tooSmall bool

	tick       uint64
	moveTicker int
	pending    core.Direction
	hasPending bool
	started    bool

	// Tile buffer mirrored from the grid through its dirty set
	board     [][]core.Tile
	boardGrid *core.Grid
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// New creates a new Snek game. Call Reset before stepping it.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snek"
}

// Reset loads config and level and builds a fresh session.
// The session waits on the start screen until the player starts it.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	settingsMu.RLock()
	path, preset, levelID, l := configPath, difficultyPreset, startLevel, logger
	settingsMu.RUnlock()

	g.log = l
	if g.log == nil {
		g.log = log.New(io.Discard)
	}

	sc, err := config.LoadSnek(path)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		sc = config.DefaultSnekConfig()
	}
	if preset != "" {
		config.ApplySnekPreset(&sc, preset)
	}

	g.settings = sc
	g.cfg = CoreConfig(sc)
	g.difficulty = config.NewDifficultyManager(sc.Difficulty)
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.level = g.pickLevel(levelID)
	g.session = core.NewSession(g.cfg, g.level.Data, g.rng)

	g.tick = 0
	g.moveTicker = 0
	g.hasPending = false
	g.started = false
	g.boardGrid = nil

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.layout()
	g.refreshBoard()

	g.log.Info("level loaded", "level", g.level.ID, "name", g.level.Name,
		"width", g.level.Data.Width, "height", g.level.Data.Height)
}

// pickLevel resolves id against the catalog, falling back to the first
// level, then to the built-in levels, then to an open board.
func (g *Game) pickLevel(id string) levels.Level {
	all := currentLevels()
	if len(all) == 0 {
		builtin, err := levels.NewLoader("", g.settings.Board.Width, g.settings.Board.Height).LoadBuiltin()
		if err != nil {
			g.log.Warn("built-in levels unavailable", "err", err)
		}
		all = builtin
	}

	if id != "" {
		lvl, err := levels.Find(all, id)
		if err == nil {
			return lvl
		}
		g.log.Warn("unknown level, using the first one", "level", id)
	}
	if len(all) > 0 {
		return all[0]
	}

	data := core.NewLevelData(g.cfg.Width, g.cfg.Height)
	return levels.Level{ID: "open", Name: "Open", Data: data}
}

// Resize relayouts the board for a new terminal size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.layout()
}

// layout centers the board below the HUD and checks that it fits.
func (g *Game) layout() {
	if g.session == nil {
		return
	}
	grid := g.session.Grid()
	frameW := grid.Width()*cellW + 2
	frameH := grid.Height() + 2

	g.tooSmall = g.screenW < frameW || g.screenH < hudHeight+frameH
	g.boardX = (g.screenW-frameW)/2 + 1
	g.boardY = hudHeight + 1
}

// restart rebuilds the session, picking up a reloaded definition of the
// current level if one arrived since the last restart.
func (g *Game) restart() {
	if all := currentLevels(); len(all) > 0 {
		if lvl, err := levels.Find(all, g.level.ID); err == nil {
			g.level = lvl
			g.session.SetLevel(lvl.Data)
		}
	}

	g.session.Restart()
	g.started = true
	g.moveTicker = 0
	g.hasPending = false
	g.layout()
	g.refreshBoard()

	g.log.Info("session restarted", "level", g.level.ID)
}

// Step advances the game by one platform tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionStart) {
		switch {
		case g.session.IsGameOver():
			g.restart()
			return platformcore.StepResult{State: g.State()}
		case !g.started:
			g.started = true
			g.session.TogglePause()
			g.log.Info("session started", "level", g.level.ID)
		default:
			g.session.TogglePause()
		}
	}

	if in.Has(platformcore.ActionPause) && g.started {
		g.session.TogglePause()
	}

	// Buffer the latest direction for the next move
	if a, ok := in.LastDirection(); ok {
		g.pending = toDirection(a)
		g.hasPending = true
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.moveTicker++
	if g.moveTicker < g.moveEvery() {
		return platformcore.StepResult{State: g.State()}
	}
	g.moveTicker = 0

	var input core.Input
	if g.hasPending && g.session.State() == core.StateRunning {
		input = core.Move(g.pending)
		g.hasPending = false
	}

	wasOver := g.session.IsGameOver()
	res := g.session.Tick(input)
	g.logTick(res, wasOver)
	g.refreshBoard()

	return platformcore.StepResult{State: g.State(), Moved: res.Moved}
}

// moveEvery returns the platform ticks per core tick at the current speed.
func (g *Game) moveEvery() int {
	running := 0
	if g.cfg.TickInterval > 0 {
		running = int(g.session.Elapsed() / g.cfg.TickInterval)
	}
	return g.difficulty.MoveEvery(g.settings.Timing.MoveEveryTicks, g.session.Score(), running)
}

func (g *Game) logTick(res core.TickResult, wasOver bool) {
	if res.Moved {
		g.log.Debug("snake moved", "dir", res.Direction, "body", g.session.Snake().Body())
	}
	if res.Spawn.Spawned {
		g.log.Debug("item spawned", "type", res.Spawn.Item.Type, "pos", res.Spawn.Item.Pos)
	}
	for _, it := range res.Spawn.Despawned {
		g.log.Debug("item despawned", "type", it.Type, "pos", it.Pos)
	}
	if !wasOver && g.session.IsGameOver() {
		g.log.Info("game over", "level", g.level.ID, "score", g.session.Score(),
			"cause", g.session.GameOverCause())
	}
}

// refreshBoard copies changed tiles into the render buffer. A new grid
// (after a reset) is copied in full.
func (g *Game) refreshBoard() {
	grid := g.session.Grid()
	if grid != g.boardGrid {
		g.board = make([][]core.Tile, grid.Height())
		for y := range g.board {
			g.board[y] = make([]core.Tile, grid.Width())
		}
		grid.MarkAllDirty()
		g.boardGrid = grid
	}
	for _, t := range g.session.TakeDirty() {
		g.board[t.Pos.Y][t.Pos.X] = t
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:            g.session.Score(),
		GameOver:         g.session.IsGameOver(),
		Paused:           g.session.IsPaused(),
		ControlsReversed: g.session.ControlsReversed(),
		Level:            g.level.ID,
	}
}

// Session exposes the running session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Level returns the level being played.
func (g *Game) Level() levels.Level {
	return g.level
}

func toDirection(a platformcore.Action) core.Direction {
	switch a {
	case platformcore.ActionRight:
		return core.DirRight
	case platformcore.ActionDown:
		return core.DirDown
	case platformcore.ActionLeft:
		return core.DirLeft
	default:
		return core.DirUp
	}
}
