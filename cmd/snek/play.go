package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snek/internal/config"
	"github.com/vovakirdan/tui-snek/internal/core"
	"github.com/vovakirdan/tui-snek/internal/games/snek"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels"
	"github.com/vovakirdan/tui-snek/internal/platform/tui"
	"github.com/vovakirdan/tui-snek/internal/registry"
)

var (
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing. Without a level ID a level picker is shown first.

Controls:
  Arrows/WASD  - Steer
  Space        - Start, pause/unpause, restart after game over
  P/Esc        - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot to ~/.snek/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slow start, more apples, fewer bombs
  normal - Stock item mix, speeds up as the score grows
  hard   - Faster start, more bombs and lemons
  fixed  - No speed-up, stays at config's initial level

With --levels-dir and --watch, edits to level files are picked up the
next time the game restarts.

Examples:
  snek play
  snek play 02-arena
  snek play --difficulty hard
  snek play --config ./my-snek.yaml
  snek play --levels-dir ./levels --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --levels-dir when level files change")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, levels.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'snek levels' to see available levels.")
		}
		os.Exit(1)
	}
}

// play runs one game. Errors are returned so the log file is closed before
// the process exits.
func play(cmd *cobra.Command, args []string) (err error) {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	defer func() {
		if err != nil {
			logger.Error("play failed", "err", err)
		}
	}()

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	cfg, err := config.LoadSnek(flagConfig)
	if err != nil {
		return err
	}

	loader := levels.NewLoader(flagLevelsDir, cfg.Board.Width, cfg.Board.Height)
	loader.Logger = logger
	catalog, err := loader.Catalog()
	if err != nil {
		return err
	}

	// Get terminal size early for the level picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
		if _, err := levels.Find(catalog, levelID); err != nil {
			return err
		}
	} else {
		result, menuErr := tui.RunMenu(catalog, width, height)
		if menuErr != nil {
			return menuErr
		}
		if result.Quit {
			return nil
		}
		levelID = result.LevelID
		width, height = result.Width, result.Height
	}

	// Set config, difficulty and levels for the game before creation
	snek.SetConfigPath(flagConfig)
	snek.SetDifficultyPreset(flagDifficulty)
	snek.SetLevels(catalog)
	snek.SetStartLevel(levelID)
	snek.SetLogger(logger)

	if flagWatch && flagLevelsDir != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := loader.Watch(ctx, snek.SetLevels); err != nil {
				logger.Error("level watcher stopped", "err", err)
			}
		}()
	}

	game, err := registry.Create(snek.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	state, err := tui.Run(game, rc, logger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	fmt.Printf("Level %s, score %d\n", state.Level, state.Score)
	return nil
}
