package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snek/internal/games/snek/levels"
)

// setFlags sets the global flags for one test and restores them afterwards.
func setFlags(t *testing.T, fps int, logFile string) {
	t.Helper()
	oldFPS, oldLog, oldLevel := flagFPS, flagLogFile, flagLogLevel
	oldConfig, oldDir, oldDifficulty := flagConfig, flagLevelsDir, flagDifficulty
	t.Cleanup(func() {
		flagFPS, flagLogFile, flagLogLevel = oldFPS, oldLog, oldLevel
		flagConfig, flagLevelsDir, flagDifficulty = oldConfig, oldDir, oldDifficulty
	})

	flagFPS = fps
	flagLogFile = logFile
	flagLogLevel = "info"
	flagConfig = ""
	flagLevelsDir = ""
	flagDifficulty = ""
}

func TestPlayErrorsAreLogged(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		args []string
		want string
	}{
		{"bad fps", 0, nil, "--fps must be positive"},
		{"unknown level", 60, []string{"no-such-level"}, "no-such-level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "snek.log")
			setFlags(t, tc.fps, logFile)

			err := play(playCmd, tc.args)
			if err == nil {
				t.Fatal("play() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("play() error = %v, expected it to mention %q", err, tc.want)
			}

			data, readErr := os.ReadFile(logFile)
			if readErr != nil {
				t.Fatalf("failed to read log file: %v", readErr)
			}
			out := string(data)
			if !strings.Contains(out, "play failed") || !strings.Contains(out, tc.want) {
				t.Errorf("log file = %q, expected the play failure", out)
			}
		})
	}
}

func TestPlayUnknownLevelIsNotFound(t *testing.T) {
	setFlags(t, 60, "")
	if err := play(playCmd, []string{"no-such-level"}); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("play() error = %v, expected ErrNotFound", err)
	}
}

func TestListLevelsUnknownLevel(t *testing.T) {
	setFlags(t, 60, "")
	if err := listLevels([]string{"no-such-level"}); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("listLevels() error = %v, expected ErrNotFound", err)
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	setFlags(t, 60, "")
	flagLogLevel = "loud"
	if _, _, err := newLogger(); err == nil {
		t.Error("newLogger() should reject an unknown level")
	}
}
