package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "snek.yaml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return p
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decodeSnek(GetDefaultYAML("snek"))
	if err != nil {
		t.Fatalf("embedded defaults do not decode: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSnekConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultSnekConfig())
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("GetDefaultYAML() should return nil for unknown games")
	}
}

func TestDefaultSnekConfigValid(t *testing.T) {
	if err := DefaultSnekConfig().Validate(); err != nil {
		t.Errorf("DefaultSnekConfig().Validate() = %v, expected nil", err)
	}
}

func TestLoadSnekCustomPath(t *testing.T) {
	p := writeConfig(t, `
board:
  width: 40
items:
  spawn_interval: 500ms
  probabilities:
    apple: 1
timing:
  move_every_ticks: 4
`)

	cfg, err := LoadSnek(p)
	if err != nil {
		t.Fatalf("LoadSnek failed: %v", err)
	}

	if cfg.Board.Width != 40 {
		t.Errorf("Board.Width = %d, expected 40", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("Board.Height = %d, expected default 20", cfg.Board.Height)
	}
	if cfg.Items.SpawnInterval != 500*time.Millisecond {
		t.Errorf("SpawnInterval = %v, expected 500ms", cfg.Items.SpawnInterval)
	}
	if cfg.Items.DespawnInterval != time.Minute {
		t.Errorf("DespawnInterval = %v, expected default 1m", cfg.Items.DespawnInterval)
	}
	if len(cfg.Items.Probabilities) != 1 || cfg.Items.Probabilities["apple"] != 1 {
		t.Errorf("Probabilities = %v, expected only apple", cfg.Items.Probabilities)
	}
	if cfg.Timing.MoveEveryTicks != 4 {
		t.Errorf("MoveEveryTicks = %d, expected 4", cfg.Timing.MoveEveryTicks)
	}
}

func TestLoadSnekErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "board: [", "failed to parse"},
		{"bad sum", "items:\n  probabilities:\n    apple: 0.5\n", "sum to"},
		{"bad direction", "snake:\n  start_direction: north\n", "start_direction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadSnek(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, expected it to mention %q", err, tc.want)
			}
		})
	}

	if _, err := LoadSnek(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SnekConfig)
		ok     bool
	}{
		{"defaults", func(*SnekConfig) {}, true},
		{"tiny board", func(c *SnekConfig) { c.Board.Width = 3 }, false},
		{"huge board", func(c *SnekConfig) { c.Board.Height = 1 << 30 }, false},
		{"short snake", func(c *SnekConfig) { c.Snake.StartLength = 1 }, false},
		{"zero spawn", func(c *SnekConfig) { c.Items.SpawnInterval = 0 }, false},
		{"zero tick", func(c *SnekConfig) { c.Timing.TickInterval = 0 }, false},
		{"zero divider", func(c *SnekConfig) { c.Timing.MoveEveryTicks = 0 }, false},
		{"no frames", func(c *SnekConfig) { c.Animation.ExplosionFrames = 0 }, false},
		{"unknown item", func(c *SnekConfig) { c.Items.Probabilities["cherry"] = 0 }, false},
		{"negative weight", func(c *SnekConfig) {
			c.Items.Probabilities = map[string]float64{"apple": 1.5, "bomb": -0.5}
		}, false},
		{"rounding", func(c *SnekConfig) {
			c.Items.Probabilities = map[string]float64{"apple": 0.7, "lemon": 0.2, "bomb": 0.1}
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnekConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestApplySnekPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		bomb    float64
	}{
		{DifficultyEasy, true, 0.0, 0.25},
		{DifficultyNormal, true, 0.3, 0.4},
		{DifficultyHard, true, 0.7, 0.45},
		{DifficultyFixed, false, 0.0, 0.4},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnekConfig()
			ApplySnekPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Items.Probabilities["bomb"] != tc.bomb {
				t.Errorf("bomb probability = %v, expected %v", cfg.Items.Probabilities["bomb"], tc.bomb)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config invalid: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		ok       bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err == nil) != tc.ok || got != tc.expected {
			t.Errorf("ParsePreset(%q) = %q, %v, expected %q ok=%v", tc.in, got, err, tc.expected, tc.ok)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultSnekConfig()
	cfg.Board.Width = 48

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), "spawn_interval: 2s") {
		t.Errorf("durations should marshal as strings:\n%s", data)
	}

	back, err := decodeSnek(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}
