package levels

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
)

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

func TestLoadBuiltin(t *testing.T) {
	loader := NewLoader("", 32, 20)

	lvls, err := loader.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	if len(lvls) < 2 {
		t.Fatalf("expected at least 2 built-in levels, got %d", len(lvls))
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
	for _, lvl := range lvls {
		if !lvl.Builtin() {
			t.Errorf("level %s should be built-in", lvl.ID)
		}
		if lvl.Data.Width <= 0 || lvl.Data.Height <= 0 {
			t.Errorf("level %s has size %dx%d", lvl.ID, lvl.Data.Width, lvl.Data.Height)
		}
		if !lvl.Data.HasStart {
			t.Errorf("level %s has no start marker", lvl.ID)
		}
	}

	open, err := Find(lvls, "01-open")
	if err != nil {
		t.Fatalf("Find(01-open) failed: %v", err)
	}
	if open.Data.Width != 32 || open.Data.Height != 20 {
		t.Errorf("01-open is %dx%d, expected the loader size 32x20", open.Data.Width, open.Data.Height)
	}
}

func TestBuiltinLevelsBuildSessions(t *testing.T) {
	lvls, err := NewLoader("", 32, 20).LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}

	for _, lvl := range lvls {
		t.Run(lvl.ID, func(t *testing.T) {
			g := core.BuildGrid(lvl.Data, core.DefaultConfig())
			start := lvl.Data.StartPosition()
			if got := g.At(start).Type; got != core.TileStartMarker {
				t.Errorf("start cell = %v, expected start marker", got)
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", "id: zeta\nname: Zeta\nlayout:\n  - \"S..\"\n")
	writeLevel(t, dir, "a.yml", "id: alpha\nsize:\n  w: 5\n  h: 5\n")
	writeLevel(t, dir, "broken.yaml", "id: broken\nlayout:\n  - \"S.S\"\n")
	writeLevel(t, dir, "notes.txt", "not a level")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	writeLevel(t, filepath.Join(dir, "nested"), "mid.yaml", "name: Middle\nlayout:\n  - \".S.\"\n")

	lvls, err := NewLoader(dir, 10, 10).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	ids := []string{"alpha", "mid", "zeta"}
	if len(lvls) != len(ids) {
		t.Fatalf("LoadAll() returned %d levels, expected %d", len(lvls), len(ids))
	}
	for i, id := range ids {
		if lvls[i].ID != id {
			t.Errorf("level %d = %s, expected %s", i, lvls[i].ID, id)
		}
		if lvls[i].Builtin() {
			t.Errorf("level %s loaded from disk reports built-in", id)
		}
	}
	if lvls[1].Name != "Middle" {
		t.Errorf("Name = %q, expected Middle", lvls[1].Name)
	}
}

func TestLoaderSkipsOversizedLevel(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "ok.yaml", "id: ok\n")
	writeLevel(t, dir, "huge.yaml", "id: huge\nsize:\n  w: 1073741824\n  h: 1073741824\n")

	lvls, err := NewLoader(dir, 10, 10).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 1 || lvls[0].ID != "ok" {
		t.Errorf("LoadAll() = %d levels, expected only ok", len(lvls))
	}
}

func TestLoaderLoadFileErrors(t *testing.T) {
	loader := NewLoader(t.TempDir(), 10, 10)

	if _, err := loader.LoadFile(filepath.Join(loader.Root, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}

	p := writeLevel(t, loader.Root, "bad.yaml", "layout:\n  - \"?\"\n")
	if _, err := loader.LoadFile(p); err == nil {
		t.Error("expected error for an unknown glyph")
	}
}

func TestLoaderCatalogOverrides(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "open.yaml", "id: 01-open\nname: My Open\nsize:\n  w: 8\n  h: 8\n")
	writeLevel(t, dir, "extra.yaml", "id: 99-extra\n")

	lvls, err := NewLoader(dir, 32, 20).Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}

	open, err := Find(lvls, "01-open")
	if err != nil {
		t.Fatalf("Find(01-open) failed: %v", err)
	}
	if open.Name != "My Open" || open.Builtin() {
		t.Errorf("01-open = %q builtin=%v, expected the directory override", open.Name, open.Builtin())
	}
	if _, err := Find(lvls, "99-extra"); err != nil {
		t.Errorf("Find(99-extra) failed: %v", err)
	}
	if _, err := Find(lvls, "02-arena"); err != nil {
		t.Errorf("built-in level missing from catalog: %v", err)
	}
	if _, err := Find(lvls, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() of an unknown ID = %v, expected ErrNotFound", err)
	}
}

func TestCatalogMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"), 32, 20)
	if _, err := loader.Catalog(); err == nil {
		t.Error("expected error for a missing level directory")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir, 10, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []Level, 8)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, func(lvls []Level) { changes <- lvls })
	}()

	// The watcher may not be registered yet; keep touching the file until
	// a reload arrives.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(400 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case lvls := <-changes:
			if _, err := Find(lvls, "hot"); err != nil {
				t.Errorf("reloaded catalog misses the new level: %v", err)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}
			return
		case <-tick.C:
			writeLevel(t, dir, "hot.yaml", "id: hot\n")
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

// waitForLevel rewrites path every 300ms until the watcher delivers a
// catalog containing id.
func waitForLevel(t *testing.T, changes <-chan []Level, dir, name, id string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(300 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case lvls := <-changes:
			if _, err := Find(lvls, id); err == nil {
				return
			}
		case <-tick.C:
			writeLevel(t, dir, name, "id: "+id+"\n")
		case <-deadline:
			t.Fatalf("no reload with level %s within 5s", id)
		}
	}
}

func TestWatchNestedDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "pack", "inner")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	loader := NewLoader(dir, 10, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []Level, 8)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, func(lvls []Level) { changes <- lvls })
	}()

	waitForLevel(t, changes, nested, "nested.yaml", "nested")

	// Directories created after the watch started are picked up too
	later := filepath.Join(dir, "later")
	if err := os.Mkdir(later, 0755); err != nil {
		t.Fatal(err)
	}
	waitForLevel(t, changes, later, "late.yaml", "late")

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatchMissingDir(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "gone"), 10, 10)
	if err := loader.Watch(context.Background(), func([]Level) {}); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
