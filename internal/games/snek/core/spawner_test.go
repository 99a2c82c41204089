package core

import (
	"math/rand"
	"testing"
	"time"
)

func spawnerConfig(weights ...ItemWeight) Config {
	cfg := DefaultConfig()
	cfg.SpawnInterval = time.Second
	cfg.DespawnInterval = 5 * time.Second
	cfg.ItemWeights = weights
	return cfg
}

func TestSpawnerSpawnsOnInterval(t *testing.T) {
	g := NewGrid(3, 3)
	sp := NewItemSpawner(g, spawnerConfig(ItemWeight{Type: TileApple, Weight: 1}), rand.New(rand.NewSource(1)))

	if r := sp.Tick(500 * time.Millisecond); r.Spawned {
		t.Error("spawned before the interval elapsed")
	}

	r := sp.Tick(time.Second)
	if !r.Spawned {
		t.Fatal("expected a spawn once the interval elapsed")
	}
	if r.Item.Type != TileApple {
		t.Errorf("spawned %v, expected apple", r.Item.Type)
	}
	if got := g.At(r.Item.Pos).Type; got != TileApple {
		t.Errorf("grid at %v = %v, expected apple", r.Item.Pos, got)
	}
	if g.EmptyCount() != 8 {
		t.Errorf("EmptyCount() = %d, expected 8", g.EmptyCount())
	}
	if sp.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", sp.Len())
	}

	if r := sp.Tick(1500 * time.Millisecond); r.Spawned {
		t.Error("spawned again inside the interval")
	}
}

func TestSpawnerFullBoardResetsTimer(t *testing.T) {
	g := NewGrid(2, 2)
	for _, c := range g.EmptyCoords() {
		g.Set(c.X, c.Y, TileWall, DirUp)
	}
	sp := NewItemSpawner(g, spawnerConfig(ItemWeight{Type: TileApple, Weight: 1}), rand.New(rand.NewSource(1)))

	if r := sp.Tick(time.Second); r.Spawned {
		t.Fatal("spawned on a full board")
	}

	g.Set(1, 1, TileEmpty, DirUp)
	if r := sp.Tick(1500 * time.Millisecond); r.Spawned {
		t.Error("spawned before a full interval passed since the skipped attempt")
	}
	r := sp.Tick(2 * time.Second)
	if !r.Spawned || r.Item.Pos != C(1, 1) {
		t.Errorf("Tick() = %+v, expected spawn at the only empty cell (1,1)", r)
	}
}

func TestSpawnerWithoutWeights(t *testing.T) {
	g := NewGrid(3, 3)
	sp := NewItemSpawner(g, spawnerConfig(), rand.New(rand.NewSource(1)))

	if r := sp.Tick(10 * time.Second); r.Spawned {
		t.Error("spawned with an empty probability table")
	}
	if g.EmptyCount() != 9 {
		t.Errorf("EmptyCount() = %d, expected 9", g.EmptyCount())
	}
}

func TestSpawnerDespawn(t *testing.T) {
	g := NewGrid(3, 3)
	sp := NewItemSpawner(g, spawnerConfig(ItemWeight{Type: TileBomb, Weight: 1}), rand.New(rand.NewSource(7)))

	first := sp.Tick(time.Second)
	if !first.Spawned {
		t.Fatal("expected first spawn")
	}

	r := sp.Tick(6 * time.Second)
	if len(r.Despawned) != 1 || r.Despawned[0].Pos != first.Item.Pos {
		t.Fatalf("Despawned = %+v, expected the first item", r.Despawned)
	}
	if got := g.At(first.Item.Pos).Type; got != TileEmpty {
		t.Errorf("despawned cell = %v, expected empty", got)
	}
	// The new item is placed before the sweep, so it cannot reuse the old cell
	if !r.Spawned || r.Item.Pos == first.Item.Pos {
		t.Errorf("Tick() = %+v, expected a new item elsewhere", r)
	}
	if sp.Len() != 1 {
		t.Errorf("Len() = %d, expected only the new item tracked", sp.Len())
	}
}

func TestSpawnerDespawnLeavesOverwrittenCell(t *testing.T) {
	g := NewGrid(3, 3)
	sp := NewItemSpawner(g, spawnerConfig(), rand.New(rand.NewSource(1)))

	g.Set(0, 0, TileApple, DirUp)
	sp.Track(C(0, 0), TileApple, 0)
	g.Set(0, 0, TileSnakeHead, DirRight)

	r := sp.Tick(5 * time.Second)
	if len(r.Despawned) != 1 {
		t.Fatalf("Despawned = %+v, expected one item", r.Despawned)
	}
	if got := g.Get(0, 0).Type; got != TileSnakeHead {
		t.Errorf("cell = %v, expected the snake to stay", got)
	}
}

func TestSpawnerConsume(t *testing.T) {
	g := NewGrid(3, 3)
	sp := NewItemSpawner(g, spawnerConfig(), rand.New(rand.NewSource(1)))
	sp.Track(C(1, 1), TileLemon, 0)
	sp.Track(C(2, 2), TileApple, 0)

	if !sp.Consume(C(1, 1)) {
		t.Error("Consume() = false, expected true for a tracked item")
	}
	if sp.Consume(C(1, 1)) {
		t.Error("Consume() = true, expected no-op for an untracked position")
	}
	if !sp.Consume(C(-1, -1)) {
		t.Error("Consume() should wrap coordinates like the grid")
	}
	if sp.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", sp.Len())
	}
}

func TestSpawnerDrawFollowsWeights(t *testing.T) {
	g := NewGrid(40, 40)
	cfg := spawnerConfig(
		ItemWeight{Type: TileApple, Weight: 0.5},
		ItemWeight{Type: TileLemon, Weight: 0.1},
		ItemWeight{Type: TileBomb, Weight: 0.4},
	)
	cfg.DespawnInterval = time.Hour
	sp := NewItemSpawner(g, cfg, rand.New(rand.NewSource(42)))

	const draws = 1000
	for i := 1; i <= draws; i++ {
		sp.Tick(time.Duration(i) * time.Second)
	}

	counts := map[TileType]int{}
	for _, item := range sp.Items() {
		counts[item.Type]++
	}
	if sp.Len() != draws {
		t.Fatalf("Len() = %d, expected %d", sp.Len(), draws)
	}
	if counts[TileApple] < 400 || counts[TileApple] > 600 {
		t.Errorf("apples = %d, expected roughly half of %d", counts[TileApple], draws)
	}
	if counts[TileLemon] < 50 || counts[TileLemon] > 150 {
		t.Errorf("lemons = %d, expected roughly a tenth of %d", counts[TileLemon], draws)
	}
	if counts[TileBomb] < 300 || counts[TileBomb] > 500 {
		t.Errorf("bombs = %d, expected roughly 40%% of %d", counts[TileBomb], draws)
	}
}
