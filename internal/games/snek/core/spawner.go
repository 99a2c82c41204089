package core

import (
	"math/rand"
	"time"
)

// Item is a spawned collectible or hazard tracked for ageing out.
type Item struct {
	Pos       Coord
	Type      TileType
	CreatedAt time.Duration
}

// SpawnReport describes what one spawner tick did.
type SpawnReport struct {
	Spawned   bool
	Item      Item
	Despawned []Item
}

// ItemSpawner creates item tiles on a timer and removes them again after
// they have been on the board for the despawn interval.
type ItemSpawner struct {
	grid         *Grid
	rng          *rand.Rand
	weights      []ItemWeight
	spawnEvery   time.Duration
	despawnAfter time.Duration
	lastSpawn    time.Duration
	items        []Item
}

// NewItemSpawner creates a spawner over g. Its clock starts at zero.
func NewItemSpawner(g *Grid, cfg Config, rng *rand.Rand) *ItemSpawner {
	weights := make([]ItemWeight, len(cfg.ItemWeights))
	copy(weights, cfg.ItemWeights)
	return &ItemSpawner{
		grid:         g,
		rng:          rng,
		weights:      weights,
		spawnEvery:   cfg.SpawnInterval,
		despawnAfter: cfg.DespawnInterval,
	}
}

// Tick runs the spawn timer and the despawn sweep for session time now.
//
// When the spawn interval has elapsed an item type is drawn from the
// probability table and placed on a uniformly chosen empty cell. If the board
// has no empty cell the spawn is skipped, but the timer still resets: a full
// board waits a whole interval before trying again.
func (s *ItemSpawner) Tick(now time.Duration) SpawnReport {
	var report SpawnReport

	if now-s.lastSpawn >= s.spawnEvery {
		typ, ok := s.draw()
		if ok && s.grid.EmptyCount() > 0 {
			pos := s.grid.EmptyCoord(s.rng.Intn(s.grid.EmptyCount()))
			s.grid.Set(pos.X, pos.Y, typ, DirUp)
			item := Item{Pos: pos, Type: typ, CreatedAt: now}
			s.items = append(s.items, item)
			report.Spawned = true
			report.Item = item
		}
		s.lastSpawn = now
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if now-item.CreatedAt < s.despawnAfter {
			kept = append(kept, item)
			continue
		}
		// Only clear cells that still show the item
		if s.grid.At(item.Pos).Type == item.Type {
			s.grid.Set(item.Pos.X, item.Pos.Y, TileEmpty, DirUp)
		}
		report.Despawned = append(report.Despawned, item)
	}
	s.items = kept

	return report
}

// draw picks an item type from the weighted table.
func (s *ItemSpawner) draw() (TileType, bool) {
	if len(s.weights) == 0 {
		return TileEmpty, false
	}
	r := s.rng.Float64()
	acc := 0.0
	for _, w := range s.weights {
		acc += w.Weight
		if r < acc {
			return w.Type, true
		}
	}
	// Rounding left r past the last bucket
	return s.weights[len(s.weights)-1].Type, true
}

// Track starts ageing an item that was placed by something other than Tick,
// such as a level layout.
func (s *ItemSpawner) Track(pos Coord, typ TileType, now time.Duration) {
	s.items = append(s.items, Item{Pos: s.grid.Wrap(pos), Type: typ, CreatedAt: now})
}

// Consume stops tracking the item at pos. It is a no-op when none is tracked.
func (s *ItemSpawner) Consume(pos Coord) bool {
	pos = s.grid.Wrap(pos)
	for i, item := range s.items {
		if item.Pos == pos {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the tracked items, oldest first.
func (s *ItemSpawner) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of tracked items.
func (s *ItemSpawner) Len() int {
	return len(s.items)
}
