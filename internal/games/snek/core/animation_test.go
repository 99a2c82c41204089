package core

import "testing"

func TestAdvanceFiniteAnimation(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetAnimated(1, 1, TileExplodingBomb, DirUp, Animation{Frames: 4, Cycles: 1, After: TileEmpty})

	for _, expected := range []int{1, 2, 3} {
		tile := g.Advance(g.Get(1, 1))
		if !tile.IsAnimated() {
			t.Fatalf("animation stopped early at frame %d", expected)
		}
		if tile.Frame() != expected {
			t.Errorf("Frame() = %d, expected %d", tile.Frame(), expected)
		}
	}

	tile := g.Advance(g.Get(1, 1))
	if tile.IsAnimated() {
		t.Error("animation should stop after the last frame of its only cycle")
	}
	if tile.Type != TileEmpty {
		t.Errorf("tile type = %v, expected empty after animation", tile.Type)
	}
	if g.AnimatingCount() != 0 {
		t.Errorf("AnimatingCount() = %d, expected 0", g.AnimatingCount())
	}
	if g.EmptyCount() != 9 {
		t.Errorf("EmptyCount() = %d, expected 9", g.EmptyCount())
	}
}

func TestAdvanceAnimationCycles(t *testing.T) {
	tests := []struct {
		name        string
		cycles      int
		advances    int
		animated    bool
		frame       int
		cyclesAfter int
	}{
		{"looping never stops", -1, 40, true, 0, -1},
		{"looping mid cycle", -1, 6, true, 2, -1},
		{"two cycles after one", 2, 4, true, 0, 1},
		{"two cycles finished", 2, 8, false, 0, 0},
		{"three cycles after two", 3, 8, true, 0, 1},
		{"zero cycles behaves like one", 0, 4, false, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(2, 2)
			g.SetAnimated(0, 0, TileExplodingBomb, DirUp, Animation{
				Frames: 4,
				Cycles: tc.cycles,
				After:  TileWall,
			})

			for i := 0; i < tc.advances; i++ {
				g.AdvanceAnimations()
			}

			tile := g.Get(0, 0)
			if tile.IsAnimated() != tc.animated {
				t.Fatalf("IsAnimated() = %v, expected %v", tile.IsAnimated(), tc.animated)
			}
			if !tc.animated {
				if tile.Type != TileWall {
					t.Errorf("tile type = %v, expected after-animation type wall", tile.Type)
				}
				return
			}
			anim, _ := tile.Animation()
			if anim.Frame != tc.frame {
				t.Errorf("Frame = %d, expected %d", anim.Frame, tc.frame)
			}
			if anim.Cycles != tc.cyclesAfter {
				t.Errorf("Cycles = %d, expected %d", anim.Cycles, tc.cyclesAfter)
			}
		})
	}
}

func TestAdvanceIgnoresStaticTiles(t *testing.T) {
	g := NewGrid(2, 2)
	wall := g.Set(0, 0, TileWall, DirUp)
	g.TakeDirty()

	if got := g.Advance(wall); got != wall {
		t.Errorf("Advance() = %+v, expected static tile unchanged", got)
	}
	if g.DirtyCount() != 0 {
		t.Errorf("DirtyCount() = %d, expected 0", g.DirtyCount())
	}
}

func TestAdvanceStaleTile(t *testing.T) {
	g := NewGrid(2, 2)
	stale := g.SetAnimated(0, 0, TileExplodingBomb, DirUp, Animation{Frames: 4, Cycles: -1})
	g.Set(0, 0, TileApple, DirUp)

	got := g.Advance(stale)
	if got.Type != TileApple {
		t.Errorf("Advance() on a replaced tile returned %v, expected current apple", got.Type)
	}
	if g.AnimatingCount() != 0 {
		t.Errorf("AnimatingCount() = %d, expected 0", g.AnimatingCount())
	}
}

func TestAdvanceAnimationsMarksDirty(t *testing.T) {
	g := NewGrid(4, 1)
	g.SetAnimated(0, 0, TileExplodingBomb, DirUp, Animation{Frames: 2, Cycles: -1})
	g.SetAnimated(2, 0, TileExplodingBomb, DirUp, Animation{Frames: 2, Cycles: -1})
	g.TakeDirty()

	g.AdvanceAnimations()

	if g.DirtyCount() != 2 {
		t.Errorf("DirtyCount() = %d, expected 2 after one frame step", g.DirtyCount())
	}
}
