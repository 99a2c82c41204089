package core

// AdvanceAnimations steps every currently animating tile by one frame.
// Called once per tick regardless of snake movement.
func (g *Grid) AdvanceAnimations() {
	// Snapshot: Advance may drop entries from the index
	for _, c := range g.animating.list() {
		g.Advance(g.At(c))
	}
}

// Advance moves an animated tile to its next frame.
//
// At the end of a cycle the frame resets to 0 and the cycle counter decides:
// -1 loops forever, values above 1 are decremented, and 1 or 0 end the
// animation by replacing the tile with its after-animation type.
// Static tiles are ignored.
func (g *Grid) Advance(t Tile) Tile {
	anim, ok := t.Animation()
	if !ok {
		return t
	}
	// Callers may hold a stale snapshot; always work from the installed tile
	if cur := g.At(t.Pos); cur != t {
		return cur
	}

	if anim.Frame < anim.Frames-1 {
		anim.Frame++
		return g.SetAnimated(t.Pos.X, t.Pos.Y, t.Type, t.Orientation, anim)
	}

	anim.Frame = 0
	switch {
	case anim.Cycles == -1:
		return g.SetAnimated(t.Pos.X, t.Pos.Y, t.Type, t.Orientation, anim)
	case anim.Cycles > 1:
		anim.Cycles--
		return g.SetAnimated(t.Pos.X, t.Pos.Y, t.Type, t.Orientation, anim)
	default:
		return g.stopAnimation(t, anim)
	}
}

// stopAnimation replaces the tile with its after-animation type, which also
// removes it from the animating index.
func (g *Grid) stopAnimation(t Tile, anim Animation) Tile {
	return g.Set(t.Pos.X, t.Pos.Y, anim.After, anim.AfterOrientation)
}
