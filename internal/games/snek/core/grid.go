package core

// Grid owns a fixed-size toroidal matrix of tiles.
// Cells are stored in row-major order: index = y*W + x.
//
// Besides the tiles themselves it keeps three indices that are patched on
// every Set rather than rebuilt by scanning:
//   - empty: coordinates holding TileEmpty
//   - animating: coordinates holding an animated tile
//   - dirty: coordinates changed since the last TakeDirty
//
// Grid is not safe for concurrent use; the session mutates it from the tick
// handler only.
type Grid struct {
	w     int
	h     int
	tiles []Tile

	empty     coordSet
	animating coordSet
	dirty     coordSet
}

// NewGrid creates a w x h grid filled with empty tiles.
// Non-positive dimensions are raised to 1.
func NewGrid(w, h int) *Grid {
	w = max(w, 1)
	h = max(h, 1)

	g := &Grid{
		w:         w,
		h:         h,
		tiles:     make([]Tile, w*h),
		empty:     newCoordSet(w * h),
		animating: newCoordSet(0),
		dirty:     newCoordSet(0),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := C(x, y)
			g.tiles[g.index(c)] = Tile{Pos: c, Type: TileEmpty}
			g.empty.add(c)
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.h
}

// Wrap maps any coordinate onto the grid.
func (g *Grid) Wrap(c Coord) Coord {
	return Coord{X: wrap(c.X, g.w), Y: wrap(c.Y, g.h)}
}

func (g *Grid) index(c Coord) int {
	c = g.Wrap(c)
	return c.Y*g.w + c.X
}

// Get returns the tile at (x mod width, y mod height). It never fails.
func (g *Grid) Get(x, y int) Tile {
	return g.tiles[g.index(C(x, y))]
}

// At is Get for a Coord.
func (g *Grid) At(c Coord) Tile {
	return g.tiles[g.index(c)]
}

// Set installs a new static tile at the wrapped coordinate and returns it.
func (g *Grid) Set(x, y int, typ TileType, orientation Direction) Tile {
	return g.install(Tile{
		Pos:         g.Wrap(C(x, y)),
		Type:        typ,
		Orientation: orientation,
	})
}

// SetAnimated installs a new animated tile at the wrapped coordinate and
// returns it. Frames below 1 are treated as a single frame and the starting
// frame is clamped into range.
func (g *Grid) SetAnimated(x, y int, typ TileType, orientation Direction, anim Animation) Tile {
	anim.Frames = max(anim.Frames, 1)
	anim.Frame = min(max(anim.Frame, 0), anim.Frames-1)
	return g.install(Tile{
		Pos:         g.Wrap(C(x, y)),
		Type:        typ,
		Orientation: orientation,
		anim:        anim,
		animated:    true,
	})
}

// install replaces the tile at t.Pos and patches the derived indices.
func (g *Grid) install(t Tile) Tile {
	i := g.index(t.Pos)
	old := g.tiles[i]

	// Empty index
	if old.IsEmpty() && !t.IsEmpty() {
		g.empty.remove(t.Pos)
	}
	if t.IsEmpty() && !old.IsEmpty() {
		g.empty.add(t.Pos)
	}

	// Animating index: a replacement always drops the previous entry
	if t.animated {
		g.animating.add(t.Pos)
	} else {
		g.animating.remove(t.Pos)
	}

	// Dirty index
	changed := old.Type != t.Type || old.Orientation != t.Orientation
	if (old.animated || t.animated) && old.Frame() != t.Frame() {
		changed = true
	}
	if changed {
		g.dirty.add(t.Pos)
	}

	g.tiles[i] = t
	return t
}

// Neighbor returns the tile one cell away from c in an absolute direction,
// wrapping around the edges.
func (g *Grid) Neighbor(c Coord, d Direction) Tile {
	dx, dy := d.Delta()
	return g.At(c.Add(dx, dy))
}

// RelativeNeighbor returns the neighbor in direction (t.Orientation + rel) mod 4:
// rel 0 is ahead of the tile, 2 is behind it.
func (g *Grid) RelativeNeighbor(t Tile, rel int) Tile {
	return g.Neighbor(t.Pos, t.Orientation.Rotate(rel))
}

// Ahead returns the tile in front of t given its own facing.
func (g *Grid) Ahead(t Tile) Tile {
	return g.RelativeNeighbor(t, 0)
}

// Behind returns the tile behind t given its own facing.
func (g *Grid) Behind(t Tile) Tile {
	return g.RelativeNeighbor(t, 2)
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	return g.empty.len()
}

// EmptyCoord returns the i-th entry of the empty index.
// The order is stable for a given sequence of Set calls, which keeps seeded
// spawns reproducible.
func (g *Grid) EmptyCoord(i int) Coord {
	return g.empty.at(i)
}

// EmptyCoords returns a copy of the empty index.
func (g *Grid) EmptyCoords() []Coord {
	return g.empty.list()
}

// AnimatingCoords returns a copy of the animating index.
func (g *Grid) AnimatingCoords() []Coord {
	return g.animating.list()
}

// AnimatingCount returns the number of animated tiles.
func (g *Grid) AnimatingCount() int {
	return g.animating.len()
}

// DirtyCount returns how many cells changed since the last TakeDirty.
func (g *Grid) DirtyCount() int {
	return g.dirty.len()
}

// TakeDirty returns the current tiles of every changed cell, in the order
// they first changed, and clears the dirty index.
func (g *Grid) TakeDirty() []Tile {
	out := make([]Tile, 0, g.dirty.len())
	for _, c := range g.dirty.items {
		out = append(out, g.At(c))
	}
	g.dirty.clear()
	return out
}

// MarkAllDirty flags every cell, forcing a full redraw on the next TakeDirty.
func (g *Grid) MarkAllDirty() {
	for _, t := range g.tiles {
		g.dirty.add(t.Pos)
	}
}

// Count returns the number of tiles of the given type.
func (g *Grid) Count(typ TileType) int {
	n := 0
	for _, t := range g.tiles {
		if t.Type == typ {
			n++
		}
	}
	return n
}

// Tiles returns a copy of all tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// coordSet is an insertion-ordered set with O(1) add/remove (swap-remove).
type coordSet struct {
	items []Coord
	pos   map[Coord]int
}

func newCoordSet(capacity int) coordSet {
	return coordSet{
		items: make([]Coord, 0, capacity),
		pos:   make(map[Coord]int, capacity),
	}
}

func (s *coordSet) add(c Coord) {
	if _, ok := s.pos[c]; ok {
		return
	}
	s.pos[c] = len(s.items)
	s.items = append(s.items, c)
}

func (s *coordSet) remove(c Coord) {
	i, ok := s.pos[c]
	if !ok {
		return
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.pos[moved] = i
	}
	s.items = s.items[:last]
	delete(s.pos, c)
}

func (s *coordSet) has(c Coord) bool {
	_, ok := s.pos[c]
	return ok
}

func (s *coordSet) len() int {
	return len(s.items)
}

func (s *coordSet) at(i int) Coord {
	return s.items[i]
}

func (s *coordSet) list() []Coord {
	out := make([]Coord, len(s.items))
	copy(out, s.items)
	return out
}

func (s *coordSet) clear() {
	s.items = s.items[:0]
	clear(s.pos)
}
