package core

// LevelCell is one entry of a level matrix.
type LevelCell struct {
	Type        TileType
	Orientation Direction
}

// LevelData is the initial tile matrix a grid is built from.
// It is produced outside the core (embedded YAML, level files) and is never
// modified by a session.
type LevelData struct {
	Width  int
	Height int
	Cells  []LevelCell // row-major, len Width*Height

	// Start seeds the snake head. HasStart is false when the level carries
	// no start marker, in which case the centre of the board is used.
	Start    Coord
	HasStart bool
}

// NewLevelData returns an all-empty w x h level.
func NewLevelData(w, h int) LevelData {
	w = max(w, 1)
	h = max(h, 1)
	return LevelData{
		Width:  w,
		Height: h,
		Cells:  make([]LevelCell, w*h),
	}
}

// At returns the cell at (x, y) or an empty cell when out of range.
func (l LevelData) At(x, y int) LevelCell {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return LevelCell{}
	}
	return l.Cells[y*l.Width+x]
}

// Set writes a cell; out-of-range writes are ignored.
// Writing a start marker also records the start position.
func (l *LevelData) Set(x, y int, cell LevelCell) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	l.Cells[y*l.Width+x] = cell
	if cell.Type == TileStartMarker {
		l.Start = C(x, y)
		l.HasStart = true
	}
}

// StartPosition returns the start marker, or the board centre without one.
func (l LevelData) StartPosition() Coord {
	if l.HasStart {
		return l.Start
	}
	return C(l.Width/2, l.Height/2)
}

// BuildGrid creates a fresh grid from the level. Cell types that have an
// animation frame count in cfg are installed as endlessly looping animations.
func BuildGrid(l LevelData, cfg Config) *Grid {
	g := NewGrid(l.Width, l.Height)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			cell := l.At(x, y)
			if _, animated := cfg.AnimationFrames[cell.Type]; animated {
				g.SetAnimated(x, y, cell.Type, cell.Orientation, Animation{
					Frames: cfg.Frames(cell.Type),
					Cycles: -1,
					After:  TileEmpty,
				})
				continue
			}
			g.Set(x, y, cell.Type, cell.Orientation)
		}
	}
	return g
}
