package core

// TileType enumerates everything a grid cell can hold.
type TileType int

const (
	TileEmpty TileType = iota
	TileSnakeHead
	TileSnakeBodyStraight
	TileSnakeBodyLeft
	TileSnakeBodyRight
	TileSnakeTail
	TileApple
	TileLemon
	TileBomb
	TileWall
	TileStartMarker
	TileExplodingBomb
)

var tileTypeNames = map[TileType]string{
	TileEmpty:             "empty",
	TileSnakeHead:         "snake_head",
	TileSnakeBodyStraight: "snake_body_straight",
	TileSnakeBodyLeft:     "snake_body_left",
	TileSnakeBodyRight:    "snake_body_right",
	TileSnakeTail:         "snake_tail",
	TileApple:             "item_apple",
	TileLemon:             "item_lemon",
	TileBomb:              "item_bomb",
	TileWall:              "wall",
	TileStartMarker:       "start_marker",
	TileExplodingBomb:     "animation.exploding_bomb",
}

func (t TileType) String() string {
	if name, ok := tileTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsSnake reports whether the type is part of the snake.
func (t TileType) IsSnake() bool {
	switch t {
	case TileSnakeHead, TileSnakeBodyStraight, TileSnakeBodyLeft, TileSnakeBodyRight, TileSnakeTail:
		return true
	}
	return false
}

// IsItem reports whether the type is a collectible or hazard spawned by the ItemSpawner.
func (t TileType) IsItem() bool {
	return t == TileApple || t == TileLemon || t == TileBomb
}

// Animation is the per-tile animation state.
// Cycles of -1 loops forever; the tile reverts to After/AfterOrientation
// once its last cycle completes.
type Animation struct {
	Frame            int
	Frames           int
	Cycles           int
	After            TileType
	AfterOrientation Direction
}

// Tile is an immutable description of one grid cell.
// Grids replace tiles instead of mutating them, so a Tile value is a snapshot:
// re-fetch by coordinate after any update.
type Tile struct {
	Pos         Coord
	Type        TileType
	Orientation Direction

	anim     Animation
	animated bool
}

// IsAnimated reports whether the tile carries animation state.
func (t Tile) IsAnimated() bool {
	return t.animated
}

// Animation returns the tile's animation state and whether it has one.
func (t Tile) Animation() (Animation, bool) {
	return t.anim, t.animated
}

// Frame returns the current animation frame, or 0 for static tiles.
func (t Tile) Frame() int {
	return t.anim.Frame
}

// IsEmpty reports whether the tile is the empty type.
func (t Tile) IsEmpty() bool {
	return t.Type == TileEmpty
}
