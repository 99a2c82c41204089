package core

// Snake is the segmented actor. It owns the ordered chain of body positions;
// the grid owns the tiles drawn at those positions.
type Snake struct {
	grid *Grid

	// body is stored tail-first so that both moving the head (append) and
	// dropping the tail (reslice) are O(1).
	body    []Coord
	heading Direction
}

// NewSnake places a snake with its head at start facing heading and the rest
// of the body trailing behind it. Length counts head and tail, is at least 2,
// and is capped by the board extent along the heading axis so that segments
// never overlap. Whatever the cells held before is overwritten.
func NewSnake(g *Grid, start Coord, heading Direction, length int) *Snake {
	axis := g.Height()
	if heading == DirLeft || heading == DirRight {
		axis = g.Width()
	}
	length = min(max(length, 2), max(axis, 2))

	s := &Snake{
		grid:    g,
		body:    make([]Coord, 0, length),
		heading: heading,
	}

	// Walk from the tail towards the head
	dx, dy := heading.Opposite().Delta()
	for i := length - 1; i >= 0; i-- {
		pos := g.Wrap(start.Add(dx*i, dy*i))
		typ := TileSnakeBodyStraight
		switch i {
		case 0:
			typ = TileSnakeHead
		case length - 1:
			typ = TileSnakeTail
		}
		g.Set(pos.X, pos.Y, typ, heading)
		s.body = append(s.body, pos)
	}
	return s
}

// Head returns the head position.
func (s *Snake) Head() Coord {
	return s.body[len(s.body)-1]
}

// Tail returns the tail position.
func (s *Snake) Tail() Coord {
	return s.body[0]
}

// Heading returns the direction the head faces.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Len returns the number of segments including head and tail.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns the segment positions head-first.
func (s *Snake) Body() []Coord {
	out := make([]Coord, len(s.body))
	for i, c := range s.body {
		out[len(s.body)-1-i] = c
	}
	return out
}

// Contains reports whether any segment occupies c.
func (s *Snake) Contains(c Coord) bool {
	c = s.grid.Wrap(c)
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}

// PeekNext returns the tile the head would enter moving in d. Read-only.
func (s *Snake) PeekNext(d Direction) Tile {
	return s.grid.Neighbor(s.Head(), d)
}

// Step moves the snake one cell in d. With grow the tail stays put and the
// snake gets one segment longer; otherwise the length is unchanged.
//
// A 180 degree turn must be filtered out by the caller; Step would retile it
// as a straight segment. Step does not check what the head moves onto; the
// rules decide that beforehand.
func (s *Snake) Step(d Direction, grow bool) {
	oldHead := s.Head()
	oldHeading := s.heading

	next := s.grid.Neighbor(oldHead, d)
	s.grid.Set(next.Pos.X, next.Pos.Y, TileSnakeHead, d)
	s.body = append(s.body, next.Pos)
	s.heading = d

	// The old head becomes a body segment encoding the turn taken there
	typ := TileSnakeBodyStraight
	switch Turn(oldHeading, d) {
	case 1:
		typ = TileSnakeBodyRight
	case 3:
		typ = TileSnakeBodyLeft
	}
	s.grid.Set(oldHead.X, oldHead.Y, typ, oldHeading)

	if grow {
		return
	}

	tail := s.body[0]
	s.body = s.body[1:]
	s.grid.Set(tail.X, tail.Y, TileEmpty, DirUp)

	// The new tail points along the segment it follows
	newTail := s.body[0]
	ahead := s.grid.At(s.body[1])
	s.grid.Set(newTail.X, newTail.Y, TileSnakeTail, ahead.Orientation)
}
