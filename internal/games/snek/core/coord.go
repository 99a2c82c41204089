// Package core holds the tick-driven state machine of Snek: the toroidal tile
// grid, per-tile animations, the snake, the item spawner, the interaction
// rules and the session that ties them together once per tick.
//
// Nothing in this package renders, reads input or touches the filesystem.
package core

import (
	"fmt"
	"strings"
)

// Coord represents a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy). The result is not wrapped.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Direction is one of the four cardinal directions.
// The numeric values matter: turns are computed modulo 4.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Rotate returns the direction turned clockwise by n quarter turns.
// Negative n turns counter-clockwise.
func (d Direction) Rotate(n int) Direction {
	return Direction(wrap(int(d)+n, 4))
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d.Rotate(2)
}

// Delta returns the unit offset of a step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "up" or "Left" into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, true
	case "right":
		return DirRight, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	}
	return DirUp, false
}

// Turn returns the clockwise quarter turns needed to go from heading "from"
// to heading "to": 0 straight, 1 right, 2 reversal, 3 left.
func Turn(from, to Direction) int {
	return wrap(int(to)-int(from), 4)
}

// wrap maps v into [0, n) for any integer v.
func wrap(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
