// Package core provides fundamental types and utilities shared by the game and its front ends.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Point is a cell coordinate on a grid. X is the column, Y is the row.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Step returns the neighbouring cell in the given direction.
// The result may lie outside any particular grid; callers bound-check.
func (p Point) Step(d Direction) Point {
	return p.Add(d.Delta())
}

// Direction is one of the four grid directions.
// The numeric values are stable: they are written to save files.
type Direction uint8

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// NumDirections is the number of Direction values.
const NumDirections = 4

// AllDirections lists every direction in enumeration order.
var AllDirections = [NumDirections]Direction{DirLeft, DirUp, DirRight, DirDown}

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool {
	return d < NumDirections
}

// Rotate turns d by n quarter turns clockwise. Negative n turns
// counter-clockwise.
func (d Direction) Rotate(n int) Direction {
	r := (int(d) + n) % NumDirections
	if r < 0 {
		r += NumDirections
	}
	return Direction(r)
}

// Clockwise returns the direction a quarter turn clockwise from d.
func (d Direction) Clockwise() Direction {
	return d.Rotate(1)
}

// CounterClockwise returns the direction a quarter turn counter-clockwise from d.
func (d Direction) CounterClockwise() Direction {
	return d.Rotate(-1)
}

// Opposite returns the reverse of d.
func (d Direction) Opposite() Direction {
	return d.Rotate(2)
}

// IsOpposite reports whether a and b point in opposite directions.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Opposite() == other
}

// Delta returns the unit offset for d.
func (d Direction) Delta() Point {
	switch d {
	case DirLeft:
		return Point{X: -1}
	case DirUp:
		return Point{Y: -1}
	case DirRight:
		return Point{X: 1}
	case DirDown:
		return Point{Y: 1}
	default:
		return Point{}
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name ("left", "up", "right", "down") to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left", "l", "west", "w":
		return DirLeft, true
	case "up", "u", "north", "n":
		return DirUp, true
	case "right", "r", "east", "e":
		return DirRight, true
	case "down", "d", "south", "s":
		return DirDown, true
	}
	return 0, false
}

// MarshalText encodes the direction by name, e.g. in JSON snapshots.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("core: invalid direction %d", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name accepted by ParseDirection.
func (d *Direction) UnmarshalText(b []byte) error {
	v, ok := ParseDirection(string(b))
	if !ok {
		return fmt.Errorf("core: unknown direction %q", b)
	}
	*d = v
	return nil
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
