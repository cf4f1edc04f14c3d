// Package core provides the fundamental grid types shared by the push engine,
// the history store and the action table. It has no external dependencies so
// the engine stays pure and testable.
package core

import "fmt"

// Coord is an integer grid coordinate.
// X increases to the right, Y increases upward (Up = +Y).
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

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the offset from other to c.
func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Step returns the neighbouring coordinate one unit in the given direction.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// Bounds is the rectangle [0,W) x [0,H) of the active level.
type Bounds struct {
	W, H int
}

// NewBounds creates bounds with the given width and height.
func NewBounds(w, h int) Bounds {
	return Bounds{W: w, H: h}
}

// Contains returns true if the coordinate lies inside the bounds.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// Area returns the number of cells covered by the bounds.
func (b Bounds) Area() int {
	if b.W <= 0 || b.H <= 0 {
		return 0
	}
	return b.W * b.H
}
