package core

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal move directions.
// The iota order is the canonical order used by the action table.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// DirectionCount is the number of cardinal directions.
const DirectionCount = 4

// CanonicalOrder returns the directions in table order: Up, Left, Down, Right.
func CanonicalOrder() [DirectionCount]Direction {
	return [DirectionCount]Direction{Up, Left, Down, Right}
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the unit offset for one step in this direction.
// Up increases Y and Right increases X.
func (d Direction) Delta() Coord {
	switch d {
	case Up:
		return Coord{X: 0, Y: 1}
	case Left:
		return Coord{X: -1, Y: 0}
	case Down:
		return Coord{X: 0, Y: -1}
	case Right:
		return Coord{X: 1, Y: 0}
	default:
		return Coord{}
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Left:
		return Right
	case Down:
		return Up
	case Right:
		return Left
	default:
		return d
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d < DirectionCount
}

// ParseDirection parses "up", "left", "down", "right" or their first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "left", "l":
		return Left, nil
	case "down", "d":
		return Down, nil
	case "right", "r":
		return Right, nil
	default:
		return 0, fmt.Errorf("core: unknown direction %q", s)
	}
}
