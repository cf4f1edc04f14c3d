package core

import (
	"fmt"
	"strings"
)

// EntityID identifies a grid-positioned entity for its whole lifetime.
type EntityID uint32

// MarkerID is the label of a marker entity, usually the physical key it binds.
type MarkerID string

// BlockKind decides how an occupant reacts to pushes.
type BlockKind uint8

const (
	// Static occupants block and never move.
	Static BlockKind = iota
	// Dynamic occupants move under their own command or when pushed.
	Dynamic
)

// String returns a human-readable name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ParseBlockKind parses "static" or "dynamic".
func ParseBlockKind(s string) (BlockKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	default:
		return 0, fmt.Errorf("core: unknown block kind %q", s)
	}
}

// MoveCommand asks the engine to move one entity one cell.
type MoveCommand struct {
	Entity    EntityID
	Direction Direction
}

// String returns a compact description of the command.
func (m MoveCommand) String() string {
	return fmt.Sprintf("#%d %s", m.Entity, m.Direction)
}
