// Package history keeps per-entity snapshot stacks of tracked component
// values and reacts to the Record, Rewind and Reset commands broadcast once
// per tick. It knows nothing about grids: anything with a Get/Set pair can be
// tracked.
package history

import (
	"fmt"
	"strings"
)

// Command is the history instruction broadcast to every tracked entity.
type Command int

const (
	None Command = iota // No history command this tick
	Record
	Rewind
	Reset
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case None:
		return "none"
	case Record:
		return "record"
	case Rewind:
		return "rewind"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// ParseCommand parses "record", "rewind", "reset" or "" / "none".
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "record":
		return Record, nil
	case "rewind", "undo":
		return Rewind, nil
	case "reset":
		return Reset, nil
	default:
		return None, fmt.Errorf("history: unknown command %q", s)
	}
}
