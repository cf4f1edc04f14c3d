// Package controller turns a key press into the two-phase move of the
// controlled entity: first the rank move, then the file move, each read from
// the current action table and held for a fixed number of ticks.
package controller

import (
	"github.com/vovakirdan/pushcore/internal/actiontable"
	"github.com/vovakirdan/pushcore/internal/core"
)

// Phase is the controller state.
type Phase int

const (
	Waiting Phase = iota
	RankMove
	FileMove
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case RankMove:
		return "rank"
	case FileMove:
		return "file"
	default:
		return "unknown"
	}
}

// DefaultPhaseTicks is the phase duration used when none is configured.
const DefaultPhaseTicks = 8

// Controller sequences Waiting -> RankMove(key) -> FileMove(key) -> Waiting.
type Controller struct {
	entity     core.EntityID
	phaseTicks int

	phase     Phase
	key       core.MarkerID
	remaining int
	fresh     bool // Phase entered but its moves not emitted yet
}

// New creates a controller for one entity. phaseTicks below 1 is raised to 1.
func New(entity core.EntityID, phaseTicks int) *Controller {
	return &Controller{
		entity:     entity,
		phaseTicks: max(phaseTicks, 1),
	}
}

// Entity returns the controlled entity.
func (c *Controller) Entity() core.EntityID {
	return c.entity
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Key returns the key driving the current action, empty while waiting.
func (c *Controller) Key() core.MarkerID {
	return c.key
}

// Remaining returns the ticks left in the current phase.
func (c *Controller) Remaining() int {
	return c.remaining
}

// Activate starts an action for key. Ignored unless the controller is waiting.
func (c *Controller) Activate(key core.MarkerID) bool {
	if c.phase != Waiting || key == "" {
		return false
	}
	c.key = key
	c.enter(RankMove)
	return true
}

// Step advances one tick. On the first tick of a phase every matching
// rank (or file) fires, each producing its own command.
func (c *Controller) Step(table *actiontable.Table) []core.MoveCommand {
	if c.phase == Waiting {
		return nil
	}

	var cmds []core.MoveCommand
	if c.fresh {
		c.fresh = false
		var dirs []core.Direction
		if c.phase == RankMove {
			dirs = table.RankMoves(c.key)
		} else {
			dirs = table.FileMoves(c.key)
		}
		for _, d := range dirs {
			cmds = append(cmds, core.MoveCommand{Entity: c.entity, Direction: d})
		}
	}

	c.remaining--
	if c.remaining <= 0 {
		switch c.phase {
		case RankMove:
			c.enter(FileMove)
		case FileMove:
			c.Reset()
		}
	}
	return cmds
}

// Reset drops any action in progress.
func (c *Controller) Reset() {
	c.phase = Waiting
	c.key = ""
	c.remaining = 0
	c.fresh = false
}

func (c *Controller) enter(p Phase) {
	c.phase = p
	c.remaining = c.phaseTicks
	c.fresh = true
}
