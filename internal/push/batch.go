package push

import (
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/occupancy"
)

// Event reports a push: a mover displacing at least one other entity.
// Single-entity moves are plain motion and produce no event.
type Event struct {
	Pusher    core.EntityID
	Direction core.Direction
	Pushed    []core.EntityID // Entities ahead of the pusher, farthest first
}

// EventFor returns the push event for a resolved move, or nil when the move
// was rejected or displaced only the mover.
func EventFor(dir core.Direction, res Result) *Event {
	if !res.Accepted || len(res.Moved) < 2 {
		return nil
	}
	n := len(res.Moved)
	pushed := make([]core.EntityID, n-1)
	copy(pushed, res.Moved[:n-1])
	return &Event{
		Pusher:    res.Moved[n-1],
		Direction: dir,
		Pushed:    pushed,
	}
}

// Outcome is the resolution of one queued command.
type Outcome struct {
	Command core.MoveCommand
	Origin  core.Coord
	Result  Result
	Event   *Event
	Missing bool // Entity was not in the snapshot
}

// ResolveBatch drains commands in queue order. Each command is resolved
// against the grid as left by the commands before it, so one move can set up
// the board for the next. Accepted commands are never re-validated.
//
// A command for an entity absent from the snapshot, or for a volatile entity
// stacked under another occupant, is a rejected no-op.
func ResolveBatch(g *occupancy.Grid, cmds []core.MoveCommand) []Outcome {
	outcomes := make([]Outcome, 0, len(cmds))
	for _, cmd := range cmds {
		out := Outcome{Command: cmd}

		origin, ok := g.Locate(cmd.Entity)
		if !ok {
			out.Missing = true
			outcomes = append(outcomes, out)
			continue
		}
		out.Origin = origin

		if occ, _ := g.At(origin); occ.ID != cmd.Entity {
			outcomes = append(outcomes, out)
			continue
		}

		out.Result = Resolve(g, origin, cmd.Direction)
		out.Event = EventFor(cmd.Direction, out.Result)
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Events collects the push events of a batch in resolution order.
func Events(outcomes []Outcome) []Event {
	var events []Event
	for _, o := range outcomes {
		if o.Event != nil {
			events = append(events, *o.Event)
		}
	}
	return events
}
