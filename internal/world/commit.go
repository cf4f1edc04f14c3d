package world

import (
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/push"
)

// Displacement is one entity moving one cell, for the presentation layer.
type Displacement struct {
	Entity core.EntityID
	From   core.Coord
	To     core.Coord
}

// Commit applies accepted outcomes in order. Each moved entity advances one
// cell in its command's direction; list order is farthest first, so every
// destination has already been vacated. Entities that no longer exist are
// skipped.
func (w *World) Commit(outcomes []push.Outcome) []Displacement {
	var out []Displacement
	for _, o := range outcomes {
		if !o.Result.Accepted {
			continue
		}
		for _, id := range o.Result.Moved {
			e, ok := w.entities[id]
			if !ok {
				continue
			}
			from := e.pos
			e.pos = from.Step(o.Command.Direction)
			out = append(out, Displacement{Entity: id, From: from, To: e.pos})
		}
	}
	return out
}

// Sublimate flags every group of volatile entities sharing a cell as
// sublimated and returns them in creation order. Sublimated entities drop out
// of the occupancy snapshot from the next build on.
func (w *World) Sublimate() []core.EntityID {
	byCell := make(map[core.Coord][]core.EntityID)
	for _, id := range w.order {
		e := w.entities[id]
		if !e.volatile || e.sublimated {
			continue
		}
		byCell[e.pos] = append(byCell[e.pos], id)
	}

	hit := make(map[core.EntityID]bool)
	for _, ids := range byCell {
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			hit[id] = true
		}
	}

	var out []core.EntityID
	for _, id := range w.order {
		if hit[id] {
			w.entities[id].sublimated = true
			out = append(out, id)
		}
	}
	return out
}
