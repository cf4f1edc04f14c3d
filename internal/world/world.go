// Package world holds the authoritative state of grid-positioned entities and
// applies accepted push results to it.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pushcore/internal/actiontable"
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/occupancy"
)

// ErrExists is returned when spawning an entity with an ID already in use.
var ErrExists = errors.New("world: entity already exists")

// Spec describes an entity to spawn. A zero ID picks the next free one.
type Spec struct {
	ID       core.EntityID
	Position core.Coord
	Kind     core.BlockKind
	Volatile bool
	Marker   core.MarkerID
}

type entity struct {
	pos        core.Coord
	kind       core.BlockKind
	volatile   bool
	sublimated bool
	marker     core.MarkerID
}

// World stores entities in creation order so iteration is deterministic.
type World struct {
	next      core.EntityID
	order     []core.EntityID
	entities  map[core.EntityID]*entity
	onDespawn []func(core.EntityID)
}

// New creates an empty world.
func New() *World {
	return &World{
		next:     1,
		entities: make(map[core.EntityID]*entity),
	}
}

// Spawn adds an entity and returns its ID.
func (w *World) Spawn(s Spec) (core.EntityID, error) {
	id := s.ID
	if id == 0 {
		id = w.next
	}
	if _, exists := w.entities[id]; exists {
		return 0, fmt.Errorf("%w: #%d", ErrExists, id)
	}
	if id >= w.next {
		w.next = id + 1
	}

	w.entities[id] = &entity{
		pos:      s.Position,
		kind:     s.Kind,
		volatile: s.Volatile,
		marker:   s.Marker,
	}
	w.order = append(w.order, id)
	return id, nil
}

// OnDespawn registers a hook run after an entity is removed.
func (w *World) OnDespawn(fn func(core.EntityID)) {
	w.onDespawn = append(w.onDespawn, fn)
}

// Despawn removes an entity. Unknown IDs are ignored.
func (w *World) Despawn(id core.EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for i, e := range w.order {
		if e == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for _, fn := range w.onDespawn {
		fn(id)
	}
}

// Exists reports whether the entity is alive.
func (w *World) Exists(id core.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Entities returns all entity IDs in creation order.
func (w *World) Entities() []core.EntityID {
	out := make([]core.EntityID, len(w.order))
	copy(out, w.order)
	return out
}

// Len returns the number of entities.
func (w *World) Len() int {
	return len(w.order)
}

// Position returns an entity's coordinate.
func (w *World) Position(id core.EntityID) (core.Coord, bool) {
	e, ok := w.entities[id]
	if !ok {
		return core.Coord{}, false
	}
	return e.pos, true
}

// SetPosition moves an entity without any collision check.
func (w *World) SetPosition(id core.EntityID, c core.Coord) {
	if e, ok := w.entities[id]; ok {
		e.pos = c
	}
}

// Kind returns an entity's block kind.
func (w *World) Kind(id core.EntityID) (core.BlockKind, bool) {
	e, ok := w.entities[id]
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// Marker returns the marker label of an entity, if it is a marker.
func (w *World) Marker(id core.EntityID) (core.MarkerID, bool) {
	e, ok := w.entities[id]
	if !ok || e.marker == "" {
		return "", false
	}
	return e.marker, true
}

// Volatile reports whether the entity is flagged volatile.
func (w *World) Volatile(id core.EntityID) bool {
	e, ok := w.entities[id]
	return ok && e.volatile
}

// Sublimated reports whether a volatile entity has sublimated.
func (w *World) Sublimated(id core.EntityID) bool {
	e, ok := w.entities[id]
	return ok && e.sublimated
}

// Placements returns the occupancy feed for the snapshot builder.
// Sublimated entities are absent from the grid.
func (w *World) Placements() []occupancy.Placement {
	out := make([]occupancy.Placement, 0, len(w.order))
	for _, id := range w.order {
		e := w.entities[id]
		if e.sublimated {
			continue
		}
		out = append(out, occupancy.Placement{
			Coord: e.pos,
			Occupant: occupancy.Occupant{
				ID:       id,
				Kind:     e.kind,
				Volatile: e.volatile,
			},
		})
	}
	return out
}

// Markers returns the placement of every marker still on the board.
func (w *World) Markers() []actiontable.MarkerPlacement {
	var out []actiontable.MarkerPlacement
	for _, id := range w.order {
		e := w.entities[id]
		if e.marker == "" || e.sublimated {
			continue
		}
		out = append(out, actiontable.MarkerPlacement{Coord: e.pos, Marker: e.marker})
	}
	return out
}

// Snapshot builds the occupancy grid for this tick.
func (w *World) Snapshot(bounds core.Bounds) (*occupancy.Grid, error) {
	return occupancy.Build(bounds, w.Placements())
}
