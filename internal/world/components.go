package world

import (
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
)

// positions exposes entity coordinates to the history store.
type positions struct{ w *World }

func (p positions) Get(id core.EntityID) (core.Coord, bool) {
	return p.w.Position(id)
}

func (p positions) Set(id core.EntityID, c core.Coord) {
	p.w.SetPosition(id, c)
}

// sublimation exposes the sublimated flag of volatile entities.
type sublimation struct{ w *World }

func (s sublimation) Get(id core.EntityID) (bool, bool) {
	e, ok := s.w.entities[id]
	if !ok || !e.volatile {
		return false, false
	}
	return e.sublimated, true
}

func (s sublimation) Set(id core.EntityID, v bool) {
	if e, ok := s.w.entities[id]; ok && e.volatile {
		e.sublimated = v
	}
}

// Positions returns the position component for history tracking.
func (w *World) Positions() history.Component[core.Coord] {
	return positions{w: w}
}

// Sublimation returns the sublimated-flag component for history tracking.
// Only volatile entities carry it.
func (w *World) Sublimation() history.Component[bool] {
	return sublimation{w: w}
}
