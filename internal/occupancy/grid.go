// Package occupancy builds the per-tick occupancy snapshot: a read-only map
// from grid coordinate to the entity standing there. The push engine threads
// one Grid through a resolution pass and never shares it.
package occupancy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/pushcore/internal/core"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("occupancy: coordinate out of bounds")
	// ErrOccupied is returned when two blocking occupants claim one cell.
	ErrOccupied = errors.New("occupancy: cell already occupied")
	// ErrDuplicate is returned when an entity is placed twice.
	ErrDuplicate = errors.New("occupancy: entity already placed")
)

// Occupant describes the entity standing on a cell.
type Occupant struct {
	ID       core.EntityID
	Kind     core.BlockKind
	Volatile bool
}

// Located pairs an occupant with its coordinate.
type Located struct {
	Coord    core.Coord
	Occupant Occupant
}

// cell is the stored state of one coordinate. stack holds volatile
// co-occupants beyond the primary one.
type cell struct {
	occ   Occupant
	set   bool
	stack []Occupant
}

func (c cell) clone() cell {
	if len(c.stack) > 0 {
		c.stack = append([]Occupant(nil), c.stack...)
	}
	return c
}

func (c cell) equal(other cell) bool {
	if c.set != other.set || c.occ != other.occ || len(c.stack) != len(other.stack) {
		return false
	}
	for i := range c.stack {
		if c.stack[i] != other.stack[i] {
			return false
		}
	}
	return true
}

// Grid is the occupancy snapshot over the bounds of the active level.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	bounds core.Bounds
	cells  []cell
	index  map[core.EntityID]core.Coord

	log     []change
	logging int
}

// NewGrid creates an empty grid covering the given bounds.
func NewGrid(bounds core.Bounds) *Grid {
	return &Grid{
		bounds: bounds,
		cells:  make([]cell, bounds.Area()),
		index:  make(map[core.EntityID]core.Coord),
	}
}

// Bounds returns the rectangle covered by the grid.
func (g *Grid) Bounds() core.Bounds {
	return g.bounds
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c core.Coord) bool {
	return g.bounds.Contains(c)
}

func (g *Grid) offset(c core.Coord) int {
	return c.Y*g.bounds.W + c.X
}

// At returns the primary occupant of a cell.
// Returns false for empty or out-of-bounds cells.
func (g *Grid) At(c core.Coord) (Occupant, bool) {
	if !g.InBounds(c) {
		return Occupant{}, false
	}
	cl := g.cells[g.offset(c)]
	return cl.occ, cl.set
}

// Stacked returns the volatile co-occupants sharing a cell with its primary
// occupant, in arrival order.
func (g *Grid) Stacked(c core.Coord) []Occupant {
	if !g.InBounds(c) {
		return nil
	}
	return append([]Occupant(nil), g.cells[g.offset(c)].stack...)
}

// Locate returns the coordinate an entity occupies.
func (g *Grid) Locate(id core.EntityID) (core.Coord, bool) {
	c, ok := g.index[id]
	return c, ok
}

// Len returns the number of placed occupants, stacked ones included.
func (g *Grid) Len() int {
	return len(g.index)
}

// Place puts an occupant on a cell. Only two volatile occupants may share.
func (g *Grid) Place(c core.Coord, occ Occupant) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if at, ok := g.index[occ.ID]; ok {
		return fmt.Errorf("%w: #%d at %v", ErrDuplicate, occ.ID, at)
	}

	cur := g.cells[g.offset(c)]
	next := cur.clone()
	switch {
	case !cur.set:
		next.occ = occ
		next.set = true
	case cur.occ.Volatile && occ.Volatile:
		next.stack = append(next.stack, occ)
	default:
		return fmt.Errorf("%w: %v holds #%d, cannot place #%d", ErrOccupied, c, cur.occ.ID, occ.ID)
	}
	g.write(c, next)
	return nil
}

// Move relocates the entity standing at from onto to. If from holds stacked
// volatile occupants the primary one moves and the next is promoted. A
// volatile occupant moving onto a volatile occupant joins its stack; any other
// non-empty destination is refused with ErrOccupied and nothing changes.
// Moving from an empty cell is a no-op.
func (g *Grid) Move(from, to core.Coord) error {
	if !g.InBounds(from) || !g.InBounds(to) {
		return fmt.Errorf("%w: move %v -> %v", ErrOutOfBounds, from, to)
	}
	if from == to {
		return nil
	}
	src := g.cells[g.offset(from)]
	if !src.set {
		return nil
	}
	moving := src.occ

	dst := g.cells[g.offset(to)].clone()
	switch {
	case !dst.set:
		dst = cell{occ: moving, set: true}
	case dst.occ.Volatile && moving.Volatile:
		dst.stack = append(dst.stack, moving)
	default:
		return fmt.Errorf("%w: %v holds #%d, cannot move #%d there", ErrOccupied, to, dst.occ.ID, moving.ID)
	}

	// Vacate the source, promoting a stacked volatile if any
	rest := cell{}
	if len(src.stack) > 0 {
		rest.occ = src.stack[0]
		rest.set = true
		rest.stack = append([]Occupant(nil), src.stack[1:]...)
	}
	g.write(from, rest)
	g.write(to, dst)
	return nil
}

// Remove clears a cell entirely.
func (g *Grid) Remove(c core.Coord) {
	if !g.InBounds(c) {
		return
	}
	g.write(c, cell{})
}

// write stores a cell state, keeps the entity index in sync and records the
// previous state when a change log is open.
func (g *Grid) write(c core.Coord, next cell) {
	i := g.offset(c)
	prev := g.cells[i]
	if g.logging > 0 {
		g.log = append(g.log, change{coord: c, prev: prev.clone()})
	}

	if prev.set {
		g.unindex(prev.occ.ID, c)
		for _, o := range prev.stack {
			g.unindex(o.ID, c)
		}
	}
	g.cells[i] = next
	if next.set {
		g.index[next.occ.ID] = c
		for _, o := range next.stack {
			g.index[o.ID] = c
		}
	}
}

func (g *Grid) unindex(id core.EntityID, c core.Coord) {
	if at, ok := g.index[id]; ok && at == c {
		delete(g.index, id)
	}
}

// Occupants returns every occupant in row-major order, stacked ones after the
// primary occupant of their cell.
func (g *Grid) Occupants() []Located {
	out := make([]Located, 0, len(g.index))
	for y := 0; y < g.bounds.H; y++ {
		for x := 0; x < g.bounds.W; x++ {
			c := core.C(x, y)
			cl := g.cells[g.offset(c)]
			if !cl.set {
				continue
			}
			out = append(out, Located{Coord: c, Occupant: cl.occ})
			for _, o := range cl.stack {
				out = append(out, Located{Coord: c, Occupant: o})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid without its change log.
func (g *Grid) Clone() *Grid {
	cells := make([]cell, len(g.cells))
	for i, cl := range g.cells {
		cells[i] = cl.clone()
	}
	index := make(map[core.EntityID]core.Coord, len(g.index))
	for id, c := range g.index {
		index[id] = c
	}
	return &Grid{
		bounds: g.bounds,
		cells:  cells,
		index:  index,
	}
}

// Equal returns true if two grids have the same bounds and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.bounds != other.bounds {
		return false
	}
	for i, cl := range g.cells {
		if !cl.equal(other.cells[i]) {
			return false
		}
	}
	return true
}
