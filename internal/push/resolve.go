// Package push resolves move commands against an occupancy snapshot.
//
// A move is all-or-nothing: the mover and every dynamic entity lined up in
// front of it shift one cell, or nothing moves at all. Resolution walks the
// chain with an explicit work list and mutates a single grid inside a change
// log scope, so a rejected move or a Probe call leaves the grid exactly as it was.
package push

import (
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/occupancy"
)

// Result is the answer for one resolution.
//
// Accepted with an empty Moved list means the origin cell was empty: nothing
// to push, but also nothing blocking. When Moved is non-empty it is ordered
// farthest-pushed-first, pusher-last.
type Result struct {
	Moved    []core.EntityID
	Accepted bool
}

// Rejected reports whether the move was blocked.
func (r Result) Rejected() bool {
	return !r.Accepted
}

// Pusher returns the entity whose move caused the result.
func (r Result) Pusher() (core.EntityID, bool) {
	if len(r.Moved) == 0 {
		return 0, false
	}
	return r.Moved[len(r.Moved)-1], true
}

func rejected() Result {
	return Result{}
}

// Resolve moves the occupant of origin one cell in dir, pushing the dynamic
// occupants ahead of it. On acceptance g is updated in place; on rejection g
// is left unchanged.
//
// Rules, applied cell by cell from origin outward:
//   - outside the bounds: reject
//   - empty: the chain stops here and the move is accepted
//   - Static occupant: reject
//   - Dynamic occupant: it joins the chain and the next cell is examined
//
// A volatile entity entering a cell held by a volatile occupant treats that
// cell as empty; both end up stacked on it. Any other mover reaching a cell
// that already holds stacked volatiles is rejected, since pushing one of them
// would leave the cell occupied.
func Resolve(g *occupancy.Grid, origin core.Coord, dir core.Direction) Result {
	m := g.Begin()
	res := resolve(g, origin, dir)
	if !res.Accepted {
		g.Rollback(m)
		return res
	}
	g.Commit(m)
	return res
}

// Probe answers whether Resolve would accept the move, and what it would
// displace, without changing g.
func Probe(g *occupancy.Grid, origin core.Coord, dir core.Direction) Result {
	m := g.Begin()
	res := resolve(g, origin, dir)
	g.Rollback(m)
	return res
}

func resolve(g *occupancy.Grid, origin core.Coord, dir core.Direction) Result {
	if !dir.Valid() || !g.InBounds(origin) {
		return rejected()
	}

	// Collect the chain of cells whose occupants have to move
	var chain []core.Coord
	var mover occupancy.Occupant
	cur := origin
	for {
		if !g.InBounds(cur) {
			return rejected()
		}
		occ, ok := g.At(cur)
		if !ok {
			break
		}
		if len(chain) > 0 && mover.Volatile && occ.Volatile {
			break
		}
		if occ.Kind == core.Static {
			return rejected()
		}
		// Only the primary occupant would be pushed out; its stacked
		// volatiles keep the cell held.
		if len(chain) > 0 && len(g.Stacked(cur)) > 0 {
			return rejected()
		}
		chain = append(chain, cur)
		mover = occ
		cur = cur.Step(dir)
	}

	// Apply from the far end so every destination is already vacated
	moved := make([]core.EntityID, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		from := chain[i]
		occ, _ := g.At(from)
		if err := g.Move(from, from.Step(dir)); err != nil {
			return rejected()
		}
		moved = append(moved, occ.ID)
	}

	return Result{Moved: moved, Accepted: true}
}
