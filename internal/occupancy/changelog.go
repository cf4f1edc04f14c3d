package occupancy

import "github.com/vovakirdan/pushcore/internal/core"

// change is one undoable cell write.
type change struct {
	coord core.Coord
	prev  cell
}

// Mark is a position in the change log returned by Begin.
type Mark struct {
	pos int
}

// Begin opens a change log scope. Every cell write until the matching
// Rollback or Commit is recorded. Scopes nest.
func (g *Grid) Begin() Mark {
	g.logging++
	return Mark{pos: len(g.log)}
}

// Rollback undoes every write made since m, newest first, and closes the scope.
func (g *Grid) Rollback(m Mark) {
	// Replay without recording
	depth := g.logging
	g.logging = 0
	for i := len(g.log) - 1; i >= m.pos; i-- {
		ch := g.log[i]
		g.write(ch.coord, ch.prev)
	}
	g.logging = depth
	g.log = g.log[:m.pos]
	g.close()
}

// Commit keeps the writes made since m and closes the scope. The outermost
// commit discards the log.
func (g *Grid) Commit(m Mark) {
	g.close()
	if g.logging == 0 {
		g.log = g.log[:0]
	}
}

func (g *Grid) close() {
	if g.logging > 0 {
		g.logging--
	}
}

// Pending returns the number of recorded writes not yet committed.
func (g *Grid) Pending() int {
	return len(g.log)
}
