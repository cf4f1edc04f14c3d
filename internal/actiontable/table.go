// Package actiontable implements the indirect action table: a 4x4 grid next
// to an anchor entity whose marker placement decides which direction a key
// produces. Rank (row) index selects the direction of the first move phase,
// file (column) index the direction of the second, both in canonical order
// Up, Left, Down, Right.
package actiontable

import (
	"sort"

	"github.com/vovakirdan/pushcore/internal/core"
)

// Size is the table dimension.
const Size = 4

// Entry is one table slot.
type Entry struct {
	Marker  core.MarkerID
	Present bool
}

// Table is indexed [rank][file].
type Table [Size][Size]Entry

// MarkerPlacement is a marker entity's current position.
type MarkerPlacement struct {
	Coord  core.Coord
	Marker core.MarkerID
}

// Slot converts a marker position into table indices relative to the anchor.
// The footprint spans the four columns right of the anchor and the four rows
// below it. Returns false if the marker falls outside.
func Slot(anchor, at core.Coord) (rank, file int, ok bool) {
	diff := at.Sub(anchor)
	file = diff.X - 1
	rank = -1 - diff.Y
	if file < 0 || file >= Size || rank < 0 || rank >= Size {
		return 0, 0, false
	}
	return rank, file, true
}

// Rebuild builds the table from scratch. Markers outside the footprint are
// ignored; when two markers share a slot the later one wins.
func Rebuild(anchor core.Coord, markers []MarkerPlacement) Table {
	var t Table
	for _, m := range markers {
		rank, file, ok := Slot(anchor, m.Coord)
		if !ok {
			continue
		}
		t[rank][file] = Entry{Marker: m.Marker, Present: true}
	}
	return t
}

// At returns the marker in a slot.
func (t *Table) At(rank, file int) (core.MarkerID, bool) {
	if rank < 0 || rank >= Size || file < 0 || file >= Size {
		return "", false
	}
	e := t[rank][file]
	return e.Marker, e.Present
}

// RankMoves returns one direction per rank that holds key, in rank order.
func (t *Table) RankMoves(key core.MarkerID) []core.Direction {
	order := core.CanonicalOrder()
	var dirs []core.Direction
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if e := t[rank][file]; e.Present && e.Marker == key {
				dirs = append(dirs, order[rank])
				break
			}
		}
	}
	return dirs
}

// FileMoves returns one direction per file that holds key, in file order.
func (t *Table) FileMoves(key core.MarkerID) []core.Direction {
	order := core.CanonicalOrder()
	var dirs []core.Direction
	for file := 0; file < Size; file++ {
		for rank := 0; rank < Size; rank++ {
			if e := t[rank][file]; e.Present && e.Marker == key {
				dirs = append(dirs, order[file])
				break
			}
		}
	}
	return dirs
}

// Keys returns the distinct markers present in the table, sorted.
func (t *Table) Keys() []core.MarkerID {
	seen := make(map[core.MarkerID]bool)
	var keys []core.MarkerID
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			e := t[rank][file]
			if e.Present && !seen[e.Marker] {
				seen[e.Marker] = true
				keys = append(keys, e.Marker)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Binding summarizes what one key does, for control display.
type Binding struct {
	Key  core.MarkerID
	Rank []core.Direction
	File []core.Direction
}

// Bindings returns the binding of every key in the table, sorted by key.
func (t *Table) Bindings() []Binding {
	keys := t.Keys()
	out := make([]Binding, 0, len(keys))
	for _, k := range keys {
		out = append(out, Binding{
			Key:  k,
			Rank: t.RankMoves(k),
			File: t.FileMoves(k),
		})
	}
	return out
}

// Empty returns true if no slot holds a marker.
func (t *Table) Empty() bool {
	for rank := 0; rank < Size; rank++ {
		for file := 0; file < Size; file++ {
			if t[rank][file].Present {
				return false
			}
		}
	}
	return true
}
