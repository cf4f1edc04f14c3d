package actiontable

import (
	"slices"
	"testing"

	"github.com/vovakirdan/pushcore/internal/core"
)

func TestSlot(t *testing.T) {
	anchor := core.C(5, 5)

	tests := []struct {
		name       string
		at         core.Coord
		rank, file int
		ok         bool
	}{
		{"first slot", core.C(6, 4), 0, 0, true},
		{"last slot", core.C(9, 1), 3, 3, true},
		{"rank 2 file 1", core.C(7, 2), 2, 1, true},
		{"anchor itself", core.C(5, 5), 0, 0, false},
		{"left of footprint", core.C(5, 4), 0, 0, false},
		{"right of footprint", core.C(10, 4), 0, 0, false},
		{"above footprint", core.C(6, 5), 0, 0, false},
		{"below footprint", core.C(6, 0), 0, 0, false},
		{"far away", core.C(9, 9), 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, file, ok := Slot(anchor, tt.at)
			if ok != tt.ok {
				t.Fatalf("Slot(%v) ok = %v, want %v", tt.at, ok, tt.ok)
			}
			if ok && (rank != tt.rank || file != tt.file) {
				t.Errorf("Slot(%v) = [%d][%d], want [%d][%d]", tt.at, rank, file, tt.rank, tt.file)
			}
		})
	}
}

func TestRebuild(t *testing.T) {
	anchor := core.C(5, 5)
	table := Rebuild(anchor, []MarkerPlacement{
		{Coord: core.C(6, 4), Marker: "K"},
		{Coord: core.C(9, 9), Marker: "J"}, // outside the 4x4 span
	})

	if m, ok := table.At(0, 0); !ok || m != "K" {
		t.Errorf("At(0,0) = %q, %v; want K", m, ok)
	}
	if keys := table.Keys(); !slices.Equal(keys, []core.MarkerID{"K"}) {
		t.Errorf("Keys = %v, want [K]", keys)
	}
}

func TestRebuildStartsFromScratch(t *testing.T) {
	anchor := core.C(0, 10)
	first := Rebuild(anchor, []MarkerPlacement{{Coord: core.C(1, 9), Marker: "A"}})
	if first.Empty() {
		t.Fatal("first table should hold A")
	}

	// Marker removed: the next rebuild must not remember it
	second := Rebuild(anchor, nil)
	if !second.Empty() {
		t.Error("table should be empty once the marker is gone")
	}
}

func TestRebuildLaterMarkerWins(t *testing.T) {
	table := Rebuild(core.C(0, 0), []MarkerPlacement{
		{Coord: core.C(1, -1), Marker: "A"},
		{Coord: core.C(1, -1), Marker: "B"},
	})
	if m, _ := table.At(0, 0); m != "B" {
		t.Errorf("At(0,0) = %q, want B", m)
	}
}

func TestTwoPhaseLookup(t *testing.T) {
	// K sits in rank 0 and file 2
	anchor := core.C(0, 0)
	table := Rebuild(anchor, []MarkerPlacement{
		{Coord: core.C(3, -1), Marker: "K"},
		{Coord: core.C(1, -2), Marker: "J"},
	})

	if got := table.RankMoves("K"); !slices.Equal(got, []core.Direction{core.Up}) {
		t.Errorf("RankMoves(K) = %v, want [Up]", got)
	}
	if got := table.FileMoves("K"); !slices.Equal(got, []core.Direction{core.Down}) {
		t.Errorf("FileMoves(K) = %v, want [Down]", got)
	}
	if got := table.RankMoves("J"); !slices.Equal(got, []core.Direction{core.Left}) {
		t.Errorf("RankMoves(J) = %v, want [Left]", got)
	}
	if got := table.FileMoves("J"); !slices.Equal(got, []core.Direction{core.Up}) {
		t.Errorf("FileMoves(J) = %v, want [Up]", got)
	}
}

func TestMultipleMatchesAllFire(t *testing.T) {
	anchor := core.C(0, 0)
	table := Rebuild(anchor, []MarkerPlacement{
		{Coord: core.C(2, -1), Marker: "K"}, // [0][1]
		{Coord: core.C(3, -3), Marker: "K"}, // [2][2]
		{Coord: core.C(4, -3), Marker: "K"}, // [2][3], same rank as above
	})

	if got, want := table.RankMoves("K"), []core.Direction{core.Up, core.Down}; !slices.Equal(got, want) {
		t.Errorf("RankMoves(K) = %v, want %v", got, want)
	}
	if got, want := table.FileMoves("K"), []core.Direction{core.Left, core.Down, core.Right}; !slices.Equal(got, want) {
		t.Errorf("FileMoves(K) = %v, want %v", got, want)
	}
}

func TestUnknownKeyHasNoMoves(t *testing.T) {
	table := Rebuild(core.C(0, 0), []MarkerPlacement{{Coord: core.C(1, -1), Marker: "K"}})
	if got := table.RankMoves("Q"); len(got) != 0 {
		t.Errorf("RankMoves(Q) = %v, want none", got)
	}
	if _, ok := table.At(4, 0); ok {
		t.Error("At out of range should be empty")
	}
}

func TestBindings(t *testing.T) {
	table := Rebuild(core.C(0, 0), []MarkerPlacement{
		{Coord: core.C(1, -4), Marker: "Z"}, // [3][0]
		{Coord: core.C(4, -1), Marker: "A"}, // [0][3]
	})

	b := table.Bindings()
	if len(b) != 2 || b[0].Key != "A" || b[1].Key != "Z" {
		t.Fatalf("Bindings = %+v, want A then Z", b)
	}
	if !slices.Equal(b[0].Rank, []core.Direction{core.Up}) || !slices.Equal(b[0].File, []core.Direction{core.Right}) {
		t.Errorf("A binding = %+v, want rank [Up] file [Right]", b[0])
	}
	if !slices.Equal(b[1].Rank, []core.Direction{core.Right}) || !slices.Equal(b[1].File, []core.Direction{core.Up}) {
		t.Errorf("Z binding = %+v, want rank [Right] file [Up]", b[1])
	}
}
