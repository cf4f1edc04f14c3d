package controller

import (
	"testing"

	"github.com/vovakirdan/pushcore/internal/actiontable"
	"github.com/vovakirdan/pushcore/internal/core"
)

func tableWithK() actiontable.Table {
	// K at rank 0, file 2
	return actiontable.Rebuild(core.C(0, 0), []actiontable.MarkerPlacement{
		{Coord: core.C(3, -1), Marker: "K"},
	})
}

func TestTwoPhaseSequence(t *testing.T) {
	table := tableWithK()
	c := New(7, 2)

	if !c.Activate("K") {
		t.Fatal("Activate should succeed while waiting")
	}

	// Tick 1: rank phase fires Up
	cmds := c.Step(&table)
	if len(cmds) != 1 || cmds[0] != (core.MoveCommand{Entity: 7, Direction: core.Up}) {
		t.Errorf("tick 1 cmds = %v, want [#7 Up]", cmds)
	}
	if c.Phase() != RankMove {
		t.Errorf("tick 1 phase = %v, want rank", c.Phase())
	}

	// Tick 2: rank phase holds, nothing fires, then moves to file phase
	if cmds := c.Step(&table); len(cmds) != 0 {
		t.Errorf("tick 2 cmds = %v, want none", cmds)
	}
	if c.Phase() != FileMove {
		t.Errorf("tick 2 phase = %v, want file", c.Phase())
	}

	// Tick 3: file phase fires Down
	cmds = c.Step(&table)
	if len(cmds) != 1 || cmds[0].Direction != core.Down {
		t.Errorf("tick 3 cmds = %v, want [#7 Down]", cmds)
	}

	// Tick 4: back to waiting
	c.Step(&table)
	if c.Phase() != Waiting || c.Key() != "" {
		t.Errorf("tick 4 phase = %v key %q, want waiting", c.Phase(), c.Key())
	}
}

func TestActivateIgnoredWhileBusy(t *testing.T) {
	c := New(1, 3)
	c.Activate("K")
	if c.Activate("J") {
		t.Error("Activate should fail during an action")
	}
	if c.Key() != "K" {
		t.Errorf("Key = %q, want K", c.Key())
	}
}

func TestActivateEmptyKey(t *testing.T) {
	c := New(1, 3)
	if c.Activate("") {
		t.Error("empty key should not activate")
	}
}

func TestAllMatchesFire(t *testing.T) {
	table := actiontable.Rebuild(core.C(0, 0), []actiontable.MarkerPlacement{
		{Coord: core.C(1, -1), Marker: "K"}, // [0][0]
		{Coord: core.C(2, -4), Marker: "K"}, // [3][1]
	})
	c := New(1, 1)
	c.Activate("K")

	rank := c.Step(&table)
	if len(rank) != 2 || rank[0].Direction != core.Up || rank[1].Direction != core.Right {
		t.Errorf("rank cmds = %v, want [Up Right]", rank)
	}
	file := c.Step(&table)
	if len(file) != 2 || file[0].Direction != core.Up || file[1].Direction != core.Left {
		t.Errorf("file cmds = %v, want [Up Left]", file)
	}
	if c.Phase() != Waiting {
		t.Errorf("phase = %v, want waiting", c.Phase())
	}
}

func TestMissingKeyStillRunsPhases(t *testing.T) {
	table := tableWithK()
	c := New(1, 1)
	c.Activate("Q")

	if cmds := c.Step(&table); len(cmds) != 0 {
		t.Errorf("cmds = %v, want none for a key not on the table", cmds)
	}
	if c.Phase() != FileMove {
		t.Errorf("phase = %v, want file", c.Phase())
	}
}

func TestResetAndMinimumTicks(t *testing.T) {
	c := New(1, 0)
	c.Activate("K")
	if c.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1 (phase ticks raised to 1)", c.Remaining())
	}
	c.Reset()
	if c.Phase() != Waiting {
		t.Error("Reset should return to waiting")
	}
	if cmds := c.Step(nil); cmds != nil {
		t.Errorf("waiting Step = %v, want nil", cmds)
	}
}
