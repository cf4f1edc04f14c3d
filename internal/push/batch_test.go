package push_test

import (
	"slices"
	"testing"

	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/push"
)

func TestBatchIsSequential(t *testing.T) {
	// #2 moves out of the way first, so #1 can move without pushing
	g := board(t, "12.", "...")

	outcomes := push.ResolveBatch(g, []core.MoveCommand{
		{Entity: 2, Direction: core.Down},
		{Entity: 1, Direction: core.Right},
	})

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	for i, o := range outcomes {
		if !o.Result.Accepted {
			t.Errorf("outcome %d rejected", i)
		}
		if o.Event != nil {
			t.Errorf("outcome %d should not be a push", i)
		}
	}
	if c, _ := g.Locate(1); c != core.C(1, 1) {
		t.Errorf("#1 at %v, want (1,1)", c)
	}
	if c, _ := g.Locate(2); c != core.C(1, 0) {
		t.Errorf("#2 at %v, want (1,0)", c)
	}
}

func TestBatchEarlierMoveSetsUpLater(t *testing.T) {
	g := board(t, "1.2")

	outcomes := push.ResolveBatch(g, []core.MoveCommand{
		{Entity: 2, Direction: core.Left},
		{Entity: 1, Direction: core.Right}, // #2 now stands next to #1
	})

	if !outcomes[0].Result.Accepted {
		t.Fatal("first move should be accepted")
	}
	if !outcomes[1].Result.Accepted {
		t.Fatal("second move should push #2 back")
	}
	if !slices.Equal(outcomes[1].Result.Moved, []core.EntityID{2, 1}) {
		t.Errorf("second Moved = %v, want [2 1]", outcomes[1].Result.Moved)
	}
	ev := outcomes[1].Event
	if ev == nil || ev.Pusher != 1 || !slices.Equal(ev.Pushed, []core.EntityID{2}) || ev.Direction != core.Right {
		t.Errorf("Event = %+v, want pusher #1 pushing [2] right", ev)
	}
}

func TestBatchMissingEntityIsNoop(t *testing.T) {
	g := board(t, "1..")
	before := g.Clone()

	outcomes := push.ResolveBatch(g, []core.MoveCommand{{Entity: 9, Direction: core.Right}})

	if !outcomes[0].Missing || outcomes[0].Result.Accepted {
		t.Errorf("outcome = %+v, want missing and rejected", outcomes[0])
	}
	if !g.Equal(before) {
		t.Error("grid changed for a missing entity")
	}
}

func TestBatchRejectionDoesNotStopQueue(t *testing.T) {
	g := board(t, "1#.", "2..")

	outcomes := push.ResolveBatch(g, []core.MoveCommand{
		{Entity: 1, Direction: core.Right},
		{Entity: 2, Direction: core.Right},
	})

	if outcomes[0].Result.Accepted {
		t.Error("first move should be blocked by the wall")
	}
	if !outcomes[1].Result.Accepted {
		t.Error("second move should still resolve")
	}
}

func TestEventsOnlyForPushes(t *testing.T) {
	g := board(t, "12..", "3...")

	outcomes := push.ResolveBatch(g, []core.MoveCommand{
		{Entity: 1, Direction: core.Right},
		{Entity: 3, Direction: core.Right},
	})
	events := push.Events(outcomes)

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Pusher != 1 {
		t.Errorf("Pusher = #%d, want #1", events[0].Pusher)
	}
}

func TestEventForRejected(t *testing.T) {
	if ev := push.EventFor(core.Up, push.Result{}); ev != nil {
		t.Errorf("EventFor(rejected) = %+v, want nil", ev)
	}
	single := push.Result{Moved: []core.EntityID{4}, Accepted: true}
	if ev := push.EventFor(core.Up, single); ev != nil {
		t.Errorf("EventFor(single) = %+v, want nil", ev)
	}
}
