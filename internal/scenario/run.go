package scenario

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pushcore/internal/controller"
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
	"github.com/vovakirdan/pushcore/internal/sim"
	"github.com/vovakirdan/pushcore/internal/world"
)

// Options adjust how a script is turned into an engine.
type Options struct {
	PhaseTicks int         // Used when the script does not set one
	TrackAll   bool        // Track every entity, not only those marked tracked
	Logger     *log.Logger // nil discards output
}

// Build spawns the script's entities into a fresh world and returns an
// engine over it.
func (s Scenario) Build(opts Options) (*sim.Engine, error) {
	w := world.New()
	for _, e := range s.Entities {
		kind, err := core.ParseBlockKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("scenario: build: %w", err)
		}
		if _, err := w.Spawn(world.Spec{
			ID:       core.EntityID(e.ID),
			Position: core.C(e.X, e.Y),
			Kind:     kind,
			Volatile: e.Volatile,
			Marker:   core.MarkerID(e.Marker),
		}); err != nil {
			return nil, fmt.Errorf("scenario: build: %w", err)
		}
	}

	cfg := sim.Config{
		Bounds:     core.NewBounds(s.Bounds.W, s.Bounds.H),
		Anchor:     core.EntityID(s.Anchor),
		PhaseTicks: opts.PhaseTicks,
	}
	if cfg.PhaseTicks == 0 {
		cfg.PhaseTicks = controller.DefaultPhaseTicks
	}
	if s.Controller != nil {
		cfg.Controlled = core.EntityID(s.Controller.Entity)
		if s.Controller.PhaseTicks > 0 {
			cfg.PhaseTicks = s.Controller.PhaseTicks
		}
	}

	eng := sim.New(w, cfg, opts.Logger)
	if opts.TrackAll {
		eng.TrackAll()
	} else {
		for _, e := range s.Entities {
			if e.Tracked {
				eng.Track(core.EntityID(e.ID))
			}
		}
	}
	return eng, nil
}

// Inputs expands the scripted ticks, repeats included.
func (s Scenario) Inputs() ([]sim.Input, error) {
	inputs := make([]sim.Input, 0, s.TickCount())
	for i, t := range s.Ticks {
		in, err := t.input()
		if err != nil {
			return nil, fmt.Errorf("scenario: tick %d: %w", i, err)
		}
		for n, reps := 0, max(t.Repeat, 1); n < reps; n++ {
			in.Moves = slices.Clone(in.Moves)
			inputs = append(inputs, in)
		}
	}
	return inputs, nil
}

func (t Tick) input() (sim.Input, error) {
	cmd, err := history.ParseCommand(t.History)
	if err != nil {
		return sim.Input{}, err
	}
	in := sim.Input{
		History:  cmd,
		Activate: core.MarkerID(t.Activate),
	}
	for _, m := range t.Moves {
		dir, err := core.ParseDirection(m.Dir)
		if err != nil {
			return sim.Input{}, err
		}
		in.Moves = append(in.Moves, core.MoveCommand{Entity: core.EntityID(m.Entity), Direction: dir})
	}
	return in, nil
}

// Run feeds every scripted tick into the engine. The callback, if any, sees
// each result and may stop the run by returning an error.
func (s Scenario) Run(ctx context.Context, eng *sim.Engine, fn func(sim.StepResult) error) error {
	inputs, err := s.Inputs()
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := eng.Step(in)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(res); err != nil {
				return err
			}
		}
	}
	return nil
}

// Mismatch is a failed expectation.
type Mismatch struct {
	Entity core.EntityID
	Want   string
	Got    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("#%d: want %s, got %s", m.Entity, m.Want, m.Got)
}

// Verify checks the script's expectations against the world.
func (s Scenario) Verify(w *world.World) []Mismatch {
	var out []Mismatch
	for _, e := range s.Expect {
		id := core.EntityID(e.Entity)
		pos, ok := w.Position(id)
		if !ok {
			out = append(out, Mismatch{Entity: id, Want: "entity", Got: "missing"})
			continue
		}
		if len(e.At) == 2 {
			if want := core.C(e.At[0], e.At[1]); pos != want {
				out = append(out, Mismatch{Entity: id, Want: want.String(), Got: pos.String()})
			}
		}
		if e.Sublimated != nil {
			if got := w.Sublimated(id); got != *e.Sublimated {
				out = append(out, Mismatch{
					Entity: id,
					Want:   fmt.Sprintf("sublimated=%t", *e.Sublimated),
					Got:    fmt.Sprintf("sublimated=%t", got),
				})
			}
		}
	}
	return out
}
