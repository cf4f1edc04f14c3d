// Package sim runs one tick of the puzzle core: it rebuilds the action table,
// lets the controller emit its moves, handles the history command, resolves
// every queued move against a fresh occupancy snapshot and commits the result.
package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pushcore/internal/actiontable"
	"github.com/vovakirdan/pushcore/internal/controller"
	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
	"github.com/vovakirdan/pushcore/internal/push"
	"github.com/vovakirdan/pushcore/internal/world"
)

// Names of the built-in history tracks.
const (
	TrackPosition    = "position"
	TrackSublimation = "sublimation"
)

// Config contains the level-level settings of an engine.
type Config struct {
	Bounds     core.Bounds
	Anchor     core.EntityID // Action table anchor entity, 0 for none
	Controlled core.EntityID // Entity driven by the controller, 0 for none
	PhaseTicks int           // Ticks per controller phase
}

// Input is everything fed into one tick.
type Input struct {
	Moves    []core.MoveCommand // Externally queued moves, resolved in order
	History  history.Command    // Broadcast to every tracked entity
	Activate core.MarkerID      // Key pressed for the controller this tick
}

// StepResult describes what one tick did.
type StepResult struct {
	Tick          uint64
	Table         actiontable.Table
	History       history.Command
	Outcomes      []push.Outcome
	Displacements []world.Displacement
	Events        []push.Event
	Sublimated    []core.EntityID
}

// Accepted returns the number of accepted moves.
func (r StepResult) Accepted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Result.Accepted {
			n++
		}
	}
	return n
}

// Engine owns the per-tick pipeline. It is single-threaded: Step runs to
// completion and nothing else touches the world meanwhile.
type Engine struct {
	world  *world.World
	cfg    Config
	logger *log.Logger

	ctrl        *controller.Controller
	registry    *history.Registry
	positions   *history.Track[core.Coord]
	sublimation *history.Track[bool]

	tick  uint64
	table actiontable.Table
}

// New creates an engine over a world. A nil logger discards output.
func New(w *world.World, cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		world:       w,
		cfg:         cfg,
		logger:      logger,
		registry:    history.NewRegistry(),
		positions:   history.NewTrack[core.Coord](w.Positions()),
		sublimation: history.NewTrack[bool](w.Sublimation()),
	}
	e.registry.Register(TrackPosition, e.positions)
	e.registry.Register(TrackSublimation, e.sublimation)
	w.OnDespawn(e.registry.Forget)

	if cfg.Controlled != 0 {
		e.ctrl = controller.New(cfg.Controlled, cfg.PhaseTicks)
	}
	e.table = e.rebuildTable()
	return e
}

// World returns the world the engine runs on.
func (e *Engine) World() *world.World {
	return e.world
}

// History returns the registry so hosts can track more component types.
func (e *Engine) History() *history.Registry {
	return e.registry
}

// Controller returns the controller, or nil if no entity is controlled.
func (e *Engine) Controller() *controller.Controller {
	return e.ctrl
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// Table returns the most recently built action table.
func (e *Engine) Table() actiontable.Table {
	return e.table
}

// Track opts an entity into history for its position and, for volatile
// entities, its sublimated flag.
func (e *Engine) Track(id core.EntityID) {
	if !e.world.Exists(id) {
		return
	}
	e.positions.Enable(id)
	if e.world.Volatile(id) {
		e.sublimation.Enable(id)
	}
}

// TrackAll opts every current entity into history.
func (e *Engine) TrackAll() {
	for _, id := range e.world.Entities() {
		e.Track(id)
	}
}

// Tracked returns the entities with a position history, in opt-in order.
func (e *Engine) Tracked() []core.EntityID {
	return e.positions.Entities()
}

// PositionStack returns the recorded positions of an entity, oldest first.
func (e *Engine) PositionStack(id core.EntityID) []core.Coord {
	return e.positions.Stack(id)
}

// Step runs one tick.
//
// Record is broadcast before resolution. Rewind and Reset replace resolution
// for the tick and cancel any controller action in progress. The only error
// is a broken occupancy snapshot (two blocking entities on one cell), which
// means whoever placed the entities violated the level contract.
func (e *Engine) Step(in Input) (StepResult, error) {
	e.tick++
	res := StepResult{Tick: e.tick, History: in.History}

	e.table = e.rebuildTable()

	switch in.History {
	case history.Rewind, history.Reset:
		e.registry.Broadcast(in.History)
		if e.ctrl != nil {
			e.ctrl.Reset()
		}
		e.table = e.rebuildTable()
		res.Table = e.table
		e.logger.Debug("history", "tick", e.tick, "cmd", in.History)
		return res, nil
	case history.Record:
		e.registry.Broadcast(history.Record)
	}
	res.Table = e.table

	cmds := make([]core.MoveCommand, 0, len(in.Moves)+2)
	cmds = append(cmds, in.Moves...)
	if e.ctrl != nil {
		if in.Activate != "" && !e.ctrl.Activate(in.Activate) {
			e.logger.Debug("activation ignored", "tick", e.tick, "key", in.Activate, "phase", e.ctrl.Phase())
		}
		cmds = append(cmds, e.ctrl.Step(&e.table)...)
	}

	if len(cmds) == 0 {
		return res, nil
	}

	grid, err := e.world.Snapshot(e.cfg.Bounds)
	if err != nil {
		return res, fmt.Errorf("sim: tick %d: %w", e.tick, err)
	}

	res.Outcomes = push.ResolveBatch(grid, cmds)
	for _, o := range res.Outcomes {
		switch {
		case o.Missing:
			e.logger.Debug("move for missing entity", "tick", e.tick, "entity", o.Command.Entity)
		case !o.Result.Accepted:
			e.logger.Debug("move rejected", "tick", e.tick, "entity", o.Command.Entity, "dir", o.Command.Direction, "at", o.Origin)
		}
	}

	res.Displacements = e.world.Commit(res.Outcomes)
	res.Events = push.Events(res.Outcomes)
	res.Sublimated = e.world.Sublimate()
	if len(res.Sublimated) > 0 {
		e.logger.Info("sublimated", "tick", e.tick, "entities", res.Sublimated)
	}
	return res, nil
}

func (e *Engine) rebuildTable() actiontable.Table {
	if e.cfg.Anchor == 0 {
		return actiontable.Table{}
	}
	anchor, ok := e.world.Position(e.cfg.Anchor)
	if !ok {
		return actiontable.Table{}
	}
	return actiontable.Rebuild(anchor, e.world.Markers())
}
