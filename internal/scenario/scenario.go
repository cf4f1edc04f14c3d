// Package scenario loads YAML scripts that drive the engine tick by tick and
// state where entities must end up. Scripts are used by the CLI and by tests
// to exercise the core without a host game.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pushcore/internal/core"
	"github.com/vovakirdan/pushcore/internal/history"
)

// ErrInvalid is returned for scripts that pass the schema but cannot be run.
var ErrInvalid = errors.New("scenario: invalid")

// Scenario represents the YAML structure of a script.
type Scenario struct {
	Name       string      `yaml:"name"`
	Bounds     Size        `yaml:"bounds"`
	Entities   []Entity    `yaml:"entities"`
	Anchor     uint32      `yaml:"anchor,omitempty"`
	Controller *Controller `yaml:"controller,omitempty"`
	Ticks      []Tick      `yaml:"ticks"`
	Expect     []Expect    `yaml:"expect,omitempty"`

	FilePath string `yaml:"-"`
}

// Size represents level dimensions.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Entity is one spawned entity.
type Entity struct {
	ID       uint32 `yaml:"id"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Kind     string `yaml:"kind"`
	Volatile bool   `yaml:"volatile,omitempty"`
	Marker   string `yaml:"marker,omitempty"`
	Tracked  bool   `yaml:"tracked,omitempty"`
}

// Controller binds the two-phase controller to an entity.
type Controller struct {
	Entity     uint32 `yaml:"entity"`
	PhaseTicks int    `yaml:"phase_ticks,omitempty"` // 0 uses the configured value
}

// Tick is one scripted input, optionally repeated.
type Tick struct {
	Moves    []Move `yaml:"moves,omitempty"`
	History  string `yaml:"history,omitempty"`
	Activate string `yaml:"activate,omitempty"`
	Repeat   int    `yaml:"repeat,omitempty"` // 0 means once
}

// Move is a queued move command.
type Move struct {
	Entity uint32 `yaml:"entity"`
	Dir    string `yaml:"dir"`
}

// Expect is a final-state assertion.
type Expect struct {
	Entity     uint32 `yaml:"entity"`
	At         []int  `yaml:"at,omitempty"` // [x, y]
	Sublimated *bool  `yaml:"sublimated,omitempty"`
}

// Parse validates a YAML script against the schema and decodes it.
func Parse(data []byte) (Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return Scenario{}, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := sc.Check(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Check reports references and values the schema cannot express.
func (s Scenario) Check() error {
	ids := make(map[uint32]bool, len(s.Entities))
	for _, e := range s.Entities {
		if ids[e.ID] {
			return fmt.Errorf("%w: duplicate entity %d", ErrInvalid, e.ID)
		}
		ids[e.ID] = true
		if _, err := core.ParseBlockKind(e.Kind); err != nil {
			return fmt.Errorf("%w: entity %d: %v", ErrInvalid, e.ID, err)
		}
	}

	if s.Anchor != 0 && !ids[s.Anchor] {
		return fmt.Errorf("%w: anchor %d is not an entity", ErrInvalid, s.Anchor)
	}
	if s.Controller != nil && !ids[s.Controller.Entity] {
		return fmt.Errorf("%w: controller entity %d is not an entity", ErrInvalid, s.Controller.Entity)
	}

	for i, t := range s.Ticks {
		for _, m := range t.Moves {
			if _, err := core.ParseDirection(m.Dir); err != nil {
				return fmt.Errorf("%w: tick %d: %v", ErrInvalid, i, err)
			}
		}
		if _, err := history.ParseCommand(t.History); err != nil {
			return fmt.Errorf("%w: tick %d: %v", ErrInvalid, i, err)
		}
	}

	for _, e := range s.Expect {
		if !ids[e.Entity] {
			return fmt.Errorf("%w: expectation for unknown entity %d", ErrInvalid, e.Entity)
		}
	}
	return nil
}

// TickCount returns the number of ticks the script runs, repeats included.
func (s Scenario) TickCount() int {
	n := 0
	for _, t := range s.Ticks {
		n += max(t.Repeat, 1)
	}
	return n
}

// toJSON converts a decoded YAML document into the value shapes
// encoding/json produces, which is what the schema validator expects.
func toJSON(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
