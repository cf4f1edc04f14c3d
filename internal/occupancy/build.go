package occupancy

import (
	"fmt"

	"github.com/vovakirdan/pushcore/internal/core"
)

// Placement is one entry fed to Build by the owner of the live game state.
type Placement struct {
	Coord    core.Coord
	Occupant Occupant
}

// Build rebuilds the snapshot from scratch. Placements outside the bounds are
// not part of the level and are skipped. Two blocking occupants on one cell
// violate the builder's contract and are reported as an ErrOccupied error.
func Build(bounds core.Bounds, placements []Placement) (*Grid, error) {
	g := NewGrid(bounds)
	for _, p := range placements {
		if !bounds.Contains(p.Coord) {
			continue
		}
		if err := g.Place(p.Coord, p.Occupant); err != nil {
			return nil, fmt.Errorf("occupancy: build: %w", err)
		}
	}
	return g, nil
}
