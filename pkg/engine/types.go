package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

// NominalBoardThickness is the fallback board thickness in millimeters,
// used to derive the bed level when the measured configuration locates
// the board top but never probes the bed.
const NominalBoardThickness = 1.6

// unsetBedLevel marks a bed level that no configuration line has set yet.
const unsetBedLevel = -1

// BoardGeometry is the configured board placement on the machine bed.
type BoardGeometry struct {
	// Origin is the (x, y) offset applied to all board-relative
	// coordinates. Z is unused.
	Origin board.Position `json:"origin"`

	// Top is the z-height of the board surface.
	Top float64 `json:"top"`
}

// PlacementConfig is the canonical in-memory configuration: board
// geometry, the machine bed reference plane, and the mapping from
// component identity to feeder.
//
// Multiple identities may map to the same *feeder.Tape when one physical
// lane stocks several interchangeable parts; the Tape is shared, never
// cloned, so advancing one identity advances them all.
type PlacementConfig struct {
	// Board is the configured board geometry.
	Board BoardGeometry `json:"board"`

	// BedLevel is the z-height of the machine bed reference plane. It
	// may legitimately lie below Board.Top. Negative means "never set"
	// in the measured format.
	BedLevel float64 `json:"bed_level"`

	// TapeForComponent maps a component identity to its feeder.
	TapeForComponent map[string]*feeder.Tape `json:"-"`
}

// NewPlacementConfig creates a configuration with no feeders and the bed
// level marked unset. The parsers fill it in.
func NewPlacementConfig() *PlacementConfig {
	return &PlacementConfig{
		BedLevel:         unsetBedLevel,
		TapeForComponent: make(map[string]*feeder.Tape),
	}
}

// NewEmptyPlacementConfig creates the configuration used when no config
// file is given: board at the origin, nominal thickness, bed at zero, no
// feeders.
func NewEmptyPlacementConfig() *PlacementConfig {
	cfg := NewPlacementConfig()
	cfg.Board.Top = NominalBoardThickness
	cfg.BedLevel = 0
	return cfg
}

// BedLevelSet reports whether any configuration line has set a meaningful
// (non-negative) bed level.
func (c *PlacementConfig) BedLevelSet() bool { return c.BedLevel >= 0 }

// TapeFor returns the feeder for a component identity, or nil when the
// identity is unmapped.
func (c *PlacementConfig) TapeFor(identity string) *feeder.Tape {
	return c.TapeForComponent[identity]
}

// TapeForPart resolves a board part's feeder via its identity key.
func (c *PlacementConfig) TapeForPart(p *board.Part) *feeder.Tape {
	return c.TapeForComponent[p.Identity()]
}

// Identities returns the mapped component identities in sorted order.
func (c *PlacementConfig) Identities() []string {
	ids := make([]string, 0, len(c.TapeForComponent))
	for id := range c.TapeForComponent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckHeights verifies that nothing the machine must touch lies below
// the bed reference plane: the board top and every feeder pickup height.
// A violation means the configuration was mis-measured and is fatal.
func (c *PlacementConfig) CheckHeights() error {
	lowest := c.Board.Top
	for _, tape := range c.TapeForComponent {
		lowest = math.Min(lowest, tape.Height())
	}
	if lowest < c.BedLevel {
		return NewInvariantError(fmt.Sprintf(
			"pickup points below bed level (bed=%.1f, lowest=%.1f)",
			c.BedLevel, lowest))
	}
	return nil
}
