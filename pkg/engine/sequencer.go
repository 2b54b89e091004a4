package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/feeder"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

// unmappedHeight is the sentinel pickup height for parts with no mapped
// feeder. It sorts below every real height so unmapped parts are placed
// first, before they could knock anything over.
const unmappedHeight = -1

// Sequencer orders board parts for placement and drives feeder
// consumption. It is the only mutator of the configuration's tapes, and
// mutates them strictly in sequence.
type Sequencer struct {
	// config may be nil: parts are then processed in board order with no
	// feeder tracking.
	config *PlacementConfig

	machine Machine
}

// NewSequencer creates a sequencer for one run.
func NewSequencer(config *PlacementConfig, machine Machine) *Sequencer {
	return &Sequencer{config: config, machine: machine}
}

// OrderForPlacement returns the parts in placement order: ascending by
// resolved feeder pickup height with ties broken by component name, so
// shorter components go down before taller neighbours. A nil config
// returns the input order unchanged.
func OrderForPlacement(config *PlacementConfig, parts []*board.Part) []*board.Part {
	ordered := make([]*board.Part, len(parts))
	copy(ordered, parts)
	if config == nil {
		return ordered
	}

	height := func(p *board.Part) float64 {
		if tape := config.TapeForPart(p); tape != nil {
			return tape.Height()
		}
		return unmappedHeight
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		hi, hj := height(ordered[i]), height(ordered[j])
		if hi == hj {
			return ordered[i].Name < ordered[j].Name
		}
		return hi < hj
	})
	return ordered
}

// PlaceAll emits the pick-and-place stream for every part on the board.
//
// Parts with no mapped feeder are logged and placed without feeder
// tracking. A depleted feeder is logged and the run continues: stock
// exhaustion is surfaced to the operator, not escalated to an abort.
func (s *Sequencer) PlaceAll(ctx context.Context, b *board.Board) {
	log := telemetry.FromContext(ctx).NewComponentLogger("sequencer")

	for _, part := range OrderForPlacement(s.config, b.Parts()) {
		var tape *feeder.Tape
		if s.config != nil {
			tape = s.config.TapeForPart(part)
			if tape == nil {
				log.Warnf("%v", NewLookupError("no feeder for part").
					WithComponent(part.Name))
			}
		}

		s.machine.PickPart(part, tape)
		s.machine.PlacePart(part, tape)
		if tape != nil && !tape.Advance() {
			log.Warnf("%v", NewDepletedError(
				fmt.Sprintf("feeder out of stock after %q", part.Name)).
				WithComponent(part.Identity()))
		}
	}
}

// DispenseAll emits one dispense operation per pad across the whole
// board, in the order chosen by the travel optimizer. It fails if the
// optimizer violates its permutation contract.
func (s *Sequencer) DispenseAll(ctx context.Context, b *board.Board, opt TravelOptimizer) error {
	points := make([]DispensePoint, 0)
	for _, part := range b.Parts() {
		for i := range part.Pads {
			points = append(points, DispensePoint{Part: part, Pad: &part.Pads[i]})
		}
	}

	ordered := opt.Order(points)
	if len(ordered) != len(points) {
		return NewInvariantError(fmt.Sprintf(
			"travel optimizer returned %d points for %d inputs",
			len(ordered), len(points)))
	}

	for _, p := range ordered {
		s.machine.Dispense(p.Part, p.Pad)
	}
	return nil
}

// ClosestPart returns the part whose center is nearest to pos by
// Euclidean distance, first encountered winning ties. It returns nil for
// an empty part list.
func ClosestPart(parts []*board.Part, pos board.Position) *board.Part {
	var result *board.Part
	closest := -1.0
	for _, part := range parts {
		d := board.Distance(part.Pos, pos)
		if closest < 0 || d < closest {
			result = part
			closest = d
		}
	}
	return result
}
