package engine

import (
	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

// Machine is the instruction sink the sequencing engine drives. Concrete
// backends render the stream as G-code or PostScript; the engine never
// inspects their output.
type Machine interface {
	// Init starts the instruction stream. config may be nil when the run
	// has no placement configuration; metadata is free-form provenance
	// (command line, run ID) embedded in the stream header.
	Init(config *PlacementConfig, metadata string, dim board.Dimension) error

	// PickPart emits the pick operation for a part. tape is nil when the
	// part has no mapped feeder; backends fall back to a board-relative
	// pickup in that case.
	PickPart(p *board.Part, tape *feeder.Tape)

	// PlacePart emits the place operation for a part.
	PlacePart(p *board.Part, tape *feeder.Tape)

	// Dispense emits one solder dispense operation for a pad.
	Dispense(p *board.Part, pad *board.Pad)

	// Finish flushes the stream and reports any deferred write error.
	Finish() error
}

// DispensePoint is one element of the dispense stream: a pad together
// with the part it belongs to.
type DispensePoint struct {
	Part *board.Part
	Pad  *board.Pad
}

// TravelOptimizer orders dispense points to reduce total head travel.
//
// Implementations must return a permutation of the input: identical
// multiset membership, every element exactly once, and a deterministic
// order for identical input. Optimality is not required.
type TravelOptimizer interface {
	Order(points []DispensePoint) []DispensePoint
}
