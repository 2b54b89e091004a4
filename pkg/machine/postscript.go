package machine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

// pointsPerMM converts millimeters to PostScript points.
const pointsPerMM = 72.0 / 25.4

// PostScript renders the operation stream as a drawing: the board
// outline, pads as filled boxes, pick-to-place travel as lines. It has
// no timing model; it exists to eyeball a run before emitting G-code.
type PostScript struct {
	w      *bufio.Writer
	config *engine.PlacementConfig

	// lastPickX/Y remember the pickup point so PlacePart can draw the
	// travel line.
	lastPickX, lastPickY float64
	havePick             bool
}

// NewPostScript creates a PostScript backend writing to w.
func NewPostScript(w io.Writer) *PostScript {
	return &PostScript{w: bufio.NewWriter(w)}
}

// Init implements engine.Machine.
func (ps *PostScript) Init(config *engine.PlacementConfig, metadata string, dim board.Dimension) error {
	if config == nil {
		config = engine.NewEmptyPlacementConfig()
	}
	ps.config = config

	margin := 10.0
	fmt.Fprint(ps.w, "%!PS-Adobe-2.0\n")
	fmt.Fprintf(ps.w, "%%%% %s\n", metadata)
	fmt.Fprintf(ps.w, "%%%%BoundingBox: 0 0 %.0f %.0f\n",
		(dim.W+2*margin)*pointsPerMM, (dim.H+2*margin)*pointsPerMM)
	fmt.Fprintf(ps.w, "%.4f %.4f scale\n", pointsPerMM, pointsPerMM)
	fmt.Fprintf(ps.w, "%.1f %.1f translate\n", margin, margin)
	fmt.Fprint(ps.w, "0.1 setlinewidth\n")

	// Board outline at its configured origin.
	fmt.Fprintf(ps.w, "newpath %.2f %.2f moveto %.2f 0 rlineto 0 %.2f rlineto %.2f 0 rlineto closepath stroke\n",
		config.Board.Origin.X, config.Board.Origin.Y, dim.W, dim.H, -dim.W)
	return nil
}

// PickPart implements engine.Machine: marks the pickup point.
func (ps *PostScript) PickPart(p *board.Part, tape *feeder.Tape) {
	x, y := placePosition(ps.config, p)
	if tape != nil {
		if tx, ty, ok := tape.Position(); ok {
			x, y = tx, ty
		}
	}
	ps.lastPickX, ps.lastPickY = x, y
	ps.havePick = true
	fmt.Fprintf(ps.w, "newpath %.2f %.2f 0.4 0 360 arc stroke %% pick %s\n", x, y, p.Name)
}

// PlacePart implements engine.Machine: draws the travel line and the
// placed part.
func (ps *PostScript) PlacePart(p *board.Part, tape *feeder.Tape) {
	x, y := placePosition(ps.config, p)
	if ps.havePick {
		fmt.Fprintf(ps.w, "newpath %.2f %.2f moveto %.2f %.2f lineto stroke\n",
			ps.lastPickX, ps.lastPickY, x, y)
		ps.havePick = false
	}
	fmt.Fprintf(ps.w, "newpath %.2f %.2f 0.6 0 360 arc fill %% place %s\n", x, y, p.Name)
}

// Dispense implements engine.Machine: draws the pad footprint.
func (ps *PostScript) Dispense(p *board.Part, pad *board.Pad) {
	x, y := padPosition(ps.config, p, pad)
	fmt.Fprintf(ps.w, "%.2f %.2f %.2f %.2f rectfill %% %s pad %s\n",
		x-pad.Size.W/2, y-pad.Size.H/2, pad.Size.W, pad.Size.H,
		p.Name, pad.Name)
}

// Finish implements engine.Machine.
func (ps *PostScript) Finish() error {
	fmt.Fprint(ps.w, "showpage\n")
	return ps.w.Flush()
}
