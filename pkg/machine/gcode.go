package machine

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

// GCode renders the operation stream as G-code on a writer. Write errors
// are deferred and reported by Finish, so the per-operation methods stay
// fire-and-forget like the engine expects.
type GCode struct {
	w       *bufio.Writer
	profile *Profile
	config  *engine.PlacementConfig
}

// NewGCode creates a G-code backend writing to w with the given profile.
// A nil profile uses DefaultProfile.
func NewGCode(w io.Writer, profile *Profile) *GCode {
	if profile == nil {
		profile = DefaultProfile()
	}
	return &GCode{w: bufio.NewWriter(w), profile: profile}
}

// Init implements engine.Machine.
func (g *GCode) Init(config *engine.PlacementConfig, metadata string, dim board.Dimension) error {
	if config == nil {
		config = engine.NewEmptyPlacementConfig()
	}
	g.config = config

	fmt.Fprintf(g.w, "; %s\n", metadata)
	fmt.Fprintf(g.w, "; board %.1fmm x %.1fmm, origin (%.2f, %.2f), top z=%.2f, bed z=%.2f\n",
		dim.W, dim.H, config.Board.Origin.X, config.Board.Origin.Y,
		config.Board.Top, config.BedLevel)
	fmt.Fprint(g.w, "G21 ; millimeters\n")
	fmt.Fprint(g.w, "G90 ; absolute positioning\n")
	fmt.Fprint(g.w, "G28 ; home\n")
	fmt.Fprintf(g.w, "G1 Z%.2f F%.0f\n", g.profile.TravelZ, g.profile.FeedRate)
	return nil
}

// PickPart implements engine.Machine. With a usable tape the pickup is
// the tape's current position at its height; otherwise the head parks
// over the part's place position for a hand-fed component.
func (g *GCode) PickPart(p *board.Part, tape *feeder.Tape) {
	x, y, z := g.pickup(p, tape)
	fmt.Fprintf(g.w, "; pick %s %s\n", p.Name, p.Identity())
	g.travelTo(x, y)
	fmt.Fprintf(g.w, "G1 Z%.2f\n", z)
	fmt.Fprint(g.w, "M42 ; vacuum on\n")
	fmt.Fprintf(g.w, "G1 Z%.2f\n", g.profile.TravelZ)
}

// PlacePart implements engine.Machine.
func (g *GCode) PlacePart(p *board.Part, tape *feeder.Tape) {
	x, y := placePosition(g.config, p)
	z := g.config.Board.Top + g.profile.PlaceZOffset

	angle := p.Angle
	if tape != nil {
		angle = pickAngle(p, tape.Angle())
	}

	fmt.Fprintf(g.w, "; place %s %s\n", p.Name, p.Identity())
	g.travelTo(x, y)
	fmt.Fprintf(g.w, "G1 A%.1f\n", angle)
	fmt.Fprintf(g.w, "G1 Z%.2f\n", z)
	fmt.Fprint(g.w, "M43 ; vacuum off\n")
	fmt.Fprintf(g.w, "G1 Z%.2f\n", g.profile.TravelZ)
}

// Dispense implements engine.Machine. Pressure time scales with pad
// area: init_ms + area_ms_per_mm2 * area.
func (g *GCode) Dispense(p *board.Part, pad *board.Pad) {
	x, y := padPosition(g.config, p, pad)
	z := g.config.Board.Top + g.profile.DispenseHeight
	ms := g.profile.Dispense.InitMS + g.profile.Dispense.AreaMS*pad.Area()

	fmt.Fprintf(g.w, "; dispense %s pad %s\n", p.Name, pad.Name)
	g.travelTo(x, y)
	fmt.Fprintf(g.w, "G1 Z%.2f\n", z)
	fmt.Fprint(g.w, "M106 ; pressure on\n")
	fmt.Fprintf(g.w, "G4 P%.0f\n", ms)
	fmt.Fprint(g.w, "M107 ; pressure off\n")
	fmt.Fprintf(g.w, "G1 Z%.2f\n", g.profile.TravelZ)
}

// Finish implements engine.Machine: motors off, then the first deferred
// write error, if any.
func (g *GCode) Finish() error {
	fmt.Fprint(g.w, "M84 ; motors off\n")
	return g.w.Flush()
}

// travelTo moves in the clearance plane to (x, y).
func (g *GCode) travelTo(x, y float64) {
	fmt.Fprintf(g.w, "G1 X%.3f Y%.3f\n", x, y)
}

// pickup resolves the pickup position for a part.
func (g *GCode) pickup(p *board.Part, tape *feeder.Tape) (x, y, z float64) {
	if tape != nil {
		if tx, ty, ok := tape.Position(); ok {
			return tx, ty, tape.Height()
		}
	}
	// No feeder (or no stock): park over the place position so the
	// operator can hand-feed the component.
	x, y = placePosition(g.config, p)
	return x, y, g.config.Board.Top + g.profile.PlaceZOffset
}
