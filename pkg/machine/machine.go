// Package machine renders the sequencing engine's operation stream as
// concrete machine output. Two backends implement engine.Machine: GCode
// emits motion and dispense instructions for the actual apparatus,
// PostScript renders the same stream as a drawing for visual
// verification before committing a board.
package machine

import (
	"math"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
)

// placePosition returns the absolute board position of a part under the
// given configuration: board origin plus the part's report coordinates.
func placePosition(cfg *engine.PlacementConfig, p *board.Part) (x, y float64) {
	return cfg.Board.Origin.X + p.Pos.X, cfg.Board.Origin.Y + p.Pos.Y
}

// padPosition returns the absolute position of a pad: the part position
// plus the pad offset rotated by the part angle.
func padPosition(cfg *engine.PlacementConfig, p *board.Part, pad *board.Pad) (x, y float64) {
	px, py := placePosition(cfg, p)
	rx, ry := rotate(pad.Pos.X, pad.Pos.Y, p.Angle)
	return px + rx, py + ry
}

// rotate rotates a vector by deg degrees counter-clockwise.
func rotate(x, y, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// pickAngle returns the rotation the head must apply when placing: the
// part's board rotation relative to how components sit on the tape.
func pickAngle(p *board.Part, tapeAngle float64) float64 {
	return math.Mod(p.Angle+tapeAngle, 360)
}
