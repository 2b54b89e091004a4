// Package board holds the circuit-board data model produced by the
// placement-report parser: parts with footprints, values, pads and
// positions, plus the board dimension. Everything here is read-only
// input for the sequencing engine.
package board

import "math"

// Position is a point in millimeters. Z is zero where only the plane
// matters (board origins, travel targets).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Dimension is a width/height extent in millimeters.
type Dimension struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Box is an axis-aligned bounding box.
type Box struct {
	P0 Position `json:"p0"`
	P1 Position `json:"p1"`
}

// Width returns the x extent of the box.
func (b Box) Width() float64 { return math.Abs(b.P1.X - b.P0.X) }

// Height returns the y extent of the box.
func (b Box) Height() float64 { return math.Abs(b.P1.Y - b.P0.Y) }

// Pad is a single solder pad, positioned relative to its part.
type Pad struct {
	// Name is the pad name from the report, typically a pin number.
	Name string `json:"name"`

	// Pos is the pad center relative to the part position.
	Pos Position `json:"pos"`

	// Size is the pad extent.
	Size Dimension `json:"size"`

	// Drill is the drill diameter; zero for SMD pads.
	Drill float64 `json:"drill,omitempty"`
}

// Area returns the pad area in mm², used by the dispense timing model.
func (p *Pad) Area() float64 { return p.Size.W * p.Size.H }

// Part is one placed component from the report.
type Part struct {
	// Name is the reference designator (e.g. "C1").
	Name string `json:"name"`

	// Footprint and Value identify the interchangeable-part class.
	Footprint string `json:"footprint"`
	Value     string `json:"value"`

	// Pos is the absolute part position on the board.
	Pos Position `json:"pos"`

	// Angle is the part rotation in degrees.
	Angle float64 `json:"angle"`

	// BoundingBox is the part extent relative to Pos.
	BoundingBox Box `json:"bounding_box"`

	// Pads are the solder pads, positions relative to Pos.
	Pads []Pad `json:"pads,omitempty"`
}

// Identity returns the component identity key joining board parts to
// feeders: multiple parts with the same footprint and value share one
// tape.
func (p *Part) Identity() string {
	return p.Footprint + "@" + p.Value
}

// Board is the parsed placement report.
type Board struct {
	parts []*Part
	dim   Dimension
}

// NewBoard assembles a board directly from parts and an explicit
// dimension, bypassing the report parser.
func NewBoard(parts []*Part, dim Dimension) *Board {
	return &Board{parts: parts, dim: dim}
}

// Parts returns the part list in report order.
func (b *Board) Parts() []*Part { return b.parts }

// Dimension returns the board extent.
func (b *Board) Dimension() Dimension { return b.dim }

// FindPart returns the part with the given reference designator, or nil.
func (b *Board) FindPart(name string) *Part {
	for _, p := range b.parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Distance returns the Euclidean distance between two positions in the
// board plane. Z is ignored; travel cost is planar.
func Distance(a, b Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
