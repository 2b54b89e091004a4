// Package feeder models a single tape feeder lane: a strip of identical
// components with a pickup point that moves one spacing step per consumed
// component.
package feeder

import "math"

// DefaultCount is the stock assumed for a tape whose count was never declared.
const DefaultCount = 1000

// Tape tracks the state of one feeder lane. The origin is always the pickup
// point of the next available component; Advance moves it along the lane.
//
// A Tape is not safe for concurrent use. The sequencing engine mutates it
// from a single goroutine, one component at a time.
type Tape struct {
	// x, y, z is the absolute pickup position of the next component.
	x, y, z float64

	// dx, dy is the translation applied to the pickup position per advance.
	// The lane has no height difference between components; z never moves.
	dx, dy float64

	// angle is the fixed rotation (degrees) components present at on this lane.
	angle float64

	// slantAngle is the direction of the spacing vector in degrees.
	// Recorded for diagnostics only; motion uses dx/dy directly.
	slantAngle float64

	// remaining is the number of components left on the lane.
	remaining int
}

// NewTape creates an empty tape with the default stock count.
func NewTape() *Tape {
	return &Tape{remaining: DefaultCount}
}

// SetOrigin sets the absolute pickup position of the next component.
func (t *Tape) SetOrigin(x, y, z float64) {
	t.x, t.y, t.z = x, y, z
}

// SetSpacing sets the per-advance translation and recomputes the slant
// angle. Rejecting a zero vector is the caller's responsibility; the
// configuration parsers enforce it before calling here.
func (t *Tape) SetSpacing(dx, dy float64) {
	t.dx, t.dy = dx, dy
	t.slantAngle = 180 / math.Pi * math.Atan2(dy, dx)
}

// SetAngle sets the component rotation in degrees.
func (t *Tape) SetAngle(deg float64) { t.angle = deg }

// SetCount sets the number of components left on the lane.
func (t *Tape) SetCount(n int) { t.remaining = n }

// Position returns the current pickup point. ok is false once the tape is
// depleted; the reported coordinates are then meaningless.
func (t *Tape) Position() (x, y float64, ok bool) {
	if t.remaining <= 0 {
		return 0, 0, false
	}
	return t.x, t.y, true
}

// Advance consumes one component: the pickup point moves by the spacing
// vector and the stock count drops by one. It reports false on a depleted
// tape and leaves all state unchanged; callers must treat that as "no
// physical component available", not as a fatal condition.
func (t *Tape) Advance() bool {
	if t.remaining <= 0 {
		return false
	}
	t.x += t.dx
	t.y += t.dy
	// z stays the same.
	t.remaining--
	return true
}

// Height returns the z of the pickup point. It is valid even on a depleted
// tape; the height cross-check and placement ordering both use it.
func (t *Tape) Height() float64 { return t.z }

// Angle returns the component rotation in degrees.
func (t *Tape) Angle() float64 { return t.angle }

// SlantAngle returns the direction of the spacing vector in degrees.
func (t *Tape) SlantAngle() float64 { return t.slantAngle }

// Spacing returns the per-advance translation.
func (t *Tape) Spacing() (dx, dy float64) { return t.dx, t.dy }

// Remaining returns the number of components left on the lane.
func (t *Tape) Remaining() int { return t.remaining }
