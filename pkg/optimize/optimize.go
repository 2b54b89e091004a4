// Package optimize provides the travel-order heuristic for dispensing:
// a deterministic ordering of (part, pad) points intended to reduce
// total head motion between consecutive dispense operations.
package optimize

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/fabtools/pnpgen/pkg/engine"
)

// NearestNeighbor implements engine.TravelOptimizer with a greedy
// nearest-neighbour walk starting from the machine origin. The result is
// a permutation of the input and deterministic for identical input (ties
// resolve to the earliest candidate); it makes no optimality claim.
type NearestNeighbor struct{}

// NewNearestNeighbor creates the default travel optimizer.
func NewNearestNeighbor() *NearestNeighbor {
	return &NearestNeighbor{}
}

// Order implements engine.TravelOptimizer.
func (o *NearestNeighbor) Order(points []engine.DispensePoint) []engine.DispensePoint {
	ordered := make([]engine.DispensePoint, 0, len(points))
	remaining := make([]engine.DispensePoint, len(points))
	copy(remaining, points)

	// The head starts at the machine origin.
	head := r2.Vec{}

	for len(remaining) > 0 {
		best := 0
		bestDist := dist(head, position(remaining[0]))
		for i := 1; i < len(remaining); i++ {
			if d := dist(head, position(remaining[i])); d < bestDist {
				best, bestDist = i, d
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		head = position(next)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}

// PathLength returns the total travel distance of visiting the points in
// the given order, starting from the machine origin. Used for diagnostics
// and to compare orderings in tests.
func PathLength(points []engine.DispensePoint) float64 {
	total := 0.0
	head := r2.Vec{}
	for _, p := range points {
		pos := position(p)
		total += dist(head, pos)
		head = pos
	}
	return total
}

// position returns the absolute board-plane position of a dispense point.
func position(p engine.DispensePoint) r2.Vec {
	return r2.Vec{
		X: p.Part.Pos.X + p.Pad.Pos.X,
		Y: p.Part.Pos.Y + p.Pad.Pos.Y,
	}
}

func dist(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
