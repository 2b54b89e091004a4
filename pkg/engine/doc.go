// Package engine provides the core types and the part-sequencing engine
// for converting a parsed board placement list into ordered machine
// instructions.
//
// # Overview
//
// A run moves through a fixed pipeline:
//
//  1. Report - Parse the board placement report (pkg/board)
//  2. Config - Parse a placement configuration, rich or measured format
//     (pkg/config), producing a PlacementConfig
//  3. Sequence - Order parts and drive feeder consumption (Sequencer)
//  4. Emit - Render the operation stream on a Machine backend
//     (pkg/machine: G-code or PostScript)
//
// # Core Domain Types
//
//   - PlacementConfig: board geometry, bed level, and the component
//     identity to feeder mapping
//   - DispensePoint: one (part, pad) pair in the dispense stream
//   - Machine: the instruction sink interface implemented by backends
//   - TravelOptimizer: the visiting-order heuristic for dispensing
//
// # Ordering Invariants
//
// Pick-and-place ordering is ascending by feeder pickup height so shorter
// components are placed before taller neighbours; parts without a mapped
// feeder sort first. Dispense ordering is whatever permutation the
// travel optimizer returns; the engine verifies it is a permutation.
//
// # Error Classification
//
// Errors are classified to separate fatal parse failures from degraded
// sequencing behavior:
//
//   - Syntax: unparseable line structure, fatal
//   - Scope: attribute token outside a valid parser scope, fatal
//   - Lookup: unknown designator or unmapped identity, logged and skipped
//   - Invariant: feeder pickup below bed level, fatal
//   - Depleted: feeder advanced past zero stock, logged and continued
package engine
