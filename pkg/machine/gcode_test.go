package machine

import (
	"math"
	"strings"
	"testing"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

func testConfig() *engine.PlacementConfig {
	cfg := engine.NewPlacementConfig()
	cfg.Board.Origin = board.Position{X: 100, Y: 50}
	cfg.Board.Top = 1.6
	cfg.BedLevel = 0
	return cfg
}

func TestGCode_StreamShape(t *testing.T) {
	var out strings.Builder
	g := NewGCode(&out, nil)

	if err := g.Init(testConfig(), "test run", board.Dimension{W: 80, H: 60}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tape := feeder.NewTape()
	tape.SetOrigin(200, 10, 2)
	tape.SetSpacing(4, 0)

	part := &board.Part{
		Name: "C1", Footprint: "0805", Value: "100n",
		Pos: board.Position{X: 5, Y: 5},
	}
	g.PickPart(part, tape)
	g.PlacePart(part, tape)
	if err := g.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	stream := out.String()
	for _, want := range []string{
		"; test run",
		"G21", "G90", "G28",
		"G1 X200.000 Y10.000", // pick at the tape position
		"M42",
		"G1 X105.000 Y55.000", // place at board origin + part position
		"M43",
		"M84",
	} {
		if !strings.Contains(stream, want) {
			t.Errorf("Stream missing %q:\n%s", want, stream)
		}
	}
}

func TestGCode_NilConfigAndTapeFallback(t *testing.T) {
	var out strings.Builder
	g := NewGCode(&out, nil)
	if err := g.Init(nil, "", board.Dimension{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Without a tape the head parks over the place position for hand
	// feeding.
	part := &board.Part{Name: "X1", Pos: board.Position{X: 7, Y: 9}}
	g.PickPart(part, nil)
	if err := g.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	if !strings.Contains(out.String(), "G1 X7.000 Y9.000") {
		t.Errorf("Hand-feed pickup should target the place position:\n%s", out.String())
	}
}

func TestGCode_DispenseDwellScalesWithArea(t *testing.T) {
	var out strings.Builder
	g := NewGCode(&out, nil)
	if err := g.Init(testConfig(), "", board.Dimension{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	part := &board.Part{Name: "C1", Pos: board.Position{X: 0, Y: 0}}
	pad := &board.Pad{Name: "1", Size: board.Dimension{W: 2, H: 1}}
	g.Dispense(part, pad)
	if err := g.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	// Default timing: 50ms + 25ms/mm² over 2mm².
	if !strings.Contains(out.String(), "G4 P100") {
		t.Errorf("Expected 100ms dwell for a 2mm² pad:\n%s", out.String())
	}
}

func TestPadPosition_RotatesWithPart(t *testing.T) {
	cfg := engine.NewEmptyPlacementConfig()
	part := &board.Part{Name: "U1", Pos: board.Position{X: 10, Y: 10}, Angle: 90}
	pad := &board.Pad{Name: "1", Pos: board.Position{X: 2, Y: 0}}

	// A 90° part rotation turns the +x pad offset into +y.
	x, y := padPosition(cfg, part, pad)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-12) > 1e-9 {
		t.Errorf("padPosition = (%g, %g), want (10, 12)", x, y)
	}
}

func TestPickAngle(t *testing.T) {
	tests := []struct {
		part, tape, want float64
	}{
		{0, 90, 90},
		{90, 90, 180},
		{315, 90, 45},
		{180, 0, 180},
	}
	for _, tt := range tests {
		p := &board.Part{Angle: tt.part}
		if got := pickAngle(p, tt.tape); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pickAngle(%g, %g) = %g, want %g", tt.part, tt.tape, got, tt.want)
		}
	}
}
