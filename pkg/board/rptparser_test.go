package board

import (
	"strings"
	"testing"
)

const sampleReport = `## Module report
$BOARD
unit mm
upper_left_corner 0.0 0.0
lower_right_corner 100.0 80.0
$EndBOARD

$MODULE "C1"
footprint "SM0805"
value "100n"
position 55.38 31.75
orientation 90.0
$PAD "1"
position -0.95 0.0
size 1.3 1.5
drill 0.0
$EndPAD
$PAD "2"
position 0.95 0.0
size 1.3 1.5
drill 0.0
$EndPAD
$EndMODULE C1

$MODULE "R1"
footprint "SM0805"
value "10k"
position 20.0 10.0
orientation 0.0
$EndMODULE R1
`

func TestParseReport_Sample(t *testing.T) {
	b, err := ParseReport(strings.NewReader(sampleReport), "sample.rpt")
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}

	if got := len(b.Parts()); got != 2 {
		t.Fatalf("Expected 2 parts, got %d", got)
	}

	c1 := b.FindPart("C1")
	if c1 == nil {
		t.Fatal("C1 not found")
	}
	if c1.Footprint != "SM0805" || c1.Value != "100n" {
		t.Errorf("C1 identity fields wrong: %q %q", c1.Footprint, c1.Value)
	}
	if c1.Identity() != "SM0805@100n" {
		t.Errorf("Identity = %q, want SM0805@100n", c1.Identity())
	}
	if c1.Pos.X != 55.38 || c1.Pos.Y != 31.75 {
		t.Errorf("C1 position wrong: %+v", c1.Pos)
	}
	if c1.Angle != 90 {
		t.Errorf("C1 angle = %g, want 90", c1.Angle)
	}
	if len(c1.Pads) != 2 {
		t.Fatalf("Expected 2 pads on C1, got %d", len(c1.Pads))
	}
	if c1.Pads[0].Name != "1" || c1.Pads[0].Pos.X != -0.95 {
		t.Errorf("Pad 1 wrong: %+v", c1.Pads[0])
	}

	// Bounding box spans both pads plus pad size.
	if w := c1.BoundingBox.Width(); w != 1.9+1.3 {
		t.Errorf("C1 bounding box width = %g, want %g", w, 1.9+1.3)
	}

	dim := b.Dimension()
	if dim.W != 100 || dim.H != 80 {
		t.Errorf("Dimension = %+v, want 100x80", dim)
	}
}

func TestParseReport_MalformedNumberAborts(t *testing.T) {
	bad := `$MODULE "C1"
position nope 31.75
$EndMODULE C1
`
	_, err := ParseReport(strings.NewReader(bad), "bad.rpt")
	if err == nil {
		t.Fatal("Expected error for malformed position")
	}
	if !strings.Contains(err.Error(), "bad.rpt:2") {
		t.Errorf("Error should carry file:line, got: %v", err)
	}
}

func TestParseReport_DimensionFromExtents(t *testing.T) {
	noBoard := `$MODULE "R1"
position 30.0 40.0
$EndMODULE R1
`
	b, err := ParseReport(strings.NewReader(noBoard), "r.rpt")
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}
	dim := b.Dimension()
	if dim.W != 30 || dim.H != 40 {
		t.Errorf("Dimension = %+v, want 30x40", dim)
	}
}

func TestDistance(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4, Z: 7}
	if d := Distance(a, b); d != 5 {
		t.Errorf("Distance = %g, want 5 (z ignored)", d)
	}
}
