package report

import (
	"context"
	"strings"
	"testing"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/config"
)

func demoBoard() *board.Board {
	box := board.Box{
		P0: board.Position{X: -1, Y: -1},
		P1: board.Position{X: 1, Y: 1},
	}
	return board.NewBoard([]*board.Part{
		{Name: "C1", Footprint: "SM0805", Value: "100n", Pos: board.Position{X: 5, Y: 5}, BoundingBox: box},
		{Name: "C2", Footprint: "SM0805", Value: "100n", Pos: board.Position{X: 8, Y: 5}, BoundingBox: box},
		{Name: "R1", Footprint: "SM0805", Value: "10k", Pos: board.Position{X: 90, Y: 70}, BoundingBox: box},
	}, board.Dimension{W: 100, H: 80})
}

func TestComponentCounts(t *testing.T) {
	counts, total := ComponentCounts(demoBoard().Parts())
	if total != 3 {
		t.Errorf("Total = %d, want 3", total)
	}
	if counts["SM0805@100n"] != 2 || counts["SM0805@10k"] != 1 {
		t.Errorf("Counts wrong: %v", counts)
	}
}

func TestWriteComponentList(t *testing.T) {
	var out strings.Builder
	if err := WriteComponentList(&out, demoBoard()); err != nil {
		t.Fatalf("WriteComponentList failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d:\n%s", len(lines), out.String())
	}
	// Sorted identities, counts right-aligned.
	if !strings.HasPrefix(lines[0], "SM0805@100n") || !strings.HasSuffix(lines[0], "2") {
		t.Errorf("Line 0 wrong: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "SM0805@10k") || !strings.HasSuffix(lines[1], "1") {
		t.Errorf("Line 1 wrong: %q", lines[1])
	}
}

func TestWriteConfigTemplate_ParsesBack(t *testing.T) {
	var out strings.Builder
	if err := WriteConfigTemplate(&out, demoBoard()); err != nil {
		t.Fatalf("WriteConfigTemplate failed: %v", err)
	}

	cfg, err := config.ParseRich(context.Background(), strings.NewReader(out.String()), "template.conf")
	if err != nil {
		t.Fatalf("Template should parse cleanly:\n%s\nerror: %v", out.String(), err)
	}

	// One tape per identity, counts carried through.
	tape100n := cfg.TapeFor("SM0805@100n")
	tape10k := cfg.TapeFor("SM0805@10k")
	if tape100n == nil || tape10k == nil {
		t.Fatalf("Template missing tapes, got identities %v", cfg.Identities())
	}
	if tape100n.Remaining() != 2 {
		t.Errorf("100n count = %d, want 2", tape100n.Remaining())
	}
	if tape10k.Remaining() != 1 {
		t.Errorf("10k count = %d, want 1", tape10k.Remaining())
	}
	if tape100n == tape10k {
		t.Error("Distinct identities must get distinct tapes")
	}
}

func TestWriteCalibrationInstructions(t *testing.T) {
	var out strings.Builder
	if err := WriteCalibrationInstructions(&out, demoBoard()); err != nil {
		t.Fatalf("WriteCalibrationInstructions failed: %v", err)
	}
	text := out.String()

	wants := []string{
		"bedlevel:",
		"tape1:SM0805@100n",
		"tape2:SM0805@100n", // 2 parts on the board, N clamped to at least 2
		"tape1:SM0805@10k",
		"tape2:SM0805@10k", // single part still probes a second pocket
		"board:C1",         // nearest (0, 0)
		"board:R1",         // nearest (100, 80)
	}
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Errorf("Instructions missing %q:\n%s", want, text)
		}
	}
}
