package config

import (
	"context"
	"strings"
	"testing"

	"github.com/fabtools/pnpgen/pkg/engine"
)

func parseRich(t *testing.T, input string) *engine.PlacementConfig {
	t.Helper()
	cfg, err := ParseRich(context.Background(), strings.NewReader(input), "test.conf")
	if err != nil {
		t.Fatalf("ParseRich failed: %v", err)
	}
	return cfg
}

func TestParseRich_Complete(t *testing.T) {
	cfg := parseRich(t, `
# Feeder configuration for the demo board.
Board:
origin: 10 20 1.6

Tape-Tray-Origin: 100 0 5

Tape: SM0805@100n
origin: 5 8 2
spacing: 4 0
angle: 0
count: 42
`)

	if cfg.Board.Origin.X != 10 || cfg.Board.Origin.Y != 20 {
		t.Errorf("Board origin = %+v, want (10, 20)", cfg.Board.Origin)
	}
	if cfg.Board.Top != 1.6 {
		t.Errorf("Board top = %g, want 1.6", cfg.Board.Top)
	}

	tape := cfg.TapeFor("SM0805@100n")
	if tape == nil {
		t.Fatal("Tape for SM0805@100n not found")
	}

	// Tape origin is relative to the tray origin.
	x, y, ok := tape.Position()
	if !ok {
		t.Fatal("Position on configured tape should succeed")
	}
	if x != 105 || y != 8 {
		t.Errorf("Pickup = (%g, %g), want (105, 8)", x, y)
	}
	if tape.Height() != 7 {
		t.Errorf("Pickup height = %g, want 7 (2 + tray height 5)", tape.Height())
	}
	if tape.Angle() != 0 {
		t.Errorf("Angle = %g, want explicit 0 overriding the default", tape.Angle())
	}
	if tape.Remaining() != 42 {
		t.Errorf("Remaining = %d, want 42", tape.Remaining())
	}

	// The rich format has no bed probe; the reference plane is assumed.
	if !cfg.BedLevelSet() || cfg.BedLevel != 0 {
		t.Errorf("BedLevel = %g, want 0", cfg.BedLevel)
	}
}

func TestParseRich_DefaultAngleAndCount(t *testing.T) {
	cfg := parseRich(t, `
Tape: SM0805@10k
origin: 0 0 2
spacing: 4 0
`)
	tape := cfg.TapeFor("SM0805@10k")
	if tape == nil {
		t.Fatal("Tape not found")
	}
	if tape.Angle() != 90 {
		t.Errorf("Default tape angle = %g, want 90", tape.Angle())
	}
	if tape.Remaining() != 1000 {
		t.Errorf("Default count = %d, want 1000", tape.Remaining())
	}
}

func TestParseRich_AliasesShareOneTape(t *testing.T) {
	cfg := parseRich(t, `
Tape: SM0805@100n SM0805@0.1uF
origin: 0 0 2
spacing: 4 0
count: 2
`)
	a := cfg.TapeFor("SM0805@100n")
	b := cfg.TapeFor("SM0805@0.1uF")
	if a == nil || b == nil {
		t.Fatal("Both aliases should resolve")
	}
	if a != b {
		t.Fatal("Aliases must share one tape instance")
	}

	// Consuming via one alias consumes for both.
	a.Advance()
	a.Advance()
	if _, _, ok := b.Position(); ok {
		t.Error("Shared tape should be depleted through either alias")
	}
}

func TestParseRich_OptionalBoardTop(t *testing.T) {
	cfg := parseRich(t, "Board:\norigin: 3 4\n")
	if cfg.Board.Origin.X != 3 || cfg.Board.Origin.Y != 4 {
		t.Errorf("Board origin = %+v, want (3, 4)", cfg.Board.Origin)
	}
	if cfg.Board.Top != 0 {
		t.Errorf("Omitted top should stay 0, got %g", cfg.Board.Top)
	}
}

func TestParseRich_TrailingComments(t *testing.T) {
	cfg := parseRich(t, `
Tape: SM1206@1k # the big resistors
origin: 1 2 3 # measured 2024-05-02
spacing: 4 0 # one pocket
`)
	tape := cfg.TapeFor("SM1206@1k")
	if tape == nil {
		t.Fatal("Comment after identity must not eat the declaration")
	}
	if x, _, _ := tape.Position(); x != 1 {
		t.Errorf("Pickup x = %g, want 1", x)
	}
}

func TestParseRich_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{
			"unknown token",
			"Tapes: SM0805@100n\n",
			engine.IsSyntax,
		},
		{
			"zero spacing",
			"Tape: a@b\norigin: 0 0 2\nspacing: 0 0\n",
			engine.IsSyntax,
		},
		{
			"spacing without tape",
			"spacing: 4 0\n",
			engine.IsScope,
		},
		{
			"angle without tape",
			"Board:\nangle: 90\n",
			engine.IsScope,
		},
		{
			"count without tape",
			"count: 10\n",
			engine.IsScope,
		},
		{
			"malformed origin",
			"Tape: a@b\norigin: 1 x 2\n",
			engine.IsSyntax,
		},
		{
			"short tray origin",
			"Tape-Tray-Origin: 5\n",
			engine.IsSyntax,
		},
		{
			"tape without identity",
			"Tape: # forgot the name\n",
			engine.IsSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRich(context.Background(), strings.NewReader(tt.input), "bad.conf")
			if err == nil {
				t.Fatal("Expected parse error")
			}
			if !tt.check(err) {
				t.Errorf("Wrong error class: %v", err)
			}
			if !strings.Contains(err.Error(), "bad.conf:") {
				t.Errorf("Error should carry file:line, got: %v", err)
			}
		})
	}
}

func TestParseRich_ScopeResetAfterBoard(t *testing.T) {
	// A Board: block after a Tape: leaves tape scope; tape attributes
	// are then errors again.
	input := `
Tape: a@b
origin: 0 0 2
spacing: 4 0
Board:
spacing: 4 0
`
	_, err := ParseRich(context.Background(), strings.NewReader(input), "scope.conf")
	if !engine.IsScope(err) {
		t.Errorf("Expected scope error after Board: reset, got: %v", err)
	}
}
