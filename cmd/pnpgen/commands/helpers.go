package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/config"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/machine"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

// loadBoard parses the placement report and logs its dimensions.
func loadBoard(ctx context.Context, path string) (*board.Board, error) {
	b, err := board.LoadReport(path)
	if err != nil {
		return nil, err
	}
	dim := b.Dimension()
	telemetry.FromContext(ctx).Infof("Board: %s, %.1fmm x %.1fmm, %d parts",
		path, dim.W, dim.H, len(b.Parts()))
	return b, nil
}

// loadConfig parses whichever configuration flag was given. No flag
// returns (nil, nil): sequencing then runs in board order without feeder
// tracking.
func loadConfig(ctx context.Context, b *board.Board) (*engine.PlacementConfig, error) {
	switch {
	case configPath != "" && measuredPath != "":
		return nil, fmt.Errorf("--config and --measured-config are mutually exclusive")
	case configPath != "":
		return config.LoadRich(ctx, configPath)
	case measuredPath != "":
		return config.LoadMeasured(ctx, measuredPath, b)
	default:
		return nil, nil
	}
}

// newMachine builds the selected instruction backend writing to w.
func newMachine(w io.Writer, postscript bool) (engine.Machine, error) {
	if postscript {
		return machine.NewPostScript(w), nil
	}
	profile := machine.DefaultProfile()
	if profilePath != "" {
		var err error
		if profile, err = machine.LoadProfile(profilePath); err != nil {
			return nil, err
		}
	}
	return machine.NewGCode(w, profile), nil
}

// runMetadata builds the provenance string embedded in stream headers:
// the command line plus a fresh run ID.
func runMetadata() (metadata, runID string) {
	runID = uuid.New().String()
	return fmt.Sprintf("%s run_id=%s", strings.Join(os.Args, " "), runID), runID
}
