package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/feeder"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

// ParseMeasured parses the measured configuration format produced by the
// calibration assistant. Each line is one probed position:
//
//	tape<N>:<designator> x y z    Nth component observed on a lane
//	board:<designator> x y z      a known board part, locating the board
//	bedlevel:<name> x y z         the machine bed next to the board
//
// The first tape observation (N=1) creates the feeder; a later one (N>1)
// infers the spacing by dividing the displacement from the first position
// by N-1, averaging out per-reading measurement noise. Unmatched lines
// are logged and skipped: the file is machine generated and benign noise
// is expected. The board lookup resolves designators against b; an
// unknown designator is a warning, not a failure.
//
// After all lines are consumed the height cross-check runs: a feeder or
// board surface below the measured bed level rejects the whole
// configuration.
func ParseMeasured(ctx context.Context, r io.Reader, filename string, b *board.Board) (*engine.PlacementConfig, error) {
	log := telemetry.FromContext(ctx).NewComponentLogger("measured-config")
	cfg := engine.NewPlacementConfig()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		kind, designator, pos, ok := splitMeasuredLine(text)
		if !ok {
			log.Warnf("%s:%d: can't parse %q, skipping", filename, line, text)
			continue
		}

		switch {
		case strings.HasPrefix(kind, "tape"):
			idx, err := strconv.Atoi(strings.TrimPrefix(kind, "tape"))
			if err != nil || idx < 1 {
				log.Warnf("%s:%d: bad tape index in %q, skipping", filename, line, text)
				continue
			}
			recordTapeObservation(log, cfg, designator, idx, pos)

		case kind == "board":
			// The origin derivation needs the part; the probed top and the
			// bed-level fallback do not, and apply either way.
			if part := b.FindPart(designator); part != nil {
				cfg.Board.Origin.X = pos.X - part.Pos.X
				cfg.Board.Origin.Y = pos.Y - part.Pos.Y
			} else {
				log.Warnf("%v", engine.NewLookupError("no such part on board").
					WithLocation(filename, line).
					WithComponent(designator))
			}
			cfg.Board.Top = pos.Z
			if !cfg.BedLevelSet() {
				cfg.BedLevel = cfg.Board.Top - engine.NominalBoardThickness
			}

		case kind == "bedlevel":
			// The designator is a probe label; only z matters.
			cfg.BedLevel = pos.Z

		default:
			log.Warnf("%s:%d: unknown record %q, skipping", filename, line, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, engine.NewSyntaxError("read failed", err).
			WithLocation(filename, line)
	}

	if err := cfg.CheckHeights(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadMeasured parses a measured-format configuration file from disk.
func LoadMeasured(ctx context.Context, path string, b *board.Board) (*engine.PlacementConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return ParseMeasured(ctx, f, path, b)
}

// recordTapeObservation applies one tape<N> measurement: N=1 creates the
// feeder, N>1 derives the averaged spacing from the first position.
func recordTapeObservation(log *telemetry.Logger, cfg *engine.PlacementConfig, designator string, idx int, pos board.Position) {
	if idx == 1 {
		tape := feeder.NewTape()
		// Components come off tape rotated relative to their CAD drawing;
		// 90 degrees holds for the reels this was built for.
		tape.SetAngle(90)
		tape.SetOrigin(pos.X, pos.Y, pos.Z)
		cfg.TapeForComponent[designator] = tape
		return
	}

	tape := cfg.TapeForComponent[designator]
	if tape == nil {
		log.Warnf("%v", engine.NewLookupError(
			fmt.Sprintf("tape%d measurement without a tape1 line", idx)).
			WithComponent(designator))
		return
	}

	firstX, firstY, ok := tape.Position()
	if !ok {
		return
	}
	advances := float64(idx - 1)
	dx := (pos.X - firstX) / advances
	dy := (pos.Y - firstY) / advances
	tape.SetSpacing(dx, dy)
	log.Debugf("%s: step %.2fmm at %.1f°", designator, math.Hypot(dx, dy), tape.SlantAngle())
}

// splitMeasuredLine splits "kind:designator x y z" into its pieces.
func splitMeasuredLine(text string) (kind, designator string, pos board.Position, ok bool) {
	head, rest, found := strings.Cut(text, ":")
	if !found {
		return "", "", pos, false
	}
	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return "", "", pos, false
	}
	var err error
	if pos.X, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return "", "", pos, false
	}
	if pos.Y, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return "", "", pos, false
	}
	if pos.Z, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return "", "", pos, false
	}
	return head, fields[0], pos, true
}
