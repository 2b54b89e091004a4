package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/feeder"
)

// parserScope tracks which declaration scope the rich parser is in.
// Attribute tokens are only legal in the scope that owns them; making the
// scope explicit turns invalid-context input into a checked error rather
// than a nil-pointer hazard.
type parserScope int

const (
	// scopeBoard: before any Tape:, or after Board:/Tape-Tray-Origin:.
	// "origin:" here configures the board itself.
	scopeBoard parserScope = iota

	// scopeTape: inside a Tape: block; attribute tokens configure the
	// current feeder.
	scopeTape
)

// richParser holds the parse-time context for one rich-format file.
type richParser struct {
	filename string

	scope parserScope
	tape  *feeder.Tape

	// trayOrigin and trayHeight are process-wide offsets declared once
	// via Tape-Tray-Origin: and added to every subsequent feeder origin.
	trayOrigin board.Position
	trayHeight float64
}

// ParseRich parses the human-authored rich configuration format.
//
// The format is line oriented; the first whitespace-delimited token of a
// line selects the declaration. '#' starts a comment, at line start or
// after the numeric fields of a declaration. Any unrecognized token,
// malformed numeric field or out-of-scope attribute aborts the parse
// with a file:line diagnostic; no partial configuration is returned.
func ParseRich(ctx context.Context, r io.Reader, filename string) (*engine.PlacementConfig, error) {
	cfg := engine.NewPlacementConfig()
	p := &richParser{filename: filename}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.parseLine(cfg, fields[0], fields[1:], line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, engine.NewSyntaxError("read failed", err).
			WithLocation(filename, line)
	}

	// The rich format carries no bed probe; assume the reference plane.
	cfg.BedLevel = 0

	return cfg, nil
}

// LoadRich parses a rich-format configuration file from disk.
func LoadRich(ctx context.Context, path string) (*engine.PlacementConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return ParseRich(ctx, f, path)
}

// parseLine dispatches one declaration line.
func (p *richParser) parseLine(cfg *engine.PlacementConfig, token string, args []string, line int) error {
	switch token {
	case "Board:":
		p.scope, p.tape = scopeBoard, nil

	case "Tape-Tray-Origin:":
		p.scope, p.tape = scopeBoard, nil
		// Height is optional; x and y are not.
		if err := parseNumeric(args, 2, &p.trayOrigin.X, &p.trayOrigin.Y, &p.trayHeight); err != nil {
			return p.syntaxErr("bad tape-tray origin", err, token, line)
		}

	case "Tape:":
		identities := truncateAtComment(args)
		if len(identities) == 0 {
			return p.syntaxErr("Tape: needs at least one component identity", nil, token, line)
		}
		// One physical lane may stock several interchangeable parts: every
		// identity on the line aliases the same Tape instance.
		p.tape = feeder.NewTape()
		p.tape.SetAngle(90)
		p.scope = scopeTape
		for _, id := range identities {
			cfg.TapeForComponent[id] = p.tape
		}

	case "origin:":
		if p.scope == scopeTape {
			var x, y, z float64
			if err := parseNumeric(args, 3, &x, &y, &z); err != nil {
				return p.syntaxErr("bad tape origin", err, token, line)
			}
			p.tape.SetOrigin(x+p.trayOrigin.X, y+p.trayOrigin.Y, z+p.trayHeight)
			break
		}
		// Board scope: x y with optional top height.
		if err := parseNumeric(args, 2, &cfg.Board.Origin.X, &cfg.Board.Origin.Y, &cfg.Board.Top); err != nil {
			return p.syntaxErr("bad board origin", err, token, line)
		}

	case "spacing:":
		if p.scope != scopeTape {
			return p.scopeErr("spacing without tape", token, line)
		}
		var dx, dy float64
		if err := parseNumeric(args, 2, &dx, &dy); err != nil {
			return p.syntaxErr("bad spacing", err, token, line)
		}
		if dx == 0 && dy == 0 {
			return p.syntaxErr("spacing needs at least one non-zero component", nil, token, line)
		}
		p.tape.SetSpacing(dx, dy)

	case "angle:":
		if p.scope != scopeTape {
			return p.scopeErr("angle without tape", token, line)
		}
		var deg float64
		if err := parseNumeric(args, 1, &deg); err != nil {
			return p.syntaxErr("bad angle", err, token, line)
		}
		p.tape.SetAngle(deg)

	case "count:":
		if p.scope != scopeTape {
			return p.scopeErr("count without tape", token, line)
		}
		fields := truncateAtComment(args)
		if len(fields) < 1 {
			return p.syntaxErr("bad count", nil, token, line)
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return p.syntaxErr("bad count", err, token, line)
		}
		p.tape.SetCount(n)

	default:
		return p.syntaxErr("invalid token", nil, token, line)
	}
	return nil
}

func (p *richParser) syntaxErr(msg string, err error, token string, line int) error {
	return engine.NewSyntaxError(msg, err).
		WithLocation(p.filename, line).
		WithToken(token)
}

func (p *richParser) scopeErr(msg, token string, line int) error {
	return engine.NewScopeError(msg).
		WithLocation(p.filename, line).
		WithToken(token)
}

// parseNumeric fills dst from the leading fields, requiring at least min
// of them. Fields past a '#' are comment and ignored, as are extra
// fields beyond dst.
func parseNumeric(args []string, min int, dst ...*float64) error {
	fields := truncateAtComment(args)
	if len(fields) < min {
		return fmt.Errorf("expected at least %d numeric fields, got %d", min, len(fields))
	}
	for i, d := range dst {
		if i >= len(fields) {
			break
		}
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

// truncateAtComment cuts the fields at the first one starting a comment.
func truncateAtComment(fields []string) []string {
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			return fields[:i]
		}
	}
	return fields
}
