package board

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ParseReport reads a placement report in the KiCad module-report format.
// The report is block structured:
//
//	$BOARD
//	upper_left_corner 0.0 0.0
//	lower_right_corner 100.0 80.0
//	$EndBOARD
//
//	$MODULE "C1"
//	footprint "SM0805"
//	value "100n"
//	position 55.38 31.75
//	orientation 90.0
//	$PAD "1"
//	position -0.95 0.0
//	size 1.3 1.5
//	drill 0.0
//	$EndPAD
//	$EndMODULE C1
//
// Unknown attribute lines are skipped (the report carries tool metadata we
// do not need), but a recognized attribute with malformed numeric fields
// aborts the parse with a file:line diagnostic. The filename is only used
// for diagnostics.
func ParseReport(r io.Reader, filename string) (*Board, error) {
	b := &Board{}

	var (
		part       *Part
		pad        *Pad
		haveCorner bool
		upperLeft  Position
		lowerRight Position
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key := fields[0]
		args := fields[1:]

		fail := func(what string) error {
			return fmt.Errorf("%s:%d: malformed %s: %q", filename, line, what, scanner.Text())
		}

		switch key {
		case "$MODULE":
			part = &Part{}
			if len(args) > 0 {
				part.Name = unquote(args[0])
			}
		case "$EndMODULE":
			if part != nil {
				part.BoundingBox = padExtents(part.Pads)
				b.parts = append(b.parts, part)
				part = nil
			}
		case "$PAD":
			if part == nil {
				continue
			}
			pad = &Pad{}
			if len(args) > 0 {
				pad.Name = unquote(args[0])
			}
		case "$EndPAD":
			if part != nil && pad != nil {
				part.Pads = append(part.Pads, *pad)
			}
			pad = nil
		case "upper_left_corner":
			if err := parseFloats(args, &upperLeft.X, &upperLeft.Y); err != nil {
				return nil, fail("board corner")
			}
			haveCorner = true
		case "lower_right_corner":
			if err := parseFloats(args, &lowerRight.X, &lowerRight.Y); err != nil {
				return nil, fail("board corner")
			}
			haveCorner = true
		case "footprint":
			if part != nil && pad == nil && len(args) > 0 {
				part.Footprint = unquote(args[0])
			}
		case "value":
			if part != nil && pad == nil && len(args) > 0 {
				part.Value = unquote(args[0])
			}
		case "position":
			switch {
			case pad != nil:
				if err := parseFloats(args, &pad.Pos.X, &pad.Pos.Y); err != nil {
					return nil, fail("pad position")
				}
			case part != nil:
				if err := parseFloats(args, &part.Pos.X, &part.Pos.Y); err != nil {
					return nil, fail("part position")
				}
			}
		case "orientation":
			if part != nil && pad == nil {
				if err := parseFloats(args, &part.Angle); err != nil {
					return nil, fail("orientation")
				}
			}
		case "size":
			if pad != nil {
				if err := parseFloats(args, &pad.Size.W, &pad.Size.H); err != nil {
					return nil, fail("pad size")
				}
			}
		case "drill":
			if pad != nil {
				if err := parseFloats(args, &pad.Drill); err != nil {
					return nil, fail("pad drill")
				}
			}
		default:
			// Tool metadata ($BOARD, unit, layer, shape, ...) we don't need.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if haveCorner {
		b.dim = Dimension{
			W: math.Abs(lowerRight.X - upperLeft.X),
			H: math.Abs(lowerRight.Y - upperLeft.Y),
		}
	} else {
		b.dim = partExtents(b.parts)
	}

	return b, nil
}

// LoadReport parses a placement report from disk.
func LoadReport(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()
	return ParseReport(f, path)
}

// parseFloats fills dst from the leading fields; extra fields are ignored,
// missing or unparseable ones are an error.
func parseFloats(fields []string, dst ...*float64) error {
	if len(fields) < len(dst) {
		return fmt.Errorf("expected %d numeric fields, got %d", len(dst), len(fields))
	}
	for i, d := range dst {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// padExtents computes a part-relative bounding box from its pads.
func padExtents(pads []Pad) Box {
	if len(pads) == 0 {
		return Box{}
	}
	box := Box{
		P0: Position{X: math.Inf(1), Y: math.Inf(1)},
		P1: Position{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, p := range pads {
		box.P0.X = math.Min(box.P0.X, p.Pos.X-p.Size.W/2)
		box.P0.Y = math.Min(box.P0.Y, p.Pos.Y-p.Size.H/2)
		box.P1.X = math.Max(box.P1.X, p.Pos.X+p.Size.W/2)
		box.P1.Y = math.Max(box.P1.Y, p.Pos.Y+p.Size.H/2)
	}
	return box
}

// partExtents derives a board dimension from part positions when the report
// carries no corner records.
func partExtents(parts []*Part) Dimension {
	if len(parts) == 0 {
		return Dimension{}
	}
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range parts {
		maxX = math.Max(maxX, p.Pos.X+p.BoundingBox.P1.X)
		maxY = math.Max(maxY, p.Pos.Y+p.BoundingBox.P1.Y)
	}
	return Dimension{W: math.Max(maxX, 0), H: math.Max(maxY, 0)}
}
