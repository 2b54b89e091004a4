// Package report generates the human-facing text artifacts: the
// component listing, the editable rich-format configuration template,
// and the calibration instruction list consumed by the measurement
// assistant.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
)

// ComponentCounts tallies how many board parts share each component
// identity. The returned total is the number of parts on the board.
func ComponentCounts(parts []*board.Part) (counts map[string]int, total int) {
	counts = make(map[string]int)
	for _, p := range parts {
		counts[p.Identity()]++
		total++
	}
	return counts, total
}

// WriteComponentList writes the "<identity> <count>" listing, identities
// sorted, counts right-aligned.
func WriteComponentList(w io.Writer, b *board.Board) error {
	counts, _ := ComponentCounts(b.Parts())

	ids := make([]string, 0, len(counts))
	longest := 0
	for id := range counts {
		ids = append(ids, id)
		if len(id) > longest {
			longest = len(id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "%-*s %4d\n", longest, id, counts[id]); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfigTemplate writes an editable rich-format configuration
// template for the board: one Tape per component identity with the count
// filled in and origin/spacing placeholders laid out along the tray. The
// template parses cleanly with config.ParseRich; the user only fills in
// measured geometry.
func WriteConfigTemplate(w io.Writer, b *board.Board) error {
	const originX, originY = 10.0, 10.0

	fmt.Fprintf(w, "Board:\norigin: %.0f %.0f 1.6 # x/y/z origin of the board; (z=thickness).\n\n",
		originX, originY)

	fmt.Fprint(w, "# Where the tray with all the tapes starts.\n")
	fmt.Fprintf(w, "Tape-Tray-Origin: 0 %.1f 0\n\n", originY+b.Dimension().H)

	fmt.Fprint(w, "# This template provides one <footprint>@<value> per tape, but if\n")
	fmt.Fprint(w, "# several values are physically the same part, e.g. smd0805@100n\n")
	fmt.Fprint(w, "# smd0805@0.1uF, put them space delimited behind one Tape:\n")
	fmt.Fprint(w, "#   Tape: smd0805@100n smd0805@0.1uF\n")
	fmt.Fprint(w, "# Each Tape needs 'origin:' (x/y/z of the first component's top,\n")
	fmt.Fprint(w, "# relative to Tape-Tray-Origin; z is the pick-up height) and\n")
	fmt.Fprint(w, "# 'spacing:' (dx dy to the next component).\n")
	fmt.Fprint(w, "# Optional:\n")
	fmt.Fprint(w, "#angle: 0     # rotation of the component on the tape.\n")
	fmt.Fprint(w, "#count: 1000  # components available on the tape.\n")

	counts, total := ComponentCounts(b.Parts())

	// Walk parts in board order, one tape block per first-seen identity,
	// stacked along the tray with enough room for the part extent.
	ypos := 0.0
	for _, p := range b.Parts() {
		id := p.Identity()
		count, pending := counts[id]
		if !pending {
			continue
		}
		delete(counts, id)

		width := p.BoundingBox.Width() + 5
		height := p.BoundingBox.Height()
		spacing := height + 2
		if height < 4 {
			spacing = 4
		}

		fmt.Fprintf(w, "\nTape: %s\n", id)
		fmt.Fprintf(w, "count: %d\n", count)
		fmt.Fprintf(w, "origin:  %.0f %.0f 2 # fill me\n", 10+height/2, ypos+width/2)
		if _, err := fmt.Fprintf(w, "spacing: %.0f 0   # fill me\n", spacing); err != nil {
			return err
		}
		ypos += width
	}

	fmt.Fprintf(w, "\n# %d components total\n", total)
	return nil
}

// WriteCalibrationInstructions writes the measurement work list the
// calibration assistant walks through: a bed probe, the first and Nth
// component of every identity (N clamped to [2, 4] so spacing can be
// averaged over a few steps), and the two board parts nearest opposite
// corners as board references.
func WriteCalibrationInstructions(w io.Writer, b *board.Board) error {
	fmt.Fprint(w, "bedlevel:BedLevel-Z\tTouch needle on bed next to board\n")

	counts, _ := ComponentCounts(b.Parts())
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Fprintf(w, "tape1:%s\tfind first component\n", id)
		nth := counts[id]
		if nth < 2 {
			nth = 2
		}
		if nth > 4 {
			nth = 4
		}
		fmt.Fprintf(w, "tape%d:%s\tfind %d. component\n", nth, id, nth)
	}

	dim := b.Dimension()
	if p := engine.ClosestPart(b.Parts(), board.Position{}); p != nil {
		fmt.Fprintf(w, "board:%s\tfind component center on board (bottom left)\n", p.Name)
	}
	if p := engine.ClosestPart(b.Parts(), board.Position{X: dim.W, Y: dim.H}); p != nil {
		if _, err := fmt.Fprintf(w, "board:%s\tfind component center on board (top right)\n", p.Name); err != nil {
			return err
		}
	}
	return nil
}
