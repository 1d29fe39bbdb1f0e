package report

import (
	"fmt"
	"io"
	"strings"
)

// outTable is a small column formatter covering the three output shapes
// the tool needs: an aligned table with width hints, truncation and
// right-alignment; an unaligned raw mode; and key="value" pairs.
type outTable struct {
	cols       []colInfo
	rows       [][]string
	noHeadings bool
	raw        bool
	pairs      bool
	termWidth  int
}

func newTable(ids []ColumnID, opts Options) *outTable {
	cols := make([]colInfo, len(ids))
	for i, id := range ids {
		cols[i] = columns[id]
	}
	width := opts.TermWidth
	if width <= 0 {
		width = terminalWidth()
	}
	return &outTable{
		cols:       cols,
		noHeadings: opts.NoHeadings,
		raw:        opts.Raw,
		pairs:      opts.Pairs,
		termWidth:  width,
	}
}

func (t *outTable) addRow(cells []string) {
	t.rows = append(t.rows, cells)
}

func (t *outTable) writeTo(w io.Writer) {
	switch {
	case t.pairs:
		t.writePairs(w)
	case t.raw:
		t.writeRaw(w)
	default:
		t.writeAligned(w)
	}
}

// writePairs emits one NAME="value" pair per cell. Pairs output is meant
// for shell consumption and never carries a heading row.
func (t *outTable) writePairs(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, len(row))
		for i, cell := range row {
			parts[i] = fmt.Sprintf("%s=%q", t.cols[i].name, cell)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}

func (t *outTable) writeRaw(w io.Writer) {
	if !t.noHeadings {
		names := make([]string, len(t.cols))
		for i, col := range t.cols {
			names[i] = col.name
		}
		fmt.Fprintln(w, strings.Join(names, " "))
	}
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, " "))
	}
}

func (t *outTable) writeAligned(w io.Writer) {
	widths := t.columnWidths()
	if !t.noHeadings {
		names := make([]string, len(t.cols))
		for i, col := range t.cols {
			names[i] = col.name
		}
		t.writeAlignedRow(w, names, widths)
	}
	for _, row := range t.rows {
		t.writeAlignedRow(w, row, widths)
	}
}

func (t *outTable) writeAlignedRow(w io.Writer, row []string, widths []int) {
	var b strings.Builder
	for i, cell := range row {
		if t.cols[i].trunc && len(cell) > widths[i] {
			cell = cell[:widths[i]]
		}
		last := i == len(row)-1
		switch {
		case t.cols[i].right:
			fmt.Fprintf(&b, "%*s", widths[i], cell)
		case last:
			// no trailing padding
			b.WriteString(cell)
		default:
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		if !last {
			b.WriteByte(' ')
		}
	}
	fmt.Fprintln(w, b.String())
}

// columnWidths sizes every column to its widest content, bumped up to any
// absolute width hint. When the resulting line would overflow the
// terminal, truncatable columns are shrunk, never below their fractional
// hint or their heading width.
func (t *outTable) columnWidths() []int {
	widths := make([]int, len(t.cols))
	total := len(t.cols) - 1 // single-space separators

	for i, col := range t.cols {
		natural := 0
		if !t.noHeadings {
			natural = len(col.name)
		}
		for _, row := range t.rows {
			if len(row[i]) > natural {
				natural = len(row[i])
			}
		}
		if col.whint >= 1 && int(col.whint) > natural {
			natural = int(col.whint)
		}
		widths[i] = natural
		total += natural
	}

	for i, col := range t.cols {
		if total <= t.termWidth {
			break
		}
		if !col.trunc {
			continue
		}
		floor := int(col.whint * float64(t.termWidth))
		if !t.noHeadings && len(col.name) > floor {
			floor = len(col.name)
		}
		if floor < 1 {
			floor = 1
		}
		shrink := total - t.termWidth
		if room := widths[i] - floor; shrink > room {
			shrink = room
		}
		if shrink > 0 {
			widths[i] -= shrink
			total -= shrink
		}
	}
	return widths
}
