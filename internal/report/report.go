// Package report renders a queried watchdog status as text: an identity
// line, per-value timeout lines and a capability flag table.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"wdctl/internal/device"
)

// Options selects which report sections are printed and how the flag
// table is shaped.
type Options struct {
	// Columns is the ordered column selection for the flag table.
	// Empty means DefaultColumns.
	Columns []ColumnID

	// FlagFilter restricts the table to flags whose bit is set in the
	// mask. Zero means no filter.
	FlagFilter uint32

	NoHeadings bool
	NoIdent    bool
	NoTimeouts bool
	NoFlags    bool
	Raw        bool
	Pairs      bool

	// TermWidth overrides the detected terminal width when positive.
	TermWidth int
}

// Render writes the report for st to w.
//
// Residual bits in the supported-options bitmask that match no known flag
// are logged as a warning naming the device; they never abort the run.
func Render(w io.Writer, st *device.Status, opts Options) {
	if len(opts.Columns) == 0 {
		opts.Columns = DefaultColumns()
	}

	if !opts.NoIdent {
		fmt.Fprintf(w, "%-15s%s [version 0x%x]\n", "Identity:", st.Identity, st.Firmware)
	}
	if !opts.NoTimeouts {
		writeTimeouts(w, st)
	}
	// Separator between the summary lines and the flag table. The rule
	// is kept from the original tool: printed whenever the table prints
	// and not both summary sections are suppressed, even if the
	// remaining section turned out empty.
	if !opts.NoFlags && !(opts.NoIdent && opts.NoTimeouts) {
		fmt.Fprintln(w)
	}
	if !opts.NoFlags {
		writeFlags(w, st, opts)
	}
}

func writeTimeouts(w io.Writer, st *device.Status) {
	if st.HasTimeout {
		fmt.Fprintf(w, "%-15s%2d seconds\n", "Timeout:", st.Timeout)
	}
	if st.HasPretimeout {
		fmt.Fprintf(w, "%-15s%2d seconds\n", "Pre-timeout:", st.Pretimeout)
	}
	if st.HasTimeLeft {
		fmt.Fprintf(w, "%-15s%2d seconds\n", "Timeleft:", st.TimeLeft)
	}
}

// writeFlags prints one table row per known flag that the hardware
// supports and the filter (if any) selects.
func writeFlags(w io.Writer, st *device.Status, opts Options) {
	tb := newTable(opts.Columns, opts)

	rest := st.Options
	for _, fl := range device.Flags {
		if opts.FlagFilter != 0 && opts.FlagFilter&fl.Bit == 0 {
			// excluded by the filter
		} else if st.Options&fl.Bit != 0 {
			tb.addRow(flagRow(st, fl, opts.Columns))
		}
		rest &^= fl.Bit
	}
	if rest != 0 {
		log.Warn().
			Str("device", st.Device).
			Str("flags", fmt.Sprintf("0x%x", rest)).
			Msg("unknown flags")
	}

	tb.writeTo(w)
}

func flagRow(st *device.Status, fl device.FlagInfo, cols []ColumnID) []string {
	cells := make([]string, len(cols))
	for i, id := range cols {
		switch id {
		case ColFlag:
			cells[i] = fl.Name
		case ColDesc:
			cells[i] = fl.Description
		case ColStatus:
			cells[i] = bitCell(st.Status, fl.Bit)
		case ColBootStatus:
			cells[i] = bitCell(st.BootStatus, fl.Bit)
		}
	}
	return cells
}

func bitCell(mask, bit uint32) string {
	if mask&bit != 0 {
		return "1"
	}
	return "0"
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
