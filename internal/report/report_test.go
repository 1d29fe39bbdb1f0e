package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wdctl/internal/device"
)

// silenceLog discards warnings for the duration of a test.
func silenceLog(t *testing.T) {
	t.Helper()
	old := log.Logger
	log.Logger = zerolog.New(io.Discard)
	t.Cleanup(func() { log.Logger = old })
}

// captureLog redirects warnings into a buffer for the duration of a test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = old })
	return &buf
}

// pingStatus is the worked example device: KEEPALIVEPING and MAGICCLOSE
// supported, keep-alive currently set, clean boot, 30 second timeout and
// no pretimeout/timeleft support.
func pingStatus() *device.Status {
	return &device.Status{
		Device:     "/dev/watchdog",
		Identity:   "WD1",
		Firmware:   0x12,
		Options:    device.WDIOF_KEEPALIVEPING | device.WDIOF_MAGICCLOSE,
		Status:     device.WDIOF_KEEPALIVEPING,
		Timeout:    30,
		HasTimeout: true,
	}
}

// The column widths for pingStatus with default columns: FLAG grows to
// its hint of 14, DESCRIPTION to its widest cell (25), STATUS and
// BOOT-STATUS to their headings.
func pingRow(flag, desc, status, bstatus string) string {
	return fmt.Sprintf("%-14s %-25s %6s %11s", flag, desc, status, bstatus)
}

func render(st *device.Status, opts Options) string {
	var buf bytes.Buffer
	if opts.TermWidth == 0 {
		opts.TermWidth = 80
	}
	Render(&buf, st, opts)
	return buf.String()
}

func TestRender_WorkedExample(t *testing.T) {
	logs := captureLog(t)

	out := render(pingStatus(), Options{})

	expected := strings.Join([]string{
		"Identity:      WD1 [version 0x12]",
		"Timeout:       30 seconds",
		"",
		pingRow("FLAG", "DESCRIPTION", "STATUS", "BOOT-STATUS"),
		pingRow("KEEPALIVEPING", "Keep alive ping reply", "1", "0"),
		pingRow("MAGICCLOSE", "Supports magic close char", "0", "0"),
		"",
	}, "\n")
	assert.Equal(t, expected, out)
	assert.Empty(t, logs.String(), "no residual flags, no warning expected")
}

func TestRender_EachSupportedFlagExactlyOnce(t *testing.T) {
	silenceLog(t)

	st := pingStatus()
	st.Options = 0
	for _, fl := range device.Flags {
		st.Options |= fl.Bit
	}

	out := render(st, Options{NoIdent: true, NoTimeouts: true, NoHeadings: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, len(device.Flags))
	for i, fl := range device.Flags {
		assert.True(t, strings.HasPrefix(lines[i], fl.Name), "line %d should be %s: %q", i, fl.Name, lines[i])
	}
}

func TestRender_FilterIntersectsSupported(t *testing.T) {
	silenceLog(t)

	st := pingStatus()
	opts := Options{
		NoIdent:    true,
		NoTimeouts: true,
		NoHeadings: true,
		FlagFilter: device.WDIOF_KEEPALIVEPING | device.WDIOF_CARDRESET,
	}

	out := render(st, opts)

	// CARDRESET is filter-selected but not hardware-supported;
	// MAGICCLOSE is supported but not selected. Only the intersection
	// renders.
	assert.Contains(t, out, "KEEPALIVEPING")
	assert.NotContains(t, out, "MAGICCLOSE")
	assert.NotContains(t, out, "CARDRESET")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 1)
}

func TestRender_PretimeoutOmittedWhenUnsupported(t *testing.T) {
	silenceLog(t)

	st := pingStatus()
	out := render(st, Options{NoFlags: true})
	assert.Contains(t, out, "Timeout:       30 seconds")
	assert.NotContains(t, out, "Pre-timeout:")
	assert.NotContains(t, out, "Timeleft:")

	st.HasPretimeout = true
	st.Pretimeout = 10
	st.HasTimeLeft = true
	st.TimeLeft = 7
	out = render(st, Options{NoFlags: true})
	assert.Contains(t, out, "Pre-timeout:   10 seconds")
	assert.Contains(t, out, "Timeleft:       7 seconds")
}

func TestRender_SeparatorRule(t *testing.T) {
	silenceLog(t)

	tests := []struct {
		name      string
		opts      Options
		separator bool
	}{
		{name: "full output", opts: Options{}, separator: true},
		{name: "noident only", opts: Options{NoIdent: true}, separator: true},
		{name: "notimeouts only", opts: Options{NoTimeouts: true}, separator: true},
		{name: "noident and notimeouts", opts: Options{NoIdent: true, NoTimeouts: true}, separator: false},
		{name: "noflags", opts: Options{NoFlags: true}, separator: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(pingStatus(), tt.opts)
			if tt.separator {
				assert.Contains(t, out, "\n\n")
			} else {
				assert.NotContains(t, out, "\n\n")
			}
		})
	}
}

func TestRender_NoFlagsSuppressesTable(t *testing.T) {
	silenceLog(t)

	out := render(pingStatus(), Options{NoFlags: true})
	expected := "Identity:      WD1 [version 0x12]\nTimeout:       30 seconds\n"
	assert.Equal(t, expected, out)
}

func TestRender_ResidualUnknownFlagsWarn(t *testing.T) {
	logs := captureLog(t)

	st := pingStatus()
	st.Options |= 0x1000000

	out := render(st, Options{})

	// Both known rows still render; the stray bit becomes a warning.
	assert.Contains(t, out, "KEEPALIVEPING")
	assert.Contains(t, out, "MAGICCLOSE")
	assert.Contains(t, logs.String(), "unknown flags")
	assert.Contains(t, logs.String(), "0x1000000")
	assert.Contains(t, logs.String(), "/dev/watchdog")
}

func TestRender_ColumnSubsetInSelectedOrder(t *testing.T) {
	silenceLog(t)

	opts := Options{
		NoIdent:    true,
		NoTimeouts: true,
		Columns:    []ColumnID{ColStatus, ColFlag},
	}
	out := render(pingStatus(), opts)

	expected := strings.Join([]string{
		"STATUS FLAG",
		"     1 KEEPALIVEPING",
		"     0 MAGICCLOSE",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_PairsFormat(t *testing.T) {
	silenceLog(t)

	opts := Options{NoIdent: true, NoTimeouts: true, Pairs: true}
	out := render(pingStatus(), opts)

	expected := strings.Join([]string{
		`FLAG="KEEPALIVEPING" DESCRIPTION="Keep alive ping reply" STATUS="1" BOOT-STATUS="0"`,
		`FLAG="MAGICCLOSE" DESCRIPTION="Supports magic close char" STATUS="0" BOOT-STATUS="0"`,
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_RawFormat(t *testing.T) {
	silenceLog(t)

	opts := Options{NoIdent: true, NoTimeouts: true, Raw: true}
	out := render(pingStatus(), opts)

	expected := strings.Join([]string{
		"FLAG DESCRIPTION STATUS BOOT-STATUS",
		"KEEPALIVEPING Keep alive ping reply 1 0",
		"MAGICCLOSE Supports magic close char 0 0",
		"",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestRender_RawNoHeadings(t *testing.T) {
	silenceLog(t)

	opts := Options{NoIdent: true, NoTimeouts: true, Raw: true, NoHeadings: true}
	out := render(pingStatus(), opts)
	assert.Equal(t, "KEEPALIVEPING Keep alive ping reply 1 0\nMAGICCLOSE Supports magic close char 0 0\n", out)
}

func TestRender_DescriptionTruncatedOnNarrowTerminal(t *testing.T) {
	silenceLog(t)

	opts := Options{NoIdent: true, NoTimeouts: true, TermWidth: 40}
	out := render(pingStatus(), opts)

	assert.NotContains(t, out, "Supports magic close char")
	assert.Contains(t, out, "Supports ma")
}
