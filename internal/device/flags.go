package device

import (
	"fmt"
	"strings"
)

// Capability flag bits as defined by the Linux watchdog driver API
// (linux/watchdog.h). golang.org/x/sys/unix carries the WDIOC ioctl
// numbers but not these option bits.
const (
	WDIOF_OVERHEAT      = 0x0001
	WDIOF_FANFAULT      = 0x0002
	WDIOF_EXTERN1       = 0x0004
	WDIOF_EXTERN2       = 0x0008
	WDIOF_POWERUNDER    = 0x0010
	WDIOF_CARDRESET     = 0x0020
	WDIOF_POWEROVER     = 0x0040
	WDIOF_SETTIMEOUT    = 0x0080
	WDIOF_MAGICCLOSE    = 0x0100
	WDIOF_PRETIMEOUT    = 0x0200
	WDIOF_KEEPALIVEPING = 0x8000
)

// FlagInfo describes one capability flag: its bit in the bitmasks, the
// short name used on the command line and in the flag table, and a human
// readable description.
type FlagInfo struct {
	Bit         uint32
	Name        string
	Description string
}

// Flags is the static table of all known watchdog capability flags, in
// table output order. Lookups are linear case-insensitive scans; with
// eleven entries nothing faster is warranted.
var Flags = [...]FlagInfo{
	{WDIOF_CARDRESET, "CARDRESET", "Card previously reset the CPU"},
	{WDIOF_EXTERN1, "EXTERN1", "External relay 1"},
	{WDIOF_EXTERN2, "EXTERN2", "External relay 2"},
	{WDIOF_FANFAULT, "FANFAULT", "Fan failed"},
	{WDIOF_KEEPALIVEPING, "KEEPALIVEPING", "Keep alive ping reply"},
	{WDIOF_MAGICCLOSE, "MAGICCLOSE", "Supports magic close char"},
	{WDIOF_OVERHEAT, "OVERHEAT", "Reset due to CPU overheat"},
	{WDIOF_POWEROVER, "POWEROVER", "Power over voltage"},
	{WDIOF_POWERUNDER, "POWERUNDER", "Power bad/power fault"},
	{WDIOF_PRETIMEOUT, "PRETIMEOUT", "Pretimeout (in seconds)"},
	{WDIOF_SETTIMEOUT, "SETTIMEOUT", "Set timeout (in seconds)"},
}

// FlagByName returns the flag bit for a single flag name, matched
// case-insensitively against the Flags table.
func FlagByName(name string) (uint32, error) {
	for _, fl := range Flags {
		if strings.EqualFold(name, fl.Name) {
			return fl.Bit, nil
		}
	}
	return 0, fmt.Errorf("unknown flag: %s", name)
}

// ParseFlagList converts a comma-separated list of flag names into a
// filter bitmask. An unknown name fails the whole list.
func ParseFlagList(list string) (uint32, error) {
	var mask uint32
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, fmt.Errorf("failed to parse flag list: %q", list)
		}
		bit, err := FlagByName(name)
		if err != nil {
			return 0, err
		}
		mask |= bit
	}
	return mask, nil
}
