package report

import (
	"fmt"
	"strings"
)

// ColumnID indexes the static column table.
type ColumnID int

const (
	ColFlag ColumnID = iota
	ColDesc
	ColStatus
	ColBootStatus
)

// colInfo describes one output column of the flag table. whint is a width
// hint: values >= 1 are a minimum width in characters, values < 1 are a
// fraction of the terminal width (only meaningful together with trunc).
type colInfo struct {
	name  string
	whint float64
	trunc bool
	right bool
	help  string
}

var columns = [...]colInfo{
	ColFlag:       {name: "FLAG", whint: 14, help: "flag name"},
	ColDesc:       {name: "DESCRIPTION", whint: 0.1, trunc: true, help: "flag description"},
	ColStatus:     {name: "STATUS", whint: 1, right: true, help: "flag status"},
	ColBootStatus: {name: "BOOT-STATUS", whint: 1, right: true, help: "flag boot status"},
}

// DefaultColumns returns all four columns in their canonical order, the
// selection used when --output is not given.
func DefaultColumns() []ColumnID {
	return []ColumnID{ColFlag, ColDesc, ColStatus, ColBootStatus}
}

// ParseColumns converts a comma-separated list of column names into an
// ordered column selection. Names match case-insensitively. An unknown
// name, a duplicate, or an empty list is an error; duplicates are
// rejected rather than deduplicated so the user learns the list is wrong.
func ParseColumns(list string) ([]ColumnID, error) {
	var ids []ColumnID
	seen := make(map[ColumnID]bool)

	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("failed to parse column list: %q", list)
		}
		id, err := columnByName(name)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("column %s specified more than once", columns[id].name)
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("failed to parse column list: %q", list)
	}
	return ids, nil
}

func columnByName(name string) (ColumnID, error) {
	for id, col := range columns {
		if strings.EqualFold(name, col.name) {
			return ColumnID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown column: %s", name)
}

// ColumnHelp returns the "Available columns" listing shown in --help.
func ColumnHelp() string {
	var b strings.Builder
	for _, col := range columns {
		fmt.Fprintf(&b, " %13s  %s\n", col.name, col.help)
	}
	return strings.TrimRight(b.String(), "\n")
}
