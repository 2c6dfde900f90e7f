package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// VersionRow is one line of the versions listing: an installed
// Gaussian version or a working tree anchored to one.
type VersionRow struct {
	Key        string
	Kind       string // "version" or "working"
	Name       string
	Date       string
	Location   string // install path template, module name, or working path
	Restricted bool   // carries a Shared user list
}

// PrintVersions writes the version listing as a table.
func PrintVersions(w io.Writer, rows []VersionRow) error {
	table := tablewriter.NewTable(w)
	table.Header("Keyword", "Kind", "Name", "Date", "Location", "Access")
	for _, row := range rows {
		access := "everyone"
		if row.Restricted {
			access = "restricted"
		}
		if err := table.Append([]string{row.Key, row.Kind, row.Name, row.Date, row.Location, access}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintVersionDetail writes one version or working record as aligned
// field: value lines.
func PrintVersionDetail(w io.Writer, fields [][2]string) {
	width := 0
	for _, f := range fields {
		if len(f[0]) > width {
			width = len(f[0])
		}
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width+1, f[0]+":", strings.TrimSpace(f[1]))
	}
}
