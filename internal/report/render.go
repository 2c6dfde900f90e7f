// Package report renders resolved configuration data and version
// listings in the formats the CLI exposes: plain key/value lines,
// aligned tables, JSON, YAML, and syntax-highlighted INI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Resolved is a fully interpolated document: section order plus the
// section -> key -> value map the resolver produced.
type Resolved struct {
	Order    []string
	Sections map[string]map[string]string
}

func (r Resolved) sectionKeys(sec string) []string {
	keys := make([]string, 0, len(r.Sections[sec]))
	for k := range r.Sections[sec] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ColorEnabled decides whether output may carry ANSI colors: stdout
// must be a terminal, NO_COLOR must be unset, and the user must not
// have passed a no-color flag.
func ColorEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintResolved writes section.key = value lines in document order.
func PrintResolved(w io.Writer, r Resolved) {
	for _, sec := range r.Order {
		for _, key := range r.sectionKeys(sec) {
			fmt.Fprintf(w, "%s.%s = %s\n", sec, key, r.Sections[sec][key])
		}
	}
}

// PrintTable writes the resolved document as an aligned table.
func PrintTable(w io.Writer, r Resolved) error {
	table := tablewriter.NewTable(w)
	table.Header("Section", "Key", "Value")
	for _, sec := range r.Order {
		for _, key := range r.sectionKeys(sec) {
			if err := table.Append([]string{sec, key, r.Sections[sec][key]}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

// PrintJSON writes the resolved sections as indented JSON.
func PrintJSON(w io.Writer, r Resolved) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Sections)
}

// PrintYAML writes the resolved sections as YAML.
func PrintYAML(w io.Writer, r Resolved) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r.Sections)
}

// PrintINI re-emits raw INI text, syntax-highlighted for terminals
// when color is on.
func PrintINI(w io.Writer, text string, color bool) error {
	if !color {
		_, err := io.WriteString(w, text)
		return err
	}
	return quick.Highlight(w, text, "ini", "terminal", "monokai")
}
