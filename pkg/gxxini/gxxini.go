package gxxini

import (
	"io"

	"github.com/gxxtools/gxxtools/internal/ini"
)

// Re-export the engine types as a stable public API surface. These are
// type aliases so external consumers can depend on a stable path; they
// can be replaced with decoupled structs later without breaking
// callers.
type (
	Document    = ini.Document
	Ref         = ini.Ref
	ParseError  = ini.ParseError
	LookupError = ini.LookupError
	CycleError  = ini.CycleError
	TypeError   = ini.TypeError
	FormatError = ini.FormatError
)

// Parse reads an INI document from r.
func Parse(r io.Reader) (*Document, error) { return ini.Parse(r) }

// ParseString reads an INI document from an in-memory string.
func ParseString(text string) (*Document, error) { return ini.ParseString(text) }

// Load reads and parses the file at path.
func Load(path string) (*Document, error) { return ini.Load(path) }

// Bool coerces an already-resolved value to a boolean; section and key
// only label the error.
func Bool(section, key, value string) (bool, error) {
	return ini.ParseBool(section, key, value)
}

// List splits an already-resolved value on sep.
func List(value, sep string) []string { return ini.ParseList(value, sep) }

// Mapping splits an already-resolved value into entries on entrySep and
// each entry once on kvSep.
func Mapping(section, key, value, entrySep, kvSep string) (map[string]string, error) {
	return ini.ParseMapping(section, key, value, entrySep, kvSep)
}
