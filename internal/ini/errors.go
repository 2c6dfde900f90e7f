package ini

import (
	"fmt"
	"strings"
)

// ParseError reports malformed input. No partial document is returned
// alongside it.
type ParseError struct {
	Line int    // 1-based line number
	Text string // offending line, whitespace-trimmed
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// LookupError reports a section or key absent from the document, either
// named directly by the caller or referenced by a placeholder. Key is
// empty when the section itself is missing.
type LookupError struct {
	Section string
	Key     string
}

func (e *LookupError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no section %q", e.Section)
	}
	return fmt.Sprintf("no key %q in section %q", e.Key, e.Section)
}

// Ref names one entry of a document.
type Ref struct {
	Section string
	Key     string
}

func (r Ref) String() string { return r.Section + "." + r.Key }

// CycleError reports a placeholder chain that revisits an entry still
// being resolved. Chain holds the full reference path, first entry to
// the repeated one.
type CycleError struct {
	Chain []Ref
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, r := range e.Chain {
		parts[i] = r.String()
	}
	return "reference cycle: " + strings.Join(parts, " -> ")
}

// TypeError reports a resolved value that does not conform to the type
// requested by an accessor.
type TypeError struct {
	Section string
	Key     string
	Value   string
	Want    string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s.%s: %q is not a valid %s", e.Section, e.Key, e.Value, e.Want)
}

// FormatError reports a value or placeholder whose shape is malformed:
// an unterminated or ill-formed ${...} token, or a mapping entry
// without its key/value separator.
type FormatError struct {
	Section string
	Key     string
	Msg     string
}

func (e *FormatError) Error() string {
	if e.Section == "" && e.Key == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Key, e.Msg)
}
