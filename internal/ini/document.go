// Package ini implements the configuration engine behind gxxtools: an
// INI-style document model with deferred ${keyword} and
// ${SECTION:keyword} substitution, resolved on demand against the
// immutable parsed document. The format and resolution semantics match
// what gxxconfig.ini and gxxversions.ini files have always relied on:
// case-insensitive keys, case-sensitive section names, a DEFAULT
// section acting as fallback for every lookup, and interpolation that
// may chain across sections but must never cycle.
package ini

import (
	"strings"
	"sync"
)

// DefaultSection is the name of the fallback section. Its keys are
// visible from every other section during lookup and interpolation.
const DefaultSection = "DEFAULT"

// Section is a named, ordered set of key/value pairs holding raw
// (unresolved) values.
type Section struct {
	name   string
	order  []string
	values map[string]string
}

// Name returns the section's name as written in the source.
func (s *Section) Name() string { return s.name }

// Keys returns the section's keys in first-seen order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Section) set(key, value string) {
	if _, dup := s.values[key]; !dup {
		s.order = append(s.order, key)
	}
	// last write wins on duplicates
	s.values[key] = value
}

// Document is an immutable parsed configuration. Resolution results are
// memoized per (section, key) for the document's lifetime; the memo is
// guarded by a mutex so any number of goroutines may resolve
// concurrently once parsing is done.
type Document struct {
	order    []string
	sections map[string]*Section
	defaults *Section

	fingerprint uint64

	mu   sync.Mutex
	memo map[Ref]string
}

func newDocument() *Document {
	return &Document{
		sections: make(map[string]*Section),
		memo:     make(map[Ref]string),
	}
}

func (d *Document) section(name string) *Section {
	if name == DefaultSection {
		if d.defaults == nil {
			d.defaults = &Section{name: DefaultSection, values: make(map[string]string)}
		}
		return d.defaults
	}
	sec, ok := d.sections[name]
	if !ok {
		sec = &Section{name: name, values: make(map[string]string)}
		d.sections[name] = sec
		d.order = append(d.order, name)
	}
	return sec
}

// foldKey normalizes a key the way the parser stored it.
func foldKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Sections returns all section names in document order. DEFAULT is not
// listed; it is a fallback, not a section of its own.
func (d *Document) Sections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// HasSection reports whether the named section exists.
func (d *Document) HasSection(name string) bool {
	if name == DefaultSection {
		return d.defaults != nil
	}
	_, ok := d.sections[name]
	return ok
}

// Keys returns the keys of the named section in declaration order,
// or a LookupError if the section does not exist. DEFAULT keys are not
// merged in; use Raw or Resolve for fallback-aware lookups.
func (d *Document) Keys(section string) ([]string, error) {
	sec, err := d.lookupSection(section)
	if err != nil {
		return nil, err
	}
	return sec.Keys(), nil
}

func (d *Document) lookupSection(name string) (*Section, error) {
	if name == DefaultSection {
		if d.defaults == nil {
			return nil, &LookupError{Section: name}
		}
		return d.defaults, nil
	}
	sec, ok := d.sections[name]
	if !ok {
		return nil, &LookupError{Section: name}
	}
	return sec, nil
}

// Raw returns the unresolved value stored for (section, key), falling
// back to the DEFAULT section for missing keys. Placeholders are left
// untouched.
func (d *Document) Raw(section, key string) (string, error) {
	sec, err := d.lookupSection(section)
	if err != nil {
		return "", err
	}
	k := foldKey(key)
	if v, ok := sec.values[k]; ok {
		return v, nil
	}
	if d.defaults != nil && section != DefaultSection {
		if v, ok := d.defaults.values[k]; ok {
			return v, nil
		}
	}
	return "", &LookupError{Section: section, Key: k}
}

// HasKey reports whether (section, key) is present, including via the
// DEFAULT fallback.
func (d *Document) HasKey(section, key string) bool {
	_, err := d.Raw(section, key)
	return err == nil
}

// Fingerprint identifies the source text this document was loaded
// from. It is zero for documents built with Parse or ParseString
// rather than Load.
func (d *Document) Fingerprint() uint64 { return d.fingerprint }
