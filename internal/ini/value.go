package ini

import (
	"errors"
	"fmt"
	"strings"
)

// The typed accessors interpret an already-resolved string; they never
// re-parse placeholders.

// boolLiterals is the accepted literal set, matched case-insensitively.
// true/false, 1/0 and yes/no come from the documented format; on/off is
// accepted for compatibility with documents written against Python's
// configparser, which the original tooling read these files with.
var boolLiterals = map[string]bool{
	"true": true, "1": true, "yes": true, "on": true,
	"false": false, "0": false, "no": false, "off": false,
}

// ParseBool coerces a resolved value to a boolean. section and key only
// name the field in the TypeError.
func ParseBool(section, key, value string) (bool, error) {
	b, ok := boolLiterals[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return false, &TypeError{Section: section, Key: key, Value: value, Want: "boolean"}
	}
	return b, nil
}

// ParseList splits a resolved value on sep, trimming each element and
// dropping empty trailing elements. An empty value yields an empty
// (nil) sequence.
func ParseList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// ParseMapping splits a resolved value into entries on entrySep, then
// each entry once on kvSep. An entry without kvSep is a FormatError.
// Empty trailing entries are ignored.
func ParseMapping(section, key, value, entrySep, kvSep string) (map[string]string, error) {
	out := make(map[string]string)
	for _, entry := range ParseList(value, entrySep) {
		if entry == "" {
			continue
		}
		k, v, ok := strings.Cut(entry, kvSep)
		if !ok {
			return nil, &FormatError{Section: section, Key: key, Msg: fmt.Sprintf("mapping entry %q lacks %q", entry, kvSep)}
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// String resolves (section, key). It is the identity accessor.
func (d *Document) String(section, key string) (string, error) {
	return d.Resolve(section, key)
}

// StringOr resolves (section, key), returning fallback when the entry
// does not exist. Resolution failures other than the entry itself
// missing still surface.
func (d *Document) StringOr(section, key, fallback string) (string, error) {
	v, err := d.Resolve(section, key)
	if err != nil {
		var le *LookupError
		if errors.As(err, &le) && le.Section == section && (le.Key == "" || le.Key == foldKey(key)) {
			return fallback, nil
		}
		return "", err
	}
	return v, nil
}

// Bool resolves (section, key) and coerces it to a boolean.
func (d *Document) Bool(section, key string) (bool, error) {
	v, err := d.Resolve(section, key)
	if err != nil {
		return false, err
	}
	return ParseBool(section, key, v)
}

// BoolOr is Bool with a fallback for a missing entry. A present but
// non-boolean value is still a TypeError.
func (d *Document) BoolOr(section, key string, fallback bool) (bool, error) {
	v, err := d.StringOr(section, key, "")
	if err != nil {
		return false, err
	}
	if v == "" {
		return fallback, nil
	}
	return ParseBool(section, key, v)
}

// List resolves (section, key) and splits it on sep.
func (d *Document) List(section, key, sep string) ([]string, error) {
	v, err := d.Resolve(section, key)
	if err != nil {
		return nil, err
	}
	return ParseList(v, sep), nil
}

// Mapping resolves (section, key) and splits it into a map.
func (d *Document) Mapping(section, key, entrySep, kvSep string) (map[string]string, error) {
	v, err := d.Resolve(section, key)
	if err != nil {
		return nil, err
	}
	return ParseMapping(section, key, v, entrySep, kvSep)
}
