package ini

import (
	"strings"
)

// maxDepth caps the length of a placeholder reference chain. Chains
// this deep are indistinguishable from runaway self-reference and are
// reported as cycles rather than allowed to exhaust the stack.
const maxDepth = 64

// Resolve expands every ${key} and ${SECTION:key} placeholder in the
// value stored at (section, key) and returns the final text.
//
// Referenced values are resolved depth-first and strictly left to
// right. A reference to a missing section or key fails with a
// LookupError and no partial substitution is returned. A chain that
// revisits an entry already being resolved fails with a CycleError
// naming the whole chain. Successful results are memoized for the
// document's lifetime; failures are not cached, so a later call
// re-attempts resolution.
func (d *Document) Resolve(section, key string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolve(Ref{Section: section, Key: foldKey(key)}, nil)
}

// resolve is the memoized recursive worker. The caller holds d.mu.
func (d *Document) resolve(r Ref, chain []Ref) (string, error) {
	if v, ok := d.memo[r]; ok {
		return v, nil
	}
	for _, seen := range chain {
		if seen == r {
			return "", &CycleError{Chain: append(append([]Ref{}, chain...), r)}
		}
	}
	if len(chain) >= maxDepth {
		return "", &CycleError{Chain: append(append([]Ref{}, chain...), r)}
	}

	raw, err := d.Raw(r.Section, r.Key)
	if err != nil {
		return "", err
	}
	resolved, err := d.expand(raw, r, append(chain, r))
	if err != nil {
		return "", err
	}
	d.memo[r] = resolved
	return resolved, nil
}

// expand substitutes the placeholders of one raw value.
func (d *Document) expand(raw string, at Ref, chain []Ref) (string, error) {
	if !strings.Contains(raw, "${") {
		return raw, nil
	}
	var b strings.Builder
	rest := raw
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+2:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return "", &FormatError{Section: at.Section, Key: at.Key, Msg: "unterminated placeholder ${" + rest}
		}
		target, err := parsePlaceholder(rest[:end], at)
		if err != nil {
			return "", err
		}
		rest = rest[end+1:]

		sub, err := d.resolve(target, chain)
		if err != nil {
			return "", err
		}
		b.WriteString(sub)
	}
}

// parsePlaceholder interprets the interior of a ${...} token as either
// `key` (same section as at) or `SECTION:key`.
func parsePlaceholder(token string, at Ref) (Ref, error) {
	section, key := at.Section, token
	if i := strings.IndexByte(token, ':'); i >= 0 {
		section, key = token[:i], token[i+1:]
	}
	if section == "" || key == "" || strings.ContainsAny(key, ": \t") || strings.ContainsAny(section, " \t") {
		return Ref{}, &FormatError{Section: at.Section, Key: at.Key, Msg: "malformed placeholder ${" + token + "}"}
	}
	return Ref{Section: section, Key: foldKey(key)}, nil
}
