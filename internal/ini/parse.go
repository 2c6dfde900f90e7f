package ini

import (
	"bufio"
	"io"
	"os"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

// Parse reads an INI-formatted document from r. The accepted format:
//
//	[SECTION]
//	key = value        # or key: value
//	# full-line comment (also ;)
//	docs = first
//	    continued line, joined to the previous value with a newline
//
// Keys are folded to lower case; section names are kept as written.
// Duplicate keys in a section are last-write-wins, and a duplicate
// section header reopens the existing section. Inline comments are not
// stripped: everything after the first = or : belongs to the value.
func Parse(r io.Reader) (*Document, error) {
	doc := newDocument()
	var (
		current *Section
		lastKey string
		lineno  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineno++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			// a blank line ends any multi-line value
			lastKey = ""
			continue
		}
		if trimmed[0] == '#' || trimmed[0] == ';' {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if lastKey == "" {
				return nil, &ParseError{Line: lineno, Text: trimmed, Msg: "continuation line without a preceding key"}
			}
			// continuation of the previous value
			old := current.values[lastKey]
			current.set(lastKey, old+"\n"+trimmed)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "["):
			name, err := sectionName(trimmed, lineno)
			if err != nil {
				return nil, err
			}
			current = doc.section(name)
			lastKey = ""
		default:
			sep := assignIndex(trimmed)
			if sep < 0 {
				return nil, &ParseError{Line: lineno, Text: trimmed, Msg: "expected `key = value` or `key: value`"}
			}
			key := foldKey(trimmed[:sep])
			if key == "" {
				return nil, &ParseError{Line: lineno, Text: trimmed, Msg: "empty key"}
			}
			if current == nil {
				return nil, &ParseError{Line: lineno, Text: trimmed, Msg: "assignment before any section header"}
			}
			current.set(key, strings.TrimSpace(trimmed[sep+1:]))
			lastKey = key
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// sectionName validates a `[NAME]` header line and extracts the name.
func sectionName(trimmed string, lineno int) (string, error) {
	end := strings.IndexByte(trimmed, ']')
	if end < 0 {
		return "", &ParseError{Line: lineno, Text: trimmed, Msg: "unterminated section header"}
	}
	if strings.TrimSpace(trimmed[end+1:]) != "" {
		return "", &ParseError{Line: lineno, Text: trimmed, Msg: "trailing characters after section header"}
	}
	name := strings.TrimSpace(trimmed[1:end])
	if name == "" {
		return "", &ParseError{Line: lineno, Text: trimmed, Msg: "empty section name"}
	}
	return name, nil
}

// assignIndex returns the position of the key/value delimiter,
// whichever of = or : comes first, or -1.
func assignIndex(s string) int {
	eq := strings.IndexByte(s, '=')
	co := strings.IndexByte(s, ':')
	switch {
	case eq < 0:
		return co
	case co < 0:
		return eq
	case eq < co:
		return eq
	default:
		return co
	}
}

// ParseString is Parse over an in-memory document.
func ParseString(text string) (*Document, error) {
	return Parse(strings.NewReader(text))
}

// Load reads and parses the file at path, recording a fingerprint of
// the source bytes on the returned document so callers can detect
// stale derived state after a reload.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	doc.fingerprint = xxhash.Sum64(b)
	return doc, nil
}
