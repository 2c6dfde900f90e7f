package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pathSpec ties a path quantity to the CONFIG file key and/or PATHS
// root key that build it.
type pathSpec struct {
	file string // CONFIG key holding a file name, empty for pure dirs
	root string // PATHS key holding the root directory
}

// pathQuantities maps user-facing quantity names (and their aliases)
// to specs. The names are those the original tooling always accepted.
var pathQuantities = map[string]pathSpec{
	"hpcnodes":    {file: "hpcfile", root: "iniroot"},
	"hpcconfig":   {file: "hpcfile", root: "iniroot"},
	"hpcfile":     {file: "hpcfile", root: "iniroot"},
	"gxxversions": {file: "gxxfile", root: "iniroot"},
	"gxxconfig":   {file: "gxxfile", root: "iniroot"},
	"gxxfile":     {file: "gxxfile", root: "iniroot"},
	"hpcmod":      {root: "hpcnodes"},
	"hpcmodule":   {root: "hpcnodes"},
	"gxxroot":     {root: "gxxroot"},
	"gxxrepo":     {root: "gxxrepo"},
	"working":     {root: "workingroot"},
	"workroot":    {root: "workingroot"},
	"comproot":    {root: "compiler_root"},
	"compdir":     {root: "compiler_path"},
}

// PathQuantities lists the supported quantity names, sorted.
func PathQuantities() []string {
	out := make([]string, 0, len(pathQuantities))
	for k := range pathQuantities {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PathFor builds the file path for a quantity from the CONFIG and
// PATHS sections. With fullPath false, file quantities return just the
// configured file name. A file value already holding an existing
// absolute-ish path (contains a separator and exists) is used as-is;
// otherwise it is joined to its PATHS root.
func (s *Site) PathFor(what string, fullPath bool) (string, error) {
	spec, ok := pathQuantities[strings.ToLower(what)]
	if !ok {
		return "", fmt.Errorf("unsupported quantity %q (supported: %s)",
			what, strings.Join(PathQuantities(), ", "))
	}

	if spec.file != "" {
		fname, err := s.doc.String(SecConfig, spec.file)
		if err != nil {
			return "", fmt.Errorf("path for %q: %w", what, err)
		}
		if !fullPath {
			return fname, nil
		}
		if strings.ContainsRune(fname, os.PathSeparator) {
			if _, err := os.Stat(fname); err == nil {
				return filepath.Abs(fname)
			}
		}
		root, err := s.doc.StringOr(SecPaths, spec.root, "")
		if err != nil {
			return "", err
		}
		if root == "" {
			return fname, nil
		}
		return filepath.Join(root, fname), nil
	}

	root, err := s.doc.String(SecPaths, spec.root)
	if err != nil {
		return "", fmt.Errorf("path for %q: %w", what, err)
	}
	return filepath.Abs(root)
}
