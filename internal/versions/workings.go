package versions

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gxxtools/gxxtools/internal/ini"
)

// defaultWorkPathFmt is the working-tree path template when a section
// does not override it with WorkPathFmt.
const defaultWorkPathFmt = "{workpath}/{basedir}/{arch}"

// DocEntry is one changelog or documentation file. An empty Path marks
// a format alternate of the preceding entry (same file, different
// extension).
type DocEntry struct {
	Path   string
	Format string
}

// Working describes one private working tree anchored to an installed
// Gaussian version.
type Working struct {
	Key  string // normalized keyword, e.g. jblg16c01
	Tag  string // owner tag, first part of the section name
	Ref  string // key of the underlying installed version
	Name string // display name of the underlying version

	Version string // working tree's own version string, may be empty
	Date    string

	PathTemplate string // may still hold {arch}
	BasePath     string // PathTemplate minus the /{arch} component

	Author string
	Mail   string

	Machs  []string // allowed machine dirs; nil means unrestricted
	Shared []string // users allowed to run it; nil means everyone

	Changelog []DocEntry
	Docs      map[string][]DocEntry
	DocKinds  []string // Docs keys in declaration order
}

// Allowed reports whether user may run this working tree.
func (w *Working) Allowed(user string) bool {
	if w.Shared == nil {
		return true
	}
	for _, u := range w.Shared {
		if u == user {
			return true
		}
	}
	return false
}

// Path materializes the working directory for a CPU family.
func (w *Working) Path(cpuFamily string) (string, error) {
	path := w.PathTemplate
	if strings.Contains(path, "{arch}") {
		flag, err := ArchFlag(cpuFamily)
		if err != nil {
			return "", err
		}
		if w.Machs != nil && !contains(w.Machs, flag) {
			return "", fmt.Errorf("working %s does not support machine architecture %s", w.Key, flag)
		}
		path = strings.ReplaceAll(path, "{arch}", flag)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("working path for %s not fully resolved: %s", w.Key, path)
	}
	return path, nil
}

// workDefaults holds the DEFAULT-section reference data shared by all
// working trees: per-tag author info and per-tag root directories.
type workDefaults struct {
	info        map[string]workInfo
	roots       map[string]string
	rawWorkPath string // verbatim DEFAULT workpath value, "" when absent
}

type workInfo struct {
	author string
	mail   string
}

// parseWorkDefaults reads the DEFAULT-section workinfo and workpath
// entries. workinfo is a comma list of tag:author:mail triplets,
// workpath a comma list of tag:path pairs; empty parts fall back to
// def / System / N/A, duplicate tags are errors.
func parseWorkDefaults(doc *ini.Document) (workDefaults, error) {
	wd := workDefaults{info: map[string]workInfo{}}

	if doc.HasKey(ini.DefaultSection, "workinfo") {
		raw, err := doc.String(ini.DefaultSection, "workinfo")
		if err != nil {
			return wd, err
		}
		for _, entry := range strings.Split(raw, ",") {
			parts := strings.SplitN(entry, ":", 3)
			if len(parts) != 3 {
				return wd, fmt.Errorf("WorkInfo entry %q: want tag:author:mail", strings.TrimSpace(entry))
			}
			tag := orDefault(parts[0], "def")
			if _, dup := wd.info[tag]; dup {
				return wd, fmt.Errorf("duplicate tag %q in WorkInfo", tag)
			}
			wd.info[tag] = workInfo{
				author: orDefault(parts[1], "System"),
				mail:   orDefault(parts[2], "N/A"),
			}
		}
	} else {
		wd.info["def"] = workInfo{author: "System", mail: "N/A"}
	}

	if doc.HasKey(ini.DefaultSection, "workpath") {
		raw, err := doc.String(ini.DefaultSection, "workpath")
		if err != nil {
			return wd, err
		}
		wd.rawWorkPath = raw
		wd.roots = map[string]string{}
		for _, entry := range strings.Split(raw, ",") {
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				return wd, fmt.Errorf("WorkPath entry %q: want tag:path", strings.TrimSpace(entry))
			}
			tag := orDefault(parts[0], "def")
			if _, dup := wd.roots[tag]; dup {
				return wd, fmt.Errorf("duplicate tag %q in WorkPath", tag)
			}
			wd.roots[tag] = strings.TrimSpace(parts[1])
		}
	}
	return wd, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// parseWorking reads one tag.gxx.rev section. ok is false when the
// section name does not have the three-part working shape and the
// section should be ignored.
func parseWorking(doc *ini.Document, sec string, r *Registry) (*Working, bool, error) {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(sec), "+", "p"), ".")
	if len(parts) != 3 {
		return nil, false, nil
	}
	tag, gxx, rev := parts[0], parts[1], parts[2]

	w := &Working{Tag: tag}
	if gxx == "gdv" {
		w.Key = tag + rev
	} else {
		w.Key = tag + gxx + rev
	}

	name, err := displayName(doc, sec)
	if err != nil {
		return nil, false, err
	}
	w.Name = name

	// Anchor to an installed version: by gxx+rev key first, then by
	// display name.
	if _, ok := r.Versions[gxx+rev]; ok {
		w.Ref = gxx + rev
	} else {
		for _, key := range r.versionOrder {
			if r.Versions[key].Name == name {
				w.Ref = key
				break
			}
		}
	}
	if w.Ref == "" {
		return nil, false, fmt.Errorf("reference Gaussian version not installed")
	}

	if w.PathTemplate, err = workingPath(doc, sec, tag, r.defaults); err != nil {
		return nil, false, err
	}
	base := strings.TrimRight(w.PathTemplate, "/")
	if strings.Contains(base, "{arch}") {
		base = strings.ReplaceAll(base, "/{arch}", "")
		base = strings.ReplaceAll(base, "{arch}", "")
	}
	w.BasePath = base

	if w.Version, err = doc.StringOr(sec, "version", ""); err != nil {
		return nil, false, err
	}
	if w.Date, err = doc.StringOr(sec, "date", ""); err != nil {
		return nil, false, err
	}
	if w.Machs, err = listOr(doc, sec, "machs"); err != nil {
		return nil, false, err
	}
	if w.Shared, err = sharedList(doc, sec); err != nil {
		return nil, false, err
	}

	if info, ok := r.defaults.info[tag]; ok {
		w.Author, w.Mail = info.author, info.mail
	}

	if doc.HasKey(sec, "changelog") {
		raw, err := doc.String(sec, "changelog")
		if err != nil {
			return nil, false, err
		}
		if w.Changelog, err = parseDocEntries(raw, w.BasePath, "Changelog"); err != nil {
			return nil, false, err
		}
	}
	if doc.HasKey(sec, "docs") {
		raw, err := doc.String(sec, "docs")
		if err != nil {
			return nil, false, err
		}
		w.Docs = map[string][]DocEntry{}
		for _, line := range strings.Split(raw, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			kind, rest, ok := strings.Cut(line, ":")
			if !ok {
				return nil, false, fmt.Errorf("Docs entry %q: want DOCTYPE: path[:FORMAT][, ...]", strings.TrimSpace(line))
			}
			kind = strings.TrimSpace(kind)
			entries, err := parseDocEntries(rest, w.BasePath, kind)
			if err != nil {
				return nil, false, err
			}
			w.Docs[kind] = entries
			w.DocKinds = append(w.DocKinds, kind)
		}
	}
	return w, true, nil
}

// workingPath builds the working root path template. A FullPath key
// replaces the whole {workpath}/{basedir} pair; otherwise WorkPath and
// BaseDir fill their markers, with the per-tag DEFAULT root standing in
// when WorkPath is only inherited from DEFAULT.
func workingPath(doc *ini.Document, sec, tag string, wd workDefaults) (string, error) {
	pathFmt, err := doc.StringOr(sec, "workpathfmt", defaultWorkPathFmt)
	if err != nil {
		return "", err
	}
	pathFmt = strings.ToLower(pathFmt)

	if doc.HasKey(sec, "fullpath") {
		full, err := doc.String(sec, "fullpath")
		if err != nil {
			return "", err
		}
		return applyFullPath(pathFmt, full, "{workpath}/{basedir}", "{workpath}", "{basedir}")
	}

	if strings.Contains(pathFmt, "{workpath}") {
		root, err := doc.StringOr(sec, "workpath", "")
		if err != nil {
			return "", err
		}
		if root == "" {
			return "", fmt.Errorf("missing working root directory")
		}
		// A section without its own WorkPath inherits the raw DEFAULT
		// value, which is the tag:path list, not a path. Swap in the
		// per-tag root in that case.
		if wd.rawWorkPath != "" && root == wd.rawWorkPath {
			tagged, ok := wd.roots[tag]
			if !ok {
				return "", fmt.Errorf("missing default WorkPath for tag %q", tag)
			}
			root = tagged
		}
		pathFmt = strings.ReplaceAll(pathFmt, "{workpath}", root)
	}
	if strings.Contains(pathFmt, "{basedir}") {
		base, err := doc.StringOr(sec, "basedir", "")
		if err != nil {
			return "", err
		}
		if base == "" {
			return "", fmt.Errorf("missing BaseDir component")
		}
		pathFmt = strings.ReplaceAll(pathFmt, "{basedir}", base)
	}
	return pathFmt, nil
}

// parseDocEntries parses a comma list of path[:FORMAT] entries. An
// entry that is just a dotted extension (".html") is a format
// alternate of the previous path and needs one to attach to. The
// {fullpath} marker expands to the working base path.
func parseDocEntries(raw, basePath, what string) ([]DocEntry, error) {
	var out []DocEntry
	for _, item := range strings.Split(raw, ",") {
		var e DocEntry
		if path, format, ok := strings.Cut(item, ":"); ok {
			e.Path = strings.TrimSpace(path)
			e.Format = strings.TrimSpace(format)
		} else {
			e.Path = strings.TrimSpace(item)
			e.Format = strings.ToUpper(strings.TrimPrefix(filepath.Ext(e.Path), "."))
		}
		if strings.HasPrefix(e.Path, ".") && strings.Count(e.Path, ".") == 1 {
			if len(out) == 0 {
				return nil, fmt.Errorf("%s lists alternative format %q with no main entry", what, e.Path)
			}
			e.Path = ""
		}
		if e.Path != "" {
			e.Path = strings.ReplaceAll(e.Path, "{fullpath}", basePath)
		}
		out = append(out, e)
	}
	return out, nil
}
