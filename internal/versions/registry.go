// Package versions reads the gxxversions.ini registry: which Gaussian
// versions are installed on a cluster, which private working trees
// extend them, and where each lives. Sections whose name looks like a
// Gaussian release (g16.c01, gdv.j26+) describe installations;
// three-part sections (tag.gxx.rev, e.g. jbl.g16.c01) describe working
// trees anchored to an installation. Everything else is ignored.
package versions

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/gxxtools/gxxtools/internal/ini"
)

// versionSection matches installed-version section names: gXX or gdv,
// optional dot, revision letter + two digits, optional plus/p suffix.
var versionSection = regexp.MustCompile(`(?i)^g(dv|\d{2})\.?[a-z]\d{2}[p+]?$`)

// defaultPathFmt is the installation path template when a section does
// not override it with GxxPathFmt.
const defaultPathFmt = "{rootpath}/{basedir}/{arch}/{gxx}"

// Version describes one installed Gaussian version.
type Version struct {
	Key  string // normalized keyword, e.g. g16c01
	Name string // display name, e.g. "Gaussian 16 Rev. C.01"
	Date string // release date, free-form, may be empty

	// Exactly one of Module / PathTemplate is set: either the version
	// is exposed through an environment module, or through a directory
	// template still holding {arch} and {gxx} markers.
	Module       string
	PathTemplate string

	GDir     string   // final Gaussian directory (g16, gdv)
	Machs    []string // allowed machine dirs; nil means unrestricted
	Shared   []string // users allowed to run it; nil means everyone
	Workings []string // working tags the version advertises
}

// Allowed reports whether user may run this version.
func (v *Version) Allowed(user string) bool {
	if v.Shared == nil {
		return true
	}
	for _, u := range v.Shared {
		if u == user {
			return true
		}
	}
	return false
}

// InstallPath materializes the installation directory for a CPU
// family. The version must either allow the matching Gaussian machine
// dir or carry no restriction.
func (v *Version) InstallPath(cpuFamily string) (string, error) {
	if v.Module != "" {
		return "", fmt.Errorf("version %s is module-based (%s), it has no installation path", v.Key, v.Module)
	}
	path := v.PathTemplate
	if strings.Contains(path, "{arch}") {
		flag, err := ArchFlag(cpuFamily)
		if err != nil {
			return "", err
		}
		if v.Machs != nil && !contains(v.Machs, flag) {
			return "", fmt.Errorf("version %s does not support machine architecture %s", v.Key, flag)
		}
		path = strings.ReplaceAll(path, "{arch}", flag)
	}
	path = strings.ReplaceAll(path, "{gxx}", v.GDir)
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("installation path for %s not fully resolved: %s", v.Key, path)
	}
	return path, nil
}

// Registry holds everything read from one or more gxxversions.ini
// files.
type Registry struct {
	Versions map[string]*Version
	Workings map[string]*Working
	Aliases  map[string]string // short keyword -> version key

	versionOrder []string
	workingOrder []string

	defaults workDefaults
}

// VersionKeys returns installed version keys in section order.
func (r *Registry) VersionKeys() []string { return append([]string(nil), r.versionOrder...) }

// WorkingKeys returns working keys in section order.
func (r *Registry) WorkingKeys() []string { return append([]string(nil), r.workingOrder...) }

// normalizeKey lowers a version keyword and strips the separators the
// section names may carry: dots vanish and + becomes p.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, "+", "p")
}

// Load reads and merges one or more gxxversions.ini files; later files
// override earlier ones key by key, the way $HOME copies are layered
// on top of the cluster-wide registry.
func Load(paths ...string) (*Registry, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no Gaussian versions file given")
	}
	var merged strings.Builder
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		merged.Write(b)
		merged.WriteString("\n")
	}
	doc, err := ini.ParseString(merged.String())
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// New builds a registry from an already-parsed document.
func New(doc *ini.Document) (*Registry, error) {
	r := &Registry{
		Versions: make(map[string]*Version),
		Workings: make(map[string]*Working),
		Aliases:  make(map[string]string),
	}
	var err error
	if r.defaults, err = parseWorkDefaults(doc); err != nil {
		return nil, err
	}

	sections := doc.Sections()
	sort.Strings(sections)
	for _, sec := range sections {
		if !versionSection.MatchString(sec) {
			continue
		}
		v, err := parseVersion(doc, sec)
		if err != nil {
			return nil, fmt.Errorf("section [%s]: %w", sec, err)
		}
		r.Versions[v.Key] = v
		r.versionOrder = append(r.versionOrder, v.Key)
	}
	for _, sec := range sections {
		if versionSection.MatchString(sec) {
			continue
		}
		w, ok, err := parseWorking(doc, sec, r)
		if err != nil {
			return nil, fmt.Errorf("section [%s]: %w", sec, err)
		}
		if !ok {
			continue
		}
		r.Workings[w.Key] = w
		r.workingOrder = append(r.workingOrder, w.Key)
	}

	// Short aliases: first three characters of each version key; on
	// collision the lexicographically last section wins.
	for _, key := range r.versionOrder {
		if len(key) >= 3 {
			r.Aliases[key[:3]] = key
		}
	}
	return r, nil
}

// parseVersion reads one installed-version section.
func parseVersion(doc *ini.Document, sec string) (*Version, error) {
	v := &Version{Key: normalizeKey(sec)}

	module, err := doc.StringOr(sec, "modulename", "")
	if err != nil {
		return nil, err
	}
	hasPathKeys := doc.HasKey(sec, "fullpath") || doc.HasKey(sec, "rootpath") || doc.HasKey(sec, "basedir")
	if module != "" && hasPathKeys {
		return nil, fmt.Errorf("incompatible module and path specifications")
	}

	pathFmt, err := doc.StringOr(sec, "gxxpathfmt", defaultPathFmt)
	if err != nil {
		return nil, err
	}
	pathFmt = strings.ToLower(pathFmt)

	switch {
	case doc.HasKey(sec, "fullpath"):
		full, err := doc.String(sec, "fullpath")
		if err != nil {
			return nil, err
		}
		v.PathTemplate, err = applyFullPath(pathFmt, full, "{rootpath}/{basedir}", "{rootpath}", "{basedir}")
		if err != nil {
			return nil, err
		}
	case module == "":
		v.PathTemplate, err = fillPathFmt(doc, sec, pathFmt,
			marker{"{rootpath}", "rootpath", "missing Gaussian root installation dir"},
			marker{"{basedir}", "basedir", "missing BaseDir component"})
		if err != nil {
			return nil, err
		}
	default:
		v.Module = module
	}

	if v.GDir, err = doc.StringOr(sec, "gdir", strings.ToLower(strings.SplitN(sec, ".", 2)[0])); err != nil {
		return nil, err
	}
	if v.Name, err = displayName(doc, sec); err != nil {
		return nil, err
	}
	if v.Date, err = doc.StringOr(sec, "date", ""); err != nil {
		return nil, err
	}
	if v.Machs, err = listOr(doc, sec, "machs"); err != nil {
		return nil, err
	}
	if v.Shared, err = sharedList(doc, sec); err != nil {
		return nil, err
	}
	if v.Workings, err = listOr(doc, sec, "workings"); err != nil {
		return nil, err
	}
	return v, nil
}

// displayName returns Name, or "<Gaussian> Rev. <Revision>"; one of
// the two forms must be present.
func displayName(doc *ini.Document, sec string) (string, error) {
	if name, err := doc.StringOr(sec, "name", ""); err != nil {
		return "", err
	} else if name != "" {
		return name, nil
	}
	gxx, err := doc.StringOr(sec, "gaussian", "")
	if err != nil {
		return "", err
	}
	rev, err := doc.StringOr(sec, "revision", "")
	if err != nil {
		return "", err
	}
	if gxx == "" || rev == "" {
		return "", fmt.Errorf("either Name or Gaussian+Revision must be provided")
	}
	return gxx + " Rev. " + rev, nil
}

// marker couples a template marker with the key that fills it.
type marker struct {
	token   string
	key     string
	missing string
}

// fillPathFmt substitutes template markers from section keys, erroring
// when a marker is present but its key is not.
func fillPathFmt(doc *ini.Document, sec, pathFmt string, markers ...marker) (string, error) {
	for _, m := range markers {
		val, err := doc.StringOr(sec, m.key, "")
		if err != nil {
			return "", err
		}
		if strings.Contains(pathFmt, m.token) {
			if val == "" {
				return "", fmt.Errorf("%s", m.missing)
			}
			pathFmt = strings.ReplaceAll(pathFmt, m.token, val)
		}
	}
	return pathFmt, nil
}

// applyFullPath substitutes a FullPath into a template, replacing
// either the {fullpath} marker or the combined root+base pair; any
// leftover root/base marker means the section over-specified its path.
func applyFullPath(pathFmt, full, combined string, leftovers ...string) (string, error) {
	switch {
	case strings.Contains(pathFmt, "{fullpath}"):
		pathFmt = strings.ReplaceAll(pathFmt, "{fullpath}", full)
	case strings.Contains(pathFmt, combined):
		pathFmt = strings.ReplaceAll(pathFmt, combined, full)
	}
	for _, l := range leftovers {
		if strings.Contains(pathFmt, l) {
			return "", fmt.Errorf("overspecification in path template %q", pathFmt)
		}
	}
	return pathFmt, nil
}

func listOr(doc *ini.Document, sec, key string) ([]string, error) {
	raw, err := doc.StringOr(sec, key, "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []string
	for _, item := range ini.ParseList(raw, ",") {
		if item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// sharedList reads the Shared user list; "any" or "all" anywhere in it
// means unrestricted (nil).
func sharedList(doc *ini.Document, sec string) ([]string, error) {
	items, err := listOr(doc, sec, "shared")
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		switch strings.ToLower(it) {
		case "any", "all":
			return nil, nil
		}
	}
	return items, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Lookup resolves a user-supplied keyword: an alias, a working key or
// a version key, normalized the same way section names are. It returns
// the matched working (nil for plain versions) and its underlying
// version, enforcing Shared restrictions for user.
func (r *Registry) Lookup(keyword, user string) (*Version, *Working, error) {
	key := normalizeKey(keyword)
	if full, ok := r.Aliases[key]; ok {
		key = full
	}
	if w, ok := r.Workings[key]; ok {
		v := r.Versions[w.Ref]
		if !w.Allowed(user) {
			return nil, nil, fmt.Errorf("user %s is not allowed to use working tree %s", user, w.Key)
		}
		if v != nil && !v.Allowed(user) {
			return nil, nil, fmt.Errorf("user %s is not allowed to use Gaussian version %s", user, v.Key)
		}
		return v, w, nil
	}
	if v, ok := r.Versions[key]; ok {
		if !v.Allowed(user) {
			return nil, nil, fmt.Errorf("user %s is not allowed to use Gaussian version %s", user, v.Key)
		}
		return v, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown Gaussian version or working %q", keyword)
}
