// Package rc locates and reads the gxxtoolsrc run-control file, which
// maps HPC head nodes to the configuration files describing them. Each
// section header is a comma-separated list of host patterns
// ("*.example.com, login?.hpc.edu"); the section matching the current
// head node supplies the paths to gxxconfig.ini, hpcnodes.ini and
// gxxversions.ini.
package rc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/gxxtools/gxxtools/internal/ini"
)

const (
	fileName = "gxxtoolsrc"
	envVar   = "GXXTOOLSRC"
)

// Paths holds the per-site configuration file locations selected from
// the run-control file.
type Paths struct {
	RCFile      string // the run-control file that was read
	Section     string // the section header that matched
	GxxConfig   string // gxxconfig.ini (required)
	HPCConfig   string // hpcnodes.ini (optional)
	GxxVersions string // gxxversions.ini (optional)
}

// Locate returns the run-control file to use. Order: the explicit
// path (if non-empty), $GXXTOOLSRC, $XDG_CONFIG_HOME/gxxtools/gxxtoolsrc,
// ~/.config/gxxtools/gxxtoolsrc, ~/.gxxtoolsrc.
func Locate(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("run-control file: %w", err)
		}
		return explicit, nil
	}
	var candidates []string
	if p := os.Getenv(envVar); p != "" {
		candidates = append(candidates, p)
	}
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		candidates = append(candidates, filepath.Join(base, "gxxtools", fileName))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".config", "gxxtools", fileName),
			filepath.Join(home, "."+fileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no run-control file found (run `gxxtool init` to create a template)")
}

// Hostname returns the head-node address used for section matching,
// normally the machine's own hostname. An override (for debugging or
// for preparing jobs for another cluster) wins.
func Hostname(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	h, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("head node hostname: %w", err)
	}
	return h, nil
}

// Load reads the run-control file at path and selects the section
// matching host.
func Load(path, host string) (Paths, error) {
	doc, err := ini.Load(path)
	if err != nil {
		return Paths{}, err
	}
	section, ok := matchSection(doc, host)
	if !ok {
		return Paths{}, fmt.Errorf("%s: no section matches host %q", path, host)
	}

	p := Paths{RCFile: path, Section: section}
	p.GxxConfig, err = sitePath(doc, section, "gxx_config")
	if err != nil {
		return Paths{}, err
	}
	if p.GxxConfig == "" {
		return Paths{}, fmt.Errorf("%s: section %q: missing gxx_config (path to general infrastructure information file)", path, section)
	}
	if p.HPCConfig, err = sitePath(doc, section, "hpc_config"); err != nil {
		return Paths{}, err
	}
	if p.GxxVersions, err = sitePath(doc, section, "gxx_versions"); err != nil {
		return Paths{}, err
	}

	for _, f := range []string{p.GxxConfig, p.HPCConfig, p.GxxVersions} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return Paths{}, fmt.Errorf("%s: section %q: configuration file not found at %s", path, section, f)
		}
	}
	return p, nil
}

// matchSection returns the first section whose pattern list matches
// host. Patterns are matched case-insensitively; * and ? follow glob
// rules (a hostname contains no path separator, so * spans labels).
func matchSection(doc *ini.Document, host string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(host))
	for _, section := range doc.Sections() {
		for _, pattern := range strings.Split(section, ",") {
			pattern = strings.ToLower(strings.TrimSpace(pattern))
			if pattern == "" {
				continue
			}
			if ok, err := doublestar.Match(pattern, h); err == nil && ok {
				return section, true
			}
		}
	}
	return "", false
}

// sitePath resolves one path key from the matched section, expanding
// the {home} marker. A missing key is not an error here; required
// fields are enforced by the caller.
func sitePath(doc *ini.Document, section, key string) (string, error) {
	v, err := doc.StringOr(section, key, "")
	if err != nil {
		return "", fmt.Errorf("%s.%s: %w", section, key, err)
	}
	if v == "" {
		return "", nil
	}
	return ExpandHome(v)
}

// ExpandHome substitutes the {home} marker with the user home
// directory.
func ExpandHome(path string) (string, error) {
	if !strings.Contains(path, "{home}") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand {home}: %w", err)
	}
	return strings.ReplaceAll(path, "{home}", home), nil
}
