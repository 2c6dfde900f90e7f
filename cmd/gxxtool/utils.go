package gxxtool

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/gxxtools/gxxtools/internal/ini"
	"github.com/gxxtools/gxxtools/internal/rc"
	"github.com/gxxtools/gxxtools/internal/site"
	"github.com/gxxtools/gxxtools/internal/versions"
)

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// Update from GitHub Releases: gxxtools/gxxtools
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "gxxtools/gxxtools")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

// sitePaths resolves the configuration file locations: an explicit
// --config wins, otherwise the run-control file selects them by
// hostname.
func sitePaths() (rc.Paths, error) {
	if flagConfig != "" {
		return rc.Paths{GxxConfig: flagConfig}, nil
	}
	rcPath, err := rc.Locate(flagRCFile)
	if err != nil {
		return rc.Paths{}, err
	}
	host, err := rc.Hostname(flagServer)
	if err != nil {
		return rc.Paths{}, err
	}
	return rc.Load(rcPath, host)
}

// loadSite parses the site's gxxconfig.ini. The returned path is the
// file that was read.
func loadSite() (*site.Site, string, error) {
	paths, err := sitePaths()
	if err != nil {
		return nil, "", err
	}
	doc, err := ini.Load(paths.GxxConfig)
	if err != nil {
		return nil, "", err
	}
	return site.New(doc), paths.GxxConfig, nil
}

// loadRegistry reads the Gaussian versions registry: the site file
// named by the run-control section, overlaid with a per-user
// ~/gxxversions.ini when one exists.
func loadRegistry() (*versions.Registry, error) {
	paths, err := sitePaths()
	if err != nil {
		return nil, err
	}
	var files []string
	if paths.GxxVersions != "" {
		files = append(files, paths.GxxVersions)
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, "gxxversions.ini")
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	return versions.Load(files...)
}

// username returns the account name used for Shared access checks.
func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
