// Package cache stores fully resolved configuration snapshots so that
// repeated dumps of an unchanged file skip re-resolution. A snapshot is
// only served back when the source fingerprint still matches.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is a fully resolved document: every section with every key
// already interpolated, plus the fingerprint of the source bytes it
// was resolved from.
type Snapshot struct {
	Fingerprint uint64                       `json:"fingerprint"`
	Timestamp   time.Time                    `json:"timestamp"`
	Sections    map[string]map[string]string `json:"sections"`
	Order       []string                     `json:"order"`
}

// Dir returns the snapshot directory: $XDG_CACHE_HOME/gxxtools, or
// ~/.cache/gxxtools when the variable is unset.
func Dir() (string, error) {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "gxxtools"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "gxxtools"), nil
}

func snapshotPath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// Load returns the named snapshot when one exists and its fingerprint
// matches. Any miss, including a corrupt file, is reported as ok=false
// without an error; a stale cache is never worth failing over.
func Load(name string, fingerprint uint64) (*Snapshot, bool) {
	p, err := snapshotPath(name)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, false
	}
	if snap.Fingerprint != fingerprint || snap.Sections == nil {
		return nil, false
	}
	return &snap, true
}

// Save writes the named snapshot, creating the cache directory as
// needed.
func Save(name string, snap *Snapshot) error {
	p, err := snapshotPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}
