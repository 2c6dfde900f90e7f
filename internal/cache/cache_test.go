package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if _, ok := Load("gxxconfig", 42); ok {
		t.Fatalf("expected miss on empty cache")
	}

	snap := &Snapshot{
		Fingerprint: 42,
		Sections: map[string]map[string]string{
			"SERVER": {"alias": "frontend"},
		},
		Order: []string{"SERVER"},
	}
	if err := Save("gxxconfig", snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok := Load("gxxconfig", 42)
	if !ok {
		t.Fatalf("expected hit after save")
	}
	if got.Sections["SERVER"]["alias"] != "frontend" {
		t.Fatalf("unexpected snapshot content: %+v", got.Sections)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not set on save")
	}
}

func TestLoadFingerprintMismatch(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	snap := &Snapshot{Fingerprint: 1, Sections: map[string]map[string]string{}}
	if err := Save("gxxconfig", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := Load("gxxconfig", 2); ok {
		t.Fatalf("expected miss on fingerprint mismatch")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	p := filepath.Join(dir, "gxxtools", "gxxconfig.json")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := Load("gxxconfig", 0); ok {
		t.Fatalf("expected miss on corrupt snapshot")
	}
}
