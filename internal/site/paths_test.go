package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gxxtools/gxxtools/internal/ini"
)

func TestPathFor_FileJoinedToRoot(t *testing.T) {
	s := newSite(t, sampleConfig)
	p, err := s.PathFor("hpcfile", true)
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if p != filepath.Join("/cluster/config", "hpcnodes.ini") {
		t.Fatalf("got %q", p)
	}
}

func TestPathFor_NameOnly(t *testing.T) {
	s := newSite(t, sampleConfig)
	p, err := s.PathFor("gxxfile", false)
	if err != nil || p != "gxxversions.ini" {
		t.Fatalf("got %q, %v", p, err)
	}
}

func TestPathFor_ExistingAbsoluteFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "hpcnodes.ini")
	if err := os.WriteFile(f, []byte("[x]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newSite(t, "[CONFIG]\nhpcfile = "+f+"\n[PATHS]\niniroot = /ignored\n")
	p, err := s.PathFor("hpcconfig", true)
	if err != nil || p != f {
		t.Fatalf("got %q, %v", p, err)
	}
}

func TestPathFor_Interpolated(t *testing.T) {
	s := newSite(t, sampleConfig)
	p, err := s.PathFor("compdir", true)
	if err != nil {
		t.Fatalf("PathFor: %v", err)
	}
	if p != "/opt/Linux_x86_64/21.7" {
		t.Fatalf("got %q", p)
	}
}

func TestPathFor_UnknownQuantity(t *testing.T) {
	s := newSite(t, sampleConfig)
	_, err := s.PathFor("nonsense", true)
	if err == nil || !strings.Contains(err.Error(), "supported") {
		t.Fatalf("want unsupported-quantity error, got %v", err)
	}
}

func TestPathFor_MissingInfo(t *testing.T) {
	doc, _ := ini.ParseString("[CONFIG]\n")
	s := New(doc)
	if _, err := s.PathFor("gxxroot", true); err == nil {
		t.Fatal("want error for missing PATHS entry")
	}
	if _, err := s.PathFor("hpcfile", true); err == nil {
		t.Fatal("want error for missing CONFIG entry")
	}
}
