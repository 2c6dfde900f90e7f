package ini

import (
	"errors"
	"testing"
)

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "True", "TRUE", "1", "yes", "Yes", "on"}
	falsy := []string{"false", "False", "0", "no", "No", "off"}
	for _, v := range truthy {
		b, err := ParseBool("Q", "manual", v)
		if err != nil || !b {
			t.Fatalf("%q: got %v, %v", v, b, err)
		}
	}
	for _, v := range falsy {
		b, err := ParseBool("Q", "manual", v)
		if err != nil || b {
			t.Fatalf("%q: got %v, %v", v, b, err)
		}
	}
}

func TestParseBool_Invalid(t *testing.T) {
	_, err := ParseBool("GAUSSIAN", "module", "maybe")
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("want TypeError, got %v", err)
	}
	if te.Value != "maybe" || te.Section != "GAUSSIAN" || te.Key != "module" {
		t.Fatalf("TypeError = %+v", te)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList("openmpi,pgi,cuda", ",")
	if len(got) != 3 || got[0] != "openmpi" || got[1] != "pgi" || got[2] != "cuda" {
		t.Fatalf("got %v", got)
	}
	if got := ParseList(" a , b ,  ", ","); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("trim/trailing: %v", got)
	}
	if got := ParseList("", ","); len(got) != 0 {
		t.Fatalf("empty input: %v", got)
	}
	if got := ParseList("   ", ","); len(got) != 0 {
		t.Fatalf("blank input: %v", got)
	}
}

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping("DEFAULT", "workinfo", "jbl: /data/jbl, def: /data/sys", ",", ":")
	if err != nil {
		t.Fatal(err)
	}
	if m["jbl"] != "/data/jbl" || m["def"] != "/data/sys" {
		t.Fatalf("got %v", m)
	}
}

func TestParseMapping_MissingSeparator(t *testing.T) {
	_, err := ParseMapping("D", "k", "a:1, nosep", ",", ":")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %v", err)
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := mustParse(t, `
[GAUSSIAN]
default = g16c01
module = no
build_archs = ${archs}
archs = intel64-haswell, amd64-istanbul
`)
	if v, err := doc.String("GAUSSIAN", "default"); err != nil || v != "g16c01" {
		t.Fatalf("String: %q, %v", v, err)
	}
	if b, err := doc.Bool("GAUSSIAN", "module"); err != nil || b {
		t.Fatalf("Bool: %v, %v", b, err)
	}
	// accessors operate on resolved values
	l, err := doc.List("GAUSSIAN", "build_archs", ",")
	if err != nil || len(l) != 2 || l[0] != "intel64-haswell" {
		t.Fatalf("List: %v, %v", l, err)
	}
}

func TestDocumentAccessors_Fallbacks(t *testing.T) {
	doc := mustParse(t, "[QUEUE]\ndefault = q02zen3\n")
	if v, err := doc.StringOr("QUEUE", "walltime", "24:00:00"); err != nil || v != "24:00:00" {
		t.Fatalf("StringOr missing key: %q, %v", v, err)
	}
	if v, err := doc.StringOr("SERVER", "alias", "local"); err != nil || v != "local" {
		t.Fatalf("StringOr missing section: %q, %v", v, err)
	}
	if b, err := doc.BoolOr("QUEUE", "manual", true); err != nil || !b {
		t.Fatalf("BoolOr: %v, %v", b, err)
	}
}

func TestDocumentAccessors_BoolOrStillTypeChecks(t *testing.T) {
	doc := mustParse(t, "[QUEUE]\nmanual = sometimes\n")
	_, err := doc.BoolOr("QUEUE", "manual", true)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("want TypeError, got %v", err)
	}
}

func TestDocumentAccessors_ErrorsPropagate(t *testing.T) {
	doc := mustParse(t, "[A]\nx = ${UNKNOWN:key}\n")
	if _, err := doc.StringOr("A", "x", "fallback"); err == nil {
		t.Fatal("resolution failure must not be masked by the fallback")
	}
}
