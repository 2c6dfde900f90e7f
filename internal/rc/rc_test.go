package rc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func rcBody(dir string) string {
	return `# test rc
[*.example.com]
gxx_config = ` + filepath.Join(dir, "gxxconfig.ini") + `
gxx_versions = ` + filepath.Join(dir, "gxxversions.ini") + `

[login?.hpc.edu, head.hpc.edu]
gxx_config = ` + filepath.Join(dir, "gxxconfig.ini") + `
`
}

func seedConfigs(t *testing.T, dir string) {
	t.Helper()
	writeTemp(t, dir, "gxxconfig.ini", "[SERVER]\nalias = test\n")
	writeTemp(t, dir, "gxxversions.ini", "[g16.c01]\nName = Gaussian 16 Rev. C.01\n")
}

func TestLoad_WildcardMatch(t *testing.T) {
	dir := t.TempDir()
	seedConfigs(t, dir)
	p := writeTemp(t, dir, "gxxtoolsrc", rcBody(dir))

	got, err := Load(p, "avogadro.example.com")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Section != "*.example.com" {
		t.Fatalf("section = %q", got.Section)
	}
	if got.GxxVersions == "" || got.HPCConfig != "" {
		t.Fatalf("paths = %+v", got)
	}
}

func TestLoad_QuestionMarkAndList(t *testing.T) {
	dir := t.TempDir()
	seedConfigs(t, dir)
	p := writeTemp(t, dir, "gxxtoolsrc", rcBody(dir))

	for _, host := range []string{"login1.hpc.edu", "HEAD.hpc.edu"} {
		got, err := Load(p, host)
		if err != nil {
			t.Fatalf("Load(%s): %v", host, err)
		}
		if !strings.HasPrefix(got.Section, "login?") {
			t.Fatalf("host %s matched %q", host, got.Section)
		}
	}
}

func TestLoad_NoMatchingSection(t *testing.T) {
	dir := t.TempDir()
	seedConfigs(t, dir)
	p := writeTemp(t, dir, "gxxtoolsrc", rcBody(dir))

	_, err := Load(p, "elsewhere.org")
	if err == nil || !strings.Contains(err.Error(), "elsewhere.org") {
		t.Fatalf("expected no-match error naming the host, got %v", err)
	}
}

func TestLoad_MissingGxxConfigKey(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "gxxtoolsrc", "[*.example.com]\nhpc_config = /nope\n")
	_, err := Load(p, "a.example.com")
	if err == nil || !strings.Contains(err.Error(), "gxx_config") {
		t.Fatalf("expected missing gxx_config error, got %v", err)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "gxxtoolsrc", "[*.example.com]\ngxx_config = "+filepath.Join(dir, "absent.ini")+"\n")
	_, err := Load(p, "a.example.com")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestLoad_HomeExpansion(t *testing.T) {
	dir := t.TempDir()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	rel, err := filepath.Rel(home, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Skip("temp dir not under home")
	}
	seedConfigs(t, dir)
	p := writeTemp(t, dir, "gxxtoolsrc", "[*.example.com]\ngxx_config = {home}/"+filepath.ToSlash(rel)+"/gxxconfig.ini\n")
	got, err := Load(p, "a.example.com")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.Contains(got.GxxConfig, "{home}") {
		t.Fatalf("unexpanded path: %s", got.GxxConfig)
	}
}

func TestLocate_ExplicitAndEnv(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "gxxtoolsrc", "[*]\n")

	got, err := Locate(p)
	if err != nil || got != p {
		t.Fatalf("explicit: %q, %v", got, err)
	}
	if _, err := Locate(filepath.Join(dir, "absent")); err == nil {
		t.Fatal("explicit missing path must error")
	}

	t.Setenv(envVar, p)
	got, err = Locate("")
	if err != nil || got != p {
		t.Fatalf("env: %q, %v", got, err)
	}
}

func TestLocate_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envVar, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	sub := filepath.Join(dir, "gxxtools")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	p := writeTemp(t, sub, "gxxtoolsrc", "[*]\n")
	got, err := Locate("")
	if err != nil || got != p {
		t.Fatalf("xdg: %q, %v", got, err)
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sub", "gxxtoolsrc")
	if err := WriteTemplate(p); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "gxx_config") {
		t.Fatal("template missing gxx_config field")
	}
	if err := WriteTemplate(p); err == nil {
		t.Fatal("must refuse to overwrite")
	}
}
