package gxxtool

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `[SERVER]
alias = testcluster
submitter = qsub

[PATHS]
compiler_root = /opt
compiler_path = ${compiler_root}/Linux_${COMPILER:arch}/${COMPILER:version}

[COMPILER]
name = pgi
version = 21.7
arch = x86_64
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "gxxconfig.ini")
	if err := os.WriteFile(p, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// runCLI runs the binary as a subprocess to avoid os.Exit in-process.
func runCLI(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "."}, args...)...)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	cmd.Env = append(os.Environ(), env...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	if err != nil && errb.Len() > 0 {
		t.Logf("stderr: %s", errb.String())
	}
	return out.String(), err
}

func TestCLI_Get_Resolved(t *testing.T) {
	cfg := writeConfig(t)
	out, err := runCLI(t, nil, "get", "PATHS", "compiler_path", "--config", cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "/opt/Linux_x86_64/21.7" {
		t.Fatalf("unexpected resolved value: %q", out)
	}
}

func TestCLI_Get_Raw(t *testing.T) {
	cfg := writeConfig(t)
	out, err := runCLI(t, nil, "get", "PATHS", "compiler_path", "--raw", "--config", cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "${compiler_root}") {
		t.Fatalf("raw value must keep placeholders: %q", out)
	}
}

func TestCLI_Get_MissingKey_ExitCode(t *testing.T) {
	cfg := writeConfig(t)
	_, err := runCLI(t, nil, "get", "PATHS", "nope", "--config", cfg)
	ee, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected non-zero exit, got %v", err)
	}
	if code := ee.ExitCode(); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestCLI_Dump_JSON(t *testing.T) {
	cfg := writeConfig(t)
	env := []string{"XDG_CACHE_HOME=" + t.TempDir()}
	out, err := runCLI(t, env, "dump", "--format", "json", "--config", cfg)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var got map[string]map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, out)
	}
	if got["PATHS"]["compiler_path"] != "/opt/Linux_x86_64/21.7" {
		t.Fatalf("unexpected dump content: %v", got)
	}
}

func TestCLI_RunControlLookup(t *testing.T) {
	cfgDir := t.TempDir()
	cfg := filepath.Join(cfgDir, "gxxconfig.ini")
	if err := os.WriteFile(cfg, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	rcFile := filepath.Join(cfgDir, "gxxtoolsrc")
	rcText := "[login*.example.org]\ngxx_config = " + cfg + "\n"
	if err := os.WriteFile(rcFile, []byte(rcText), 0o644); err != nil {
		t.Fatal(err)
	}

	env := []string{"GXXTOOLSRC=" + rcFile}
	out, err := runCLI(t, env, "get", "SERVER", "alias", "--server", "login1.example.org")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "testcluster" {
		t.Fatalf("unexpected alias: %q", out)
	}

	// A host no section matches must fail and name the host.
	_, err = runCLI(t, env, "get", "SERVER", "alias", "--server", "elsewhere.net")
	if err == nil {
		t.Fatalf("expected failure for unmatched host")
	}
}

func TestCLI_Init_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "gxxtoolsrc")
	if _, err := runCLI(t, nil, "init", "--output", dest); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if _, err := runCLI(t, nil, "init", "--output", dest); err == nil {
		t.Fatalf("expected second init to refuse overwriting")
	}
}
