package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hlsltools/internal/diagfmt"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestCheckJSONReportsErrors(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"hlsl.toml":        "[check]\njobs = 2\n",
		"shaders/ok.hlsl":  "float4 main() : SV_Target { return float4(1, 1, 1, 1); }\n",
		"shaders/bad.hlsl": "float f() { return missing; }\n",
	})

	out, _, err := execute(t, "check", "--color", "off", "--ui", "off", "--format", "json",
		"--config", filepath.Join(dir, "hlsl.toml"), filepath.Join(dir, "shaders"))
	var ee exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}

	var doc diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if doc.Count != 1 || doc.Diagnostics[0].Code != "X3004" {
		t.Fatalf("unexpected diagnostics: %+v", doc.Diagnostics)
	}
	if !strings.HasSuffix(doc.Diagnostics[0].Location.File, "bad.hlsl") {
		t.Fatalf("unexpected file %q", doc.Diagnostics[0].Location.File)
	}
}

func TestCheckPrettyClean(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"hlsl.toml": "",
		"a.hlsl":    "static const float k = 2.0;\nfloat g(float x) { return x * k; }\n",
	})
	out, errOut, err := execute(t, "check", "--color", "off", "--ui", "off", "--format", "pretty",
		"--config", filepath.Join(dir, "hlsl.toml"), filepath.Join(dir, "a.hlsl"))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if out != "" {
		t.Fatalf("expected no diagnostics, got:\n%s", out)
	}
	if !strings.Contains(errOut, "checked 1 file(s): 0 errors, 0 warnings") {
		t.Fatalf("unexpected summary %q", errOut)
	}
}

func TestSymbolsCommand(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"hlsl.toml": "",
		"s.hlsl":    "float g;\nfloat f(float a)\n{\n\treturn a + g;\n}\n",
	})
	out, _, err := execute(t, "symbols", "--color", "off", "--config", filepath.Join(dir, "hlsl.toml"),
		"--line", "4", "--col", "2", "--format", "text", filepath.Join(dir, "s.hlsl"))
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	for _, want := range []string{"parameter", "a: float", "g: float", "f"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--color", "off", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if payload.Tool != "hlslbind" || payload.Version == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	if m, err := readUIMode("ON"); err != nil || m != uiModeOn {
		t.Fatalf("readUIMode(ON) = %v, %v", m, err)
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if shouldUseTUI(uiModeOff, 10) || !shouldUseTUI(uiModeOn, 1) {
		t.Fatalf("explicit modes ignored")
	}
}
