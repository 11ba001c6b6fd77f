package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name = "factorial"
entry = "src/main.bf"
input = "input.txt"
max_steps = 5000
seed = 42
trace = true
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "factorial" {
		t.Fatalf("name = %q, want factorial", m.Name)
	}
	dir := filepath.Dir(path)
	if m.EntryPath() != filepath.Join(dir, "src", "main.bf") {
		t.Fatalf("entry path = %q", m.EntryPath())
	}
	if m.InputPath() != filepath.Join(dir, "input.txt") {
		t.Fatalf("input path = %q", m.InputPath())
	}
	if m.StepLimit() != 5000 {
		t.Fatalf("step limit = %d, want 5000", m.StepLimit())
	}
	if m.Seed == nil || *m.Seed != 42 {
		t.Fatalf("seed = %v, want 42", m.Seed)
	}
	if !m.Trace {
		t.Fatalf("expected trace enabled")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	m, err := LoadManifest(writeManifest(t, `entry = "main.bf"`+"\n"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.StepLimit() != DefaultMaxSteps {
		t.Fatalf("expected default step limit, got %d", m.StepLimit())
	}
	if m.InputPath() != "" || m.Seed != nil {
		t.Fatalf("expected no input and no seed")
	}

	zero, err := LoadManifest(writeManifest(t, "entry = \"main.bf\"\nmax_steps = 0\n"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if zero.StepLimit() != 0 {
		t.Fatalf("explicit max_steps = 0 must mean unlimited, got %d", zero.StepLimit())
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "entry = \"a.bf\"\nmax_mem = 3\n", "unknown key"},
		{"negative steps", "entry = \"a.bf\"\nmax_steps = -1\n", "must not be negative"},
		{"bad syntax", "entry = \n", FileName},
	}
	for _, tt := range tests {
		_, err := LoadManifest(writeManifest(t, tt.content))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}

func TestEncode(t *testing.T) {
	steps := int64(10)
	out, err := Encode(&Manifest{Name: "demo", Entry: "main.bf", MaxSteps: &steps})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, want := range []string{`name = "demo"`, `entry = "main.bf"`, "max_steps = 10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "seed") || strings.Contains(out, "Dir") {
		t.Fatalf("unexpected keys in:\n%s", out)
	}
}

func TestIsProgramFile(t *testing.T) {
	tests := map[string]bool{
		"main.bf":      true,
		"dir/LOOP.B93": true,
		"x.befunge":    true,
		"funge.toml":   false,
		"main.bf.bak":  false,
		"noext":        false,
	}
	for path, want := range tests {
		if got := IsProgramFile(path); got != want {
			t.Fatalf("IsProgramFile(%q) = %v, want %v", path, got, want)
		}
	}
}
