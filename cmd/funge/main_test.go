package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"funge/internal/config"
	"funge/internal/gfx"
	"funge/internal/vm"
)

func int64p(v int64) *int64 { return &v }

func TestResolveSettings(t *testing.T) {
	dir := t.TempDir()
	man := &config.Manifest{Entry: "main.bf", Input: "in.txt", MaxSteps: int64p(500), Seed: int64p(3), Dir: dir}

	tests := []struct {
		name  string
		man   *config.Manifest
		o     flagOverrides
		steps int64
		seed  *int64
		input string
		trace bool
	}{
		{"defaults", nil, flagOverrides{}, config.DefaultMaxSteps, nil, "", false},
		{"manifest", man, flagOverrides{}, 500, int64p(3), filepath.Join(dir, "in.txt"), false},
		{"flags win", man, flagOverrides{MaxSteps: int64p(7), Seed: int64p(9), Input: "other", Trace: true}, 7, int64p(9), "other", true},
		{"explicit zero flag", man, flagOverrides{MaxSteps: int64p(0)}, 0, int64p(3), filepath.Join(dir, "in.txt"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := resolveSettings(tt.man, tt.o)
			if s.MaxSteps != tt.steps {
				t.Fatalf("max steps %d, want %d", s.MaxSteps, tt.steps)
			}
			if (s.Seed == nil) != (tt.seed == nil) || (s.Seed != nil && *s.Seed != *tt.seed) {
				t.Fatalf("seed %v, want %v", s.Seed, tt.seed)
			}
			if s.Input != tt.input {
				t.Fatalf("input %q, want %q", s.Input, tt.input)
			}
			if s.Trace != tt.trace {
				t.Fatalf("trace %v, want %v", s.Trace, tt.trace)
			}
		})
	}
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	if err := initProject(dir, "demo", "src/main.bf", false); err != nil {
		t.Fatalf("init: %v", err)
	}
	man, err := config.LoadManifest(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if man.Name != "demo" || man.Entry != "src/main.bf" {
		t.Fatalf("unexpected manifest %+v", man)
	}
	b, err := os.ReadFile(filepath.Join(dir, "src", "main.bf"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(b) != starterProgram() {
		t.Fatalf("unexpected starter program %q", b)
	}

	if err := initProject(dir, "demo", "main.bf", false); err == nil {
		t.Fatalf("expected error when funge.toml exists")
	}
	if err := initProject(dir, "demo", "main.bf", true); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

func TestResolveRunTarget(t *testing.T) {
	dir := t.TempDir()
	if err := initProject(dir, "", "main.bf", false); err != nil {
		t.Fatalf("init: %v", err)
	}

	entry, man, err := resolveRunTarget(dir)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if man == nil || entry != filepath.Join(man.Dir, "main.bf") {
		t.Fatalf("unexpected entry %q", entry)
	}

	entry, man, err = resolveRunTarget(filepath.Join(dir, "main.bf"))
	if err != nil || man != nil || !filepath.IsAbs(entry) {
		t.Fatalf("resolve file: %q %v %v", entry, man, err)
	}

	if _, _, err := resolveRunTarget(filepath.Join(dir, "missing.bf")); err == nil || !strings.Contains(err.Error(), "path not found") {
		t.Fatalf("expected path not found, got %v", err)
	}
	if _, _, err := resolveRunTarget(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory without manifest")
	}
}

func TestPromptInput(t *testing.T) {
	var out strings.Builder
	got, err := promptInput(bufio.NewReader(strings.NewReader("12\n7\n\nignored\n")), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "12\n7\n" {
		t.Fatalf("got %q", got)
	}
	if strings.Count(out.String(), "input> ") != 3 {
		t.Fatalf("expected three prompts, got %q", out.String())
	}
}

func TestPromptInputEOF(t *testing.T) {
	var out strings.Builder
	got, err := promptInput(bufio.NewReader(strings.NewReader("5")), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "5\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCollectProgramFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bf", "b.b93", "c.befunge", "notes.txt", ".git/x.bf"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("@"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	files, err := collectProgramFiles([]string{dir})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 program files, got %v", files)
	}
}

func TestStepperContinues(t *testing.T) {
	var out strings.Builder
	traced := 0
	s := &stepper{
		in:   bufio.NewReader(strings.NewReader("\nc\n")),
		out:  &out,
		next: vm.TracerFunc(func(*vm.Machine) { traced++ }),
	}
	m, err := vm.New("1234@", vm.WithTracer(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if traced != 5 {
		t.Fatalf("expected 5 traced steps, got %d", traced)
	}
	if n := strings.Count(out.String(), "-- enter"); n != 2 {
		t.Fatalf("expected 2 prompts before continuing, got %d", n)
	}
}

func TestReportRunAfterVisualSteps(t *testing.T) {
	m, err := vm.New("1.><", vm.WithMaxSteps(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gfx.Advance(m, 50)
	if m.Status() != vm.StepLimit {
		t.Fatalf("expected step-limit, got %s", m.Status())
	}

	var out bytes.Buffer
	if !reportRun(&out, m.Result(), m.Err(), 0) {
		t.Fatalf("a step-limit run must be reported as failed")
	}
	want := "\nrun error: max step count exceeded (10)\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestReportRunHalted(t *testing.T) {
	m, err := vm.New("12@")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gfx.Advance(m, 50)

	var out bytes.Buffer
	if reportRun(&out, m.Result(), m.Err(), 0) {
		t.Fatalf("a halted run must not be reported as failed")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no report, got %q", out.String())
	}
}
