package spectest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"funge/internal/vm"
)

func TestFixtures(t *testing.T) {
	RunDir(t, "testdata")
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: x\nprogram: '@'\nstdot: oops\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "stdot") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadFileRequiresProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected an error for a case without a program")
	}
}

func TestUnnamedCasesGetIndexNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.yaml")
	if err := os.WriteFile(path, []byte("program: '@'\n---\nprogram: '1@'\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cases, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cases) != 2 || cases[1].Name != "anon#2" {
		t.Fatalf("unexpected cases %+v", cases)
	}
}

func TestCheckReportsMismatches(t *testing.T) {
	want := "nope"
	stack := []int64{9}
	c := Case{Name: "wrong", Program: "12@", Stdout: &want, Stack: &stack}
	problems := Check(c, Execute(c))
	if len(problems) != 2 {
		t.Fatalf("expected stdout and stack mismatches, got %v", problems)
	}
}

func TestExecuteEmptyProgram(t *testing.T) {
	res := Execute(Case{Program: "\n"})
	if res.Err == nil || res.Status != vm.Running {
		t.Fatalf("expected load error, got %+v", res)
	}
}
