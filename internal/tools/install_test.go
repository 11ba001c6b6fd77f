package tools

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPlanDefaults(t *testing.T) {
	steps, err := Plan(InstallOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != len(Targets) {
		t.Fatalf("expected %d steps, got %d", len(Targets), len(steps))
	}
	args := strings.Join(steps[0].Args(), " ")
	if !strings.HasPrefix(args, "go build -o "+filepath.Join("bin", "funge")) || !strings.HasSuffix(args, "./cmd/funge") {
		t.Fatalf("unexpected command %q", args)
	}
}

func TestPlanOnly(t *testing.T) {
	steps, err := Plan(InstallOptions{BinDir: "out", Only: []string{"funge-lsp"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 1 || steps[0].Target.Pkg != "./cmd/funge-lsp" {
		t.Fatalf("unexpected steps %+v", steps)
	}
	if filepath.Dir(steps[0].Out) != "out" {
		t.Fatalf("unexpected output %q", steps[0].Out)
	}
}

func TestPlanUnknownTool(t *testing.T) {
	if _, err := Plan(InstallOptions{Only: []string{"nope"}}); err == nil {
		t.Fatalf("expected unknown tool error")
	}
}
