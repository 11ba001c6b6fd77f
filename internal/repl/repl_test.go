package repl

import (
	"strings"
	"testing"
)

func session(t *testing.T, input string, limits Limits) string {
	t.Helper()
	var out strings.Builder
	Start(strings.NewReader(input), &out, limits)
	return out.String()
}

func TestRunsOnBlankLine(t *testing.T) {
	out := session(t, "\"!iH\",,,@\n\n", Limits{MaxSteps: 1000})
	if !strings.Contains(out, "Hi!\n") {
		t.Fatalf("missing program output in %q", out)
	}
	if !strings.Contains(out, "-- halted after") {
		t.Fatalf("missing summary in %q", out)
	}
}

func TestMultiRowProgram(t *testing.T) {
	out := session(t, "v\n>12+.@\n\n", Limits{MaxSteps: 1000})
	if !strings.Contains(out, "3 \n") {
		t.Fatalf("expected 3 in %q", out)
	}
	if !strings.Contains(out, prompt2) {
		t.Fatalf("expected continuation prompt in %q", out)
	}
}

func TestStepLimit(t *testing.T) {
	out := session(t, ">\n\n", Limits{MaxSteps: 50})
	if !strings.Contains(out, "error: max step count exceeded (50)") {
		t.Fatalf("expected step limit error in %q", out)
	}
	if !strings.Contains(out, "-- step-limit after 50 steps") {
		t.Fatalf("expected step-limit summary in %q", out)
	}
}

func TestInputCommand(t *testing.T) {
	out := session(t, ":input 41\\n\n&1+.@\n\n", Limits{MaxSteps: 1000})
	if !strings.Contains(out, "input set (3 bytes)") {
		t.Fatalf("expected input confirmation in %q", out)
	}
	if !strings.Contains(out, "42 \n") {
		t.Fatalf("expected 42 in %q", out)
	}
}

func TestResetDropsRows(t *testing.T) {
	out := session(t, "1.\n:reset\n2.@\n\n", Limits{MaxSteps: 1000})
	if !strings.Contains(out, "cleared") {
		t.Fatalf("expected reset confirmation in %q", out)
	}
	if strings.Contains(out, "1 ") || !strings.Contains(out, "2 \n") {
		t.Fatalf("reset rows should not run: %q", out)
	}
}

func TestExit(t *testing.T) {
	out := session(t, "exit\n1.@\n\n", Limits{MaxSteps: 1000})
	if strings.Contains(out, "1 ") {
		t.Fatalf("nothing should run after exit: %q", out)
	}
}

func TestLintWarningsShown(t *testing.T) {
	out := session(t, "12\n\n", Limits{MaxSteps: 10})
	if !strings.Contains(out, "<repl>:1:1: warning FL0001") {
		t.Fatalf("expected lint warning in %q", out)
	}
}

func TestSeededRandomIsRepeatable(t *testing.T) {
	seed := int64(7)
	prog := "?1.@\n2\n.\n@\n\n"
	a := session(t, prog+prog, Limits{MaxSteps: 1000, Seed: &seed})
	parts := strings.Split(a, "-- ")
	if len(parts) < 3 {
		t.Fatalf("expected two runs in %q", a)
	}
	if session(t, prog, Limits{MaxSteps: 1000, Seed: &seed}) != session(t, prog, Limits{MaxSteps: 1000, Seed: &seed}) {
		t.Fatalf("same seed should give the same session")
	}
}
