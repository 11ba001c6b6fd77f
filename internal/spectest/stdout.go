package spectest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StdoutMode int

const (
	StdoutNone StdoutMode = iota
	StdoutExact
	StdoutContains
	StdoutFile
)

type StdoutExpectation struct {
	Mode  StdoutMode
	Value string
}

// NormalizeNewlines folds CRLF so fixtures written on any platform compare equal.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func MatchStdout(got string, exp StdoutExpectation, baseDir string) (bool, string, error) {
	normalizedGot := NormalizeNewlines(got)
	switch exp.Mode {
	case StdoutNone:
		return true, "", nil
	case StdoutExact:
		want := NormalizeNewlines(exp.Value)
		if normalizedGot != want {
			return false, fmt.Sprintf("stdout mismatch: expected %q, got %q", want, normalizedGot), nil
		}
		return true, "", nil
	case StdoutContains:
		want := NormalizeNewlines(exp.Value)
		if !strings.Contains(normalizedGot, want) {
			return false, fmt.Sprintf("stdout mismatch: expected to contain %q, got %q", want, normalizedGot), nil
		}
		return true, "", nil
	case StdoutFile:
		path := exp.Value
		if path == "" {
			return false, "stdout file path is empty", nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return false, "", err
		}
		want := NormalizeNewlines(string(b))
		if normalizedGot != want {
			return false, fmt.Sprintf("stdout mismatch: expected file %q to match, got %q", exp.Value, normalizedGot), nil
		}
		return true, "", nil
	default:
		return false, "unknown stdout expectation", nil
	}
}
