package diag

import "fmt"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

type Range struct {
	Line   int // 1-based
	Col    int // 1-based
	Length int // best-effort; can be 1 if unknown
}

// Cell returns the single-cell range for grid coordinate (x, y).
func Cell(x, y int) Range {
	return Range{Line: y + 1, Col: x + 1, Length: 1}
}

type Diagnostic struct {
	Code     string
	Message  string
	Severity Severity
	Range    Range
}

func (d Diagnostic) Format(path string) string {
	if d.Code != "" {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", path, d.Range.Line, d.Range.Col, d.Severity.String(), d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
