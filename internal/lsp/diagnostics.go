package lsp

import (
	"funge/internal/diag"
	"funge/internal/lint"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnose lints text and converts the findings for the document at uri.
// Documents without a program extension get an empty list.
func Diagnose(uri, text string) []protocol.Diagnostic {
	if !IsProgramURI(uri) || text == "" {
		return []protocol.Diagnostic{}
	}
	return ToLspDiagnostics(text, lint.Run(text))
}

func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	lines := Lines(text)
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		pd := protocol.Diagnostic{
			Range:    cellRange(lines, d.Range.Col-1, d.Range.Line-1, d.Range.Length),
			Severity: &severity,
			Source:   ptrString("funge"),
			Message:  d.Message,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		out = append(out, pd)
	}
	return out
}

func ptrString(s string) *string { return &s }
