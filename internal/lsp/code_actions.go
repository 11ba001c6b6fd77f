package lsp

import (
	"funge/internal/lint"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// QuickFixes returns the edits offered for the diagnostics a client sent back.
func QuickFixes(uri, text string, diags []protocol.Diagnostic) []protocol.CodeAction {
	actions := make([]protocol.CodeAction, 0)
	for _, d := range diags {
		if diagnosticCode(d) != lint.CodeTab {
			continue
		}
		if action, ok := MakeReplaceCellAction(uri, text, d, " ", "Replace tab with a space"); ok {
			actions = append(actions, action)
		}
	}
	return actions
}

func MakeReplaceCellAction(uri, text string, d protocol.Diagnostic, newText, title string) (protocol.CodeAction, bool) {
	lines := Lines(text)
	if int(d.Range.Start.Line) >= len(lines) {
		return protocol.CodeAction{}, false
	}
	edit := protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): {{Range: d.Range, NewText: newText}},
		},
	}
	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title:       title,
		Kind:        &kind,
		Diagnostics: []protocol.Diagnostic{d},
		Edit:        &edit,
	}, true
}

func diagnosticCode(d protocol.Diagnostic) string {
	if d.Code == nil {
		return ""
	}
	if s, ok := d.Code.Value.(string); ok {
		return s
	}
	return ""
}
