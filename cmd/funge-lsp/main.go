package main

import (
	"flag"

	"funge/internal/lsp"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const (
	lsName  = "funge-lsp"
	version = "0.1"
)

var store = lsp.NewStore()
var handler protocol.Handler
var log = commonlog.GetLogger("funge.lsp")

func main() {
	verbosity := flag.Int("v", 0, "log verbosity (logs go to stderr)")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	if *logFile != "" {
		commonlog.Configure(*verbosity, logFile)
	} else {
		commonlog.Configure(*verbosity, nil)
	}

	handler = protocol.Handler{
		Initialize:                     initialize,
		Initialized:                    initialized,
		Shutdown:                       shutdown,
		SetTrace:                       setTrace,
		TextDocumentDidOpen:            textDocumentDidOpen,
		TextDocumentDidChange:          textDocumentDidChange,
		TextDocumentDidSave:            textDocumentDidSave,
		TextDocumentDidClose:           textDocumentDidClose,
		TextDocumentCodeAction:         textDocumentCodeAction,
		TextDocumentSemanticTokensFull: textDocumentSemanticTokensFull,
		TextDocumentHover:              textDocumentHover,
	}

	server := server.NewServer(&handler, lsName, false)
	if err := server.RunStdio(); err != nil {
		log.Errorf("server stopped: %s", err)
	}
}

func initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.False},
		},
		CodeActionProvider: protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
		},
		SemanticTokensProvider: &protocol.SemanticTokensOptions{
			Legend: lsp.Legend(),
			Full:   true,
			Range:  false,
		},
		HoverProvider: true,
	}

	log.Info("initialize")

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: ptrString(version),
		},
	}, nil
}

func initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(ctx *glsp.Context) error {
	log.Infof("shutdown with %d open documents", len(store.URIs()))
	return nil
}

func setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	store.Set(uri, params.TextDocument.Text)
	return publishDiagnostics(ctx, uri, params.TextDocument.Text)
}

func textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	text, ok := extractFullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		log.Warningf("ignoring incremental change for %s", uri)
		return nil
	}

	store.Set(uri, text)
	return publishDiagnostics(ctx, uri, text)
}

func textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	if text, ok := store.Get(uri); ok {
		return publishDiagnostics(ctx, uri, text)
	}
	return nil
}

func textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	store.Delete(uri)
	return publishDiagnostics(ctx, uri, "")
}

func textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	text, ok := store.Get(uri)
	if !ok {
		return nil, nil
	}
	actions := lsp.QuickFixes(uri, text, params.Context.Diagnostics)
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

func textDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := string(params.TextDocument.URI)
	text, ok := store.Get(uri)
	if !ok || !lsp.IsProgramURI(uri) {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	sem := lsp.SemanticTokensForText(text)
	data := lsp.EncodeSemanticTokens(sem)
	return &protocol.SemanticTokens{Data: data}, nil
}

func textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)
	text, ok := store.Get(uri)
	if !ok || !lsp.IsProgramURI(uri) {
		return nil, nil
	}
	return lsp.HoverAt(text, params.Position), nil
}

func publishDiagnostics(ctx *glsp.Context, uri string, text string) error {
	diags := lsp.Diagnose(uri, text)
	log.Debugf("publishing %d diagnostics for %s", len(diags), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: diags,
	})
	return nil
}

func extractFullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		if typed.Range == nil {
			return typed.Text, true
		}
		return "", false
	default:
		return "", false
	}
}

func ptrString(s string) *string { return &s }
