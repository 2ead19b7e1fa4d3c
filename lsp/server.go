package lsp

import (
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/cmdline/cmdline"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "cmdline"

type LSPServer struct {
	workspace      *Workspace
	definitionPath string
	handler        protocol.Handler
	server         *server.Server
	version        string
	log            commonlog.Logger

	mu      sync.Mutex
	notify  glsp.NotifyFunc
	watcher *DefinitionWatcher
}

// NewLSPServer serves command lines written against root. When
// definitionPath is set the definition is reloaded as the file changes.
func NewLSPServer(version string, root *cmdline.Command, definitionPath string) *LSPServer {
	ls := &LSPServer{
		workspace:      NewWorkspace(root),
		definitionPath: definitionPath,
		version:        version,
		log:            commonlog.GetLogger("cmdline.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{" ", "-", "["},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if ls.definitionPath == "" {
		return nil
	}
	w, err := NewDefinitionWatcher(ls.definitionPath, ls.reloadDefinition, func(err error) {
		ls.log.Errorf("definition %s: %s", ls.definitionPath, err)
	})
	if err != nil {
		ls.log.Errorf("not watching definition: %s", err)
		return nil
	}
	w.Start()

	ls.mu.Lock()
	ls.watcher = w
	ls.mu.Unlock()
	return nil
}

func (ls *LSPServer) reloadDefinition(root *cmdline.Command) {
	ls.log.Infof("reloaded definition %s", ls.definitionPath)
	ls.workspace.SetDefinition(root)

	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	for _, uri := range ls.workspace.URIs() {
		ls.publishDiagnostics(notify, uri)
	}
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	ls.mu.Lock()
	w := ls.watcher
	ls.watcher = nil
	ls.mu.Unlock()

	if w != nil {
		return w.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.workspace.UpdateDocument(uri, params.TextDocument.Text)
	ls.publishDiagnostics(ctx.Notify, uri)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateDocument(uri, textChange.Text)
			ls.publishDiagnostics(ctx.Notify, uri)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.workspace.RemoveDocument(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		ls.workspace.UpdateDocument(uri, *params.Text)
	}
	ls.publishDiagnostics(ctx.Notify, uri)
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	doc := ls.workspace.GetDocument(uri)
	if doc == nil {
		return nil, nil
	}

	line := int(params.Position.Line)
	if line >= len(doc.Lines) {
		return nil, nil
	}
	col := byteOffset(doc.Lines[line], int(params.Position.Character))

	completions := ls.workspace.CompletionsAt(uri, line, col)
	if len(completions) == 0 {
		return nil, nil
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		item := protocol.CompletionItem{
			Label: c.Label,
			Kind:  &kind,
		}
		if c.Detail != "" {
			detail := c.Detail
			item.Detail = &detail
		}
		if c.InsertText != "" {
			insertText := c.InsertText
			item.InsertText = &insertText
		}
		if c.SortText != "" {
			sortText := c.SortText
			item.SortText = &sortText
		}
		items = append(items, item)
	}

	return items, nil
}

func (ls *LSPServer) publishDiagnostics(notify glsp.NotifyFunc, uri string) {
	doc := ls.workspace.GetDocument(uri)
	if doc == nil || notify == nil {
		return
	}

	diagnostics := []protocol.Diagnostic{}
	for _, d := range ls.workspace.Diagnostics(uri) {
		text := doc.Lines[d.Line]
		message := d.Message
		if len(d.Suggestions) > 0 {
			message += " Did you mean " + strings.Join(d.Suggestions, ", ") + "?"
		}
		severity := protocol.DiagnosticSeverityError
		source := lsName
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(d.Line), Character: protocol.UInteger(utf16Offset(text, d.StartColumn))},
				End:   protocol.Position{Line: protocol.UInteger(d.Line), Character: protocol.UInteger(utf16Offset(text, d.EndColumn))},
			},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}

	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toProtocolKind(kind cmdline.CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case cmdline.CompletionKeyword:
		return protocol.CompletionItemKindKeyword
	case cmdline.CompletionValue:
		return protocol.CompletionItemKindValue
	default:
		return protocol.CompletionItemKindText
	}
}

// byteOffset converts an LSP character offset, counted in UTF-16 code units,
// to a byte offset into line.
func byteOffset(line string, character int) int {
	units := 0
	for i, r := range line {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

func utf16Offset(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	units := 0
	for _, r := range line[:offset] {
		units += utf16.RuneLen(r)
	}
	return units
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
