package lsp

import (
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/cmdline/cmdline"
)

// Workspace holds the open documents. Every line of a document is a command
// line parsed against the current definition; blank lines and lines starting
// with '#' are skipped.
type Workspace struct {
	mu        sync.RWMutex
	parser    *cmdline.Parser
	documents map[string]*Document
}

type Document struct {
	URI     string
	Text    string
	Lines   []string
	Results []*cmdline.ParseResult // nil for skipped lines
}

// Diagnostic is a parse error located in a document. Columns are byte
// offsets into the line.
type Diagnostic struct {
	Line        int
	StartColumn int
	EndColumn   int
	Message     string
	Suggestions []string
}

func NewWorkspace(root *cmdline.Command, opts ...cmdline.ParserOption) *Workspace {
	return &Workspace{
		parser:    cmdline.NewParser(root, opts...),
		documents: make(map[string]*Document),
	}
}

// SetDefinition swaps the command tree and reparses every open document.
func (w *Workspace) SetDefinition(root *cmdline.Command, opts ...cmdline.ParserOption) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.parser = cmdline.NewParser(root, opts...)
	for uri, doc := range w.documents {
		w.documents[uri] = w.parseLocked(uri, doc.Text)
	}
}

func (w *Workspace) Root() *cmdline.Command {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.parser.Root()
}

func (w *Workspace) UpdateDocument(uri, text string) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := w.parseLocked(uri, text)
	w.documents[uri] = doc
	return doc
}

func (w *Workspace) parseLocked(uri, text string) *Document {
	lines := strings.Split(text, "\n")
	doc := &Document{
		URI:     uri,
		Text:    text,
		Lines:   lines,
		Results: make([]*cmdline.ParseResult, len(lines)),
	}
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = line
		if skipLine(line) {
			continue
		}
		doc.Results[i] = w.parser.ParseLine(line)
	}
	return doc
}

func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func (w *Workspace) RemoveDocument(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.documents, uri)
}

func (w *Workspace) GetDocument(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.documents[uri]
}

func (w *Workspace) URIs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	uris := make([]string, 0, len(w.documents))
	for uri := range w.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// CompletionsAt completes the word before column on the given line. Lines
// that are not open, or are comments, are completed as empty command lines.
func (w *Workspace) CompletionsAt(uri string, line, column int) []cmdline.CompletionItem {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := w.documents[uri]
	if doc == nil || line < 0 || line >= len(doc.Lines) {
		return nil
	}
	result := doc.Results[line]
	if result == nil {
		text := doc.Lines[line]
		if strings.HasPrefix(strings.TrimSpace(text), "#") {
			return nil
		}
		result = w.parser.ParseLine(text)
	}
	return result.CompletionsAt(column)
}

func (w *Workspace) Diagnostics(uri string) []Diagnostic {
	w.mu.RLock()
	defer w.mu.RUnlock()

	doc := w.documents[uri]
	if doc == nil {
		return nil
	}

	var out []Diagnostic
	for i, result := range doc.Results {
		if result == nil {
			continue
		}
		for _, e := range result.Errors() {
			d := Diagnostic{
				Line:        i,
				StartColumn: 0,
				EndColumn:   len(doc.Lines[i]),
				Message:     e.Message,
				Suggestions: e.Suggestions,
			}
			if e.Token != nil {
				if start, end, ok := result.TokenSpan(*e.Token); ok {
					d.StartColumn, d.EndColumn = start, end
				}
			}
			out = append(out, d)
		}
	}
	return out
}
