package cmdline

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionValue
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionKeyword:
		return "Keyword"
	case CompletionValue:
		return "Value"
	}
	return "Unknown"
}

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	SortText   string
	InsertText string
}

// CompletionContext describes what is being completed. Contexts built from
// ParseLine know the raw text and cursor; those built from pre-split
// arguments only know the tokens.
type CompletionContext struct {
	parseResult    *ParseResult
	wordToComplete string
	textBased      bool
	text           string
	cursor         int
}

func (c CompletionContext) ParseResult() *ParseResult { return c.parseResult }
func (c CompletionContext) WordToComplete() string    { return c.wordToComplete }
func (c CompletionContext) IsTextBased() bool         { return c.textBased }
func (c CompletionContext) CommandLineText() string   { return c.text }
func (c CompletionContext) CursorPosition() int       { return c.cursor }

// AtCursorPosition derives the context for another cursor offset. Token
// based contexts are returned unchanged.
func (c CompletionContext) AtCursorPosition(position int) CompletionContext {
	if !c.textBased {
		return c
	}
	if position < 0 {
		position = 0
	}
	if position > len(c.text) {
		position = len(c.text)
	}
	c.cursor = position
	c.wordToComplete = wordBefore(c.text, position)
	return c
}

// wordBefore returns the part of the word that ends at position.
func wordBefore(text string, position int) string {
	start := position
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	return text[start:position]
}

// CompletionContext builds the context for completing at the end of input.
func (r *ParseResult) CompletionContext() CompletionContext {
	if r.source != nil {
		ctx := CompletionContext{parseResult: r, textBased: true, text: r.source.text}
		return ctx.AtCursorPosition(len(r.source.text))
	}
	return CompletionContext{parseResult: r, wordToComplete: r.lastPartialWord()}
}

// lastPartialWord is the last typed token when it could still be a prefix of
// something: a value or a token nothing matched.
func (r *ParseResult) lastPartialWord() string {
	for i := len(r.tokens) - 1; i >= 0; i-- {
		tok := r.tokens[i]
		if tok.Kind == TokenDirective {
			continue
		}
		if tok.Kind == TokenArgument || r.isUnmatched(tok) {
			return tok.Value
		}
		return ""
	}
	return ""
}

func (r *ParseResult) isUnmatched(tok Token) bool {
	for _, u := range r.unmatched {
		if u == tok {
			return true
		}
	}
	return false
}

// Completions suggests what may follow the end of input.
func (r *ParseResult) Completions() []CompletionItem {
	return r.completions(r.CompletionContext())
}

// CompletionsAt suggests what may be typed at a byte offset of the command
// line. Without command line text it behaves like Completions.
func (r *ParseResult) CompletionsAt(position int) []CompletionItem {
	return r.completions(r.CompletionContext().AtCursorPosition(position))
}

func (r *ParseResult) completions(ctx CompletionContext) []CompletionItem {
	current := r.resultToComplete(ctx)
	items := SymbolCompletions(current.symbol, ctx)
	if current.Kind != ResultCommand {
		return items
	}

	var exhausted []string
	for _, child := range current.children {
		if child.Kind == ResultOption && child.IsArgumentLimitReached() {
			exhausted = append(exhausted, child.Option().Aliases()...)
		}
	}
	if len(exhausted) == 0 {
		return items
	}
	filtered := items[:0]
	for _, item := range items {
		if !contains(exhausted, item.Label) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// resultToComplete picks the last command or argument accepting option in a
// breadth first walk from the innermost command.
func (r *ParseResult) resultToComplete(ctx CompletionContext) *SymbolResult {
	current := r.command
	for _, candidate := range r.command.AllResults() {
		switch candidate.Kind {
		case ResultCommand:
			current = candidate
		case ResultOption:
			if r.willAcceptArgument(candidate, ctx) {
				current = candidate
			}
		}
	}
	return current
}

func (r *ParseResult) willAcceptArgument(optResult *SymbolResult, ctx CompletionContext) bool {
	if optResult.implicit {
		return false
	}
	if !optResult.IsArgumentLimitReached() {
		return true
	}
	if ctx.wordToComplete != "" {
		// the user may be editing a value this option already holds
		for i := len(r.tokens) - 1; i >= 0; i-- {
			if r.tokens[i].Value == ctx.wordToComplete {
				return optResult.hasToken(r.tokens[i])
			}
		}
	}
	return false
}

// SymbolCompletions asks a symbol for the candidates matching the context's
// word to complete.
func SymbolCompletions(s Symbol, ctx CompletionContext) []CompletionItem {
	switch s := s.(type) {
	case *Command:
		return commandCompletions(s, ctx)
	case *Option:
		return argumentCompletions(s.Argument(), ctx)
	case *Argument:
		return argumentCompletions(s, ctx)
	}
	panic(fmt.Sprintf("cmdline: unsupported symbol %T", s))
}

func commandCompletions(cmd *Command, ctx CompletionContext) []CompletionItem {
	word := ctx.WordToComplete()
	var items []CompletionItem
	for _, sub := range cmd.Subcommands() {
		if sub.Hidden {
			continue
		}
		items = appendKeywords(items, sub.Aliases(), sub.Description(), word)
	}
	for _, opt := range cmd.VisibleOptions() {
		if opt.Hidden {
			continue
		}
		items = appendKeywords(items, opt.Aliases(), opt.Description(), word)
	}
	for _, arg := range cmd.Arguments() {
		items = append(items, argumentCompletions(arg, ctx)...)
	}
	return sortCompletions(items)
}

func appendKeywords(items []CompletionItem, aliases []string, detail, word string) []CompletionItem {
	for _, alias := range aliases {
		if strings.HasPrefix(alias, word) {
			items = append(items, CompletionItem{
				Label:      alias,
				Kind:       CompletionKeyword,
				Detail:     detail,
				SortText:   alias,
				InsertText: alias,
			})
		}
	}
	return items
}

func argumentCompletions(arg *Argument, ctx CompletionContext) []CompletionItem {
	if arg.Complete != nil {
		return arg.Complete(ctx)
	}
	var values []string
	switch {
	case len(arg.Choices) > 0:
		values = arg.Choices
	case arg.ValueType == TypeBool:
		values = []string{"true", "false"}
	}
	word := ctx.WordToComplete()
	var items []CompletionItem
	for _, v := range values {
		if strings.HasPrefix(v, word) {
			items = append(items, CompletionItem{
				Label:      v,
				Kind:       CompletionValue,
				Detail:     arg.Description(),
				SortText:   v,
				InsertText: v,
			})
		}
	}
	return sortCompletions(items)
}

// sortCompletions orders items by label and drops repeated labels.
func sortCompletions(items []CompletionItem) []CompletionItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Label < items[j].Label
	})
	out := items[:0]
	for _, item := range items {
		if len(out) > 0 && out[len(out)-1].Label == item.Label {
			continue
		}
		out = append(out, item)
	}
	return out
}
