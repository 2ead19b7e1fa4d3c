package cmdline

import (
	"fmt"
	"sort"

	"github.com/tliron/commonlog"
)

type ParserOption func(*Parser)

func WithLogger(log commonlog.Logger) ParserOption {
	return func(p *Parser) {
		p.log = log
	}
}

// WithoutValidation skips arity, choice and conversion checks; only unmatched
// tokens are reported.
func WithoutValidation() ParserOption {
	return func(p *Parser) {
		p.validate = false
	}
}

type Parser struct {
	root     *Command
	log      commonlog.Logger
	validate bool
}

func NewParser(root *Command, opts ...ParserOption) *Parser {
	p := &Parser{
		root:     root,
		log:      commonlog.GetLogger("cmdline.parser"),
		validate: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Root() *Command {
	return p.root
}

// Parse matches pre-split arguments. args may start with the root command name.
func (p *Parser) Parse(args []string) *ParseResult {
	return p.parse(Tokenize(args, p.root), nil)
}

// ParseLine splits text on whitespace and keeps it for completion.
func (p *Parser) ParseLine(text string) *ParseResult {
	words := SplitCommandLine(text)
	args := make([]string, len(words))
	for i, w := range words {
		args[i] = w.Value
	}
	return p.parse(Tokenize(args, p.root), &lineSource{text: text, words: words})
}

// ParseTokens matches tokens from an external tokenizer. The first token must
// be the root command token.
func (p *Parser) ParseTokens(tokens []Token) *ParseResult {
	return p.parse(tokens, nil)
}

func (p *Parser) parse(tokens []Token, source *lineSource) *ParseResult {
	m := newMatcher(tokens, p.log)
	syntax := m.matchRoot(p.root)

	b := newResultBuilder(p.log)
	b.build(syntax)

	r := &ParseResult{
		parser:     p,
		syntax:     syntax,
		tree:       b.tree,
		root:       b.root,
		command:    b.innermost,
		directives: b.directives,
		source:     source,
	}
	if len(tokens) > 1 {
		r.tokens = tokens[1:]
	}
	r.unmatched = mergeUnmatched(m.unmatched, b.unmatched)
	r.errors = append(r.errors, b.errors...)

	if p.validate {
		v := &validator{innermost: r.command}
		r.errors = append(r.errors, v.validate(r.tree)...)
	}
	if p.unmatchedAreErrors(r.command) {
		overflow := make(map[Token]bool, len(b.unmatched))
		for _, tok := range b.unmatched {
			overflow[tok] = true
		}
		for i := range r.unmatched {
			tok := r.unmatched[i]
			if overflow[tok] {
				// already reported against the option
				continue
			}
			r.errors = append(r.errors, ParseError{
				Message:      fmt.Sprintf("Unrecognized command or argument '%s'.", tok.Value),
				SymbolResult: r.root,
				Token:        &tok,
				Suggestions:  Suggest(tok.Value, r.command.Command()),
			})
		}
	}
	p.log.Debugf("parsed %d tokens: %d unmatched, %d errors", len(r.tokens), len(r.unmatched), len(r.errors))
	return r
}

// mergeUnmatched interleaves the matcher's unmatched tokens with the option
// values the builder rejected, in document order.
func mergeUnmatched(matched, overflow []Token) []Token {
	out := make([]Token, 0, len(matched)+len(overflow))
	out = append(append(out, matched...), overflow...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}

// unmatchedAreErrors is true when any command from the root down to the
// innermost one treats unmatched tokens as errors.
func (p *Parser) unmatchedAreErrors(innermost *SymbolResult) bool {
	for r := innermost; r != nil; r = r.Parent() {
		if r.Command().TreatUnmatchedTokensAsErrors {
			return true
		}
	}
	return false
}

type lineSource struct {
	text  string
	words []Word
}

// ParseResult is the outcome of one parse. It is not modified after Parse
// returns.
type ParseResult struct {
	parser     *Parser
	syntax     *SyntaxNode
	tree       *ResultTree
	root       *SymbolResult
	command    *SymbolResult
	tokens     []Token
	unmatched  []Token
	errors     []ParseError
	directives Directives
	source     *lineSource
}

func (r *ParseResult) Parser() *Parser                  { return r.parser }
func (r *ParseResult) SyntaxTree() *SyntaxNode          { return r.syntax }
func (r *ParseResult) ResultTree() *ResultTree          { return r.tree }
func (r *ParseResult) RootCommandResult() *SymbolResult { return r.root }

// CommandResult is the innermost command that was matched.
func (r *ParseResult) CommandResult() *SymbolResult { return r.command }

// Tokens lists every token except the root command token.
func (r *ParseResult) Tokens() []Token          { return r.tokens }
func (r *ParseResult) UnmatchedTokens() []Token { return r.unmatched }
func (r *ParseResult) Errors() []ParseError     { return r.errors }
func (r *ParseResult) Directives() Directives   { return r.directives }

// CommandLineText returns the raw text given to ParseLine.
func (r *ParseResult) CommandLineText() (string, bool) {
	if r.source == nil {
		return "", false
	}
	return r.source.text, true
}

// TokenSpan maps a typed token to its byte range in the command line text.
func (r *ParseResult) TokenSpan(tok Token) (start, end int, ok bool) {
	if r.source == nil || tok.Implicit() || tok.Position >= len(r.source.words) {
		return 0, 0, false
	}
	w := r.source.words[tok.Position]
	return w.Offset, w.Offset + len(w.Value), true
}

// FindResultFor searches the whole result tree for the result bound to s.
func (r *ParseResult) FindResultFor(s Symbol) *SymbolResult {
	for _, candidate := range r.root.AllResults() {
		if candidate.symbol == s {
			return candidate
		}
	}
	return nil
}

// GetValue resolves the value of an option or argument. Conversion failures
// are reported in Errors and yield the type default here.
func (r *ParseResult) GetValue(s Symbol) any {
	var arg *Argument
	switch s := s.(type) {
	case *Option:
		arg = s.Argument()
		if optResult := r.FindResultFor(s); optResult != nil {
			return valueOrZero(optResult.ChildFor(arg), arg)
		}
	case *Argument:
		arg = s
		if argResult := r.FindResultFor(s); argResult != nil {
			return valueOrZero(argResult, arg)
		}
	case *Command:
		return nil
	default:
		panic(fmt.Sprintf("cmdline: unsupported symbol %T", s))
	}
	return arg.ValueType.Zero()
}

func valueOrZero(r *SymbolResult, arg *Argument) any {
	if r == nil {
		return arg.ValueType.Zero()
	}
	v, err := r.Value()
	if err != nil {
		return arg.ValueType.Zero()
	}
	return v
}

// Value is GetValue with a type assertion; a mismatch yields the zero T.
func Value[T any](r *ParseResult, s Symbol) T {
	v, _ := r.GetValue(s).(T)
	return v
}
