package cmdline

import (
	"strings"

	"github.com/tliron/commonlog"
)

// matcher turns classified tokens into a syntax tree in one forward pass.
// Tokens it cannot place end up in unmatched.
type matcher struct {
	tokens    []Token
	pos       int
	unmatched []Token
	log       commonlog.Logger
}

func newMatcher(tokens []Token, log commonlog.Logger) *matcher {
	return &matcher{tokens: tokens, log: log}
}

func (m *matcher) current() Token {
	return m.tokens[m.pos]
}

func (m *matcher) advance() {
	m.pos++
}

func (m *matcher) more() (TokenKind, bool) {
	if m.pos >= len(m.tokens) {
		return 0, false
	}
	return m.tokens[m.pos].Kind, true
}

func (m *matcher) addCurrentToUnmatched() {
	tok := m.current()
	if tok.Kind == TokenDoubleDash {
		return
	}
	m.log.Debugf("unmatched token %q at %d", tok.Value, tok.Position)
	m.unmatched = append(m.unmatched, tok)
}

// matchRoot expects the first token to be the root command token.
func (m *matcher) matchRoot(root *Command) *SyntaxNode {
	var tok Token
	if len(m.tokens) > 0 {
		tok = m.current()
		m.advance()
	} else {
		tok = Token{Value: root.Name(), Kind: TokenCommand, Position: ImplicitPosition, Symbol: root}
	}
	node := &SyntaxNode{Kind: NodeCommand, Token: tok, Symbol: root}

	m.matchDirectives(node)
	m.matchCommandChildren(node)
	return node
}

func (m *matcher) matchDirectives(parent *SyntaxNode) {
	for kind, ok := m.more(); ok && kind == TokenDirective; kind, ok = m.more() {
		tok := m.current()
		name, value := splitDirective(tok.Value)
		parent.AddChild(&SyntaxNode{
			Kind:           NodeDirective,
			Token:          tok,
			DirectiveName:  name,
			DirectiveValue: value,
		})
		m.advance()
	}
}

// splitDirective parses "[key:value]" or "[key]". A colon only separates a
// value when it is not the first character, and an empty value counts as none.
func splitDirective(raw string) (string, *string) {
	inner := raw
	if len(inner) >= 2 && inner[0] == '[' && inner[len(inner)-1] == ']' {
		inner = inner[1 : len(inner)-1]
	}
	colon := strings.IndexByte(inner, ':')
	if colon <= 0 {
		return inner, nil
	}
	key := inner[:colon]
	if colon == len(inner)-1 {
		return key, nil
	}
	value := inner[colon+1:]
	return key, &value
}

func (m *matcher) matchCommandChildren(parent *SyntaxNode) {
	cmd := parent.Symbol.(*Command)
	argIndex, argCount := 0, 0
	consumed := map[*Option]int{}

	for kind, ok := m.more(); ok; kind, ok = m.more() {
		switch kind {
		case TokenCommand:
			m.matchSubcommand(parent)
		case TokenOption:
			m.matchOption(parent, consumed)
		case TokenArgument:
			m.matchCommandArguments(parent, cmd, &argIndex, &argCount)
		default:
			m.addCurrentToUnmatched()
			m.advance()
		}
	}
}

func (m *matcher) matchSubcommand(parent *SyntaxNode) {
	tok := m.current()
	sub, ok := tok.Symbol.(*Command)
	if !ok {
		m.addCurrentToUnmatched()
		m.advance()
		return
	}
	node := &SyntaxNode{Kind: NodeCommand, Token: tok, Symbol: sub}
	parent.AddChild(node)
	m.advance()
	m.matchCommandChildren(node)
}

func (m *matcher) matchOption(parent *SyntaxNode, consumed map[*Option]int) {
	tok := m.current()
	opt, ok := tok.Symbol.(*Option)
	if !ok {
		m.addCurrentToUnmatched()
		m.advance()
		return
	}
	node := &SyntaxNode{Kind: NodeOption, Token: tok, Symbol: opt}
	parent.AddChild(node)
	m.advance()
	m.matchOptionArguments(node, opt, consumed)
}

// matchOptionArguments consumes the values following an option. consumed
// counts values across every occurrence of an option under one command, so a
// repeated option that is already full still takes exactly one token; the
// result builder reports it as overflow. Arity exhaustion is checked before
// the boolean lookahead.
func (m *matcher) matchOptionArguments(node *SyntaxNode, opt *Option, consumed map[*Option]int) {
	arg := opt.Argument()
	arity := arg.Arity()
	contiguous := 0

	for kind, ok := m.more(); ok && kind == TokenArgument; kind, ok = m.more() {
		if consumed[opt] >= arity.Max {
			if contiguous > 0 || arity.Max == 0 {
				return
			}
		} else if arg.ValueType == TypeBool && !isBooleanLiteral(m.current().Value) {
			// a bare flag; leave the token for the command
			return
		}

		node.AddChild(&SyntaxNode{Kind: NodeOptionArgument, Token: m.current(), Symbol: arg})
		consumed[opt]++
		contiguous++
		m.advance()

		if !opt.AllowMultipleArgumentsPerToken {
			return
		}
	}
}

// matchCommandArguments binds argument tokens to the command's positional
// arguments in declaration order. argIndex and argCount persist across calls
// for the same command.
func (m *matcher) matchCommandArguments(parent *SyntaxNode, cmd *Command, argIndex, argCount *int) {
	args := cmd.Arguments()
	for kind, ok := m.more(); ok && kind == TokenArgument; kind, ok = m.more() {
		for cmd.HasArguments() && *argIndex < len(args) {
			arg := args[*argIndex]
			if *argCount < arg.Arity().Max {
				parent.AddChild(&SyntaxNode{Kind: NodeCommandArgument, Token: m.current(), Symbol: arg})
				*argCount++
				m.advance()
				break
			}
			*argCount = 0
			*argIndex++
		}

		if *argCount == 0 {
			m.addCurrentToUnmatched()
			m.advance()
		}
	}
}
