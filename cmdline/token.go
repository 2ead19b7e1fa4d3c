package cmdline

import "fmt"

type TokenKind int

const (
	TokenArgument TokenKind = iota
	TokenCommand
	TokenOption
	TokenDirective
	TokenDoubleDash
	TokenUnknown
)

var tokenKindNames = map[TokenKind]string{
	TokenArgument:   "Argument",
	TokenCommand:    "Command",
	TokenOption:     "Option",
	TokenDirective:  "Directive",
	TokenDoubleDash: "DoubleDash",
	TokenUnknown:    "Unknown",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ImplicitPosition marks tokens that were synthesized rather than typed.
const ImplicitPosition = -1

// Token is a classified command line word. Symbol is set for Command and
// Option tokens.
type Token struct {
	Value    string
	Kind     TokenKind
	Position int
	Symbol   Symbol
}

func (t Token) Implicit() bool {
	return t.Position == ImplicitPosition
}

func (t Token) String() string {
	return fmt.Sprintf("%s: %s", t.Kind, t.Value)
}
