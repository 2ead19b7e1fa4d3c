package cmdline

import (
	"strings"
	"unicode"
)

// Word is a whitespace separated piece of a command line and its byte offset.
type Word struct {
	Value  string
	Offset int
}

// SplitCommandLine breaks text at whitespace. Quotes have no special meaning.
func SplitCommandLine(text string) []Word {
	var words []Word
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, Word{Value: text[start:i], Offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, Word{Value: text[start:], Offset: start})
	}
	return words
}

// Tokenize classifies args against the command tree rooted at root. The
// first element may name the root command; otherwise a root token is
// synthesized. Token positions are indexes into args.
func Tokenize(args []string, root *Command) []Token {
	tokens := make([]Token, 0, len(args)+1)
	i := 0
	if len(args) > 0 && root.HasAlias(args[0]) {
		tokens = append(tokens, Token{Value: args[0], Kind: TokenCommand, Position: 0, Symbol: root})
		i = 1
	} else {
		tokens = append(tokens, Token{Value: root.Name(), Kind: TokenCommand, Position: ImplicitPosition, Symbol: root})
	}

	cmd := root
	directivesAllowed := true
	argumentsOnly := false
	for ; i < len(args); i++ {
		arg := args[i]
		switch {
		case argumentsOnly:
			tokens = append(tokens, Token{Value: arg, Kind: TokenArgument, Position: i})
			continue
		case arg == "--":
			tokens = append(tokens, Token{Value: arg, Kind: TokenDoubleDash, Position: i})
			argumentsOnly = true
			directivesAllowed = false
			continue
		case directivesAllowed && isDirectiveWord(arg):
			tokens = append(tokens, Token{Value: arg, Kind: TokenDirective, Position: i})
			continue
		}
		directivesAllowed = false

		if sub := cmd.Subcommand(arg); sub != nil {
			tokens = append(tokens, Token{Value: arg, Kind: TokenCommand, Position: i, Symbol: sub})
			cmd = sub
			continue
		}
		if opt := cmd.Option(arg); opt != nil {
			tokens = append(tokens, Token{Value: arg, Kind: TokenOption, Position: i, Symbol: opt})
			continue
		}
		if name, value, ok := splitOptionValue(arg); ok {
			if opt := cmd.Option(name); opt != nil {
				tokens = append(tokens,
					Token{Value: name, Kind: TokenOption, Position: i, Symbol: opt},
					Token{Value: value, Kind: TokenArgument, Position: i})
				continue
			}
		}
		tokens = append(tokens, Token{Value: arg, Kind: TokenArgument, Position: i})
	}
	return tokens
}

func isDirectiveWord(s string) bool {
	return len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']' && s[1] != ']' &&
		strings.IndexFunc(s, unicode.IsSpace) < 0
}

// splitOptionValue splits "--name=value" and "--name:value".
func splitOptionValue(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "/") {
		return "", "", false
	}
	i := strings.IndexAny(s, "=:")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
