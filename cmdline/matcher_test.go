package cmdline

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

func TestPositionalArgumentSaturates(t *testing.T) {
	file := NewArgument("file", TypeString).SetArity(ArityExactlyOne)
	root := MustCommand("app").MustAdd(file)

	r := NewParser(root).Parse([]string{"a", "b", "c"})

	if got := values(r.FindResultFor(file).Tokens()); !cmp.Equal(got, []string{"a"}) {
		t.Errorf("file tokens = %v, want [a]", got)
	}
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"b", "c"}) {
		t.Errorf("unmatched = %v, want [b c]", got)
	}
	if got := len(r.Errors()); got != 2 {
		t.Errorf("expected one error per unmatched token, got %d: %v", got, r.Errors())
	}
}

func TestPositionalArgumentsInDeclarationOrder(t *testing.T) {
	src := NewArgument("src", TypeStringSlice).SetArity(Arity{Min: 1, Max: 2})
	dst := NewArgument("dst", TypeString)
	root := MustCommand("cp").MustAdd(src, dst)

	r := NewParser(root).Parse([]string{"a", "b", "c", "d"})

	if got := values(r.FindResultFor(src).Tokens()); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("src tokens = %v", got)
	}
	if got := values(r.FindResultFor(dst).Tokens()); !cmp.Equal(got, []string{"c"}) {
		t.Errorf("dst tokens = %v", got)
	}
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"d"}) {
		t.Errorf("unmatched = %v", got)
	}
	if got := values(r.CommandResult().Tokens()); !cmp.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("command tokens = %v", got)
	}
}

func TestOptionSingleValuePerToken(t *testing.T) {
	opt := MustOption("--opt", NewArgument("opt", TypeString).SetArity(ArityZeroOrOne))
	rest := NewArgument("rest", TypeStringSlice).SetArity(ArityZeroOrMore)
	root := MustCommand("app").MustAdd(opt, rest)

	r := NewParser(root).Parse([]string{"--opt", "x", "y"})

	if got := values(r.FindResultFor(opt).Tokens()); !cmp.Equal(got, []string{"x"}) {
		t.Errorf("--opt tokens = %v, want [x]", got)
	}
	if got := values(r.FindResultFor(rest).Tokens()); !cmp.Equal(got, []string{"y"}) {
		t.Errorf("rest tokens = %v, want [y]", got)
	}
	if len(r.UnmatchedTokens()) != 0 {
		t.Errorf("unexpected unmatched tokens %v", r.UnmatchedTokens())
	}
}

func TestOptionMultipleValuesPerToken(t *testing.T) {
	tags := MustOption("--tag", NewArgument("tag", TypeStringSlice).SetArity(Arity{Min: 1, Max: 2}))
	tags.AllowMultipleArgumentsPerToken = true
	root := MustCommand("app").MustAdd(tags)
	root.TreatUnmatchedTokensAsErrors = false

	r := NewParser(root).Parse([]string{"--tag", "a", "b", "c"})

	if got := values(r.FindResultFor(tags).Tokens()); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("--tag tokens = %v, want [a b]", got)
	}
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"c"}) {
		t.Errorf("unmatched = %v, want [c]", got)
	}
	if len(r.Errors()) != 0 {
		t.Errorf("unmatched tokens are not errors here, got %v", r.Errors())
	}
}

func TestZeroArityOptionLeavesValue(t *testing.T) {
	dry := MustOption("--dry-run", NewArgument("dry-run", TypeBool).SetArity(ArityZero))
	file := NewArgument("file", TypeString)
	root := MustCommand("app").MustAdd(dry, file)

	r := NewParser(root).Parse([]string{"--dry-run", "true"})

	if got := len(r.FindResultFor(dry).Tokens()); got != 0 {
		t.Errorf("zero arity option took %d tokens", got)
	}
	if got := values(r.FindResultFor(file).Tokens()); !cmp.Equal(got, []string{"true"}) {
		t.Errorf("file tokens = %v, want [true]", got)
	}
}

func TestBooleanFlagLookahead(t *testing.T) {
	newTree := func() (*Command, *Option, *Command) {
		flag := MustOption("--flag", nil)
		next := MustCommand("next-command")
		root := MustCommand("app").MustAdd(flag, next)
		return root, flag, next
	}

	t.Run("non boolean token is left alone", func(t *testing.T) {
		root, flag, next := newTree()
		r := NewParser(root).Parse([]string{"--flag", "next-command"})
		if got := len(r.FindResultFor(flag).Tokens()); got != 0 {
			t.Errorf("--flag consumed %d tokens", got)
		}
		if r.CommandResult().Command() != next {
			t.Errorf("innermost command = %s, want next-command", r.CommandResult().Symbol().Name())
		}
		if v := Value[bool](r, flag); !v {
			t.Error("a bare flag is true")
		}
	})

	t.Run("boolean literal is consumed", func(t *testing.T) {
		root, flag, _ := newTree()
		root.Runnable = true
		r := NewParser(root).Parse([]string{"--flag", "FALSE"})
		if got := values(r.FindResultFor(flag).Tokens()); !cmp.Equal(got, []string{"FALSE"}) {
			t.Errorf("--flag tokens = %v", got)
		}
		if v := Value[bool](r, flag); v {
			t.Error("expected explicit false")
		}
		if len(r.Errors()) != 0 {
			t.Errorf("unexpected errors %v", r.Errors())
		}
	})

	t.Run("non boolean positional", func(t *testing.T) {
		flag := MustOption("--flag", nil)
		file := NewArgument("file", TypeString)
		root := MustCommand("app").MustAdd(flag, file)
		r := NewParser(root).Parse([]string{"--flag", "input.txt"})
		if got := values(r.FindResultFor(file).Tokens()); !cmp.Equal(got, []string{"input.txt"}) {
			t.Errorf("file tokens = %v", got)
		}
	})
}

func TestDirectives(t *testing.T) {
	root := MustCommand("app")
	root.Runnable = true
	p := NewParser(root)

	tests := []struct {
		name   string
		args   []string
		key    string
		values []*string
	}{
		{"key and value", []string{"[config:debug]"}, "config", []*string{strPtr("debug")}},
		{"key only", []string{"[config]"}, "config", []*string{nil}},
		{"empty value", []string{"[config:]"}, "config", []*string{nil}},
		{"leading colon", []string{"[:x]"}, ":x", []*string{nil}},
		{"value with colon", []string{"[env:a:b]"}, "env", []*string{strPtr("a:b")}},
		{"repeated", []string{"[d:1]", "[d]", "[d:2]"}, "d", []*string{strPtr("1"), nil, strPtr("2")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.Parse(tt.args)
			if diff := cmp.Diff(tt.values, r.Directives().Values(tt.key)); diff != "" {
				t.Errorf("Directives[%q] mismatch (-want +got):\n%s", tt.key, diff)
			}
			if len(r.Errors()) != 0 {
				t.Errorf("unexpected errors %v", r.Errors())
			}
		})
	}
}

func TestDirectivesOnlyAtStart(t *testing.T) {
	file := NewArgument("file", TypeString)
	root := MustCommand("app").MustAdd(file)
	r := NewParser(root).Parse([]string{"x", "[debug]"})
	if r.Directives().Has("debug") {
		t.Error("directives after the first symbol must not be recognized")
	}
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"[debug]"}) {
		t.Errorf("unmatched = %v", got)
	}
}

func TestDoubleDashNeverUnmatched(t *testing.T) {
	root := MustCommand("app")
	root.Runnable = true
	r := NewParser(root).Parse([]string{"--", "x"})
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"x"}) {
		t.Errorf("unmatched = %v, want [x]", got)
	}
	if got := len(r.Errors()); got != 1 {
		t.Errorf("expected 1 error, got %d", got)
	}
}

func TestUnknownTokensAreUnmatched(t *testing.T) {
	root := MustCommand("app")
	root.Runnable = true
	tokens := []Token{
		{Value: "app", Kind: TokenCommand, Position: 0, Symbol: root},
		{Value: "???", Kind: TokenUnknown, Position: 1},
		{Value: "--", Kind: TokenDoubleDash, Position: 2},
	}
	r := NewParser(root).ParseTokens(tokens)
	if got := values(r.UnmatchedTokens()); !cmp.Equal(got, []string{"???"}) {
		t.Errorf("unmatched = %v, want [???]", got)
	}
	if got := values(r.Tokens()); !cmp.Equal(got, []string{"???", "--"}) {
		t.Errorf("tokens = %v", got)
	}
}

func TestSyntaxTreeShape(t *testing.T) {
	output := MustOption("--output", NewArgument("output", TypeString))
	build := MustCommand("build").MustAdd(output, NewArgument("target", TypeString))
	root := MustCommand("app").MustAdd(build)

	r := NewParser(root).Parse([]string{"app", "[debug]", "build", "--output", "out", "main"})

	want := `Command app
  Directive debug
  Command build
    Option --output
      OptionArgument out
    CommandArgument main
`
	if got := r.SyntaxTree().String(); got != want {
		t.Errorf("syntax tree:\n%s\nwant:\n%s", got, want)
	}
	opt := r.SyntaxTree().ChildrenOfKind(NodeCommand)[0].ChildrenOfKind(NodeOption)[0]
	if opt.Parent.Symbol != build {
		t.Errorf("option node parent = %v, want build", opt.Parent.Symbol)
	}
}

func TestRepeatedOptionTakesOneMore(t *testing.T) {
	flag := MustOption("--flag", nil)
	rest := NewArgument("rest", TypeStringSlice).SetArity(ArityZeroOrMore)
	root := MustCommand("app").MustAdd(flag, rest)
	p := NewParser(root)

	tests := []struct {
		name      string
		args      []string
		syntax    string
		rest      []string
		unmatched []string
	}{
		{
			name: "full flag skips the boolean check",
			args: []string{"--flag", "true", "--flag", "next"},
			syntax: `Command app
  Option --flag
    OptionArgument true
  Option --flag
`,
			unmatched: []string{"next"},
		},
		{
			name: "empty flag leaves a non boolean",
			args: []string{"--flag", "--flag", "next"},
			syntax: `Command app
  Option --flag
  Option --flag
  CommandArgument next
`,
			rest: []string{"next"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.Parse(tt.args)
			if diff := cmp.Diff(tt.syntax, r.SyntaxTree().String()); diff != "" {
				t.Errorf("syntax tree (-want +got):\n%s", diff)
			}
			var restTokens []Token
			if res := r.FindResultFor(rest); res != nil {
				restTokens = res.Tokens()
			}
			if diff := cmp.Diff(tt.rest, values(restTokens), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("rest tokens (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.unmatched, values(r.UnmatchedTokens()), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("unmatched (-want +got):\n%s", diff)
			}
		})
	}
}

// Values a full option rejects belong to the unmatched list only.
// No token may be lost or duplicated between the tree and the unmatched list.
func TestTokensAreConserved(t *testing.T) {
	verbose := MustOption("--verbose", nil, "-v")
	verbose.Recursive = true
	level := MustOption("--level", NewArgument("level", TypeInt))
	tags := MustOption("--tag", NewArgument("tag", TypeStringSlice))
	tags.AllowMultipleArgumentsPerToken = true
	build := MustCommand("build").MustAdd(level, tags, NewArgument("target", TypeString))
	root := MustCommand("app").MustAdd(verbose, build, NewArgument("extra", TypeString).SetArity(ArityZeroOrOne))
	p := NewParser(root)

	inputs := [][]string{
		{"app", "[a]", "[b:c]", "x", "y", "build", "--level", "1", "2", "3"},
		{"-v", "true", "false", "build", "-v", "--tag", "a", "b", "c", "t", "u"},
		{"build", "--level", "--tag", "--verbose", "zz"},
		{"stray", "[late]", "build", "--", "--level", "4"},
		{"build", "--level", "1", "--level", "2", "t", "--tag", "a", "--tag", "b"},
		{},
	}
	for _, args := range inputs {
		r := p.Parse(args)

		var want []string
		for _, tok := range r.Tokens() {
			if tok.Kind != TokenDirective && tok.Kind != TokenDoubleDash {
				want = append(want, tok.Value)
			}
		}

		var got []string
		var walk func(n *SyntaxNode)
		walk = func(n *SyntaxNode) {
			for _, child := range n.Children {
				if child.Kind != NodeDirective {
					got = append(got, child.Token.Value)
				}
				walk(child)
			}
		}
		walk(r.SyntaxTree())
		got = append(got, values(r.UnmatchedTokens())...)

		sort.Strings(want)
		sort.Strings(got)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Parse(%q) lost or duplicated tokens (-want +got):\n%s", args, diff)
		}
	}
}

func strPtr(s string) *string {
	return &s
}
