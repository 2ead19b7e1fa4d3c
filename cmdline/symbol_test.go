package cmdline

import (
	"errors"
	"testing"
)

func TestAliasValidation(t *testing.T) {
	tests := []struct {
		name    string
		alias   string
		wantErr bool
	}{
		{"plain", "--output", false},
		{"short", "-o", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"inner space", "--out put", true},
		{"tab", "--out\tput", true},
		{"trailing newline", "--output\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOption("--name", nil, tt.alias)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAlias) {
					t.Errorf("NewOption with alias %q: err = %v, want ErrInvalidAlias", tt.alias, err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewOption with alias %q: unexpected error %v", tt.alias, err)
			}
		})
	}
}

func TestInvalidCommandName(t *testing.T) {
	if _, err := NewCommand("bad name"); !errors.Is(err, ErrInvalidAlias) {
		t.Errorf("NewCommand(%q) err = %v, want ErrInvalidAlias", "bad name", err)
	}
	c := MustCommand("good")
	if err := c.AddAlias(""); !errors.Is(err, ErrInvalidAlias) {
		t.Errorf("AddAlias(\"\") err = %v, want ErrInvalidAlias", err)
	}
}

func TestAliasesAreOrdinal(t *testing.T) {
	opt := MustOption("--Output", nil, "-o", "-o")
	if got := len(opt.Aliases()); got != 2 {
		t.Errorf("expected duplicate alias to be dropped, got %d aliases", got)
	}
	if opt.HasAlias("--output") {
		t.Error("aliases must not be case folded")
	}
	if !opt.HasAlias("--Output") {
		t.Error("expected the name to be an alias")
	}
}

func TestLongestAlias(t *testing.T) {
	tests := []struct {
		aliases []string
		want    string
	}{
		{[]string{"-o", "--output"}, "--output"},
		{[]string{"--aa", "--bb"}, "--aa"},
		{[]string{"-x"}, "-x"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := LongestAlias(tt.aliases); got != tt.want {
			t.Errorf("LongestAlias(%v) = %q, want %q", tt.aliases, got, tt.want)
		}
	}
}

func TestDuplicateSymbols(t *testing.T) {
	root := MustCommand("app")
	if err := root.AddCommand(MustCommand("build", "b")); err != nil {
		t.Fatal(err)
	}
	if err := root.AddCommand(MustCommand("bundle", "b")); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected clashing subcommand alias to fail, got %v", err)
	}
	if err := root.AddOption(MustOption("--verbose", nil, "-v")); err != nil {
		t.Fatal(err)
	}
	if err := root.AddOption(MustOption("--version", nil, "-v")); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected clashing option alias to fail, got %v", err)
	}

	arg := NewArgument("file", TypeString)
	if err := root.AddArgument(arg); err != nil {
		t.Fatal(err)
	}
	if err := MustCommand("other").AddArgument(arg); !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected reused argument to fail, got %v", err)
	}
}

func TestDefaultArity(t *testing.T) {
	flag := MustOption("--flag", nil)
	name := MustOption("--name", NewArgument("name", TypeString))
	tags := MustOption("--tag", NewArgument("tag", TypeStringSlice))
	level := MustOption("--level", NewArgument("level", TypeInt).SetDefaultValue(3))

	files := NewArgument("files", TypeStringSlice)
	target := NewArgument("target", TypeString)
	MustCommand("app").MustAdd(files, target)

	tests := []struct {
		name string
		got  Arity
		want Arity
	}{
		{"bool option", flag.Argument().Arity(), ArityZeroOrOne},
		{"string option", name.Argument().Arity(), ArityExactlyOne},
		{"slice option", tags.Argument().Arity(), ArityZeroOrMore},
		{"option with default", level.Argument().Arity(), ArityZeroOrOne},
		{"slice argument", files.Arity(), ArityOneOrMore},
		{"string argument", target.Arity(), ArityExactlyOne},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: arity = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestNewArity(t *testing.T) {
	if _, err := NewArity(2, 1); err == nil {
		t.Error("expected max below min to fail")
	}
	if _, err := NewArity(-1, 1); err == nil {
		t.Error("expected negative min to fail")
	}
	a, err := NewArity(1, Unbounded)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsUnbounded() || a.String() != "1..*" {
		t.Errorf("unexpected arity %s", a)
	}
}

func TestRecursiveOptionVisibility(t *testing.T) {
	verbose := MustOption("--verbose", nil)
	verbose.Recursive = true
	local := MustOption("--local", nil)
	sub := MustCommand("build")
	MustCommand("app").MustAdd(verbose, local, sub)

	if sub.Option("--verbose") != verbose {
		t.Error("expected recursive option to be visible in subcommand")
	}
	if sub.Option("--local") != nil {
		t.Error("expected non-recursive option to stay local")
	}
	if got := len(sub.VisibleOptions()); got != 1 {
		t.Errorf("VisibleOptions() has %d options, want 1", got)
	}
}

func TestParseArity(t *testing.T) {
	tests := []struct {
		in      string
		want    Arity
		wantErr bool
	}{
		{"1", ArityExactlyOne, false},
		{"0..1", ArityZeroOrOne, false},
		{"1..*", ArityOneOrMore, false},
		{" 2..3 ", Arity{Min: 2, Max: 3}, false},
		{"3..1", Arity{}, true},
		{"a..b", Arity{}, true},
		{"", Arity{}, true},
	}
	for _, tt := range tests {
		got, err := ParseArity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseArity(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseArity(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
