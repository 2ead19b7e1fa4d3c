package cmdline

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrInvalidAlias    = errors.New("invalid alias")
	ErrDuplicateSymbol = errors.New("duplicate symbol")
)

// Symbol is one of *Command, *Option or *Argument.
type Symbol interface {
	Name() string
	Description() string
	isSymbol()
}

type aliasSet struct {
	aliases []string
}

func validateAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: alias is empty", ErrInvalidAlias)
	}
	if strings.IndexFunc(alias, unicode.IsSpace) >= 0 {
		if strings.TrimSpace(alias) == "" {
			return fmt.Errorf("%w: alias %q is blank", ErrInvalidAlias, alias)
		}
		return fmt.Errorf("%w: alias %q contains whitespace", ErrInvalidAlias, alias)
	}
	return nil
}

func (s *aliasSet) add(alias string) error {
	if err := validateAlias(alias); err != nil {
		return err
	}
	if !s.has(alias) {
		s.aliases = append(s.aliases, alias)
	}
	return nil
}

func (s *aliasSet) has(alias string) bool {
	for _, a := range s.aliases {
		if a == alias {
			return true
		}
	}
	return false
}

// LongestAlias returns the longest alias, the first one seen winning ties.
func LongestAlias(aliases []string) string {
	longest := ""
	for _, a := range aliases {
		if len(a) > len(longest) {
			longest = a
		}
	}
	return longest
}

type Argument struct {
	name        string
	description string
	ValueType   ValueType
	arity       *Arity
	defaultFunc func() any
	Choices     []string
	Convert     Converter
	// Complete overrides the built in completion of choices and booleans.
	Complete func(ctx CompletionContext) []CompletionItem

	owner Symbol
}

func NewArgument(name string, t ValueType) *Argument {
	return &Argument{name: name, ValueType: t}
}

func (a *Argument) Name() string        { return a.name }
func (a *Argument) Description() string { return a.description }
func (a *Argument) isSymbol()           {}

func (a *Argument) SetDescription(d string) *Argument {
	a.description = d
	return a
}

func (a *Argument) SetArity(arity Arity) *Argument {
	a.arity = &arity
	return a
}

func (a *Argument) SetDefault(f func() any) *Argument {
	a.defaultFunc = f
	return a
}

func (a *Argument) SetDefaultValue(v any) *Argument {
	return a.SetDefault(func() any { return v })
}

func (a *Argument) Arity() Arity {
	if a.arity != nil {
		return *a.arity
	}
	_, forOption := a.owner.(*Option)
	return defaultArity(a.ValueType, forOption, a.HasDefault())
}

func (a *Argument) HasDefault() bool {
	return a.defaultFunc != nil
}

func (a *Argument) DefaultValue() any {
	if a.defaultFunc == nil {
		return a.ValueType.Zero()
	}
	return a.defaultFunc()
}

// Owner is the option or command the argument was attached to, or nil.
func (a *Argument) Owner() Symbol {
	return a.owner
}

type Option struct {
	name        string
	description string
	aliases     aliasSet
	argument    *Argument
	Required    bool
	// Recursive options are recognized in every subcommand of their command.
	Recursive bool
	Hidden    bool

	AllowMultipleArgumentsPerToken bool
}

// NewOption declares an option whose name is also its first alias.
func NewOption(name string, arg *Argument, aliases ...string) (*Option, error) {
	o := &Option{name: name}
	for _, alias := range append([]string{name}, aliases...) {
		if err := o.aliases.add(alias); err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
	}
	if arg == nil {
		arg = NewArgument(strings.TrimLeft(name, "-/"), TypeBool)
	}
	if arg.owner != nil {
		return nil, fmt.Errorf("option %q: argument %q already belongs to %q", name, arg.Name(), arg.owner.Name())
	}
	arg.owner = o
	o.argument = arg
	return o, nil
}

func MustOption(name string, arg *Argument, aliases ...string) *Option {
	o, err := NewOption(name, arg, aliases...)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Option) Name() string        { return o.name }
func (o *Option) Description() string { return o.description }
func (o *Option) isSymbol()           {}

func (o *Option) SetDescription(d string) *Option {
	o.description = d
	return o
}

func (o *Option) Aliases() []string      { return o.aliases.aliases }
func (o *Option) HasAlias(s string) bool { return o.aliases.has(s) }
func (o *Option) Argument() *Argument    { return o.argument }

func (o *Option) AddAlias(alias string) error {
	if err := o.aliases.add(alias); err != nil {
		return fmt.Errorf("option %q: %w", o.name, err)
	}
	return nil
}

type Command struct {
	name        string
	description string
	aliases     aliasSet
	subcommands []*Command
	options     []*Option
	arguments   []*Argument
	parent      *Command
	Hidden      bool
	// Runnable marks commands that do something on their own, so a missing
	// subcommand is not reported.
	Runnable bool

	TreatUnmatchedTokensAsErrors bool
}

func NewCommand(name string, aliases ...string) (*Command, error) {
	c := &Command{name: name, TreatUnmatchedTokensAsErrors: true}
	for _, alias := range append([]string{name}, aliases...) {
		if err := c.aliases.add(alias); err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
	}
	return c, nil
}

func MustCommand(name string, aliases ...string) *Command {
	c, err := NewCommand(name, aliases...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Command) Name() string        { return c.name }
func (c *Command) Description() string { return c.description }
func (c *Command) isSymbol()           {}

func (c *Command) SetDescription(d string) *Command {
	c.description = d
	return c
}

func (c *Command) Aliases() []string       { return c.aliases.aliases }
func (c *Command) HasAlias(s string) bool  { return c.aliases.has(s) }
func (c *Command) Subcommands() []*Command { return c.subcommands }
func (c *Command) Options() []*Option      { return c.options }
func (c *Command) Arguments() []*Argument  { return c.arguments }
func (c *Command) HasArguments() bool      { return len(c.arguments) > 0 }
func (c *Command) Parent() *Command        { return c.parent }

func (c *Command) AddAlias(alias string) error {
	if err := c.aliases.add(alias); err != nil {
		return fmt.Errorf("command %q: %w", c.name, err)
	}
	return nil
}

func (c *Command) AddCommand(sub *Command) error {
	if sub.parent != nil {
		return fmt.Errorf("%w: command %q already belongs to %q", ErrDuplicateSymbol, sub.name, sub.parent.name)
	}
	for _, alias := range sub.Aliases() {
		if existing := c.Subcommand(alias); existing != nil {
			return fmt.Errorf("%w: %q of %q clashes with command %q", ErrDuplicateSymbol, alias, c.name, existing.name)
		}
	}
	sub.parent = c
	c.subcommands = append(c.subcommands, sub)
	return nil
}

func (c *Command) AddOption(o *Option) error {
	for _, alias := range o.Aliases() {
		if existing := c.ownOption(alias); existing != nil {
			return fmt.Errorf("%w: %q of %q clashes with option %q", ErrDuplicateSymbol, alias, c.name, existing.name)
		}
	}
	c.options = append(c.options, o)
	return nil
}

func (c *Command) AddArgument(a *Argument) error {
	if a.owner != nil {
		return fmt.Errorf("%w: argument %q already belongs to %q", ErrDuplicateSymbol, a.name, a.owner.Name())
	}
	a.owner = c
	c.arguments = append(c.arguments, a)
	return nil
}

// MustAdd attaches each child and panics on the first error.
func (c *Command) MustAdd(children ...Symbol) *Command {
	for _, child := range children {
		var err error
		switch s := child.(type) {
		case *Command:
			err = c.AddCommand(s)
		case *Option:
			err = c.AddOption(s)
		case *Argument:
			err = c.AddArgument(s)
		default:
			panic(fmt.Sprintf("cmdline: unsupported symbol %T", child))
		}
		if err != nil {
			panic(err)
		}
	}
	return c
}

func (c *Command) Subcommand(alias string) *Command {
	for _, sub := range c.subcommands {
		if sub.HasAlias(alias) {
			return sub
		}
	}
	return nil
}

func (c *Command) ownOption(alias string) *Option {
	for _, o := range c.options {
		if o.HasAlias(alias) {
			return o
		}
	}
	return nil
}

// Option finds an option visible in this command: its own options first, then
// recursive options of its ancestors.
func (c *Command) Option(alias string) *Option {
	if o := c.ownOption(alias); o != nil {
		return o
	}
	for p := c.parent; p != nil; p = p.parent {
		if o := p.ownOption(alias); o != nil && o.Recursive {
			return o
		}
	}
	return nil
}

// VisibleOptions lists own options followed by inherited recursive ones.
func (c *Command) VisibleOptions() []*Option {
	out := append([]*Option{}, c.options...)
	for p := c.parent; p != nil; p = p.parent {
		for _, o := range p.options {
			if o.Recursive {
				out = append(out, o)
			}
		}
	}
	return out
}

// Aliases returns the aliases of a command or option; arguments have none.
func Aliases(s Symbol) []string {
	switch s := s.(type) {
	case *Command:
		return s.Aliases()
	case *Option:
		return s.Aliases()
	case *Argument:
		return nil
	}
	panic(fmt.Sprintf("cmdline: unsupported symbol %T", s))
}
