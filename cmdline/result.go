package cmdline

import (
	"fmt"
	"strings"
)

type ResultKind int

const (
	ResultCommand ResultKind = iota
	ResultOption
	ResultArgument
)

var resultKindNames = map[ResultKind]string{
	ResultCommand:  "Command",
	ResultOption:   "Option",
	ResultArgument: "Argument",
}

func (k ResultKind) String() string {
	if name, ok := resultKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

const noParent = -1

// ResultTree owns every SymbolResult of one parse. Results refer to their
// parent by index into the tree.
type ResultTree struct {
	results []*SymbolResult
}

func (t *ResultTree) add(r *SymbolResult, parent *SymbolResult) *SymbolResult {
	r.tree = t
	r.id = len(t.results)
	r.parent = noParent
	if parent != nil {
		r.parent = parent.id
		parent.children = append(parent.children, r)
	}
	t.results = append(t.results, r)
	return r
}

// Results lists every result in creation order.
func (t *ResultTree) Results() []*SymbolResult {
	return t.results
}

// SymbolResult is what the parse resolved for one command, option or argument.
type SymbolResult struct {
	Kind         ResultKind
	symbol       Symbol
	token        Token
	tokens       []Token
	children     []*SymbolResult
	errorMessage string
	implicit     bool

	tree   *ResultTree
	id     int
	parent int
}

func newResult(kind ResultKind, symbol Symbol, token Token) *SymbolResult {
	return &SymbolResult{Kind: kind, symbol: symbol, token: token}
}

func (r *SymbolResult) Symbol() Symbol { return r.symbol }

// Token is the command or option word itself; argument results have none.
func (r *SymbolResult) Token() Token { return r.token }

// Tokens are the values bound to the result: argument values for options and
// arguments, positional values for commands.
func (r *SymbolResult) Tokens() []Token { return r.tokens }

func (r *SymbolResult) Children() []*SymbolResult { return r.children }
func (r *SymbolResult) ErrorMessage() string      { return r.errorMessage }

// IsImplicit reports results created for defaults rather than typed input.
func (r *SymbolResult) IsImplicit() bool { return r.implicit }

func (r *SymbolResult) Parent() *SymbolResult {
	if r.parent == noParent {
		return nil
	}
	return r.tree.results[r.parent]
}

func (r *SymbolResult) Command() *Command {
	c, _ := r.symbol.(*Command)
	return c
}

func (r *SymbolResult) Option() *Option {
	o, _ := r.symbol.(*Option)
	return o
}

func (r *SymbolResult) Argument() *Argument {
	a, _ := r.symbol.(*Argument)
	return a
}

func (r *SymbolResult) setError(msg string) {
	if r.errorMessage == "" {
		r.errorMessage = msg
	}
}

// MaximumArgumentCapacity is the most tokens the result may hold.
func (r *SymbolResult) MaximumArgumentCapacity() int {
	switch s := r.symbol.(type) {
	case *Option:
		return s.Argument().Arity().Max
	case *Argument:
		return s.Arity().Max
	case *Command:
		total := 0
		for _, arg := range s.Arguments() {
			total += arg.Arity().Max
			if total >= Unbounded {
				return Unbounded
			}
		}
		return total
	}
	panic(fmt.Sprintf("cmdline: unsupported symbol %T", r.symbol))
}

func (r *SymbolResult) RemainingArgumentCapacity() int {
	remaining := r.MaximumArgumentCapacity() - len(r.tokens)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (r *SymbolResult) IsArgumentLimitReached() bool {
	return r.RemainingArgumentCapacity() == 0
}

// ChildFor returns the direct child bound to s.
func (r *SymbolResult) ChildFor(s Symbol) *SymbolResult {
	for _, child := range r.children {
		if child.symbol == s {
			return child
		}
	}
	return nil
}

// AllResults yields r followed by its descendants, level by level.
func (r *SymbolResult) AllResults() []*SymbolResult {
	out := []*SymbolResult{r}
	queue := append([]*SymbolResult{}, r.children...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, next.children...)
	}
	return out
}

func (r *SymbolResult) hasToken(tok Token) bool {
	for _, t := range r.tokens {
		if t == tok {
			return true
		}
	}
	return false
}

func (r *SymbolResult) tokenValues() []string {
	values := make([]string, len(r.tokens))
	for i, t := range r.tokens {
		values[i] = t.Value
	}
	return values
}

// Value converts the tokens of an argument result, falling back to the
// declared default and then the type default.
func (r *SymbolResult) Value() (any, error) {
	arg := r.Argument()
	if arg == nil {
		return nil, fmt.Errorf("%s result %q has no value", r.Kind, r.symbol.Name())
	}
	if len(r.tokens) == 0 {
		if parent := r.Parent(); parent != nil && parent.Kind == ResultOption &&
			!parent.implicit && arg.ValueType == TypeBool {
			return true, nil
		}
		if arg.HasDefault() {
			return arg.DefaultValue(), nil
		}
		return arg.ValueType.Zero(), nil
	}
	if arg.Convert != nil {
		return arg.Convert(r.tokenValues())
	}
	return convertValues(arg.ValueType, r.tokenValues())
}

func (r *SymbolResult) String() string {
	var b strings.Builder
	r.write(&b, 0)
	return b.String()
}

func (r *SymbolResult) write(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(r.Kind.String())
	b.WriteString(" ")
	b.WriteString(r.symbol.Name())
	if r.implicit {
		b.WriteString(" (implicit)")
	}
	if r.Kind == ResultArgument && len(r.tokens) > 0 {
		b.WriteString(" [" + strings.Join(r.tokenValues(), " ") + "]")
	}
	if r.errorMessage != "" {
		b.WriteString(" ERROR: " + r.errorMessage)
	}
	b.WriteString("\n")
	for _, child := range r.children {
		child.write(b, indent+1)
	}
}

type ParseError struct {
	Message      string
	SymbolResult *SymbolResult
	// Token is set for unmatched tokens.
	Token       *Token
	Suggestions []string
}

func (e ParseError) Error() string {
	return e.Message
}

// Directives maps a directive name to its values in order of appearance; a
// nil entry is a directive given without a value.
type Directives map[string][]*string

func (d Directives) add(name string, value *string) {
	d[name] = append(d[name], value)
}

func (d Directives) Has(name string) bool {
	_, ok := d[name]
	return ok
}

func (d Directives) Values(name string) []*string {
	return d[name]
}
