package cmdline

import (
	"fmt"
	"strings"
)

// validator attaches symbol level errors to a finished result tree.
type validator struct {
	innermost *SymbolResult
	errors    []ParseError
}

func (v *validator) fail(r *SymbolResult, msg string) {
	r.setError(msg)
	v.errors = append(v.errors, ParseError{Message: msg, SymbolResult: r})
}

func (v *validator) validate(tree *ResultTree) []ParseError {
	for _, r := range tree.results {
		switch r.Kind {
		case ResultCommand:
			v.validateCommand(r)
		case ResultOption:
			v.validateOption(r)
		case ResultArgument:
			v.validateArgument(r)
		}
	}
	return v.errors
}

func (v *validator) validateCommand(r *SymbolResult) {
	cmd := r.Command()
	if r == v.innermost && len(cmd.Subcommands()) > 0 && !cmd.Runnable {
		v.fail(r, "Required command was not provided.")
	}
	for _, opt := range cmd.Options() {
		if opt.Required && findInChain(r, opt) == nil {
			v.fail(r, fmt.Sprintf("Option '%s' is required.", LongestAlias(opt.Aliases())))
		}
	}
	for _, arg := range cmd.Arguments() {
		if r.ChildFor(arg) == nil && arg.Arity().Min > 0 {
			v.fail(r, fmt.Sprintf("Required argument missing for command: '%s'.", cmd.Name()))
			return
		}
	}
}

func (v *validator) validateOption(r *SymbolResult) {
	if r.implicit {
		return
	}
	arity := r.Option().Argument().Arity()
	if len(r.tokens) < arity.Min {
		v.fail(r, fmt.Sprintf("Required argument missing for option: '%s'.", r.token.Value))
	}
}

func (v *validator) validateArgument(r *SymbolResult) {
	arg := r.Argument()
	if r.implicit {
		return
	}
	parent := r.Parent()
	if parent != nil && parent.Kind == ResultCommand && len(r.tokens) < arg.Arity().Min {
		v.fail(r, fmt.Sprintf("Required argument missing for command: '%s'.", parent.symbol.Name()))
		return
	}
	if len(arg.Choices) > 0 {
		for _, tok := range r.tokens {
			if !contains(arg.Choices, tok.Value) {
				v.fail(r, fmt.Sprintf("Argument '%s' not recognized. Must be one of:\n\t'%s'",
					tok.Value, strings.Join(arg.Choices, "'\n\t'")))
				return
			}
		}
	}
	if len(r.tokens) > 0 {
		if _, err := r.Value(); err != nil {
			v.fail(r, fmt.Sprintf("Cannot parse argument '%s' as expected type '%s': %v",
				strings.Join(r.tokenValues(), " "), arg.ValueType, err))
		}
	}
}

// findInChain looks for a result bound to s under r or any command below it.
func findInChain(r *SymbolResult, s Symbol) *SymbolResult {
	for _, candidate := range r.AllResults() {
		if candidate.symbol == s {
			return candidate
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
