package cmdline

import (
	"fmt"

	"github.com/tliron/commonlog"
)

// resultBuilder walks the syntax tree and produces the result tree.
type resultBuilder struct {
	tree       *ResultTree
	root       *SymbolResult
	innermost  *SymbolResult
	directives Directives
	unmatched  []Token
	errors     []ParseError
	log        commonlog.Logger
}

func newResultBuilder(log commonlog.Logger) *resultBuilder {
	return &resultBuilder{
		tree:       &ResultTree{},
		directives: Directives{},
		log:        log,
	}
}

func (b *resultBuilder) build(root *SyntaxNode) {
	b.visit(root, nil)
	for _, r := range b.tree.results {
		if r.Kind == ResultCommand {
			b.addImplicitResults(r)
		}
	}
}

func (b *resultBuilder) visit(node *SyntaxNode, parent *SymbolResult) {
	switch node.Kind {
	case NodeCommand:
		r := b.tree.add(newResult(ResultCommand, node.Symbol, node.Token), parent)
		if parent == nil {
			b.root = r
		}
		b.innermost = r
		for _, child := range node.Children {
			b.visit(child, r)
		}
	case NodeDirective:
		b.directives.add(node.DirectiveName, node.DirectiveValue)
	case NodeOption:
		b.visitOption(node, parent)
	case NodeCommandArgument:
		arg := node.Symbol.(*Argument)
		argResult := parent.ChildFor(arg)
		if argResult == nil {
			argResult = b.tree.add(newResult(ResultArgument, arg, Token{}), parent)
		}
		argResult.tokens = append(argResult.tokens, node.Token)
		parent.tokens = append(parent.tokens, node.Token)
	default:
		panic(fmt.Sprintf("cmdline: unexpected %s node under a command", node.Kind))
	}
}

// visitOption folds repeated occurrences of an option into one result. Values
// beyond the option's capacity are reported, detached from the syntax tree
// and handed back as unmatched.
func (b *resultBuilder) visitOption(node *SyntaxNode, parent *SymbolResult) {
	opt := node.Symbol.(*Option)
	optResult := parent.ChildFor(opt)
	if optResult == nil {
		optResult = b.tree.add(newResult(ResultOption, opt, node.Token), parent)
		b.tree.add(newResult(ResultArgument, opt.Argument(), Token{}), optResult)
	}
	argResult := optResult.ChildFor(opt.Argument())

	kept := node.Children[:0]
	for _, child := range node.Children {
		if child.Kind != NodeOptionArgument {
			panic(fmt.Sprintf("cmdline: unexpected %s node under an option", child.Kind))
		}
		if optResult.IsArgumentLimitReached() {
			msg := fmt.Sprintf("Option '%s' expects at most %d argument(s).",
				node.Token.Value, optResult.MaximumArgumentCapacity())
			optResult.setError(msg)
			b.errors = append(b.errors, ParseError{Message: msg, SymbolResult: optResult})
			b.log.Debugf("option %q is full, %q becomes unmatched", opt.Name(), child.Token.Value)
			b.unmatched = append(b.unmatched, child.Token)
			child.Parent = nil
			continue
		}
		kept = append(kept, child)
		optResult.tokens = append(optResult.tokens, child.Token)
		argResult.tokens = append(argResult.tokens, child.Token)
	}
	node.Children = kept
}

// addImplicitResults fills in options and arguments that were not typed but
// declare a default value.
func (b *resultBuilder) addImplicitResults(cmdResult *SymbolResult) {
	cmd := cmdResult.Command()
	for _, opt := range cmd.Options() {
		if !opt.Argument().HasDefault() || b.find(opt) != nil {
			continue
		}
		tok := Token{
			Value:    LongestAlias(opt.Aliases()),
			Kind:     TokenOption,
			Position: ImplicitPosition,
			Symbol:   opt,
		}
		optResult := b.tree.add(newResult(ResultOption, opt, tok), cmdResult)
		optResult.implicit = true
		argResult := b.tree.add(newResult(ResultArgument, opt.Argument(), Token{}), optResult)
		argResult.implicit = true
	}
	for _, arg := range cmd.Arguments() {
		if !arg.HasDefault() || cmdResult.ChildFor(arg) != nil {
			continue
		}
		argResult := b.tree.add(newResult(ResultArgument, arg, Token{}), cmdResult)
		argResult.implicit = true
	}
}

func (b *resultBuilder) find(s Symbol) *SymbolResult {
	for _, r := range b.tree.results {
		if r.symbol == s {
			return r
		}
	}
	return nil
}
