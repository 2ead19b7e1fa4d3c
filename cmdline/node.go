package cmdline

import "strings"

type NodeKind int

const (
	NodeCommand NodeKind = iota
	NodeOption
	NodeCommandArgument
	NodeOptionArgument
	NodeDirective
)

var nodeKindNames = map[NodeKind]string{
	NodeCommand:         "Command",
	NodeOption:          "Option",
	NodeCommandArgument: "CommandArgument",
	NodeOptionArgument:  "OptionArgument",
	NodeDirective:       "Directive",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// SyntaxNode is a node of the tree the matcher builds. Symbol is the command,
// option or argument the token was matched to; directives have none.
type SyntaxNode struct {
	Kind     NodeKind
	Token    Token
	Symbol   Symbol
	Parent   *SyntaxNode
	Children []*SyntaxNode

	DirectiveName  string
	DirectiveValue *string
}

func (n *SyntaxNode) AddChild(child *SyntaxNode) {
	if child != nil {
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *SyntaxNode) ChildrenOfKind(kind NodeKind) []*SyntaxNode {
	var result []*SyntaxNode
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *SyntaxNode) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *SyntaxNode) write(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	b.WriteString(" ")
	if n.Kind == NodeDirective {
		b.WriteString(n.DirectiveName)
		if n.DirectiveValue != nil {
			b.WriteString("=" + *n.DirectiveValue)
		}
	} else {
		b.WriteString(n.Token.Value)
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.write(b, indent+1)
	}
}
