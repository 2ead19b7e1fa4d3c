package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cmdline/cmdline"
)

// SyntaxJSONEncoder writes the raw syntax tree, before symbol results are
// built.
type SyntaxJSONEncoder struct {
	w      io.Writer
	result *cmdline.ParseResult
}

func NewSyntaxJSONEncoder(w io.Writer) *SyntaxJSONEncoder {
	return &SyntaxJSONEncoder{w: w}
}

func (e *SyntaxJSONEncoder) Encode(result *cmdline.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *SyntaxJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.result.SyntaxTree()), "", "  ")
}

type syntaxJSONNode struct {
	Kind     string            `json:"kind"`
	Token    string            `json:"token,omitempty"`
	Position *int              `json:"position,omitempty"`
	Symbol   string            `json:"symbol,omitempty"`
	Name     string            `json:"name,omitempty"`
	Value    *string           `json:"value,omitempty"`
	Children []*syntaxJSONNode `json:"children,omitempty"`
}

func nodeToJSON(n *cmdline.SyntaxNode) *syntaxJSONNode {
	jn := &syntaxJSONNode{
		Kind:  n.Kind.String(),
		Token: n.Token.Value,
	}

	if !n.Token.Implicit() {
		pos := n.Token.Position
		jn.Position = &pos
	}

	if n.Symbol != nil {
		jn.Symbol = n.Symbol.Name()
	}

	if n.Kind == cmdline.NodeDirective {
		jn.Name = n.DirectiveName
		jn.Value = n.DirectiveValue
	}

	for _, child := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(child))
	}
	return jn
}
