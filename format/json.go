package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cmdline/cmdline"
)

type JSONEncoder struct {
	w      io.Writer
	result *cmdline.ParseResult
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(result *cmdline.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildResultData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonResult struct {
	Command    string               `json:"command"`
	Tree       *jsonSymbol          `json:"tree"`
	Tokens     []jsonToken          `json:"tokens"`
	Unmatched  []jsonToken          `json:"unmatched,omitempty"`
	Errors     []jsonError          `json:"errors,omitempty"`
	Directives map[string][]*string `json:"directives,omitempty"`
}

type jsonSymbol struct {
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	Tokens   []string      `json:"tokens,omitempty"`
	Value    any           `json:"value,omitempty"`
	Implicit bool          `json:"implicit,omitempty"`
	Error    string        `json:"error,omitempty"`
	Children []*jsonSymbol `json:"children,omitempty"`
}

type jsonToken struct {
	Value    string `json:"value"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
}

type jsonError struct {
	Message     string     `json:"message"`
	Symbol      string     `json:"symbol,omitempty"`
	Token       *jsonToken `json:"token,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

func (e *JSONEncoder) buildResultData() jsonResult {
	r := e.result
	data := jsonResult{
		Tree:       buildSymbol(r.RootCommandResult()),
		Tokens:     buildTokens(r.Tokens()),
		Unmatched:  buildTokens(r.UnmatchedTokens()),
		Errors:     e.buildErrors(),
		Directives: r.Directives(),
	}
	if cmd := r.CommandResult(); cmd != nil {
		data.Command = cmd.Symbol().Name()
	}
	if data.Tokens == nil {
		data.Tokens = []jsonToken{}
	}
	return data
}

func buildSymbol(r *cmdline.SymbolResult) *jsonSymbol {
	if r == nil {
		return nil
	}
	js := &jsonSymbol{
		Kind:     r.Kind.String(),
		Name:     r.Symbol().Name(),
		Implicit: r.IsImplicit(),
		Error:    r.ErrorMessage(),
	}
	if r.Kind == cmdline.ResultArgument {
		for _, tok := range r.Tokens() {
			js.Tokens = append(js.Tokens, tok.Value)
		}
		if v, err := r.Value(); err == nil {
			js.Value = v
		}
	}
	for _, child := range r.Children() {
		js.Children = append(js.Children, buildSymbol(child))
	}
	return js
}

func buildTokens(tokens []cmdline.Token) []jsonToken {
	var out []jsonToken
	for _, tok := range tokens {
		out = append(out, toJSONToken(tok))
	}
	return out
}

func toJSONToken(tok cmdline.Token) jsonToken {
	return jsonToken{Value: tok.Value, Kind: tok.Kind.String(), Position: tok.Position}
}

func (e *JSONEncoder) buildErrors() []jsonError {
	var out []jsonError
	for _, pe := range e.result.Errors() {
		je := jsonError{
			Message:     pe.Message,
			Suggestions: pe.Suggestions,
		}
		if pe.SymbolResult != nil {
			je.Symbol = pe.SymbolResult.Symbol().Name()
		}
		if pe.Token != nil {
			tok := toJSONToken(*pe.Token)
			je.Token = &tok
		}
		out = append(out, je)
	}
	return out
}
