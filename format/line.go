package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cmdline/cmdline"
)

// LineEncoder writes one tab separated record per token, unmatched token and
// error, for consumption by shell tools.
type LineEncoder struct {
	w      io.Writer
	result *cmdline.ParseResult
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(result *cmdline.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.result

	for _, tok := range r.Tokens() {
		fmt.Fprintf(&sb, "token\t%s\t%d\t%s\n", tok.Kind, tok.Position, tok.Value)
	}

	for _, tok := range r.UnmatchedTokens() {
		fmt.Fprintf(&sb, "unmatched\t%d\t%s\n", tok.Position, tok.Value)
	}

	for _, pe := range r.Errors() {
		fmt.Fprintf(&sb, "error\t%s\t%s\n", oneLine(pe.Message), strings.Join(pe.Suggestions, ","))
	}

	return []byte(sb.String()), nil
}

// EncodeCompletions writes a label and its detail per line.
func (e *LineEncoder) EncodeCompletions(items []cmdline.CompletionItem) error {
	var sb strings.Builder
	for _, item := range items {
		if item.Detail != "" {
			fmt.Fprintf(&sb, "%s\t%s\n", item.Label, oneLine(item.Detail))
			continue
		}
		sb.WriteString(item.Label + "\n")
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
