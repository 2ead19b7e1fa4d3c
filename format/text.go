package format

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/cmdline/cmdline"
)

// TextEncoder writes the indented result tree followed by directives,
// unmatched tokens and errors.
type TextEncoder struct {
	w      io.Writer
	result *cmdline.ParseResult
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(result *cmdline.ParseResult) error {
	e.result = result
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.result

	sb.WriteString(r.RootCommandResult().String())

	directives := r.Directives()
	names := make([]string, 0, len(directives))
	for name := range directives {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range directives[name] {
			if v == nil {
				fmt.Fprintf(&sb, "directive %s\n", name)
				continue
			}
			fmt.Fprintf(&sb, "directive %s=%s\n", name, *v)
		}
	}

	for _, tok := range r.UnmatchedTokens() {
		fmt.Fprintf(&sb, "unmatched %s\n", tok.Value)
	}

	for _, pe := range r.Errors() {
		fmt.Fprintf(&sb, "error: %s\n", pe.Message)
		if len(pe.Suggestions) > 0 {
			fmt.Fprintf(&sb, "  did you mean %s?\n", strings.Join(pe.Suggestions, ", "))
		}
	}

	return []byte(sb.String()), nil
}
