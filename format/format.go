package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/cmdline/cmdline"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(result *cmdline.ParseResult) error
}

// New returns the encoder registered under name, or nil.
func New(name string, w io.Writer) Encoder {
	switch name {
	case "json":
		return NewJSONEncoder(w)
	case "text":
		return NewTextEncoder(w)
	case "syntax":
		return NewSyntaxJSONEncoder(w)
	case "line":
		return NewLineEncoder(w)
	}
	return nil
}

// Names lists the encoders New knows about.
func Names() []string {
	return []string{"json", "line", "syntax", "text"}
}
