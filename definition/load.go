// Package definition loads command trees from YAML documents.
//
//	name: app
//	options:
//	  - name: --verbose
//	    aliases: [-v]
//	    recursive: true
//	commands:
//	  - name: build
//	    options:
//	      - name: --output
//	        aliases: [-o]
//	        type: string
//	    arguments:
//	      - name: target
//	        arity: 0..1
package definition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/cmdline/cmdline"
)

var ErrEmpty = errors.New("definition is empty")

// Error locates a problem inside the definition, e.g. "commands[1].options[0]".
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads a definition file and builds its root command.
func Load(path string) (*cmdline.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definition: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Parse decodes a definition and builds its root command.
func Parse(r io.Reader) (*cmdline.Command, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Command
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	return def.Build()
}

// Build turns the decoded definition into a command tree.
func (c *Command) Build() (*cmdline.Command, error) {
	return c.build("")
}

func (c *Command) build(path string) (*cmdline.Command, error) {
	cmd, err := cmdline.NewCommand(c.Name, c.Aliases...)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cmd.SetDescription(c.Description)
	cmd.Hidden = c.Hidden
	cmd.Runnable = c.Runnable
	if c.TreatUnmatchedTokensAsErrors != nil {
		cmd.TreatUnmatchedTokensAsErrors = *c.TreatUnmatchedTokensAsErrors
	}

	for i := range c.Options {
		p := join(path, "options", i)
		opt, err := c.Options[i].build(p)
		if err != nil {
			return nil, err
		}
		if err := cmd.AddOption(opt); err != nil {
			return nil, &Error{Path: p, Err: err}
		}
	}
	for i := range c.Arguments {
		p := join(path, "arguments", i)
		a := c.Arguments[i]
		arg, err := buildArgument(a.Name, a.Description, a.Type, a.Arity, a.Default, a.Choices)
		if err != nil {
			return nil, &Error{Path: p, Err: err}
		}
		if err := cmd.AddArgument(arg); err != nil {
			return nil, &Error{Path: p, Err: err}
		}
	}
	for i := range c.Commands {
		p := join(path, "commands", i)
		sub, err := c.Commands[i].build(p)
		if err != nil {
			return nil, err
		}
		if err := cmd.AddCommand(sub); err != nil {
			return nil, &Error{Path: p, Err: err}
		}
	}
	return cmd, nil
}

func (o *Option) build(path string) (*cmdline.Option, error) {
	var arg *cmdline.Argument
	if !o.isFlag() {
		var err error
		arg, err = buildArgument(strings.TrimLeft(o.Name, "-/"), "", o.Type, o.Arity, o.Default, o.Choices)
		if err != nil {
			return nil, &Error{Path: path, Err: err}
		}
	}

	opt, err := cmdline.NewOption(o.Name, arg, o.Aliases...)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	opt.SetDescription(o.Description)
	opt.Hidden = o.Hidden
	opt.Required = o.Required
	opt.Recursive = o.Recursive
	opt.AllowMultipleArgumentsPerToken = o.AllowMultipleArgumentsPerToken
	return opt, nil
}

func (o *Option) isFlag() bool {
	return o.Type == "" && o.Arity == nil && o.Default == nil && len(o.Choices) == 0
}

func buildArgument(name, description, typeName string, arity *Arity, def *Values, choices []string) (*cmdline.Argument, error) {
	if name == "" {
		return nil, errors.New("argument has no name")
	}
	t, err := cmdline.ParseValueType(typeName)
	if err != nil {
		return nil, err
	}

	arg := cmdline.NewArgument(name, t).SetDescription(description)
	arg.Choices = choices
	if arity != nil {
		arg.SetArity(arity.Arity)
	}
	if def != nil {
		raw := []string(*def)
		if _, err := t.Parse(raw); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
		arg.SetDefault(func() any {
			v, _ := t.Parse(raw)
			return v
		})
	}
	return arg, nil
}

func join(path, field string, i int) string {
	elem := fmt.Sprintf("%s[%d]", field, i)
	if path == "" {
		return elem
	}
	return path + "." + elem
}
