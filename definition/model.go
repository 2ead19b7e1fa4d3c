package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/cmdline/cmdline"
)

type Command struct {
	Name                         string     `yaml:"name"`
	Aliases                      []string   `yaml:"aliases"`
	Description                  string     `yaml:"description"`
	Hidden                       bool       `yaml:"hidden"`
	Runnable                     bool       `yaml:"runnable"`
	TreatUnmatchedTokensAsErrors *bool      `yaml:"treatUnmatchedTokensAsErrors"`
	Options                      []Option   `yaml:"options"`
	Arguments                    []Argument `yaml:"arguments"`
	Commands                     []Command  `yaml:"commands"`
}

// Option describes a named option. Without a type, arity, default or
// choices the option is a boolean flag.
type Option struct {
	Name                           string   `yaml:"name"`
	Aliases                        []string `yaml:"aliases"`
	Description                    string   `yaml:"description"`
	Hidden                         bool     `yaml:"hidden"`
	Required                       bool     `yaml:"required"`
	Recursive                      bool     `yaml:"recursive"`
	AllowMultipleArgumentsPerToken bool     `yaml:"allowMultipleArgumentsPerToken"`
	Type                           string   `yaml:"type"`
	Arity                          *Arity   `yaml:"arity"`
	Default                        *Values  `yaml:"default"`
	Choices                        []string `yaml:"choices"`
}

type Argument struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Arity       *Arity   `yaml:"arity"`
	Default     *Values  `yaml:"default"`
	Choices     []string `yaml:"choices"`
}

// Arity is written either as a mapping {min: 1, max: unbounded} or in the
// short form "1..*".
type Arity struct {
	cmdline.Arity
}

func (a *Arity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := cmdline.ParseArity(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		a.Arity = parsed
		return nil
	}

	var raw struct {
		Min int    `yaml:"min"`
		Max *Bound `yaml:"max"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	max := raw.Min
	if raw.Max != nil {
		max = int(*raw.Max)
	}
	parsed, err := cmdline.NewArity(raw.Min, max)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	a.Arity = parsed
	return nil
}

// Bound is an arity maximum; "unbounded" and "*" stand for cmdline.Unbounded.
type Bound int

func (b *Bound) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "unbounded", "*":
		*b = cmdline.Unbounded
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("line %d: arity max must be a number or unbounded", value.Line)
	}
	*b = Bound(n)
	return nil
}

// Values holds default values written as a scalar or a sequence of scalars.
type Values []string

func (v *Values) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*v = Values{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make(Values, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: default values must be scalars", item.Line)
			}
			out = append(out, item.Value)
		}
		*v = out
		return nil
	}
	return fmt.Errorf("line %d: default must be a scalar or a list", value.Line)
}
