package cmdline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ValueType int

const (
	TypeString ValueType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeDuration
	TypeStringSlice
	TypeIntSlice
)

var valueTypeNames = map[ValueType]string{
	TypeString:      "string",
	TypeBool:        "bool",
	TypeInt:         "int",
	TypeFloat:       "float",
	TypeDuration:    "duration",
	TypeStringSlice: "[]string",
	TypeIntSlice:    "[]int",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseValueType maps a type name as written in definitions to a ValueType.
func ParseValueType(name string) (ValueType, error) {
	switch name {
	case "", "string":
		return TypeString, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "int", "integer":
		return TypeInt, nil
	case "float", "number":
		return TypeFloat, nil
	case "duration":
		return TypeDuration, nil
	case "[]string", "strings":
		return TypeStringSlice, nil
	case "[]int", "ints":
		return TypeIntSlice, nil
	}
	return TypeString, fmt.Errorf("unknown value type %q", name)
}

func (t ValueType) IsSlice() bool {
	return t == TypeStringSlice || t == TypeIntSlice
}

// Zero is the value GetValue yields when nothing was supplied and no default exists.
func (t ValueType) Zero() any {
	switch t {
	case TypeString:
		return ""
	case TypeBool:
		return false
	case TypeInt:
		return 0
	case TypeFloat:
		return 0.0
	case TypeDuration:
		return time.Duration(0)
	case TypeStringSlice:
		return []string{}
	case TypeIntSlice:
		return []int{}
	}
	panic(fmt.Sprintf("cmdline: unsupported value type %d", int(t)))
}

// isBooleanLiteral accepts true/false in any case, ignoring surrounding space.
func isBooleanLiteral(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || strings.EqualFold(s, "false")
}

// Converter turns the raw token values bound to an argument into a typed value.
type Converter func(values []string) (any, error)

func convertValues(t ValueType, values []string) (any, error) {
	switch t {
	case TypeStringSlice:
		return append([]string{}, values...), nil
	case TypeIntSlice:
		out := make([]int, 0, len(values))
		for _, v := range values {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as int", v)
			}
			out = append(out, n)
		}
		return out, nil
	}

	if len(values) == 0 {
		return t.Zero(), nil
	}
	if len(values) > 1 {
		return nil, fmt.Errorf("expected a single %s value, got %d", t, len(values))
	}
	v := values[0]
	switch t {
	case TypeString:
		return v, nil
	case TypeBool:
		if !isBooleanLiteral(v) {
			return nil, fmt.Errorf("cannot parse %q as bool", v)
		}
		return strings.EqualFold(strings.TrimSpace(v), "true"), nil
	case TypeInt:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int", v)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", v)
		}
		return f, nil
	case TypeDuration:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as duration", v)
		}
		return d, nil
	}
	panic(fmt.Sprintf("cmdline: unsupported value type %d", int(t)))
}

// Parse converts raw values with the built in rules for t.
func (t ValueType) Parse(values []string) (any, error) {
	return convertValues(t, values)
}
