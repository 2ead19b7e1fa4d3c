package cmdline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unbounded is the maximum of an arity that accepts any number of values.
const Unbounded = math.MaxInt32

type Arity struct {
	Min int
	Max int
}

var (
	ArityZero       = Arity{Min: 0, Max: 0}
	ArityZeroOrOne  = Arity{Min: 0, Max: 1}
	ArityExactlyOne = Arity{Min: 1, Max: 1}
	ArityZeroOrMore = Arity{Min: 0, Max: Unbounded}
	ArityOneOrMore  = Arity{Min: 1, Max: Unbounded}
)

func NewArity(min, max int) (Arity, error) {
	if min < 0 {
		return Arity{}, fmt.Errorf("arity minimum %d is negative", min)
	}
	if max < min {
		return Arity{}, fmt.Errorf("arity maximum %d is below minimum %d", max, min)
	}
	return Arity{Min: min, Max: max}, nil
}

func (a Arity) IsUnbounded() bool {
	return a.Max >= Unbounded
}

func (a Arity) String() string {
	if a.IsUnbounded() {
		return fmt.Sprintf("%d..*", a.Min)
	}
	return fmt.Sprintf("%d..%d", a.Min, a.Max)
}

// ParseArity reads the forms String produces, "2..*", and a bare count "1"
// meaning exactly that many.
func ParseArity(s string) (Arity, error) {
	lo, hi, ranged := strings.Cut(strings.TrimSpace(s), "..")
	min, err := strconv.Atoi(lo)
	if err != nil {
		return Arity{}, fmt.Errorf("invalid arity %q", s)
	}
	if !ranged {
		return NewArity(min, min)
	}
	if hi == "*" {
		return NewArity(min, Unbounded)
	}
	max, err := strconv.Atoi(hi)
	if err != nil {
		return Arity{}, fmt.Errorf("invalid arity %q", s)
	}
	return NewArity(min, max)
}

// defaultArity picks the arity an argument gets when none was declared.
func defaultArity(t ValueType, forOption, hasDefault bool) Arity {
	var a Arity
	switch {
	case t == TypeBool && forOption:
		a = ArityZeroOrOne
	case t.IsSlice() && forOption:
		a = ArityZeroOrMore
	case t.IsSlice():
		a = ArityOneOrMore
	default:
		a = ArityExactlyOne
	}
	if hasDefault {
		a.Min = 0
	}
	return a
}
