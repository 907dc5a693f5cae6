package operator

import (
	"fmt"

	"op-overloading/internal/common"
	"op-overloading/internal/match"
)

// Category groups binary operators by how they are rewritten.
type Category int

const (
	CategoryNone Category = iota
	CategoryArithmetic
	CategoryBitwise
	CategoryRelational
	CategoryMembership
	CategoryEquality
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryBitwise:
		return "bitwise"
	case CategoryRelational:
		return "relational"
	case CategoryMembership:
		return "membership"
	case CategoryEquality:
		return "equality"
	default:
		return common.UnknownStr
	}
}

// In is the membership operator. It dispatches on its right operand.
const In = "in"

var binaryOps = map[string]Category{
	"+":  CategoryArithmetic,
	"-":  CategoryArithmetic,
	"*":  CategoryArithmetic,
	"/":  CategoryArithmetic,
	"%":  CategoryArithmetic,
	"**": CategoryArithmetic,

	"&":   CategoryBitwise,
	"|":   CategoryBitwise,
	"^":   CategoryBitwise,
	"<<":  CategoryBitwise,
	">>":  CategoryBitwise,
	">>>": CategoryBitwise,

	"<":  CategoryRelational,
	"<=": CategoryRelational,
	">":  CategoryRelational,
	">=": CategoryRelational,

	In: CategoryMembership,

	"==":  CategoryEquality,
	"!=":  CategoryEquality,
	"===": CategoryEquality,
	"!==": CategoryEquality,
}

// unaryKeys maps each overloadable unary operator to its dispatch key.
// + and - get names so they never collide with the binary keys.
var unaryKeys = map[string]string{
	"+": "plus",
	"-": "minus",
	"~": "~",
	"!": "!",
}

// Classify returns the category of a binary operator token.
func Classify(op string) Category {
	return binaryOps[op]
}

// IsEquality reports whether op is one of ==, !=, === or !==.
func IsEquality(op string) bool {
	return binaryOps[op] == CategoryEquality
}

// IsNegated reports whether op is a negated equality operator.
func IsNegated(op string) bool {
	return op == "!=" || op == "!=="
}

// Base returns the positive form of an equality operator. Other operators
// are returned unchanged.
func Base(op string) string {
	switch op {
	case "!=":
		return "=="
	case "!==":
		return "==="
	default:
		return op
	}
}

// EqualityMode selects which equality operators are rewritten.
type EqualityMode string

const (
	EqualityOff    EqualityMode = "off"
	EqualityLoose  EqualityMode = "loose"
	EqualityStrict EqualityMode = "strict"
	EqualityBoth   EqualityMode = "both"
)

var equalityModes = []string{string(EqualityOff), string(EqualityLoose), string(EqualityStrict), string(EqualityBoth)}

// ParseEqualityMode validates a mode name.
func ParseEqualityMode(s string) (EqualityMode, error) {
	switch m := EqualityMode(s); m {
	case EqualityOff, EqualityLoose, EqualityStrict, EqualityBoth:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (want off, loose, strict or both)%s",
			ErrUnknownEqualityMode, s, match.Hint(s, equalityModes))
	}
}

// allows reports whether the mode enables the given equality operator.
func (m EqualityMode) allows(op string) bool {
	switch m {
	case EqualityLoose:
		return op == "==" || op == "!="
	case EqualityStrict:
		return op == "===" || op == "!=="
	case EqualityBoth:
		return true
	default:
		return false
	}
}
