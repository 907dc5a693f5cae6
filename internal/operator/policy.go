package operator

import "errors"

// ErrUnknownEqualityMode is returned for equality modes outside off/loose/strict/both.
var ErrUnknownEqualityMode = errors.New("unknown equality mode")

// Policy decides which operators are rewritten and how their dispatch keys
// are spelled.
type Policy struct {
	// Equality gates the equality family.
	Equality EqualityMode
	// Namespace, when non-empty, prefixes every dispatch key as "<ns>/<key>".
	Namespace string
}

// DefaultPolicy leaves equality operators alone and uses bare keys.
func DefaultPolicy() Policy {
	return Policy{Equality: EqualityOff}
}

// IsEligibleBinary reports whether a binary operator should be rewritten.
func (p Policy) IsEligibleBinary(op string) bool {
	switch Classify(op) {
	case CategoryArithmetic, CategoryBitwise, CategoryRelational, CategoryMembership:
		return true
	case CategoryEquality:
		return p.Equality.allows(op)
	default:
		return false
	}
}

// IsEligibleUnary reports whether a unary operator should be rewritten.
// It does not depend on the policy.
func IsEligibleUnary(op string) bool {
	_, ok := unaryKeys[op]
	return ok
}

// DispatchKey returns the Symbol.for key used for a binary operator.
func (p Policy) DispatchKey(op string) string {
	return p.namespaced(op)
}

// UnaryDispatchKey returns the Symbol.for key used for a unary operator.
func (p Policy) UnaryDispatchKey(op string) string {
	key, ok := unaryKeys[op]
	if !ok {
		key = op
	}

	return p.namespaced(key)
}

func (p Policy) namespaced(key string) string {
	if p.Namespace == "" {
		return key
	}

	return p.Namespace + "/" + key
}
