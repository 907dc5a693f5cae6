package plan

import (
	"op-overloading/internal/common"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind tags a Record as binary or unary.
type Kind int

const (
	_ Kind = iota

	KindBinary
	KindUnary
)

// Record is one operator expression to be rewritten.
// All spans refer to the original, unmodified source text.
type Record struct {
	Kind Kind
	// Operator is the operator token as written, e.g. "+", "!==" or "in".
	Operator string
	// Span covers the whole expression.
	Span common.Span
	// Left and Right are the operand spans of a binary record.
	Left  common.Span
	Right common.Span
	// Argument is the operand span of a unary record.
	Argument common.Span
	// Equality marks ==, !=, === and !==, which get boolean normalisation.
	Equality bool
	// Async is set when an operand awaits; the dispatch IIFE must then be
	// an async function awaited in place.
	Async bool
	// NeedsSemicolon is set when the expression opens a statement that
	// follows an unterminated one. The rewrite starts with "(", so it gets a
	// leading ";" to keep it from continuing the previous statement.
	NeedsSemicolon bool
}

// Operands returns the operand spans in source order.
func (r Record) Operands() []common.Span {
	if r.Kind == KindUnary {
		return []common.Span{r.Argument}
	}

	return []common.Span{r.Left, r.Right}
}

// Plan is the collected input of the rewrite phase.
type Plan struct {
	// Directive is the directive statement span, nil when the file has none.
	Directive *common.Span
	// Records are in tree visitation order.
	Records []Record
}

// Marker is the string statement that opens every generated dispatch IIFE.
const Marker = "operator-overloading disabled"
