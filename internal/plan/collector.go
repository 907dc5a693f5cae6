package plan

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"op-overloading/internal/analyze"
	"op-overloading/internal/operator"
)

// Collector turns a parsed file into Records.
type Collector struct {
	policy operator.Policy
}

// NewCollector creates a Collector for the given policy.
func NewCollector(policy operator.Policy) *Collector {
	return &Collector{policy: policy}
}

// Build locates the directive and collects every eligible expression.
func (c *Collector) Build(file *analyze.File) *Plan {
	p := &Plan{Records: c.Collect(file)}

	if span, ok := file.Directive(); ok {
		p.Directive = &span
	}

	return p
}

// Collect walks the tree in pre-order and returns the eligible expressions
// in visitation order.
func (c *Collector) Collect(file *analyze.File) []Record {
	var records []Record

	cursor := sitter.NewTreeCursor(file.Root())
	defer cursor.Close()

	for {
		if rec, ok := c.visit(file, cursor.CurrentNode()); ok {
			records = append(records, rec)
		}

		if cursor.GoToFirstChild() {
			continue
		}

		for !cursor.GoToNextSibling() {
			if !cursor.GoToParent() {
				return records
			}
		}
	}
}

func (c *Collector) visit(file *analyze.File, node *sitter.Node) (Record, bool) {
	if !node.IsNamed() {
		return Record{}, false
	}

	switch node.Type() {
	case "binary_expression":
		return c.binary(file, node)
	case "unary_expression":
		return c.unary(file, node)
	default:
		return Record{}, false
	}
}

func (c *Collector) binary(file *analyze.File, node *sitter.Node) (Record, bool) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	opNode := node.ChildByFieldName("operator")

	if left == nil || right == nil || opNode == nil {
		return Record{}, false
	}

	op := opNode.Type()
	if !c.policy.IsEligibleBinary(op) || insideGeneratedCode(file, node) {
		return Record{}, false
	}

	// `#field in obj` tests a private brand; the left side is not a value.
	if op == operator.In && left.Type() == "private_property_identifier" {
		return Record{}, false
	}

	async, ok := suspension(node)
	if !ok {
		return Record{}, false
	}

	return Record{
		Kind:     KindBinary,
		Operator: op,
		Span:     file.Span(node),
		Left:     file.Span(left),
		Right:    file.Span(right),
		Equality: operator.IsEquality(op),
		Async:    async,

		NeedsSemicolon: needsSemicolon(file, node),
	}, true
}

func (c *Collector) unary(file *analyze.File, node *sitter.Node) (Record, bool) {
	arg := node.ChildByFieldName("argument")
	opNode := node.ChildByFieldName("operator")

	if arg == nil || opNode == nil {
		return Record{}, false
	}

	op := opNode.Type()
	if !operator.IsEligibleUnary(op) || insideGeneratedCode(file, node) {
		return Record{}, false
	}

	async, ok := suspension(node)
	if !ok {
		return Record{}, false
	}

	return Record{
		Kind:     KindUnary,
		Operator: op,
		Span:     file.Span(node),
		Argument: file.Span(arg),
		Async:    async,

		NeedsSemicolon: needsSemicolon(file, node),
	}, true
}

// statementLists are the nodes whose children run as a statement sequence.
var statementLists = map[string]bool{
	"program":            true,
	"statement_block":    true,
	"switch_case":        true,
	"switch_default":     true,
	"class_static_block": true,
}

// needsSemicolon reports whether node opens an expression statement whose
// previous statement ends without ";". Comments and the directive, which is
// removed from the output, are not counted as statements.
func needsSemicolon(file *analyze.File, node *sitter.Node) bool {
	stmt := node
	for stmt.Type() != "expression_statement" {
		parent := stmt.Parent()
		if parent == nil || parent.StartByte() != node.StartByte() {
			return false
		}

		stmt = parent
	}

	if parent := stmt.Parent(); parent == nil || !statementLists[parent.Type()] {
		return false
	}

	directive, hasDirective := file.Directive()

	for prev := stmt.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch {
		case prev.Type() == "comment" || prev.Type() == "html_comment" || prev.Type() == "hash_bang_line":
			continue
		case hasDirective && file.Span(prev) == directive:
			continue
		}

		return !strings.HasSuffix(file.Text(prev), ";")
	}

	return false
}

// suspension looks for await and yield in the operands of node, without
// descending into nested functions. An operand that yields cannot be moved
// into an arrow function, so ok is false for it.
func suspension(node *sitter.Node) (async, ok bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch {
		case child.Type() == "yield_expression":
			return false, false
		case child.Type() == "await_expression":
			async = true
		case functionKinds[child.Type()] || child.Type() == "class_body":
			continue
		}

		a, k := suspension(child)
		if !k {
			return false, false
		}

		async = async || a
	}

	return async, true
}

// insideGeneratedCode reports whether node belongs to a dispatch IIFE
// emitted by the rewriter: it sits inside a function whose body opens with
// the Marker statement, or it is the "!" wrapped around such an IIFE for a
// negated equality. Records are collected before any text is generated, so
// within one call this only matters for input that already went through the
// rewriter once.
func insideGeneratedCode(file *analyze.File, node *sitter.Node) bool {
	if node.Type() == "unary_expression" && isNegatedDispatch(file, node) {
		return true
	}

	for p := node.Parent(); p != nil; p = p.Parent() {
		if isDispatchFunction(file, p) {
			return true
		}
	}

	return false
}

// functionKinds are the nodes whose body may open with Marker. Besides the
// generated arrow functions this lets a hand-written function opt out.
var functionKinds = map[string]bool{
	"arrow_function":                 true,
	"function":                       true,
	"function_expression":            true,
	"function_declaration":           true,
	"generator_function":             true,
	"generator_function_declaration": true,
	"method_definition":              true,
}

// isDispatchFunction reports a function whose body starts with Marker.
func isDispatchFunction(file *analyze.File, n *sitter.Node) bool {
	if !functionKinds[n.Type()] {
		return false
	}

	body := n.ChildByFieldName("body")
	if body == nil || body.Type() != "statement_block" {
		return false
	}

	value, ok := file.StringStatement(analyze.FirstStatement(body))

	return ok && value == Marker
}

// isNegatedDispatch reports `!(() => { "<marker>"; ... })()`.
func isNegatedDispatch(file *analyze.File, n *sitter.Node) bool {
	opNode := n.ChildByFieldName("operator")
	if opNode == nil || opNode.Type() != "!" {
		return false
	}

	call := n.ChildByFieldName("argument")
	if call == nil || call.Type() != "call_expression" {
		return false
	}

	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "parenthesized_expression" {
		return false
	}

	for i := 0; i < int(fn.NamedChildCount()); i++ {
		if isDispatchFunction(file, fn.NamedChild(i)) {
			return true
		}
	}

	return false
}
