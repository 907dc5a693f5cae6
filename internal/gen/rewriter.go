package gen

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"op-overloading/internal/common"
	"op-overloading/internal/operator"
	"op-overloading/internal/plan"
	"op-overloading/internal/sourcemap"
)

// Output is a rewritten file.
type Output struct {
	// Code is the rewritten source.
	Code string
	// Map maps Code back to the original source.
	Map *sourcemap.Map
	// Applied lists the records that were rewritten, innermost first.
	Applied []plan.Record
	// Skipped lists records dropped because their span conflicted with an
	// earlier rewrite.
	Skipped []plan.Record
	// DirectiveRemoved is true when the directive statement was stripped.
	DirectiveRemoved bool
}

// Rewriter turns records into dispatch code.
type Rewriter struct {
	policy operator.Policy
}

// NewRewriter creates a Rewriter for the given policy.
func NewRewriter(policy operator.Policy) *Rewriter {
	return &Rewriter{policy: policy}
}

// Order sorts records for rewriting: descending start offset, and for equal
// starts the shorter span first. An operand is therefore always rewritten
// before the expression that contains it.
func Order(records []plan.Record) []plan.Record {
	ordered := slices.Clone(records)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Span, ordered[j].Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}

		return a.End < b.End
	})

	return ordered
}

// Rewrite applies records to source. It returns nil when no record was
// applied and there is no directive to remove; the caller must then leave the
// file untouched.
func (r *Rewriter) Rewrite(id, source string, directive *common.Span, records []plan.Record) (*Output, error) {
	st := &rewriteState{
		source:    source,
		generated: make(map[string]string, len(records)),
		leading:   make(map[string]bool),
	}
	out := &Output{}

	for _, rec := range Order(records) {
		operands := rec.Operands()

		if st.conflicts(rec.Span, operands) {
			out.Skipped = append(out.Skipped, rec)
			continue
		}

		texts := make([]string, len(operands))
		for i, sp := range operands {
			texts[i] = st.text(sp)
		}

		replacement, err := r.render(rec, texts)
		if err != nil {
			return nil, fmt.Errorf("rendering %q at %s: %w", rec.Operator, rec.Span, err)
		}

		st.generated[rec.Span.Key()] = replacement
		if rec.NeedsSemicolon {
			st.leading[rec.Span.Key()] = true
		}
		st.applied = append(st.applied, rec.Span)
		out.Applied = append(out.Applied, rec)
	}

	if len(out.Applied) == 0 && directive == nil {
		return nil, nil
	}

	edits := st.edits()
	if directive != nil {
		edits = append(edits, edit{span: directiveRemoval(source, *directive)})
		out.DirectiveRemoved = true

		sort.Slice(edits, func(i, j int) bool { return edits[i].span.Start < edits[j].span.Start })
	}

	b := sourcemap.NewBuilder(source)
	pos := 0

	for _, e := range edits {
		b.Copy(pos, e.span.Start)
		b.Insert(e.text, e.span.Start)
		pos = e.span.End
	}

	b.Copy(pos, len(source))

	out.Code = b.Code()
	out.Map = b.Map(id)

	return out, nil
}

// render builds the replacement text for one record from its operand texts.
func (r *Rewriter) render(rec plan.Record, operands []string) (string, error) {
	data := &templateData{
		Marker:   plan.Marker,
		Open:     syncOpen,
		Close:    syncClose,
		Operator: rec.Operator,
	}

	if rec.Async {
		data.Open, data.Close = asyncOpen, asyncClose
	}

	if rec.Kind == plan.KindUnary {
		data.Argument = operands[0]
		data.Key = r.policy.UnaryDispatchKey(rec.Operator)

		return execute(unaryTemplate, data)
	}

	data.Left, data.Right = operands[0], operands[1]

	switch {
	case rec.Equality:
		data.Operator = operator.Base(rec.Operator)
		data.Negated = operator.IsNegated(rec.Operator)
		data.Key = r.policy.DispatchKey(data.Operator)

		return execute(equalityTemplate, data)
	case rec.Operator == operator.In:
		data.Key = r.policy.DispatchKey(rec.Operator)

		return execute(membershipTemplate, data)
	default:
		data.Key = r.policy.DispatchKey(rec.Operator)

		return execute(binaryTemplate, data)
	}
}

// directiveRemoval extends the directive span over one trailing newline.
func directiveRemoval(source string, span common.Span) common.Span {
	switch {
	case strings.HasPrefix(source[span.End:], "\r\n"):
		span.End += 2
	case strings.HasPrefix(source[span.End:], "\n"):
		span.End++
	}

	return span
}

// edit replaces span with text in the final splice.
type edit struct {
	span common.Span
	text string
}

// rewriteState is the per-call bookkeeping of the apply loop.
type rewriteState struct {
	source string
	// generated maps a span key to the replacement produced for it.
	generated map[string]string
	// leading marks spans whose rewrite needs a ";" in front when it ends up
	// as an outermost edit.
	leading map[string]bool
	// applied holds rewritten spans in the order they were rewritten.
	applied []common.Span
}

// conflicts reports whether span overlaps an earlier rewrite that is not
// nested inside one of its operands.
func (st *rewriteState) conflicts(span common.Span, operands []common.Span) bool {
	for _, a := range st.applied {
		if !a.Overlaps(span) {
			continue
		}

		if !containedInAny(a, operands) {
			return true
		}
	}

	return false
}

// text returns the current text of an operand: its own replacement when it
// was rewritten as a whole, otherwise the original text with the replacements
// of nested rewrites spliced in.
func (st *rewriteState) text(span common.Span) string {
	if s, ok := st.generated[span.Key()]; ok {
		return s
	}

	inner := outermost(st.applied, span)
	if len(inner) == 0 {
		return span.Text(st.source)
	}

	var b strings.Builder

	pos := span.Start
	for _, a := range inner {
		b.WriteString(st.source[pos:a.Start])
		b.WriteString(st.generated[a.Key()])
		pos = a.End
	}

	b.WriteString(st.source[pos:span.End])

	return b.String()
}

// edits returns the outermost rewrites in source order.
func (st *rewriteState) edits() []edit {
	all := common.Span{Start: 0, End: len(st.source)}
	spans := outermost(st.applied, all)

	edits := make([]edit, len(spans))
	for i, s := range spans {
		text := st.generated[s.Key()]
		if st.leading[s.Key()] {
			text = ";" + text
		}

		edits[i] = edit{span: s, text: text}
	}

	return edits
}

// outermost returns the spans of applied that lie within bound and are not
// contained in another such span, sorted by start.
func outermost(applied []common.Span, bound common.Span) []common.Span {
	var within []common.Span

	for _, a := range applied {
		if bound.Contains(a) {
			within = append(within, a)
		}
	}

	sort.Slice(within, func(i, j int) bool {
		if within[i].Start != within[j].Start {
			return within[i].Start < within[j].Start
		}

		return within[i].End > within[j].End
	})

	var result []common.Span

	for _, s := range within {
		if n := len(result); n > 0 && result[n-1].Contains(s) {
			continue
		}

		result = append(result, s)
	}

	return result
}

func containedInAny(s common.Span, outer []common.Span) bool {
	for _, o := range outer {
		if o.Contains(s) {
			return true
		}
	}

	return false
}
