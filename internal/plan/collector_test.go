package plan

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"op-overloading/internal/analyze"
	"op-overloading/internal/common"
	"op-overloading/internal/operator"
)

func parse(t *testing.T, code, id string) *analyze.File {
	t.Helper()

	f, err := analyze.Parse(code, id)
	require.NoError(t, err)
	t.Cleanup(f.Close)

	return f
}

// span locates the first occurrence of sub in code.
func span(t *testing.T, code, sub string) common.Span {
	t.Helper()

	i := strings.Index(code, sub)
	require.GreaterOrEqual(t, i, 0, "%q not in %q", sub, code)

	return common.Span{Start: i, End: i + len(sub)}
}

func TestCollector_Binary(t *testing.T) {
	code := "const r = a + b;"
	f := parse(t, code, "a.js")

	got := NewCollector(operator.DefaultPolicy()).Collect(f)

	want := []Record{{
		Kind:     KindBinary,
		Operator: "+",
		Span:     span(t, code, "a + b"),
		Left:     span(t, code, "a"),
		Right:    span(t, code, "b"),
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_VisitationOrder(t *testing.T) {
	code := "x = a + b * c - -d;"
	f := parse(t, code, "a.js")

	got := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, got, 4, spew.Sdump(got))

	// (a + b * c) - (-d): pre-order visits the outermost expression first.
	assert.Equal(t, "-", got[0].Operator)
	assert.Equal(t, "a + b * c - -d", got[0].Span.Text(code))
	assert.Equal(t, "+", got[1].Operator)
	assert.Equal(t, "*", got[2].Operator)
	assert.Equal(t, "b * c", got[2].Span.Text(code))
	assert.Equal(t, KindUnary, got[3].Kind)
	assert.Equal(t, "d", got[3].Argument.Text(code))
}

func TestCollector_EqualityGate(t *testing.T) {
	code := "p = a == b; q = a != b; s = a === b; u = a !== b;"

	tests := []struct {
		mode operator.EqualityMode
		want []string
	}{
		{operator.EqualityOff, nil},
		{operator.EqualityLoose, []string{"==", "!="}},
		{operator.EqualityStrict, []string{"===", "!=="}},
		{operator.EqualityBoth, []string{"==", "!=", "===", "!=="}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			f := parse(t, code, "a.js")
			recs := NewCollector(operator.Policy{Equality: tt.mode}).Collect(f)

			var ops []string
			for _, r := range recs {
				assert.True(t, r.Equality, r.Operator)
				ops = append(ops, r.Operator)
			}
			assert.Equal(t, tt.want, ops)
		})
	}
}

func TestCollector_SkipsIneligible(t *testing.T) {
	code := "x = (a && b) || c; q = p ?? r; y = typeof a; z = void 0; w = a instanceof B; i++; delete o.k;"
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	assert.Empty(t, recs, spew.Sdump(recs))
}

func TestCollector_Membership(t *testing.T) {
	code := "has = 'foo' in map; for (const k in obj) {}"
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, recs, 1, spew.Sdump(recs))
	assert.Equal(t, "in", recs[0].Operator)
	assert.Equal(t, "'foo'", recs[0].Left.Text(code))
	assert.Equal(t, "map", recs[0].Right.Text(code))
}

func TestCollector_Unary(t *testing.T) {
	code := "a = +x; b = -y; c = ~z; d = !w;"
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, recs, 4)

	for i, op := range []string{"+", "-", "~", "!"} {
		assert.Equal(t, KindUnary, recs[i].Kind)
		assert.Equal(t, op, recs[i].Operator)
		assert.Equal(t, []common.Span{recs[i].Argument}, recs[i].Operands())
	}
}

func TestCollector_ParenthesizedOperand(t *testing.T) {
	code := "r = (a + b) * c;"
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, recs, 2)
	assert.Equal(t, "(a + b)", recs[0].Left.Text(code))
	assert.Equal(t, "a + b", recs[1].Span.Text(code))
}

func TestCollector_TypeScript(t *testing.T) {
	code := "const v: Vec = (a as Vec) + b;\nlet n: number = (x as number) - 1;"
	f := parse(t, code, "a.ts")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, recs, 2, spew.Sdump(recs))
	assert.Equal(t, "(a as Vec)", recs[0].Left.Text(code))
	assert.Equal(t, "-", recs[1].Operator)
}

func TestCollector_SkipsGeneratedCode(t *testing.T) {
	code := `const r = (() => {
  "operator-overloading disabled";
  const __lhs = a;
  const __rhs = b;
  const __sym = Symbol.for("+");
  return __lhs != null && __lhs[__sym] !== undefined
    ? __lhs[__sym](__rhs)
    : (__lhs + __rhs);
})();
const n = !(() => {
  "operator-overloading disabled";
  const __res = x;
  return !!__res;
})();
const plain = c * d;`
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.Policy{Equality: operator.EqualityBoth}).Collect(f)
	require.Len(t, recs, 1, spew.Sdump(recs))
	assert.Equal(t, "c * d", recs[0].Span.Text(code))
}

func TestCollector_MarkerInHandWrittenFunction(t *testing.T) {
	code := `function raw(a, b) {
  "operator-overloading disabled";
  return a + b;
}
const cooked = (a, b) => a + b;`
	f := parse(t, code, "a.js")

	recs := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, recs, 1)
	assert.Greater(t, recs[0].Span.Start, strings.Index(code, "cooked"))
}

func TestCollector_Build(t *testing.T) {
	code := "\"use operator overloading\"\nconst r = a + b;"
	f := parse(t, code, "a.js")

	p := NewCollector(operator.DefaultPolicy()).Build(f)
	require.NotNil(t, p.Directive)
	assert.Equal(t, `"use operator overloading"`, p.Directive.Text(code))
	require.Len(t, p.Records, 1)

	f2 := parse(t, "const r = a + b;", "a.js")
	p2 := NewCollector(operator.DefaultPolicy()).Build(f2)
	assert.Nil(t, p2.Directive)
	assert.Len(t, p2.Records, 1)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Binary", KindBinary.String())
	assert.Equal(t, "Unary", KindUnary.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestCollector_AwaitOperandIsAsync(t *testing.T) {
	code := "async function f() { return (await x) + 1; }"
	f := parse(t, code, "a.js")

	got := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, got, 1)
	assert.True(t, got[0].Async)
	assert.Equal(t, "+", got[0].Operator)
}

func TestCollector_AwaitInNestedFunctionIsNotAsync(t *testing.T) {
	code := "const r = a + (async () => await b);"
	f := parse(t, code, "a.js")

	got := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, got, 1)
	assert.False(t, got[0].Async)
}

func TestCollector_SkipsYieldOperand(t *testing.T) {
	code := "function* g() { const r = (yield v) + 1; const s = a - b; }"
	f := parse(t, code, "a.js")

	got := NewCollector(operator.DefaultPolicy()).Collect(f)
	require.Len(t, got, 1, spew.Sdump(got))
	assert.Equal(t, "-", got[0].Operator)
}

func TestCollector_NeedsSemicolon(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"after unterminated call", "f()\na + b", true},
		{"after object literal", "const o = {}\na + b", true},
		{"inside block", "{ f()\n  a + b }", true},
		{"after semicolon", "f();\na + b", false},
		{"first statement", "a + b", false},
		{"after directive", "\"use operator overloading\"\na + b", false},
		{"after comment", "// note\na + b", false},
		{"not leading", "f()\nx = a + b", false},
		{"if body", "if (c)\n  a + b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCollector(operator.DefaultPolicy()).Collect(parse(t, tt.code, "a.js"))
			require.Len(t, got, 1, spew.Sdump(got))

			assert.Equal(t, tt.want, got[0].NeedsSemicolon)
		})
	}
}
