package analyze

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"op-overloading/internal/common"
)

// Directive is the string literal that opts a file into operator overloading.
const Directive = "use operator overloading"

// directiveScanLimit is how many top-level statements are inspected.
const directiveScanLimit = 3

// HasDirective reports whether source carries the directive in one of its
// first three top-level statements.
func HasDirective(source, id string) bool {
	_, ok := FindDirective(source, id)
	return ok
}

// FindDirective returns the span of the directive statement, if any.
// Empty source and source that does not parse have no directive.
func FindDirective(source, id string) (common.Span, bool) {
	if strings.TrimSpace(source) == "" {
		return common.Span{}, false
	}

	f, err := Parse(source, id)
	if err != nil {
		return common.Span{}, false
	}
	defer f.Close()

	return f.Directive()
}

// Directive returns the span of the directive statement in an already parsed file.
func (f *File) Directive() (common.Span, bool) {
	root := f.Root()
	seen := 0

	for i := 0; i < int(root.NamedChildCount()) && seen < directiveScanLimit; i++ {
		stmt := root.NamedChild(i)
		if isTrivia(stmt) {
			continue
		}

		seen++

		if f.isDirective(stmt) {
			return f.Span(stmt), true
		}
	}

	return common.Span{}, false
}

// isTrivia reports nodes that appear among top-level children but are not statements.
func isTrivia(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "hash_bang_line", "html_comment":
		return true
	default:
		return false
	}
}

// isDirective reports whether stmt is a bare expression statement made of a
// single string literal equal to Directive.
func (f *File) isDirective(stmt *sitter.Node) bool {
	value, ok := f.StringStatement(stmt)
	return ok && value == Directive
}

// StringStatement returns the decoded value of stmt when it is an expression
// statement consisting of nothing but a string literal.
func (f *File) StringStatement(stmt *sitter.Node) (string, bool) {
	if stmt == nil || stmt.Type() != "expression_statement" {
		return "", false
	}

	var lit *sitter.Node

	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		child := stmt.NamedChild(i)
		if isTrivia(child) {
			continue
		}

		if lit != nil {
			return "", false
		}

		lit = child
	}

	if lit == nil || lit.Type() != "string" {
		return "", false
	}

	return stringValue(f.Text(lit))
}

// FirstStatement returns the first named child of a block that is not a comment.
func FirstStatement(block *sitter.Node) *sitter.Node {
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if child := block.NamedChild(i); !isTrivia(child) {
			return child
		}
	}

	return nil
}

// stringValue decodes a quoted JavaScript string literal.
func stringValue(raw string) (string, bool) {
	if len(raw) < 2 {
		return "", false
	}

	quote := raw[0]
	if (quote != '"' && quote != '\'') || raw[len(raw)-1] != quote {
		return "", false
	}

	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, true
	}

	return unescape(body)
}

func unescape(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(s) {
			return "", false
		}

		switch c = s[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'x':
			r, n, ok := hexRune(s[i+1:], 2)
			if !ok {
				return "", false
			}

			b.WriteRune(r)
			i += n
		case 'u':
			r, n, ok := unicodeRune(s[i+1:])
			if !ok {
				return "", false
			}

			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), true
}

// unicodeRune decodes the part of a \u escape after the "u": either four hex
// digits or a braced code point.
func unicodeRune(s string) (rune, int, bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, false
		}

		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > 0x10FFFF {
			return 0, 0, false
		}

		return rune(v), end + 1, true
	}

	return hexRune(s, 4)
}

func hexRune(s string, digits int) (rune, int, bool) {
	if len(s) < digits {
		return 0, 0, false
	}

	v, err := strconv.ParseUint(s[:digits], 16, 32)
	if err != nil {
		return 0, 0, false
	}

	return rune(v), digits, true
}
