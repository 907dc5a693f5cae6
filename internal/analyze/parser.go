package analyze

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"op-overloading/internal/common"
)

// ErrParse is wrapped by every error returned for source that does not parse.
var ErrParse = errors.New("parse failed")

// SyntaxError locates the first ERROR or MISSING node of a tree.
type SyntaxError struct {
	ID     string
	Line   int // 1-based
	Column int // 1-based, in bytes
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.ID, e.Line, e.Column)
	}

	return fmt.Sprintf("%s:%d:%d: syntax error near %q", e.ID, e.Line, e.Column, e.Near)
}

// Unwrap makes errors.Is(err, ErrParse) hold.
func (e *SyntaxError) Unwrap() error {
	return ErrParse
}

// File is a parsed source file. Close releases the tree-sitter tree.
type File struct {
	ID      string
	Source  string
	Dialect Dialect

	src  []byte
	tree *sitter.Tree
}

// Parse parses source as the dialect implied by id.
// A fresh parser is created per call, so Parse is safe for concurrent use.
func Parse(source, id string) (*File, error) {
	dialect := DialectFor(id)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(dialect.language())

	src := []byte(source)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, id, err)
	}

	f := &File{
		ID:      id,
		Source:  source,
		Dialect: dialect,
		src:     src,
		tree:    tree,
	}

	if root := tree.RootNode(); root.HasError() {
		serr := f.syntaxError(root)
		tree.Close()

		return nil, serr
	}

	return f, nil
}

// Root returns the program node.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Span returns the byte range of a node.
func (f *File) Span(n *sitter.Node) common.Span {
	return common.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// Text returns the source text of a node.
func (f *File) Text(n *sitter.Node) string {
	return n.Content(f.src)
}

// Close releases the underlying tree. The File must not be used afterwards.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// syntaxError finds the first error node in document order.
func (f *File) syntaxError(root *sitter.Node) *SyntaxError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	pt := bad.StartPoint()
	near := bad.Content(f.src)

	const maxNear = 24
	if len(near) > maxNear {
		near = near[:maxNear]
	}

	return &SyntaxError{
		ID:     f.ID,
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
		Near:   near,
	}
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}

	if !n.HasError() {
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}

	return nil
}
