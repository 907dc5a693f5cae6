package transform

import (
	"errors"
	"fmt"

	"op-overloading/internal/analyze"
	"op-overloading/internal/common"
	"op-overloading/internal/diagnostic"
)

// Report describes what a transform of one module would do.
type Report struct {
	ID string
	// Directive is true when the module opted in.
	Directive bool
	// Collected counts eligible expressions, Rewritten those that were
	// applied and Skipped those dropped as overlapping.
	Collected int
	Rewritten int
	Skipped   int
	// Result is the transform output, nil when nothing changed.
	Result *Result

	Diagnostics diagnostic.Diagnostics
}

// Check runs the pipeline and reports on it instead of only returning the
// output.
func (t *Transformer) Check(code, id string) *Report {
	rep := &Report{ID: id}

	out, p, err := t.run(code, id)

	var syntax *analyze.SyntaxError

	switch {
	case errors.Is(err, errNoDirective):
		rep.Diagnostics.AddInfo(diagnostic.CodeNoDirective, "module does not opt in", id)

		return rep
	case errors.As(err, &syntax):
		rep.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeSyntaxError,
			Message:  fmt.Sprintf("syntax error near %q", syntax.Near),
			File:     id,
			Line:     syntax.Line,
			Column:   syntax.Column,
		})

		return rep
	case err != nil:
		rep.Diagnostics.AddError(diagnostic.CodeInternal, err.Error(), id)

		return rep
	}

	rep.Directive = true
	rep.Collected = len(p.Records)
	rep.Diagnostics.AddInfo(diagnostic.CodeDirectiveFound, "module opts in to operator overloading", id)

	if out == nil {
		return rep
	}

	rep.Rewritten = len(out.Applied)
	rep.Skipped = len(out.Skipped)
	rep.Result = &Result{Code: out.Code, Map: out.Map}

	for _, rec := range out.Skipped {
		line, col := common.LineColumn(code, rec.Span.Start)
		rep.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeRewriteSkipped,
			Message:  fmt.Sprintf("%q overlaps an earlier rewrite and was left as is", rec.Operator),
			File:     id,
			Line:     line,
			Column:   col,
		})
	}

	rep.Diagnostics.AddInfo(diagnostic.CodeRewritten, fmt.Sprintf("%d expression(s) rewritten", rep.Rewritten), id)

	return rep
}
