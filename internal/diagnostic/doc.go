// Package diagnostic provides structured warnings and errors for transform
// reports, and the editor-side filter that hides type checker complaints
// about overloaded operators.
//
// Key capabilities:
//   - Per-file errors, warnings and infos with source positions
//   - Filtering of TypeScript diagnostics in files that opt in
package diagnostic
