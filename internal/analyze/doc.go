// Package analyze parses JavaScript and TypeScript source with tree-sitter
// and detects the "use operator overloading" file directive.
//
// The grammar is picked from the file id's extension:
//   - .ts, .mts, .cts: TypeScript
//   - .tsx: TSX
//   - everything else: JavaScript (which also accepts JSX)
//
// A tree that contains ERROR or MISSING nodes is a parse failure. Detection
// never reports a parse failure as an error: a file that does not parse simply
// has no directive.
package analyze
