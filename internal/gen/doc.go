// Package gen rewrites collected operator expressions into dispatch-or-fallback
// code and assembles the output file with its source map.
//
// Generation approach uses text/template for the dispatch IIFEs and a
// two-phase apply: records are processed innermost-first to compute every
// replacement, then the outermost replacements are spliced into the source in
// one pass.
//
// Codegen patterns:
//   - Binary operators: dispatch on the left operand
//   - "in": dispatch on the right operand (the container)
//   - Equality: dispatch on the positive operator, normalise to boolean,
//     negate for != and !==
//   - Unary operators: dispatch on the argument with a unary key
//   - Operands containing await: async IIFE that is awaited in place
package gen
