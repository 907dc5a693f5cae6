// Package plan collects the operator expressions of a parsed file that are
// to be rewritten.
//
// Collection is the first of two phases: it walks the tree once, in
// document pre-order, and produces immutable Records holding byte spans of
// the original source. Nothing is edited here; package gen orders the records
// and applies them.
//
// Collection pipeline:
//  1. Parse (package analyze) and locate the directive
//  2. Visit every binary_expression and unary_expression node
//  3. Keep the ones the operator.Policy allows
package plan
