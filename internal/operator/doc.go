// Package operator classifies JavaScript operators for overloading.
//
// The tables in this package are fixed at compile time:
//   - binary operators that are always rewritten (arithmetic, bitwise,
//     relational and the membership operator "in")
//   - the equality family, rewritten only when the equality mode allows it
//   - unary operators (+, -, ~, !)
//
// A Policy combines the equality mode with the optional dispatch-key
// namespace and answers eligibility and key questions for the rewriter.
package operator
