// Package sourcemap builds Source Map v3 documents for rewritten files.
//
// A Builder receives the output as a sequence of copied source ranges and
// inserted text. Copied ranges are mapped character by character (the
// "hires" mode of JavaScript tooling); inserted text is mapped to a single
// origin at the start of each generated line it spans. Columns are counted
// in UTF-16 code units, as browsers and Node expect.
package sourcemap
