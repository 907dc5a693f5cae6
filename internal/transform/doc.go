// Package transform is the entry point of the operator overloading rewrite.
//
// A call parses the module once, returns early when the directive is absent,
// collects eligible expressions and hands them to the rewrite engine. Every
// failure inside the pipeline, including panics, degrades to "no change".
//
// Plugin wraps a Transformer with the include/exclude filter and the ordering
// hint expected by bundler hosts.
package transform
