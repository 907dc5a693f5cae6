// Package watch re-runs a handler for source files that change under a
// directory tree. Events are debounced per path so an editor's burst of
// writes produces a single call.
package watch
