// Package match finds the closest known spelling for a mistyped value, so
// configuration errors can say "did you mean ...".
package match
