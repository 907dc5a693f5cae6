// Package options holds the plugin configuration: the raw, partially filled
// options as read from YAML or flags, their resolution into concrete values,
// and the include/exclude filter applied to module ids.
//
// Configuration file example (.op-overloading.yaml):
//
//	equality: loose
//	include:
//	  - "/\\.[cm]?[jt]sx?$/"
//	  - "src/**/*.vue"
//	exclude: /node_modules/
//	enforce: pre
//	debug: false
//	symbolsNamespace: vec
//
// Patterns written as /source/flags are regular expressions with JavaScript
// semantics. Any other pattern is a doublestar glob.
//
// symbolsNamespace accepts a string or false. enforce accepts pre, post or
// none, where none leaves the ordering to the host.
package options
