package options

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"

	"op-overloading/internal/analyze"
)

// matcher tests one pattern against a module id.
type matcher interface {
	match(id string) bool
}

type regexMatcher struct {
	re *regexp2.Regexp
}

func (m regexMatcher) match(id string) bool {
	ok, err := m.re.MatchString(id)
	return err == nil && ok
}

type globMatcher struct {
	pattern string
}

func (m globMatcher) match(id string) bool {
	if ok, _ := doublestar.Match(m.pattern, id); ok {
		return true
	}

	// Relative globs match at any depth of an absolute id.
	if !strings.HasPrefix(m.pattern, "/") && !strings.HasPrefix(m.pattern, "**/") {
		ok, _ := doublestar.Match("**/"+m.pattern, id)
		return ok
	}

	return false
}

// Filter decides which module ids the plugin looks at.
type Filter struct {
	include []matcher
	exclude []matcher
}

// NewFilter compiles include and exclude patterns. An empty include list
// accepts every id that is not excluded.
func NewFilter(include, exclude []string) (*Filter, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	exc, err := compileAll(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	return &Filter{include: inc, exclude: exc}, nil
}

// Match reports whether id passes the filter. Virtual ids, which start with
// a NUL byte, never do. A query string is ignored.
func (f *Filter) Match(id string) bool {
	if strings.HasPrefix(id, "\x00") {
		return false
	}

	id = analyze.StripQuery(id)

	for _, m := range f.exclude {
		if m.match(id) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, m := range f.include {
		if m.match(id) {
			return true
		}
	}

	return false
}

func compileAll(patterns []string) ([]matcher, error) {
	matchers := make([]matcher, 0, len(patterns))

	for _, p := range patterns {
		m, err := compile(p)
		if err != nil {
			return nil, err
		}

		matchers = append(matchers, m)
	}

	return matchers, nil
}

// compile turns "/source/flags" into a regular expression and anything else
// into a glob.
func compile(pattern string) (matcher, error) {
	if source, flags, ok := regexLiteral(pattern); ok {
		opts := regexp2.RegexOptions(regexp2.ECMAScript)

		for _, f := range flags {
			switch f {
			case 'i':
				opts |= regexp2.IgnoreCase
			case 'm':
				opts |= regexp2.Multiline
			case 's':
				opts |= regexp2.Singleline
			case 'g', 'y', 'u', 'v', 'd':
			}
		}

		if strings.ContainsRune(flags, 's') {
			// ECMAScript mode rejects Singleline; dotall is expressed inline instead.
			opts &^= regexp2.ECMAScript | regexp2.Singleline
			source = "(?s)" + source
		}

		re, err := regexp2.Compile(source, opts)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", pattern, err)
		}

		return regexMatcher{re: re}, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("pattern %s: %w", pattern, doublestar.ErrBadPattern)
	}

	return globMatcher{pattern: pattern}, nil
}

const jsFlags = "dgimsuvy"

// regexLiteral splits "/source/flags". Only JavaScript flag letters may follow
// the closing slash, so a glob such as "/src/**" is not mistaken for a regular
// expression.
func regexLiteral(pattern string) (source, flags string, ok bool) {
	if len(pattern) < 2 || pattern[0] != '/' {
		return "", "", false
	}

	end := strings.LastIndexByte(pattern, '/')
	if end == 0 {
		return "", "", false
	}

	flags = pattern[end+1:]
	for _, r := range flags {
		if !strings.ContainsRune(jsFlags, r) {
			return "", "", false
		}
	}

	source = pattern[1:end]
	if source == "" {
		return "", "", false
	}

	return source, flags, true
}
