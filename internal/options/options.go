package options

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"op-overloading/internal/match"
	"op-overloading/internal/operator"
)

var (
	// ErrInvalidEquality is returned for equality modes outside off/loose/strict/both.
	// It is the operator package error, so either can be tested with errors.Is.
	ErrInvalidEquality = operator.ErrUnknownEqualityMode
	// ErrInvalidEnforce is returned for enforce values outside pre/post/none.
	ErrInvalidEnforce = errors.New("invalid enforce value")
	// ErrInvalidNamespace is returned when symbolsNamespace is true.
	ErrInvalidNamespace = errors.New("invalid symbolsNamespace")
	// ErrInvalidPattern is returned for include or exclude entries that are
	// neither a valid glob nor a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// Enforce is the plugin ordering hint passed to the host.
type Enforce string

const (
	EnforcePre  Enforce = "pre"
	EnforcePost Enforce = "post"
	// EnforceNone leaves the ordering to the host.
	EnforceNone Enforce = ""
)

// Default filter patterns.
const (
	DefaultInclude = `/\.[cm]?[jt]sx?$/`
	DefaultExclude = `/node_modules/`
)

// Options are the user supplied settings. Nil fields take their defaults in
// Resolve.
type Options struct {
	Equality         *string    `yaml:"equality,omitempty"`
	Include          Patterns   `yaml:"include,omitempty"`
	Exclude          Patterns   `yaml:"exclude,omitempty"`
	Enforce          *string    `yaml:"enforce,omitempty"`
	Debug            *bool      `yaml:"debug,omitempty"`
	SymbolsNamespace *Namespace `yaml:"symbolsNamespace,omitempty"`
}

// Resolved is the configuration with every field concrete.
type Resolved struct {
	Equality  operator.EqualityMode
	Include   []string
	Exclude   []string
	Enforce   Enforce
	Debug     bool
	Namespace string
}

// Default returns the configuration used when no options are given.
func Default() Resolved {
	r, _ := Resolve(Options{})
	return r
}

// Policy returns the operator policy for the configuration.
func (r Resolved) Policy() operator.Policy {
	return operator.Policy{Equality: r.Equality, Namespace: r.Namespace}
}

// Resolve applies defaults and validates the result.
func Resolve(o Options) (Resolved, error) {
	r := Resolved{
		Equality: operator.EqualityOff,
		Include:  []string{DefaultInclude},
		Exclude:  []string{DefaultExclude},
		Enforce:  EnforcePre,
	}

	if o.Equality != nil && *o.Equality != "" {
		mode, err := operator.ParseEqualityMode(*o.Equality)
		if err != nil {
			return Resolved{}, fmt.Errorf("equality: %w", err)
		}

		r.Equality = mode
	}

	if o.Include != nil {
		r.Include = []string(o.Include)
	}

	if o.Exclude != nil {
		r.Exclude = []string(o.Exclude)
	}

	if o.Enforce != nil {
		enforce, err := parseEnforce(*o.Enforce)
		if err != nil {
			return Resolved{}, err
		}

		r.Enforce = enforce
	}

	if o.Debug != nil {
		r.Debug = *o.Debug
	}

	if o.SymbolsNamespace != nil {
		r.Namespace = string(*o.SymbolsNamespace)
	}

	return r, nil
}

// Merge returns o with every field set in override replacing its own.
func (o Options) Merge(override Options) Options {
	if override.Equality != nil {
		o.Equality = override.Equality
	}

	if override.Include != nil {
		o.Include = override.Include
	}

	if override.Exclude != nil {
		o.Exclude = override.Exclude
	}

	if override.Enforce != nil {
		o.Enforce = override.Enforce
	}

	if override.Debug != nil {
		o.Debug = override.Debug
	}

	if override.SymbolsNamespace != nil {
		o.SymbolsNamespace = override.SymbolsNamespace
	}

	return o
}

func parseEnforce(s string) (Enforce, error) {
	switch s {
	case "pre":
		return EnforcePre, nil
	case "post":
		return EnforcePost, nil
	case "", "none":
		return EnforceNone, nil
	default:
		return "", fmt.Errorf("%w: %q (want pre, post or none)%s",
			ErrInvalidEnforce, s, match.Hint(s, []string{"pre", "post", "none"}))
	}
}

// Patterns is a list of filter patterns. In YAML it may be written as a
// single string or a list of strings. An empty list matches every id.
type Patterns []string

// UnmarshalYAML accepts a single pattern or a list of patterns. Every
// pattern is compiled here so a bad glob or regular expression is reported
// with its line in the file. A null or empty string is an empty list, and
// empty entries of a list are dropped.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	var items []*yaml.Node

	switch node.Kind {
	case yaml.ScalarNode:
		items = []*yaml.Node{node}
	case yaml.SequenceNode:
		items = node.Content
	default:
		return fmt.Errorf("line %d: %w: expected a string or a list of strings", node.Line, ErrInvalidPattern)
	}

	patterns := Patterns{}

	for _, item := range items {
		if item.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: %w: expected a string", item.Line, ErrInvalidPattern)
		}

		if item.ShortTag() == "!!null" || item.Value == "" {
			continue
		}

		if _, err := compile(item.Value); err != nil {
			return fmt.Errorf("line %d: %w: %w", item.Line, ErrInvalidPattern, err)
		}

		patterns = append(patterns, item.Value)
	}

	*p = patterns

	return nil
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (p Patterns) MarshalYAML() (any, error) {
	if len(p) == 1 {
		return p[0], nil
	}

	return []string(p), nil
}

// Namespace is the symbolsNamespace setting. In YAML it is a string or false;
// false and the empty string both disable namespacing.
type Namespace string

// UnmarshalYAML accepts a string or the boolean false.
func (n *Namespace) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected string or false, got %v", node.Kind)
	}

	if node.ShortTag() == "!!bool" {
		var b bool

		err := node.Decode(&b)
		if err != nil {
			return err
		}

		if b {
			return fmt.Errorf("%w: true is not allowed, use a string or false", ErrInvalidNamespace)
		}

		*n = ""

		return nil
	}

	var str string

	err := node.Decode(&str)
	if err != nil {
		return err
	}

	*n = Namespace(str)

	return nil
}

// MarshalYAML writes a disabled namespace as false.
func (n Namespace) MarshalYAML() (any, error) {
	if n == "" {
		return false, nil
	}

	return string(n), nil
}
