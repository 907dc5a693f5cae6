package transform

import (
	"fmt"

	"go.uber.org/zap"

	"op-overloading/internal/options"
)

// PluginName is the name reported to bundler hosts.
const PluginName = "unplugin-operator-overloading"

// Plugin is the bundler-facing adapter: a filter on module ids plus the
// transform itself.
type Plugin struct {
	Name    string
	Enforce options.Enforce

	filter      *options.Filter
	transformer *Transformer
}

// NewPlugin resolves raw options and builds a Plugin.
func NewPlugin(raw options.Options, opts ...Option) (*Plugin, error) {
	cfg, err := options.Resolve(raw)
	if err != nil {
		return nil, fmt.Errorf("resolving options: %w", err)
	}

	return NewPluginResolved(cfg, opts...)
}

// NewPluginResolved builds a Plugin from an already resolved configuration.
func NewPluginResolved(cfg options.Resolved, opts ...Option) (*Plugin, error) {
	filter, err := options.NewFilter(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("compiling filter: %w", err)
	}

	return &Plugin{
		Name:        PluginName,
		Enforce:     cfg.Enforce,
		filter:      filter,
		transformer: New(cfg, opts...),
	}, nil
}

// TransformInclude reports whether the host should pass id to Transform.
func (p *Plugin) TransformInclude(id string) bool {
	return p.filter.Match(id)
}

// Transform rewrites code. The host is expected to have consulted
// TransformInclude first.
func (p *Plugin) Transform(code, id string) *Result {
	return p.transformer.Transform(code, id)
}

// Apply runs the filter and the transform in one step.
func (p *Plugin) Apply(code, id string) *Result {
	if !p.TransformInclude(id) {
		p.transformer.logger.Debug("Excluded by filter", zap.String("id", id))
		return nil
	}

	return p.Transform(code, id)
}

// Transformer returns the underlying Transformer.
func (p *Plugin) Transformer() *Transformer {
	return p.transformer
}
