package transform

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"op-overloading/internal/analyze"
	"op-overloading/internal/gen"
	"op-overloading/internal/options"
	"op-overloading/internal/plan"
	"op-overloading/internal/sourcemap"
)

// errNoDirective ends the pipeline for files that did not opt in.
var errNoDirective = errors.New("no directive")

// Result is a transformed module.
type Result struct {
	Code string
	Map  *sourcemap.Map
}

// Transformer runs the pipeline with a fixed configuration.
// It holds no per-call state and is safe for concurrent use.
type Transformer struct {
	cfg    options.Resolved
	logger *zap.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transformer.
func New(cfg options.Resolved, opts ...Option) *Transformer {
	t := &Transformer{cfg: cfg, logger: zap.NewNop()}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Config returns the configuration the Transformer was created with.
func (t *Transformer) Config() options.Resolved {
	return t.cfg
}

// Transform rewrites code. It returns nil when the module must be left
// untouched: no directive, nothing to rewrite, or any failure.
func (t *Transformer) Transform(code, id string) *Result {
	out, _, err := t.run(code, id)
	if err != nil || out == nil {
		return nil
	}

	return &Result{Code: out.Code, Map: out.Map}
}

// run is the shared pipeline of Transform and Check. A nil output with a nil
// error means there was nothing to change.
func (t *Transformer) run(code, id string) (*gen.Output, *plan.Plan, error) {
	return t.runWith(code, id, nil)
}

// runWith is run with a hook invoked after parsing, inside the recovery scope.
func (t *Transformer) runWith(code, id string, hook func()) (out *gen.Output, p *plan.Plan, err error) {
	defer func() {
		if r := recover(); r != nil {
			if t.cfg.Debug {
				t.logger.Error("Transform error", zap.String("id", id), zap.Any("panic", r))
			}

			out, p = nil, nil
			err = fmt.Errorf("transform %s: panic: %v", id, r)
		}
	}()

	if strings.TrimSpace(code) == "" {
		return nil, nil, errNoDirective
	}

	file, err := analyze.Parse(code, id)
	if err != nil {
		if t.cfg.Debug {
			t.logger.Warn("Parse errors", zap.String("id", id), zap.Error(err))
		}

		return nil, nil, err
	}
	defer file.Close()

	if hook != nil {
		hook()
	}

	directive, ok := file.Directive()
	if !ok {
		return nil, nil, errNoDirective
	}

	p = &plan.Plan{
		Directive: &directive,
		Records:   plan.NewCollector(t.cfg.Policy()).Collect(file),
	}

	if t.cfg.Debug {
		t.logger.Info("Transforming", zap.String("id", id), zap.Int("expressions", len(p.Records)))
	}

	out, err = gen.NewRewriter(t.cfg.Policy()).Rewrite(id, code, p.Directive, p.Records)
	if err != nil {
		if t.cfg.Debug {
			t.logger.Error("Transform error", zap.String("id", id), zap.Error(err))
		}

		return nil, p, err
	}

	if t.cfg.Debug && len(out.Skipped) > 0 {
		t.logger.Warn("Skipped overlapping rewrites", zap.String("id", id), zap.Int("count", len(out.Skipped)))
	}

	return out, p, nil
}

// Transform rewrites code with cfg and no logging.
func Transform(code, id string, cfg options.Resolved) *Result {
	return New(cfg).Transform(code, id)
}
