package chain

import (
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/source"
)

// Option customises chain building.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	sanitizer *bluemonday.Policy
}

// WithLogger records the assembled chains at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSanitizer passes every candidate's output through policy. A nil policy
// disables sanitising.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

func newConfig(options []Option) *config {
	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

// Build returns the candidates for typ in source declaration order. Sources
// without an entry for typ contribute nothing.
func Build(typ node.Type, sources []source.Source, options ...Option) render.Candidates {
	cfg := newConfig(options)
	return cfg.build(typ, sources)
}

// BuildTable builds the candidate lists for every node type. Types without
// candidates are omitted.
func BuildTable(sources []source.Source, options ...Option) render.Table {
	cfg := newConfig(options)
	table := render.Table{}
	for _, typ := range node.Types() {
		candidates := cfg.build(typ, sources)
		if len(candidates) == 0 {
			continue
		}
		table[typ] = candidates
		cfg.logger.Debug("template chain", "type", typ, "sources", candidates.Sources())
	}
	return table
}

func (cfg *config) build(typ node.Type, sources []source.Source) render.Candidates {
	var out render.Candidates
	for _, src := range sources {
		if src == nil {
			continue
		}
		fn, ok := src.Lookup(typ)
		if !ok || fn == nil {
			continue
		}
		if cfg.sanitizer != nil {
			fn = sanitize(cfg.sanitizer, fn)
		}
		out = append(out, render.Candidate{Source: src.Name(), Render: fn})
	}
	return out
}

func sanitize(policy *bluemonday.Policy, fn render.RenderFunc) render.RenderFunc {
	return func(ctx render.Context) (string, error) {
		out, err := fn(ctx)
		if err != nil {
			return "", err
		}
		return policy.Sanitize(out), nil
	}
}
