// Package doctemplate resolves user templates for document nodes. Templates
// come from directories (compiled by engines chosen per file-name pattern),
// in-memory mappings or sequences of mappings; for every node type they form a
// chain where the last declared template runs first and delegates with
// Context.Next down to the built-in html5 renderer.
package doctemplate

import (
	"context"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/source"
)

// Option aliases orchestrator.Option so callers configure the top-level
// helpers without importing the orchestrator package.
type Option = orchestrator.Option

// Templates aliases source.Mapping for inline template declarations.
type Templates = source.Mapping

// Order aliases orchestrator.Order.
type Order = orchestrator.Order

const (
	OrderDirsFirst      = orchestrator.OrderDirsFirst
	OrderTemplatesFirst = orchestrator.OrderTemplatesFirst
)

// New builds an orchestrator and returns the first configuration error, so
// broken patterns and templates that fail to compile surface before any
// rendering.
func New(options ...Option) (*orchestrator.Orchestrator, error) {
	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}

// Convert renders doc with a one-off orchestrator.
func Convert(ctx context.Context, doc node.Node, options ...Option) (string, error) {
	orch, err := New(options...)
	if err != nil {
		return "", err
	}
	return orch.Convert(ctx, orchestrator.Request{Document: doc})
}

// ConvertFile loads a JSON or YAML document from path and renders it.
func ConvertFile(ctx context.Context, path string, options ...Option) (string, error) {
	orch, err := New(options...)
	if err != nil {
		return "", err
	}
	return orch.Convert(ctx, orchestrator.Request{Path: path})
}

// Next is a RenderFunc that only delegates. It is handy as a placeholder entry
// in template sequences.
func Next(ctx render.Context) (string, error) {
	return ctx.Next()
}

// WithTemplateDirs mirrors orchestrator.WithTemplateDirs.
func WithTemplateDirs(dirs ...string) Option {
	return orchestrator.WithTemplateDirs(dirs...)
}

// WithTemplates mirrors orchestrator.WithTemplates.
func WithTemplates(templates any) Option {
	return orchestrator.WithTemplates(templates)
}

// WithTemplateEngines mirrors orchestrator.WithTemplateEngines.
func WithTemplateEngines(engines any) Option {
	return orchestrator.WithTemplateEngines(engines)
}

// WithOrder mirrors orchestrator.WithOrder.
func WithOrder(order Order) Option {
	return orchestrator.WithOrder(order)
}
