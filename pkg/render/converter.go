package render

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/node"
)

const defaultMaxDepth = 64

// ConverterOption customises a Converter.
type ConverterOption func(*Converter)

// WithLogger routes debug output through logger.
func WithLogger(logger *slog.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth bounds nested child rendering. Values below one are ignored.
func WithMaxDepth(depth int) ConverterOption {
	return func(c *Converter) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithSeparator sets the string placed between rendered children.
func WithSeparator(sep string) ConverterOption {
	return func(c *Converter) {
		c.separator = sep
	}
}

// Converter renders nodes by driving the candidate chain for their type and
// falling back to the default renderer. It holds no per-call state, so nested
// and concurrent Render calls are safe.
type Converter struct {
	table     Table
	fallback  DefaultRenderer
	logger    *slog.Logger
	maxDepth  int
	separator string
}

// NewConverter builds a Converter over a snapshot of table.
func NewConverter(table Table, fallback DefaultRenderer, options ...ConverterOption) (*Converter, error) {
	if fallback == nil {
		return nil, errors.New("render: default renderer is required")
	}
	c := &Converter{
		table:     table.clone(),
		fallback:  fallback,
		logger:    slog.New(slog.DiscardHandler),
		maxDepth:  defaultMaxDepth,
		separator: "\n",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Render produces the markup for n. Errors raised by templates are returned
// unchanged apart from a RenderError wrapper naming the node type and source.
func (c *Converter) Render(n node.Node) (string, error) {
	return c.render(n, 0)
}

// RenderChildren renders the children of n and joins them with the configured
// separator.
func (c *Converter) RenderChildren(n node.Node) (string, error) {
	return c.renderChildren(n, 1)
}

// Candidates returns the chain registered for typ.
func (c *Converter) Candidates(typ node.Type) Candidates {
	return c.table.Lookup(typ)
}

// Table exposes the candidate table the converter was built with.
func (c *Converter) Table() Table {
	return c.table.clone()
}

// Fallback returns the default renderer.
func (c *Converter) Fallback() DefaultRenderer {
	return c.fallback
}

func (c *Converter) render(n node.Node, depth int) (string, error) {
	if n == nil {
		return "", ErrNilNode
	}
	if depth > c.maxDepth {
		return "", fmt.Errorf("%w (%d) at %s", ErrMaxDepth, c.maxDepth, n.Type())
	}

	candidates := c.table.Lookup(n.Type())
	inv := &invocation{conv: c, candidates: candidates, depth: depth}

	if len(candidates) == 0 {
		return c.fallback.Render(Context{node: n, cursor: floor, inv: inv})
	}

	c.logger.Debug("render chain",
		"type", n.Type(),
		"candidates", len(candidates),
		"top", candidates[len(candidates)-1].Source,
		"depth", depth,
	)
	return inv.call(n, len(candidates)-1)
}

func (c *Converter) renderChildren(n node.Node, depth int) (string, error) {
	if n == nil {
		return "", ErrNilNode
	}
	children := n.Children()
	if len(children) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		out, err := c.render(child, depth)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, c.separator), nil
}
