// Package exprengine compiles single-expression templates with expr-lang.
// A template file holds one expression that must evaluate to a string, e.g.
//
//	has_role("lead") ? "<p class=\"lead\">" + node.text + "</p>" : next()
package exprengine

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// Engine compiles expression templates.
type Engine struct {
	options []expr.Option
}

var _ template.Engine = (*Engine)(nil)

// New constructs an Engine. Extra expr options (custom functions, operators)
// are applied after the built-in environment.
func New(options ...expr.Option) *Engine {
	return &Engine{options: options}
}

// Compile parses src.Body as an expression.
func (e *Engine) Compile(src template.Source) (render.RenderFunc, error) {
	code := strings.TrimSpace(string(src.Body))
	if code == "" {
		return nil, fmt.Errorf("exprengine: %s: empty expression", src.Path)
	}

	opts := append([]expr.Option{expr.Env(environment(render.Context{}, nil))}, e.options...)
	program, err := expr.Compile(code, opts...)
	if err != nil {
		return nil, fmt.Errorf("exprengine: compile %s: %w", src.Path, err)
	}

	return func(ctx render.Context) (string, error) {
		return run(program, ctx, src.Path)
	}, nil
}

func run(program *vm.Program, ctx render.Context, path string) (string, error) {
	var callErr error
	out, err := expr.Run(program, environment(ctx, &callErr))
	if callErr != nil {
		return "", callErr
	}
	if err != nil {
		return "", fmt.Errorf("exprengine: run %s: %w", path, err)
	}
	switch v := out.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("exprengine: %s: expression produced %T, want string", path, out)
	}
}

func environment(ctx render.Context, callErr *error) map[string]any {
	n := ctx.Node()
	capture := func(out string, err error) string {
		if err != nil && callErr != nil && *callErr == nil {
			*callErr = err
		}
		return out
	}
	return map[string]any{
		"node": node.View(n),
		"next": func() string {
			return capture(ctx.Next())
		},
		"content": func() string {
			return capture(ctx.Content())
		},
		"attr": func(name string) string {
			return attr(n, name)
		},
		"has_role": func(role string) bool {
			return n != nil && n.HasRole(role)
		},
	}
}

func attr(n node.Node, name string) string {
	if n == nil {
		return ""
	}
	value, _ := n.Attr(name)
	return value
}
