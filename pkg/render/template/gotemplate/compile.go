package gotemplate

import (
	"bytes"
	"fmt"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// Compile parses src as a pongo2 template and returns a render function. The
// template sees:
//
//	node        map view of the node (type, id, title, roles, attributes, target, text, image_uri)
//	next()      output of the next lower-priority candidate, marked safe
//	content()   rendered children, marked safe
//	attr(name)  attribute lookup
//	has_role(r) role membership
//
// An error raised by next() or content() aborts the render and is returned
// unchanged.
func (e *Engine) Compile(src template.Source) (render.RenderFunc, error) {
	if e == nil || e.set == nil {
		return nil, fmt.Errorf("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromBytes(src.Body)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: parse %s: %w", src.Path, err)
	}

	return func(ctx render.Context) (string, error) {
		var callErr error
		data := nodeContext(ctx, &callErr)

		var buf bytes.Buffer
		err := tmpl.ExecuteWriter(data, &buf)
		if callErr != nil {
			return "", callErr
		}
		if err != nil {
			return "", fmt.Errorf("gotemplate: execute %s: %w", src.Path, err)
		}
		return buf.String(), nil
	}, nil
}

func nodeContext(ctx render.Context, callErr *error) pongo2.Context {
	n := ctx.Node()
	capture := func(out string, err error) *pongo2.Value {
		if err != nil {
			if *callErr == nil {
				*callErr = err
			}
			return pongo2.AsValue("")
		}
		return pongo2.AsSafeValue(out)
	}

	return pongo2.Context{
		"node": node.View(n),
		"next": func() *pongo2.Value {
			return capture(ctx.Next())
		},
		"content": func() *pongo2.Value {
			return capture(ctx.Content())
		},
		"attr": func(name string) string {
			if n == nil {
				return ""
			}
			value, _ := n.Attr(name)
			return value
		},
		"has_role": func(role string) bool {
			return n != nil && n.HasRole(role)
		},
	}
}
