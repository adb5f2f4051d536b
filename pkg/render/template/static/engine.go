// Package static provides an engine that returns template files verbatim.
// It suits fixed markup snippets that never delegate.
package static

import (
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// Engine returns each template body unchanged.
type Engine struct{}

var _ template.Engine = Engine{}

// New returns the static engine.
func New() Engine {
	return Engine{}
}

// Compile captures a copy of src.Body.
func (Engine) Compile(src template.Source) (render.RenderFunc, error) {
	out := string(src.Body)
	return func(render.Context) (string, error) {
		return out, nil
	}, nil
}
