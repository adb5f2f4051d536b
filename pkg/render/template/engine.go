package template

import (
	"errors"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
)

// ErrNoEngine is returned when no binding matches a file name.
var ErrNoEngine = errors.New("template: no engine matches file")

// Source is the raw template handed to an engine at configuration time.
type Source struct {
	// Name is the base file name, e.g. "paragraph.tpl".
	Name string
	// Path locates the file for diagnostics; it may be relative to an fs.FS.
	Path string
	// NodeType is derived from the file name.
	NodeType node.Type
	// Body holds the file contents.
	Body []byte
}

// Engine compiles template source into a render function.
type Engine interface {
	Compile(src Source) (render.RenderFunc, error)
}

// EngineFunc adapts a plain function into an Engine.
type EngineFunc func(src Source) (render.RenderFunc, error)

// Compile calls f.
func (f EngineFunc) Compile(src Source) (render.RenderFunc, error) {
	return f(src)
}
