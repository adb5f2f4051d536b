package source

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
)

// Source contributes render functions keyed by node type.
type Source interface {
	// Name identifies the source in logs and chain explanations.
	Name() string
	// Lookup returns the render function the source holds for typ.
	Lookup(typ node.Type) (render.RenderFunc, bool)
}

// Mapping is an in-memory source. An empty mapping is valid and contributes
// nothing.
type Mapping map[node.Type]render.RenderFunc

// Name implements Source.
func (m Mapping) Name() string {
	return fmt.Sprintf("templates(%d)", len(m))
}

// Lookup implements Source.
func (m Mapping) Lookup(typ node.Type) (render.RenderFunc, bool) {
	fn, ok := m[typ]
	return fn, ok && fn != nil
}

// Types lists the node types with a render function, sorted.
func (m Mapping) Types() []node.Type {
	out := make([]node.Type, 0, len(m))
	for typ, fn := range m {
		if fn != nil {
			out = append(out, typ)
		}
	}
	slices.Sort(out)
	return out
}

// Named wraps a source with an explicit name.
func Named(name string, src Source) Source {
	return namedSource{name: name, Source: src}
}

type namedSource struct {
	Source
	name string
}

func (n namedSource) Name() string { return n.name }

// Directory is a source compiled from a template directory.
type Directory struct {
	path      string
	templates Mapping
	files     map[node.Type]string
}

// Name returns the directory path.
func (d *Directory) Name() string {
	return d.path
}

// Lookup implements Source.
func (d *Directory) Lookup(typ node.Type) (render.RenderFunc, bool) {
	return d.templates.Lookup(typ)
}

// Types lists the node types bound by the directory.
func (d *Directory) Types() []node.Type {
	return d.templates.Types()
}

// File returns the file name that supplied the template for typ.
func (d *Directory) File(typ node.Type) (string, bool) {
	name, ok := d.files[typ]
	return name, ok
}

// Empty reports whether the directory contributed no templates.
func (d *Directory) Empty() bool {
	return d == nil || len(d.templates) == 0
}

// Files returns the type to file-name bindings.
func (d *Directory) Files() map[node.Type]string {
	return maps.Clone(d.files)
}
