package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-doctemplate/pkg/render/template"
	"github.com/goliatone/go-doctemplate/pkg/render/template/exprengine"
	gotemplate "github.com/goliatone/go-doctemplate/pkg/render/template/gotemplate"
	"github.com/goliatone/go-doctemplate/pkg/render/template/static"
)

// Engine names registered in the default catalog.
const (
	EnginePongo2 = "pongo2"
	EngineExpr   = "expr"
	EngineStatic = "static"
)

// DefaultCatalog returns a catalog holding the bundled engines under their
// configuration names.
func DefaultCatalog() (*template.Catalog, error) {
	pongo, err := gotemplate.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: pongo2 engine: %w", err)
	}

	catalog := template.NewCatalog()
	for name, engine := range map[string]template.Engine{
		EnginePongo2: pongo,
		EngineExpr:   exprengine.New(),
		EngineStatic: static.New(),
	} {
		if err := catalog.Register(name, engine); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// DefaultEngines binds the usual file extensions to the catalog's engines:
// *.tpl, *.pongo2 and *.j2 to pongo2, *.expr to expr, *.html to static.
func DefaultEngines(catalog *template.Catalog) (*template.Composite, error) {
	if catalog == nil {
		var err error
		catalog, err = DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}

	bindings := []struct {
		pattern string
		engine  string
	}{
		{"*.tpl", EnginePongo2},
		{"*.pongo2", EnginePongo2},
		{"*.j2", EnginePongo2},
		{"*.expr", EngineExpr},
		{"*.html", EngineStatic},
	}

	composite := template.NewComposite()
	for _, binding := range bindings {
		engine, err := catalog.Get(binding.engine)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: default engine %q: %w", binding.engine, err)
		}
		composite.Register(binding.pattern, engine)
	}
	return composite, composite.Err()
}
