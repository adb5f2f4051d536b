package source

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// DefaultThemePrefix namespaces node templates inside a theme manifest, e.g.
// "doc.paragraph": "themes/acme/paragraph.tpl".
const DefaultThemePrefix = "doc."

// ThemeOption customises theme loading.
type ThemeOption func(*themeConfig)

type themeConfig struct {
	prefix string
	dir    []DirOption
}

// WithThemePrefix overrides the manifest key prefix. An empty prefix treats
// bare node-type keys as templates.
func WithThemePrefix(prefix string) ThemeOption {
	return func(cfg *themeConfig) {
		cfg.prefix = prefix
	}
}

// WithThemeDirOptions forwards logging options to the underlying loader.
func WithThemeDirOptions(options ...DirOption) ThemeOption {
	return func(cfg *themeConfig) {
		cfg.dir = append(cfg.dir, options...)
	}
}

// SelectTheme resolves a theme/variant pair through selector.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	if selector == nil {
		return nil, errors.New("source: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("source: select theme %q/%q: %w", name, variant, err)
	}
	return selection, nil
}

// LoadTheme compiles the node templates declared by a theme selection. Variant
// templates override the base manifest. Paths are read from fsys and compiled
// with the engine resolved from their file name.
func LoadTheme(selection *theme.Selection, fsys fs.FS, engines Resolver, options ...ThemeOption) (*Directory, error) {
	if selection == nil || selection.Manifest == nil {
		return nil, render.NewConfigurationError("theme", "", errors.New("selection has no manifest"))
	}
	if fsys == nil {
		return nil, render.NewConfigurationError("theme", selection.Theme, errors.New("theme filesystem is required"))
	}
	if engines == nil {
		return nil, render.NewConfigurationError("template_engines", selection.Theme, errors.New("engine registry is required"))
	}

	cfg := &themeConfig{prefix: DefaultThemePrefix}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	dirCfg := newDirConfig(cfg.dir)

	templates := maps.Clone(selection.Manifest.Templates)
	if templates == nil {
		templates = map[string]string{}
	}
	if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(templates, variant.Templates)
	}

	name := "theme:" + selection.Theme
	if selection.Variant != "" {
		name += "/" + selection.Variant
	}
	dir := &Directory{path: name, templates: Mapping{}, files: map[node.Type]string{}}

	for _, key := range slices.Sorted(maps.Keys(templates)) {
		rest, ok := strings.CutPrefix(key, cfg.prefix)
		if !ok {
			continue
		}
		typ, ok := node.ParseType(rest)
		if !ok {
			dirCfg.skip("theme key is not a node type", name, key)
			continue
		}
		file := templates[key]
		engine, ok := engines.Resolve(path.Base(file))
		if !ok {
			dirCfg.skip("no engine for theme template", name, file)
			continue
		}
		body, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, render.NewConfigurationError("theme", file, err)
		}
		fn, err := engine.Compile(template.Source{Name: path.Base(file), Path: file, NodeType: typ, Body: body})
		if err != nil {
			return nil, render.NewConfigurationError("compile", file, err)
		}
		dir.templates[typ] = fn
		dir.files[typ] = file
	}

	dirCfg.logger.Debug("theme templates loaded", "theme", name, "templates", len(dir.templates))
	return dir, nil
}
