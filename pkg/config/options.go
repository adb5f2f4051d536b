package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-doctemplate/pkg/chain"
	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// Options converts the file into orchestrator options. Engine names resolve
// through catalog; a nil catalog uses orchestrator.DefaultCatalog.
func (f *File) Options(catalog *template.Catalog, logger *slog.Logger) ([]orchestrator.Option, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		var err error
		catalog, err = orchestrator.DefaultCatalog()
		if err != nil {
			return nil, err
		}
	}

	order, err := orchestrator.ParseOrder(f.Order)
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithOrder(order),
		orchestrator.WithStrict(f.Strict),
		orchestrator.WithLogger(logger),
		orchestrator.WithMaxDepth(f.MaxDepth),
	}

	dirs := make([]string, 0, len(f.TemplateDirs))
	for _, dir := range f.TemplateDirs {
		dirs = append(dirs, f.resolve(dir))
	}
	if len(dirs) > 0 {
		options = append(options, orchestrator.WithTemplateDirs(dirs...))
	}

	if len(f.Engines) > 0 {
		specs := make([]template.BindingSpec, 0, len(f.Engines))
		for _, binding := range f.Engines {
			engine, err := catalog.Get(binding.Engine)
			if err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			specs = append(specs, template.BindingSpec{Patterns: binding.Patterns, Engine: engine})
		}
		options = append(options, orchestrator.WithTemplateEngines(specs))
	}

	if f.Backend != "" {
		options = append(options, orchestrator.WithDefaultRenderer(f.Backend))
	}
	if f.Sanitize {
		options = append(options, orchestrator.WithSanitizer(chain.MarkupPolicy()))
	}

	if f.Preset != "" {
		path := f.resolve(f.Preset)
		transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("config: preset: %w", err)
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}

	if f.Theme != nil {
		option, err := f.themeOption()
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	return options, nil
}

func (f *File) themeOption() (orchestrator.Option, error) {
	manifestPath := f.resolve(f.Theme.Manifest)
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(manifestPath)
	if f.Theme.Dir != "" {
		dir = f.resolve(f.Theme.Dir)
	}

	selection := &theme.Selection{
		Theme:    manifest.Name,
		Variant:  f.Theme.Variant,
		Manifest: manifest,
	}
	return orchestrator.WithTheme(selection, os.DirFS(dir)), nil
}

// LoadManifest reads a go-theme manifest from a JSON or YAML file.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read theme manifest %s: %w", path, err)
	}

	var manifest theme.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		manifest = theme.Manifest{}
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("config: parse theme manifest %s: %w", path, err)
		}
	}
	if manifest.Name == "" {
		return nil, fmt.Errorf("config: theme manifest %s has no name", path)
	}
	return &manifest, nil
}
