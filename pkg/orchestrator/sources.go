package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/source"
)

// Order decides how template directories and in-memory templates combine into
// one chain when both are configured.
type Order string

const (
	// OrderDirsFirst places every template directory below the in-memory
	// templates, so templates override directories.
	OrderDirsFirst Order = "dirs_first"
	// OrderTemplatesFirst places in-memory templates below the directories.
	OrderTemplatesFirst Order = "templates_first"
)

// ParseOrder accepts the Order names, case-insensitive. An empty string is
// OrderDirsFirst.
func ParseOrder(raw string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(raw))) {
	case "", OrderDirsFirst:
		return OrderDirsFirst, nil
	case OrderTemplatesFirst:
		return OrderTemplatesFirst, nil
	default:
		return "", render.NewConfigurationError("order", raw, errors.New("expected dirs_first or templates_first"))
	}
}

// resolveSources linearises the configured sources, lowest priority first:
// the theme (when configured), then directories and templates in the
// configured order, or the explicit WithSources sequence.
func (o *Orchestrator) resolveSources() ([]source.Source, error) {
	var out []source.Source

	themeSource, err := o.loadTheme()
	if err != nil {
		return nil, err
	}
	if themeSource != nil {
		out = append(out, themeSource)
	}

	if o.sourcesSpecified {
		for _, item := range o.sources {
			loaded, err := o.loadItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, loaded...)
		}
		return out, nil
	}

	dirs, err := o.loadDirs()
	if err != nil {
		return nil, err
	}
	templates, err := source.NormalizeTemplates(o.templates)
	if err != nil {
		return nil, err
	}

	switch o.order {
	case "", OrderDirsFirst:
		out = append(out, dirs...)
		out = append(out, templates...)
	case OrderTemplatesFirst:
		out = append(out, templates...)
		out = append(out, dirs...)
	default:
		return nil, render.NewConfigurationError("order", string(o.order), errors.New("unknown order"))
	}
	return out, nil
}

func (o *Orchestrator) loadDirs() ([]source.Source, error) {
	out := make([]source.Source, 0, len(o.templateDirs))
	for _, dir := range o.templateDirs {
		loaded, err := o.loadDir(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	return out, nil
}

func (o *Orchestrator) loadDir(dir string) (source.Source, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, render.NewConfigurationError("template_dirs", dir, errors.New("directory path is empty"))
	}
	loaded, err := source.LoadDir(dir, o.composite,
		source.WithLogger(o.logger),
		source.WithStrict(o.strict),
	)
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func (o *Orchestrator) loadItem(item any) ([]source.Source, error) {
	if item == nil {
		return nil, render.NewConfigurationError("sources", "", errors.New("item is nil"))
	}
	if dir, ok := item.(string); ok {
		loaded, err := o.loadDir(dir)
		if err != nil {
			return nil, err
		}
		return []source.Source{loaded}, nil
	}
	return source.NormalizeTemplates(item)
}

func (o *Orchestrator) loadTheme() (source.Source, error) {
	selection := o.themeSelection
	if selection == nil && o.themeSelector != nil {
		var err error
		selection, err = source.SelectTheme(o.themeSelector, o.themeName, o.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}
	if selection == nil {
		return nil, nil
	}
	return source.LoadTheme(selection, o.themeFS, o.composite,
		source.WithThemeDirOptions(source.WithLogger(o.logger), source.WithStrict(o.strict)),
	)
}
