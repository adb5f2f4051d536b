package source

import (
	"fmt"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
)

// NormalizeTemplates converts every accepted shape of the templates option
// into an ordered slice of sources, one per mapping. Accepted shapes:
//
//   - nil: no sources
//   - Source (including Mapping and *Directory)
//   - map[string]render.RenderFunc
//   - map[string]func(render.Context) (string, error)
//   - []Source, []Mapping, []map[string]render.RenderFunc
//   - []any mixing any of the above, in order
//
// An empty mapping or an empty slice is valid and contributes nothing. Keys
// that are not node types, and nil items inside any sequence, are a
// ConfigurationError.
func NormalizeTemplates(value any) ([]Source, error) {
	var out []Source
	if err := appendTemplates(&out, value); err != nil {
		return nil, err
	}
	return out, nil
}

func appendTemplates(out *[]Source, value any) error {
	switch v := value.(type) {
	case nil:
	case Mapping:
		*out = append(*out, v)
	case Source:
		*out = append(*out, v)
	case map[string]render.RenderFunc:
		m, err := mappingFromKeys(v)
		if err != nil {
			return err
		}
		*out = append(*out, m)
	case map[string]func(render.Context) (string, error):
		converted := make(map[string]render.RenderFunc, len(v))
		for key, fn := range v {
			converted[key] = fn
		}
		return appendTemplates(out, converted)
	case []Source:
		for _, src := range v {
			if src == nil {
				return render.NewConfigurationError("templates", "", fmt.Errorf("source is nil"))
			}
			*out = append(*out, src)
		}
	case []Mapping:
		for _, m := range v {
			*out = append(*out, m)
		}
	case []map[string]render.RenderFunc:
		for _, m := range v {
			if err := appendTemplates(out, m); err != nil {
				return err
			}
		}
	case []any:
		for idx, item := range v {
			if item == nil {
				return render.NewConfigurationError("templates", fmt.Sprintf("[%d]", idx), fmt.Errorf("item is nil"))
			}
			if err := appendTemplates(out, item); err != nil {
				return err
			}
		}
	default:
		return render.NewConfigurationError("templates", fmt.Sprintf("%T", value), fmt.Errorf("unsupported shape"))
	}
	return nil
}

func mappingFromKeys(in map[string]render.RenderFunc) (Mapping, error) {
	out := make(Mapping, len(in))
	for key, fn := range in {
		typ, ok := node.ParseType(key)
		if !ok {
			return nil, render.NewConfigurationError("templates", key, fmt.Errorf("unknown node type"))
		}
		if fn == nil {
			return nil, render.NewConfigurationError("templates", key, fmt.Errorf("render function is nil"))
		}
		out[typ] = fn
	}
	return out, nil
}
