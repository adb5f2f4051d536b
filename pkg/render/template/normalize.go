package template

import (
	"fmt"

	"github.com/goliatone/go-doctemplate/pkg/render"
)

// BindingSpec is the record form of a template_engines entry: one engine
// bound to one or more patterns, expanded in the given order.
type BindingSpec struct {
	Patterns []string
	Engine   Engine
}

// NormalizeEngines converts every accepted template_engines shape into a
// Composite. A nil value yields (nil, nil) so callers can apply their own
// default. Accepted shapes:
//
//   - *Composite: used as is
//   - Engine, EngineFunc or func(Source) (render.RenderFunc, error): bound to
//     the catch-all pattern
//   - Binding, []Binding
//   - BindingSpec, []BindingSpec
//   - []any mixing any of the above, in order
func NormalizeEngines(value any) (*Composite, error) {
	if value == nil {
		return nil, nil
	}
	c := NewComposite()
	if err := appendEngines(c, value); err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func appendEngines(c *Composite, value any) error {
	switch v := value.(type) {
	case *Composite:
		if v == nil {
			return render.NewConfigurationError("template_engines", "", fmt.Errorf("composite is nil"))
		}
		if err := v.Err(); err != nil {
			return err
		}
		c.Bind(v.Bindings()...)
	case func(Source) (render.RenderFunc, error):
		c.Register(CatchAll, EngineFunc(v))
	case Binding:
		c.Bind(v)
	case []Binding:
		c.Bind(v...)
	case BindingSpec:
		return appendSpec(c, v)
	case []BindingSpec:
		for _, spec := range v {
			if err := appendSpec(c, spec); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := appendEngines(c, item); err != nil {
				return err
			}
		}
	case Engine:
		c.Register(CatchAll, v)
	default:
		return render.NewConfigurationError("template_engines", fmt.Sprintf("%T", value), fmt.Errorf("unsupported shape"))
	}
	return nil
}

func appendSpec(c *Composite, spec BindingSpec) error {
	if len(spec.Patterns) == 0 {
		return render.NewConfigurationError("template_engines", "", fmt.Errorf("binding has no patterns"))
	}
	if spec.Engine == nil {
		return render.NewConfigurationError("template_engines", spec.Patterns[0], fmt.Errorf("binding has no engine"))
	}
	for _, pattern := range spec.Patterns {
		c.Register(pattern, spec.Engine)
	}
	return nil
}
