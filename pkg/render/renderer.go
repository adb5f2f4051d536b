package render

// Renderer contracts shared by user templates and the built-in backends.

// RenderFunc produces markup for the node carried by ctx. It is supplied
// directly by callers or compiled from a template file by an engine.
type RenderFunc func(ctx Context) (string, error)

// DefaultRenderer is the pipeline's built-in, templateless output for a node
// type. It is the implicit lowest-priority candidate of every chain.
type DefaultRenderer interface {
	Name() string
	ContentType() string
	Render(ctx Context) (string, error)
}

// DefaultFunc adapts a plain function into a DefaultRenderer.
type DefaultFunc func(ctx Context) (string, error)

func (f DefaultFunc) Name() string        { return "func" }
func (f DefaultFunc) ContentType() string { return "text/html; charset=utf-8" }

// Render calls f.
func (f DefaultFunc) Render(ctx Context) (string, error) {
	return f(ctx)
}
