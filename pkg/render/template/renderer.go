package template

import "io"

// TemplateRenderer renders templates by file name or from a string. The html5
// backend renders its embedded bundle through it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
