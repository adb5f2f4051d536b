package doctemplate

import (
	"io/fs"

	"github.com/goliatone/go-doctemplate/pkg/renderers/html5"
)

// EmbeddedTemplates exposes the built-in html5 templates so callers can copy
// and override them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	fsys := html5.TemplatesFS()
	return fsys
}
