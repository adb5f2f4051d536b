package doctemplate

import (
	"log/slog"

	"github.com/goliatone/go-doctemplate/pkg/config"
	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// NewComposite returns the default engine bindings (*.tpl, *.pongo2 and *.j2
// to pongo2, *.expr to expr, *.html to static) ready for further Register
// calls.
func NewComposite() (*template.Composite, error) {
	return orchestrator.DefaultEngines(nil)
}

// LoadConfig reads a YAML, JSON or HCL configuration file into options.
func LoadConfig(path string, logger *slog.Logger) ([]Option, error) {
	file, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return file.Options(nil, logger)
}
