package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

// Resolver maps a file name to the engine that compiles it. *template.Composite
// satisfies it.
type Resolver interface {
	Resolve(fileName string) (template.Engine, bool)
}

// DirOption customises directory loading.
type DirOption func(*dirConfig)

type dirConfig struct {
	logger *slog.Logger
	strict bool
}

// WithLogger routes skip and load diagnostics through logger.
func WithLogger(logger *slog.Logger) DirOption {
	return func(cfg *dirConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStrict reports skipped files at warn level instead of debug.
func WithStrict(strict bool) DirOption {
	return func(cfg *dirConfig) {
		cfg.strict = strict
	}
}

// LoadDir compiles the templates found directly under dir. A missing
// directory yields an empty source.
func LoadDir(dir string, engines Resolver, options ...DirOption) (*Directory, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg := newDirConfig(options)
		cfg.logger.Debug("template directory not found", "dir", dir)
		return &Directory{path: dir, templates: Mapping{}, files: map[node.Type]string{}}, nil
	case err != nil:
		return nil, fmt.Errorf("source: stat %s: %w", dir, err)
	case !info.IsDir():
		return nil, render.NewConfigurationError("template_dirs", dir, errors.New("not a directory"))
	}
	return LoadFS(os.DirFS(dir), dir, engines, options...)
}

// LoadFS compiles the templates at the root of fsys. Entries are visited in
// lexical order (fs.ReadDir), so when two files map to the same node type the
// later name wins. Files with no matching engine, and files whose base name is
// not a node type, are skipped.
func LoadFS(fsys fs.FS, name string, engines Resolver, options ...DirOption) (*Directory, error) {
	cfg := newDirConfig(options)
	dir := &Directory{path: name, templates: Mapping{}, files: map[node.Type]string{}}
	if fsys == nil {
		return dir, nil
	}
	if engines == nil {
		return nil, render.NewConfigurationError("template_engines", name, errors.New("engine registry is required"))
	}

	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return dir, nil
	}
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", name, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()

		engine, ok := engines.Resolve(fileName)
		if !ok {
			cfg.skip("no engine for template file", name, fileName)
			continue
		}
		typ, ok := typeFromFileName(fileName)
		if !ok {
			cfg.skip("file name is not a node type", name, fileName)
			continue
		}

		body, err := fs.ReadFile(fsys, fileName)
		if err != nil {
			return nil, fmt.Errorf("source: read %s: %w", path.Join(name, fileName), err)
		}
		fn, err := engine.Compile(template.Source{
			Name:     fileName,
			Path:     path.Join(name, fileName),
			NodeType: typ,
			Body:     body,
		})
		if err != nil {
			return nil, render.NewConfigurationError("compile", path.Join(name, fileName), err)
		}
		if fn == nil {
			return nil, render.NewConfigurationError("compile", path.Join(name, fileName), errors.New("engine returned no render function"))
		}

		if previous, exists := dir.files[typ]; exists {
			cfg.logger.Debug("template overridden", "dir", name, "type", typ, "previous", previous, "file", fileName)
		}
		dir.templates[typ] = fn
		dir.files[typ] = fileName
	}

	cfg.logger.Debug("template directory loaded", "dir", name, "templates", len(dir.templates))
	return dir, nil
}

func typeFromFileName(fileName string) (node.Type, bool) {
	stem := strings.TrimSuffix(fileName, path.Ext(fileName))
	return node.ParseType(stem)
}

func newDirConfig(options []DirOption) *dirConfig {
	cfg := &dirConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

func (cfg *dirConfig) skip(msg, dir, file string) {
	if cfg.strict {
		cfg.logger.Warn(msg, "dir", dir, "file", file)
		return
	}
	cfg.logger.Debug(msg, "dir", dir, "file", file)
}
