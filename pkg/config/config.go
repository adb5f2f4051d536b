package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// File mirrors a configuration file. Relative paths are resolved against the
// directory holding the file.
type File struct {
	TemplateDirs []string        `json:"template_dirs" yaml:"template_dirs" hcl:"template_dirs,optional"`
	Engines      []EngineBinding `json:"template_engines" yaml:"template_engines" hcl:"engine,block"`
	Order        string          `json:"order" yaml:"order" hcl:"order,optional"`
	Strict       bool            `json:"strict" yaml:"strict" hcl:"strict,optional"`
	Backend      string          `json:"backend" yaml:"backend" hcl:"backend,optional"`
	Sanitize     bool            `json:"sanitize" yaml:"sanitize" hcl:"sanitize,optional"`
	MaxDepth     int             `json:"max_depth" yaml:"max_depth" hcl:"max_depth,optional"`
	Preset       string          `json:"preset" yaml:"preset" hcl:"preset,optional"`
	Theme        *Theme          `json:"theme" yaml:"theme" hcl:"theme,block"`

	dir string
}

// EngineBinding binds patterns to a catalog engine name. In HCL the engine
// name is the block label:
//
//	engine "pongo2" {
//	  patterns = ["*.tpl", "*.j2"]
//	}
type EngineBinding struct {
	Engine   string   `json:"engine" yaml:"engine" hcl:"name,label"`
	Patterns []string `json:"patterns" yaml:"patterns" hcl:"patterns"`
}

// Theme points at a go-theme manifest. Template paths inside the manifest are
// read relative to Dir, which defaults to the manifest's directory.
type Theme struct {
	Manifest string `json:"manifest" yaml:"manifest" hcl:"manifest"`
	Variant  string `json:"variant" yaml:"variant" hcl:"variant,optional"`
	Dir      string `json:"dir" yaml:"dir" hcl:"dir,optional"`
}

// LoadFile reads a configuration file. Files ending in .hcl are parsed as
// HCL; anything else as JSON or YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file *File
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		file, err = ParseHCL(data, path)
	} else {
		file, err = Parse(data, path)
	}
	if err != nil {
		return nil, err
	}
	file.dir = filepath.Dir(path)
	return file, nil
}

// Parse decodes JSON or YAML configuration.
func Parse(data []byte, source string) (*File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: file %s is empty", source)
	}

	var file File
	if err := json.Unmarshal(data, &file); err == nil {
		return &file, nil
	}
	file = File{}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
	}
	return &file, nil
}

// ParseHCL decodes HCL configuration.
func ParseHCL(data []byte, source string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", source, diags)
	}

	var file File
	diags = gohcl.DecodeBody(hclFile.Body, nil, &file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", source, diags)
	}
	return &file, nil
}

// Dir returns the directory relative paths resolve against.
func (f *File) Dir() string {
	if f == nil || f.dir == "" {
		return "."
	}
	return f.dir
}

func (f *File) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Dir(), path)
}

// Validate reports structural problems that do not need the engine catalog.
func (f *File) Validate() error {
	if f == nil {
		return errors.New("config: file is nil")
	}
	for idx, binding := range f.Engines {
		if strings.TrimSpace(binding.Engine) == "" {
			return fmt.Errorf("config: template_engines[%d]: engine name is required", idx)
		}
		if len(binding.Patterns) == 0 {
			return fmt.Errorf("config: template_engines[%d]: at least one pattern is required", idx)
		}
	}
	if f.Theme != nil && strings.TrimSpace(f.Theme.Manifest) == "" {
		return errors.New("config: theme: manifest is required")
	}
	if f.MaxDepth < 0 {
		return errors.New("config: max_depth must not be negative")
	}
	return nil
}
