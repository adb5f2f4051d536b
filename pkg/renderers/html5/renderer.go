// Package html5 is the built-in default renderer. It produces HTML5 markup for
// every node type from an embedded pongo2 template bundle and is what
// Context.Next reaches once user templates run out.
package html5

import (
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	rendertemplate "github.com/goliatone/go-doctemplate/pkg/render/template"
	gotemplate "github.com/goliatone/go-doctemplate/pkg/render/template/gotemplate"
)

// Name is the registry name of the backend.
const Name = "html5"

const templateExt = ".tpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. The
// template bundle still decides which node types have markup.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders nodes with the built-in markup.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	known     map[node.Type]bool
}

var _ render.DefaultRenderer = (*Renderer)(nil)

// New constructs the html5 renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	known, err := bundleTypes(cfg.templateFS)
	if err != nil {
		return nil, fmt.Errorf("html5 renderer: list templates: %w", err)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(templateExt),
		)
		if err != nil {
			return nil, fmt.Errorf("html5 renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, known: known}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the markup for ctx.Node. Children are rendered first through
// the full chain; node types without a template in the bundle render as their
// children alone.
func (r *Renderer) Render(ctx render.Context) (string, error) {
	if r.templates == nil {
		return "", errors.New("html5 renderer: template renderer is nil")
	}
	n := ctx.Node()
	if n == nil {
		return "", render.ErrNilNode
	}

	content, err := ctx.Content()
	if err != nil {
		return "", err
	}
	if !r.known[n.Type()] {
		return content, nil
	}

	result, err := r.templates.RenderTemplate(string(n.Type())+templateExt, viewData(n, content))
	if err != nil {
		return "", fmt.Errorf("html5 renderer: render %s: %w", n.Type(), err)
	}
	return strings.TrimSpace(result), nil
}

// Types lists the node types the bundle has markup for.
func (r *Renderer) Types() []node.Type {
	out := make([]node.Type, 0, len(r.known))
	for _, typ := range node.Types() {
		if r.known[typ] {
			out = append(out, typ)
		}
	}
	return out
}

func bundleTypes(files fs.FS) (map[node.Type]bool, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	known := make(map[node.Type]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != templateExt {
			continue
		}
		if typ, ok := node.ParseType(strings.TrimSuffix(name, templateExt)); ok {
			known[typ] = true
		}
	}
	return known, nil
}

var quotedTags = map[string]string{
	"strong":      "strong",
	"emphasis":    "em",
	"monospaced":  "code",
	"mark":        "mark",
	"superscript": "sup",
	"subscript":   "sub",
}

func viewData(n node.Node, content string) map[string]any {
	roles := n.Roles()
	data := map[string]any{
		"node":      node.View(n),
		"content":   content,
		"role":      "",
		"role_list": strings.Join(roles, " "),
		"id_attr":   "",
	}
	if len(roles) > 0 {
		data["role"] = " " + strings.Join(roles, " ")
	}
	if id := n.ID(); id != "" {
		data["id_attr"] = ` id="` + html.EscapeString(id) + `"`
	}

	attr := func(name string) string {
		value, _ := n.Attr(name)
		return value
	}

	switch n.Type() {
	case node.TypeImage, node.TypeInlineImage:
		data["alt"] = altText(n)
	case node.TypeSection:
		level, err := strconv.Atoi(attr("level"))
		if err != nil || level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		data["level"] = strconv.Itoa(level)
		data["heading"] = strconv.Itoa(level + 1)
		data["top"] = level == 1
	case node.TypeListing:
		data["language"] = attr("language")
	case node.TypeAdmonition:
		name := strings.ToLower(attr("name"))
		if name == "" {
			name = "note"
		}
		caption := attr("caption")
		if caption == "" {
			caption = strings.ToUpper(name[:1]) + name[1:]
		}
		data["admonition"] = name
		data["caption"] = caption
	case node.TypeOList:
		data["start"] = attr("start")
	case node.TypeListItem:
		data["term"] = attr("term")
	case node.TypeQuote, node.TypeVerse:
		data["attribution"] = attr("attribution")
		data["citetitle"] = attr("citetitle")
	case node.TypeInlineAnchor:
		data["window"] = attr("window")
	case node.TypeInlineQuoted:
		data["tag"] = quotedTags[attr("type")]
	}
	return data
}

// altText prefers the alt attribute and falls back to the target's base name
// without extension, with dashes and underscores read as spaces.
func altText(n node.Node) string {
	if alt, ok := n.Attr("alt"); ok && alt != "" {
		return alt
	}
	base := path.Base(n.Target())
	if base == "." || base == "/" {
		return ""
	}
	stem := strings.TrimSuffix(base, path.Ext(base))
	return strings.NewReplacer("-", " ", "_", " ").Replace(stem)
}
