package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-doctemplate/pkg/chain"
	"github.com/goliatone/go-doctemplate/pkg/document"
	"github.com/goliatone/go-doctemplate/pkg/node"
	"github.com/goliatone/go-doctemplate/pkg/render"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
	"github.com/goliatone/go-doctemplate/pkg/renderers/html5"
	"github.com/goliatone/go-doctemplate/pkg/source"
)

const defaultRendererName = html5.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplateDirs appends template directories. Directories are scanned in
// the order given; later directories take priority over earlier ones.
func WithTemplateDirs(dirs ...string) Option {
	return func(o *Orchestrator) {
		o.templateDirs = append(o.templateDirs, dirs...)
	}
}

// WithTemplates sets the in-memory templates: a source.Mapping, a
// string-keyed map of render functions, or a sequence of those. See
// source.NormalizeTemplates for every accepted shape.
func WithTemplates(templates any) Option {
	return func(o *Orchestrator) {
		o.templates = templates
	}
}

// WithTemplateEngines sets the engine bindings used to compile directory
// templates. See template.NormalizeEngines for accepted shapes. When unset the
// DefaultEngines bindings apply.
func WithTemplateEngines(engines any) Option {
	return func(o *Orchestrator) {
		o.engines = engines
	}
}

// WithSources replaces directory and template ordering with an explicit
// sequence. Strings are loaded as template directories; any other item is
// normalised as templates. Items keep their position, the last one having the
// highest priority.
func WithSources(items ...any) Option {
	return func(o *Orchestrator) {
		o.sources = append(o.sources, items...)
		o.sourcesSpecified = true
	}
}

// WithOrder selects how template directories and in-memory templates are
// combined when WithSources is not used.
func WithOrder(order Order) Option {
	return func(o *Orchestrator) {
		o.order = order
	}
}

// WithStrict reports skipped template files at warn level.
func WithStrict(strict bool) Option {
	return func(o *Orchestrator) {
		o.strict = strict
	}
}

// WithRegistry injects a default renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer selects the registered backend that terminates every
// chain.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSanitizer passes every template's output through policy. The default
// renderer output is left untouched.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.sanitizer = policy
	}
}

// WithLogger routes discovery and render diagnostics through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth bounds nested child rendering.
func WithMaxDepth(depth int) Option {
	return func(o *Orchestrator) {
		o.maxDepth = depth
	}
}

// WithTheme adds a go-theme selection as the lowest-priority template source.
// Template paths in the manifest are read from files.
func WithTheme(selection *theme.Selection, files fs.FS) Option {
	return func(o *Orchestrator) {
		o.themeSelection = selection
		o.themeFS = files
	}
}

// WithThemeSelector resolves name and variant through selector when the
// orchestrator initialises.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string, files fs.FS) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
		o.themeFS = files
	}
}

// WithTransformer registers a Transformer that mutates documents before they
// are converted.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator owns a configured converter. All configuration work (engine
// resolution, directory scanning, template compilation) happens in New; a
// failure is retained and returned by Err and every later call.
type Orchestrator struct {
	templateDirs     []string
	templates        any
	engines          any
	sources          []any
	sourcesSpecified bool
	order            Order
	strict           bool
	registry         *render.Registry
	defaultRenderer  string
	sanitizer        *bluemonday.Policy
	logger           *slog.Logger
	maxDepth         int
	themeSelection   *theme.Selection
	themeSelector    theme.ThemeSelector
	themeName        string
	themeVariant     string
	themeFS          fs.FS
	transformer      Transformer

	composite     *template.Composite
	chainSources  []source.Source
	converter     *render.Converter
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.initialiseErr = o.initialise()
	return o
}

// Err reports the configuration error captured by New, if any.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Request describes a document to convert.
type Request struct {
	// Document is a pre-built node tree. Optional when Path is supplied.
	Document node.Node

	// Path locates a JSON or YAML document on disk.
	Path string
}

// Convert loads the requested document, applies the transformer and renders
// the root node through the template chain.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.initialiseErr; err != nil {
		return "", err
	}

	doc, err := o.resolveDocument(req)
	if err != nil {
		return "", err
	}
	if err := o.applyTransformer(ctx, doc); err != nil {
		return "", err
	}

	out, err := document.Convert(doc, o.converter)
	if err != nil {
		return "", fmt.Errorf("orchestrator: convert: %w", err)
	}
	return out, nil
}

// Converter exposes the configured converter.
func (o *Orchestrator) Converter() (*render.Converter, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.converter, nil
}

// Engines returns the resolved engine bindings.
func (o *Orchestrator) Engines() *template.Composite {
	return o.composite
}

// Sources lists the template sources in chain order, lowest priority first.
func (o *Orchestrator) Sources() []source.Source {
	return append([]source.Source(nil), o.chainSources...)
}

// Explain returns the names of the sources contributing a template for typ,
// lowest priority first.
func (o *Orchestrator) Explain(typ node.Type) []string {
	if o.converter == nil {
		return nil
	}
	return o.converter.Candidates(typ).Sources()
}

// ContentType reports the content type of the default renderer.
func (o *Orchestrator) ContentType() string {
	if o.converter == nil {
		return ""
	}
	return o.converter.Fallback().ContentType()
}

func (o *Orchestrator) resolveDocument(req Request) (node.Node, error) {
	if req.Document != nil {
		return req.Document, nil
	}
	if req.Path == "" {
		return nil, errors.New("orchestrator: document or path is required")
	}
	doc, err := document.Load(req.Path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, doc node.Node) error {
	if o.transformer == nil {
		return nil
	}
	el, ok := doc.(*node.Element)
	if !ok {
		return nil
	}
	if err := o.transformer.Transform(ctx, el); err != nil {
		return fmt.Errorf("orchestrator: transform document: %w", err)
	}
	return nil
}

func (o *Orchestrator) initialise() error {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html5.New()
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		o.registry.MustRegister(renderer)
	}
	fallback, err := o.rendererFor(o.defaultRenderer)
	if err != nil {
		return err
	}

	composite, err := template.NormalizeEngines(o.engines)
	if err != nil {
		return err
	}
	if composite == nil {
		composite, err = DefaultEngines(nil)
		if err != nil {
			return err
		}
	}
	o.composite = composite

	sources, err := o.resolveSources()
	if err != nil {
		return err
	}
	o.chainSources = sources

	table := chain.BuildTable(sources,
		chain.WithLogger(o.logger),
		chain.WithSanitizer(o.sanitizer),
	)
	converter, err := render.NewConverter(table, fallback,
		render.WithLogger(o.logger),
		render.WithMaxDepth(o.maxDepth),
	)
	if err != nil {
		return err
	}
	o.converter = converter
	return nil
}

func (o *Orchestrator) rendererFor(name string) (render.DefaultRenderer, error) {
	target := name
	if target == "" {
		target = defaultRendererName
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
