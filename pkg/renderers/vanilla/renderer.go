package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-formfield/pkg/render"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	gotemplate "github.com/goliatone/go-formfield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formfield/pkg/textarea"
)

const defaultTemplate = "templates/textarea.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	stylesheet       string
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain templates/textarea.tmpl.
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

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet in a <style> element.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet. A theme stylesheet asset takes
// precedence at render time.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer produces an HTML fragment for a textarea field.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles string
	stylesheet   string
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
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
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	out := &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		logger:     cfg.logger,
	}
	if cfg.inlineStyles {
		out.inlineStyles = defaultStylesheet()
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the field markup. The message element, marked with
// textarea.MsgClassIdentifier, is present only while a message is visible.
func (r *Renderer) Render(ctx context.Context, view textarea.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	label := render.Localize(&view, opts)

	stylesheet := r.stylesheet
	if href := opts.AssetURL(StylesheetAsset); href != "" {
		stylesheet = href
	}

	data := map[string]any{
		"view":          view,
		"label":         label,
		"attrs":         controlAttributes(view),
		"theme":         buildThemeContext(opts.Theme),
		"stylesheet":    stylesheet,
		"inline_styles": r.inlineStyles,
		"hidden_fields": render.SortedHiddenFields(opts.HiddenFields),
		"locale":        opts.Locale,
	}
	for name, fn := range render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{OnMissing: opts.OnMissing}) {
		data[name] = fn
	}

	name := defaultTemplate
	if partial := opts.Partial(render.ThemePartial); partial != "" {
		name = partial
		r.logger.Debug("vanilla renderer: using theme partial",
			slog.String("partial", partial),
			slog.String("field", view.Name),
		)
	}

	result, err := r.templates.Render(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
