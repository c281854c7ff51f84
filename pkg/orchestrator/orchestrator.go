package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/fieldconfig"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfield/pkg/textarea"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFieldStore supplies the definitions requests refer to by name.
func WithFieldStore(store *fieldconfig.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when the selected theme does not
// provide them. Defaults to render.DefaultThemeFallbacks.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithFieldOptions forwards options to every field the orchestrator builds.
func WithFieldOptions(options ...textarea.Option) Option {
	return func(o *Orchestrator) {
		o.fieldOptions = append(o.fieldOptions, options...)
	}
}

// WithLogger sets the logger for pipeline diagnostics. It is also handed to
// the fields it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a field definition to rendered
// output. It applies sensible defaults (vanilla renderer, embedded templates)
// while remaining open to dependency injection.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	store           *fieldconfig.Store
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	fieldOptions    []textarea.Option
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = render.DefaultThemeFallbacks()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: configure vanilla renderer: %w", err)
			return
		}
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register vanilla renderer: %w", err)
		}
	}
}

// Request describes one field render.
type Request struct {
	// Field names a definition in the configured store. Optional when
	// Definition is supplied.
	Field string
	// Definition bypasses the store.
	Definition *fieldconfig.Definition

	// Value replaces the definition's value as if the user had typed it.
	// Values longer than maxLength are rejected the same way.
	Value *string
	// Validate evaluates the value before rendering, as a blur would.
	Validate bool
	// ServerErrors is a server-side error payload keyed by field path. Messages
	// mapped to this field are overlaid as an async error.
	ServerErrors map[string][]string

	// Renderer names the renderer to use. If empty, the default is used.
	Renderer string

	// ThemeName and ThemeVariant are passed to the theme selector. Ignored
	// when RenderOptions.Theme is already set or no selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions overlays the definition's label settings. Non-empty
	// fields win.
	RenderOptions render.RenderOptions
}

// Result is a built field with the render options resolved for it.
type Result struct {
	Definition    fieldconfig.Definition
	Field         *textarea.Field
	RenderOptions render.RenderOptions
	// FormErrors are server messages that matched no field.
	FormErrors []string
}

// Build resolves the definition, constructs the field and applies the
// request's value, validation and server errors. It does not render.
func (o *Orchestrator) Build(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	def, err := o.resolveDefinition(req)
	if err != nil {
		return Result{}, err
	}

	field := textarea.New(def.Props(), append([]textarea.Option{textarea.WithLogger(o.logger)}, o.fieldOptions...)...)
	if req.Value != nil && !field.Change(*req.Value) {
		o.logger.Info("orchestrator: submitted value exceeds maxLength",
			slog.String("field", def.Name),
			slog.Int("maxLength", int(def.Attributes.MaxLength)),
		)
	}
	if req.Validate {
		field.Blur()
	}

	result := Result{Definition: def, Field: field}
	if len(req.ServerErrors) > 0 {
		mapping := render.MapErrorPayload([]string{def.Name}, req.ServerErrors)
		if async, ok := mapping.AsyncResult(def.Name); ok {
			field.PushAsync(async)
		}
		result.FormErrors = mapping.Form
	}

	opts, err := o.renderOptions(def, req)
	if err != nil {
		return Result{}, err
	}
	result.RenderOptions = opts
	return result, nil
}

// Generate builds the field and renders it with the selected renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	built, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, built.Field.View(), built.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDefinition(req Request) (fieldconfig.Definition, error) {
	if req.Definition != nil {
		if req.Definition.Name == "" {
			return fieldconfig.Definition{}, fieldconfig.ErrMissingName
		}
		return *req.Definition, nil
	}
	if req.Field == "" {
		return fieldconfig.Definition{}, errors.New("orchestrator: field name or definition is required")
	}
	def, ok := o.store.Field(req.Field)
	if !ok {
		return fieldconfig.Definition{}, fmt.Errorf("orchestrator: %w: %q", fieldconfig.ErrUnknownField, req.Field)
	}
	return def, nil
}

func (o *Orchestrator) renderOptions(def fieldconfig.Definition, req Request) (render.RenderOptions, error) {
	opts := def.RenderOptions()
	overlay := req.RenderOptions
	if overlay.Label != "" {
		opts.Label = overlay.Label
	}
	if overlay.LabelKey != "" {
		opts.LabelKey = overlay.LabelKey
	}
	if overlay.PlaceholderKey != "" {
		opts.PlaceholderKey = overlay.PlaceholderKey
	}
	if overlay.Locale != "" {
		opts.Locale = overlay.Locale
	}
	opts.Translator = overlay.Translator
	opts.OnMissing = overlay.OnMissing
	opts.HiddenFields = overlay.HiddenFields
	opts.Theme = overlay.Theme

	if opts.Theme == nil && o.themeSelector != nil {
		selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return render.RenderOptions{}, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		opts.Theme = render.ThemeConfig(selection, o.themeFallbacks)
	}
	return opts, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderer available: %w", err)
	}
	return renderer, nil
}
