package formfield

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/fieldconfig"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfield/pkg/textarea"
)

// Props configures a textarea field; alias exported via the root package for
// convenience.
type Props = textarea.Props

// Field aliases textarea.Field.
type Field = textarea.Field

// Definition aliases fieldconfig.Definition for callers loading fields from
// config files.
type Definition = fieldconfig.Definition

// RenderOptions describes per-request label, translation, theme and hidden
// field settings.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewField builds a textarea field from props.
func NewField(props Props, options ...textarea.Option) *Field {
	return textarea.New(props, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

var (
	htmlOnce     sync.Once
	htmlRenderer *vanilla.Renderer
	htmlErr      error
)

// RenderHTML renders the current state of field with the embedded vanilla
// templates.
func RenderHTML(ctx context.Context, field *Field, opts RenderOptions) ([]byte, error) {
	if field == nil {
		return nil, errors.New("formfield: field is required")
	}
	htmlOnce.Do(func() {
		htmlRenderer, htmlErr = vanilla.New()
	})
	if htmlErr != nil {
		return nil, htmlErr
	}
	return htmlRenderer.Render(ctx, field.View(), opts)
}

// GenerateHTML resolves the request against the definitions in store and
// renders it with the named renderer (vanilla when empty). It is the simplest
// entry point for handlers that re-render a submitted field.
func GenerateHTML(ctx context.Context, store *fieldconfig.Store, req Request, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithFieldStore(store)}, options...)...)
	return gen.Generate(ctx, req)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithLogger routes pipeline and field diagnostics to logger.
func WithLogger(logger *slog.Logger) orchestrator.Option {
	return orchestrator.WithLogger(logger)
}
