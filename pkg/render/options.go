package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/validation"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the field.
type RenderOptions struct {
	// Label is rendered above the control. LabelKey, when set, is translated
	// and wins over Label.
	Label    string
	LabelKey string
	// PlaceholderKey translates into the placeholder attribute.
	PlaceholderKey string
	// Locale selects translations for LabelKey/PlaceholderKey and for
	// template helpers.
	Locale     string
	Translator validation.Translator
	OnMissing  validation.MissingTranslationHandler
	// Theme carries the resolved go-theme configuration. Renderers use the
	// "forms.textarea" partial when present, and expose tokens and CSS vars
	// to templates.
	Theme *theme.RendererConfig
	// HiddenFields are emitted next to the control (for example a CSRF token
	// when the fragment is posted on its own).
	HiddenFields map[string]string
}

// ThemePartial is the partial key renderers look up in Theme.Partials.
const ThemePartial = "forms.textarea"

// Partial returns the theme override for key, if any.
func (o RenderOptions) Partial(key string) string {
	if o.Theme == nil || len(o.Theme.Partials) == 0 {
		return ""
	}
	return o.Theme.Partials[key]
}

// AssetURL resolves a theme asset key, returning "" without a theme.
func (o RenderOptions) AssetURL(key string) string {
	if o.Theme == nil || o.Theme.AssetURL == nil {
		return ""
	}
	return o.Theme.AssetURL(key)
}
