package render

import (
	"strings"

	"github.com/goliatone/go-formfield/pkg/textarea"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Localize resolves opts.LabelKey and opts.PlaceholderKey. The placeholder is
// written into view; the label is returned.
//
// This is best-effort: translation failures are routed through opts.OnMissing,
// and without a handler the literal Label/Placeholder (or the key itself) is
// used.
func Localize(view *textarea.View, opts RenderOptions) string {
	label := strings.TrimSpace(opts.Label)
	if key := strings.TrimSpace(opts.LabelKey); key != "" {
		label = translate(opts.Locale, key, label, opts.Translator, opts.OnMissing)
	}
	if view != nil {
		if key := strings.TrimSpace(opts.PlaceholderKey); key != "" {
			view.Attributes.Placeholder = translate(opts.Locale, key, strings.TrimSpace(view.Attributes.Placeholder), opts.Translator, opts.OnMissing)
		}
	}
	return label
}

func translate(locale, key, fallback string, t validation.Translator, onMissing validation.MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{"default", fallback}, validation.ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{"default", fallback}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
