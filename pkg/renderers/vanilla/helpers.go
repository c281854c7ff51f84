package vanilla

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/textarea"
)

type attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// reservedAttributes are owned by the renderer; Extra cannot override them.
var reservedAttributes = map[string]struct{}{
	"id": {}, "name": {}, "class": {}, "cols": {}, "rows": {},
	"maxlength": {}, "placeholder": {}, "disabled": {},
}

// controlAttributes flattens the view into the attribute list of the
// textarea element. Known attributes come first; Extra follows sorted by name.
func controlAttributes(view textarea.View) []attribute {
	var attrs []attribute
	add := func(name, value string) {
		attrs = append(attrs, attribute{Name: name, Value: value})
	}

	if view.ID != "" {
		add("id", view.ID)
	}
	if view.Name != "" {
		add("name", view.Name)
	}
	if view.Attributes.Cols > 0 {
		add("cols", strconv.Itoa(int(view.Attributes.Cols)))
	}
	if view.Attributes.Rows > 0 {
		add("rows", strconv.Itoa(int(view.Attributes.Rows)))
	}
	if view.Attributes.MaxLength > 0 {
		add("maxlength", strconv.Itoa(int(view.Attributes.MaxLength)))
	}
	if view.Attributes.Placeholder != "" {
		add("placeholder", view.Attributes.Placeholder)
	}
	if view.Disabled {
		add("disabled", "")
	}
	if view.Error {
		add("aria-invalid", "true")
	}

	extra := make([]string, 0, len(view.Attributes.Extra))
	for name := range view.Attributes.Extra {
		key := strings.ToLower(strings.TrimSpace(name))
		if !validAttributeName(key) {
			continue
		}
		if _, reserved := reservedAttributes[key]; reserved {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		add(strings.ToLower(strings.TrimSpace(name)), view.Attributes.Extra[name])
	}
	return attrs
}

// validAttributeName accepts the conservative subset of HTML attribute names
// that never needs quoting: letters, digits, '-', '_' and ':'. Inline event
// handlers (on*) are rejected.
func validAttributeName(name string) bool {
	if name == "" || strings.HasPrefix(name, "on") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == ':':
		default:
			return false
		}
	}
	return true
}

type themeContext struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"css_vars,omitempty"`
	CSSVarsStyle string            `json:"css_vars_style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       cfg.Tokens,
		CSSVars:      cfg.CSSVars,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
