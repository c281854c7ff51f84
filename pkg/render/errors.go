package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formfield/pkg/textarea"
)

// ErrorMapping splits a server-side error payload into messages keyed by field
// name and messages that belong to no known field.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// paths such as "/body/bio") onto the supplied field names. Unknown paths are
// treated as form-level errors so messages are not lost.
func MapErrorPayload(fieldNames []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(fieldNames))
	for _, name := range fieldNames {
		if name = strings.TrimSpace(name); name != "" {
			known[name] = struct{}{}
		}
	}

	for rawPath, messages := range payload {
		normalizedMessages := normalizeMessages(messages)
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, known)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], normalizedMessages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// AsyncResult turns the messages mapped to name into an overlay the field can
// display. It reports false when the server had nothing to say about name.
func (m ErrorMapping) AsyncResult(name string) (textarea.AsyncResult, bool) {
	messages := m.Fields[strings.TrimSpace(name)]
	if len(messages) == 0 {
		return textarea.AsyncResult{}, false
	}
	return textarea.AsyncResult{
		Error:   true,
		Message: strings.Join(messages, "; "),
	}, true
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// wrapperSegments are envelope keys request validators put in front of the
// submitted field name.
var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

// mapErrorPath resolves raw to a field name. The first segment left after
// dropping wrapper and index segments must name a field; the textarea value
// is a scalar, so anything after it is ignored.
func mapErrorPath(raw string, fieldNames map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	for _, segment := range parsePathSegments(raw) {
		if _, wrapper := wrapperSegments[strings.ToLower(segment)]; wrapper {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := fieldNames[segment]; ok {
			return segment, false
		}
		break
	}
	return "", true
}

// parsePathSegments splits JSON pointers ("/body/bio"), JSONPath-ish
// ("$.data.bio[0]") and dotted paths into unescaped segments.
func parsePathSegments(path string) []string {
	clean := strings.TrimLeft(strings.TrimSpace(path), "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
