package fieldconfig

import (
	"sort"

	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/textarea"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Definition is the declarative form of a textarea field.
type Definition struct {
	Name           string                 `json:"name,omitempty" yaml:"name,omitempty"`
	ID             string                 `json:"id,omitempty" yaml:"id,omitempty"`
	Label          string                 `json:"label,omitempty" yaml:"label,omitempty"`
	LabelKey       string                 `json:"labelKey,omitempty" yaml:"labelKey,omitempty"`
	PlaceholderKey string                 `json:"placeholderKey,omitempty" yaml:"placeholderKey,omitempty"`
	Value          string                 `json:"value,omitempty" yaml:"value,omitempty"`
	Disabled       bool                   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Attributes     textarea.Attributes    `json:"attributes" yaml:"attributes"`
	Validate       bool                   `json:"validate,omitempty" yaml:"validate,omitempty"`
	Validation     validation.Constraints `json:"validation" yaml:"validation"`
	Async          *textarea.AsyncResult  `json:"async,omitempty" yaml:"async,omitempty"`

	// Source is the file or document the definition came from.
	Source string `json:"-" yaml:"-"`
}

// Props converts the definition into field props. Callbacks are left unset.
func (d Definition) Props() textarea.Props {
	props := textarea.Props{
		ID:         d.ID,
		Name:       d.Name,
		Value:      d.Value,
		Disabled:   d.Disabled,
		Attributes: cloneAttributes(d.Attributes),
		Validate:   d.Validate,
		Validation: d.Validation,
	}
	if d.Async != nil {
		async := *d.Async
		props.Async = &async
	}
	return props
}

// RenderOptions seeds render options with the definition's label settings
// and the constraint locale.
func (d Definition) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Label:          d.Label,
		LabelKey:       d.LabelKey,
		PlaceholderKey: d.PlaceholderKey,
		Locale:         d.Validation.Locale,
	}
}

// Store holds definitions keyed by field name.
type Store struct {
	fields map[string]Definition
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{fields: make(map[string]Definition)}
}

// Add registers a definition. Names must be unique.
func (s *Store) Add(def Definition) error {
	if def.Name == "" {
		return ErrMissingName
	}
	if existing, ok := s.fields[def.Name]; ok {
		return &DuplicateFieldError{Name: def.Name, First: existing.Source, Second: def.Source}
	}
	s.fields[def.Name] = def
	return nil
}

// Field returns the definition for name.
func (s *Store) Field(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.fields[name]
	return def, ok
}

// Names returns the registered field names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.fields) == 0
}

func cloneAttributes(attrs textarea.Attributes) textarea.Attributes {
	out := attrs
	if len(attrs.Extra) > 0 {
		out.Extra = make(map[string]string, len(attrs.Extra))
		for k, v := range attrs.Extra {
			out.Extra[k] = v
		}
	}
	return out
}
