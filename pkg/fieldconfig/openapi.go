package fieldconfig

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/textarea"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// WidgetExtension marks a string property as a textarea:
//
//	bio:
//	  type: string
//	  x-formfield-widget: textarea
const WidgetExtension = "x-formfield-widget"

// OpenAPIOptions selects which properties FromOpenAPI converts.
type OpenAPIOptions struct {
	// Schema is the component schema name under components.schemas.
	Schema string
	// AllStrings converts every string property, not only those marked with
	// format "textarea" or WidgetExtension.
	AllStrings bool
}

// FromOpenAPI derives definitions from the properties of an OpenAPI component
// schema. String length and pattern keywords become constraints, the
// schema's required list drives the required flag and maxLength is also
// applied to the native control.
func FromOpenAPI(ctx context.Context, data []byte, opts OpenAPIOptions) (*Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(opts.Schema)
	if name == "" {
		return nil, errors.New("fieldconfig: openapi schema name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("fieldconfig: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}

	schema := ref.Value
	required := make(map[string]bool, len(schema.Required))
	for _, prop := range schema.Required {
		required[prop] = true
	}

	props := make([]string, 0, len(schema.Properties))
	for prop := range schema.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)

	store := NewStore()
	source := "openapi:" + name
	for _, prop := range props {
		propRef := schema.Properties[prop]
		if propRef == nil || propRef.Value == nil {
			continue
		}
		if !isTextarea(propRef.Value, opts.AllStrings) {
			continue
		}
		def := definitionFromSchema(prop, propRef.Value, required[prop])
		def.Source = source
		if err := store.Add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func isTextarea(schema *openapi3.Schema, allStrings bool) bool {
	if schema.Type == nil || !containsType(schema.Type.Slice(), openapi3.TypeString) {
		return false
	}
	if allStrings || schema.Format == "textarea" {
		return true
	}
	widget, _ := schema.Extensions[WidgetExtension].(string)
	return strings.EqualFold(strings.TrimSpace(widget), "textarea")
}

func definitionFromSchema(name string, schema *openapi3.Schema, required bool) Definition {
	def := Definition{
		Name:     name,
		Label:    schema.Title,
		Disabled: schema.ReadOnly,
		Attributes: textarea.Attributes{
			Placeholder: schema.Description,
		},
		Validation: validation.Constraints{
			Required: validation.Bool(required),
			Reg:      schema.Pattern,
		},
	}
	if value, ok := schema.Default.(string); ok {
		def.Value = value
	}
	if schema.MinLength > 0 {
		def.Validation.Min = validation.Float(float64(schema.MinLength))
	}
	if schema.MaxLength != nil {
		def.Validation.Max = validation.Float(float64(*schema.MaxLength))
		def.Attributes.MaxLength = textarea.Limit(*schema.MaxLength)
	}
	return def
}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
