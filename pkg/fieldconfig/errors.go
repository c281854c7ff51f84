package fieldconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName is returned for definitions without a field name.
	ErrMissingName = errors.New("fieldconfig: field name is required")
	// ErrUnknownField is returned when a requested field is not defined.
	ErrUnknownField = errors.New("fieldconfig: unknown field")
	// ErrSchemaNotFound is returned when an OpenAPI document lacks the
	// requested component schema.
	ErrSchemaNotFound = errors.New("fieldconfig: schema not found")
)

// DuplicateFieldError reports a field name defined twice.
type DuplicateFieldError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("fieldconfig: duplicate field %q (defined in %s and %s)", e.Name, e.First, e.Second)
}
