package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTranslator is passed to MissingTranslationHandler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("validation: translator is not configured")
	// ErrUnknownLocale is returned by the catalog for locales it does not hold.
	ErrUnknownLocale = errors.New("validation: unknown locale")
	// ErrMissingMessage is returned when a locale lacks a message key.
	ErrMissingMessage = errors.New("validation: missing message")
)

// ConfigError describes a developer mistake in a constraint set. It is
// diagnosed, never surfaced to the end user, and never stops the field from
// accepting input.
type ConfigError struct {
	Field  string
	Option string
	Value  string
	Reason string
}

func (e ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: invalid %s %q: %s", e.Option, e.Value, e.Reason)
	}
	return fmt.Sprintf("validation: %s: invalid %s %q: %s", e.Field, e.Option, e.Value, e.Reason)
}
