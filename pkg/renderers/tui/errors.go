package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDisabled is returned when prompting for a disabled field.
	ErrDisabled = errors.New("tui: field is disabled")
	// ErrTooLong rejects an answer longer than the field's maxLength.
	ErrTooLong = errors.New("tui: value exceeds maxLength")
)
