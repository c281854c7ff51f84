package textarea

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/validation"
)

// MsgClassIdentifier marks the rendered message element so tests and
// automation can find it. No element carries it while no message is visible.
const MsgClassIdentifier = "formfield__msg_identifier"

// Limit is a non-negative attribute value that config files may spell as a
// number or a numeric string ("2").
type Limit int

// UnmarshalJSON accepts 10 and "10".
func (l *Limit) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = 0
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		return l.parse(raw)
	}
	var n int
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("textarea: limit must be an integer: %w", err)
	}
	*l = Limit(n)
	return nil
}

// UnmarshalYAML accepts 10 and "10".
func (l *Limit) UnmarshalYAML(node *yaml.Node) error {
	return l.parse(node.Value)
}

func (l *Limit) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*l = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("textarea: limit %q is not an integer: %w", raw, err)
	}
	*l = Limit(n)
	return nil
}

// Attributes are passed through to the native control.
type Attributes struct {
	Cols        Limit  `json:"cols,omitempty" yaml:"cols,omitempty"`
	Rows        Limit  `json:"rows,omitempty" yaml:"rows,omitempty"`
	MaxLength   Limit  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// Extra holds any other attribute, rendered verbatim after escaping.
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// AsyncResult is a validation outcome computed outside the field, typically
// by a network round trip, and pushed in by the host.
type AsyncResult struct {
	Error   bool   `json:"error" yaml:"error"`
	Message string `json:"message" yaml:"message"`
	// ShowOnError defaults to true.
	ShowOnError *bool `json:"showOnError,omitempty" yaml:"showOnError,omitempty"`
	// ShowOnSuccess defaults to false.
	ShowOnSuccess *bool `json:"showOnSuccess,omitempty" yaml:"showOnSuccess,omitempty"`
}

func (r AsyncResult) equal(other AsyncResult) bool {
	return r.Error == other.Error &&
		r.Message == other.Message &&
		sameBool(r.ShowOnError, other.ShowOnError) &&
		sameBool(r.ShowOnSuccess, other.ShowOnSuccess)
}

func sameBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Props configures a Field. Callbacks are optional; nil ones are skipped.
type Props struct {
	ID         string
	Name       string
	Value      string
	Disabled   bool
	Attributes Attributes

	// Validate forces an evaluation when it turns true.
	Validate bool
	// Validation is the constraint set.
	Validation validation.Constraints
	// ValidationCallback receives hasError=true when an evaluation that
	// actually ran failed, false when it passed.
	ValidationCallback func(hasError bool)
	// Async overlays an externally computed result. A changed value is applied
	// by SetProps.
	Async *AsyncResult

	OnFocus  func()
	OnBlur   func()
	OnChange func(value string)
	OnKeyUp  func(key string)
	OnClick  func()
}
