package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueType selects how bounds are interpreted: string length or numeric value.
type ValueType string

const (
	// TypeString interprets min/max against the value's length in runes.
	TypeString ValueType = "string"
	// TypeNumber requires a numeric value and interprets min/max against it.
	TypeNumber ValueType = "number"
	// TypeNull marks an explicit null in a config document. It is never valid
	// and exists so the evaluator can diagnose it instead of defaulting.
	TypeNull ValueType = "null"
)

// Valid reports whether the type is recognized. The empty value means
// "unset" and defaults to TypeString.
func (t ValueType) Valid() bool {
	switch t {
	case "", TypeString, TypeNumber:
		return true
	default:
		return false
	}
}

// OrDefault resolves the unset type to TypeString.
func (t ValueType) OrDefault() ValueType {
	if t == "" {
		return TypeString
	}
	return t
}

// UnmarshalJSON keeps an explicit null distinguishable from a missing key.
func (t *ValueType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = TypeNull
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("validation: type must be a string: %w", err)
	}
	*t = ValueType(raw)
	return nil
}

// CustomFunc is a caller supplied predicate. A nil error passes; a non-nil
// error fails and its text becomes the displayed message.
type CustomFunc func(value string) error

// Constraints is the declarative constraint set attached to a single field.
// Pointer fields are optional; nil means "not configured" and the documented
// default applies.
type Constraints struct {
	// Name prefixes generated messages ("<name> length must be 5").
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type is "string" (default) or "number".
	Type ValueType `json:"type,omitempty" yaml:"type,omitempty"`
	// Check is the master switch. Default true.
	Check *bool `json:"check,omitempty" yaml:"check,omitempty"`
	// Required fails empty values. Default true.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`
	// ShowMsg gates message display without changing the outcome. Default true.
	ShowMsg *bool `json:"showMsg,omitempty" yaml:"showMsg,omitempty"`
	// Length requires an exact length in runes.
	Length *int `json:"length,omitempty" yaml:"length,omitempty"`
	// Min and Max are inclusive bounds, either optional.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// Reg is an RE2 pattern the value must match.
	Reg    string `json:"reg,omitempty" yaml:"reg,omitempty"`
	RegMsg string `json:"regMsg,omitempty" yaml:"regMsg,omitempty"`
	// Compare is the exact value the field must equal.
	Compare *string `json:"compare,omitempty" yaml:"compare,omitempty"`
	// CustomFunc runs last, after every declarative rule passed.
	CustomFunc CustomFunc `json:"-" yaml:"-"`
	// MsgOnError replaces localized failure messages.
	MsgOnError string `json:"msgOnError,omitempty" yaml:"msgOnError,omitempty"`
	// MsgOnSuccess is shown when every rule passes.
	MsgOnSuccess string `json:"msgOnSuccess,omitempty" yaml:"msgOnSuccess,omitempty"`
	// Locale selects the message set. Default "en-US".
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// UnmarshalYAML decodes the constraint set and records an explicit `type: null`
// as TypeNull. yaml.v3 never hands null scalars to field unmarshalers, so the
// check happens on the mapping node.
func (c *Constraints) UnmarshalYAML(node *yaml.Node) error {
	type plain Constraints
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*c = Constraints(decoded)

	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "type" && node.Content[i+1].ShortTag() == "!!null" {
			c.Type = TypeNull
		}
	}
	return nil
}

// CheckEnabled reports whether evaluation runs at all.
func (c Constraints) CheckEnabled() bool { return boolOr(c.Check, true) }

// RequiredEnabled reports whether empty values fail.
func (c Constraints) RequiredEnabled() bool { return boolOr(c.Required, true) }

// ShowMessages reports whether outcomes should be displayed.
func (c Constraints) ShowMessages() bool { return boolOr(c.ShowMsg, true) }

// Bool returns a pointer to v, for optional constraint fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
