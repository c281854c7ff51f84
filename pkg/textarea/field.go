package textarea

import (
	"log/slog"
	"reflect"
	"unicode/utf8"

	"github.com/goliatone/go-formfield/pkg/validation"
)

// State is the message visibility state of a field.
type State int

const (
	Hidden State = iota
	ShowingError
	ShowingSuccess
)

func (s State) String() string {
	switch s {
	case ShowingError:
		return "error"
	case ShowingSuccess:
		return "success"
	default:
		return "hidden"
	}
}

// MarshalText renders the state as its name in JSON/template payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type source int

const (
	sourceNone source = iota
	sourceSync
	sourceAsync
)

// Option configures a Field.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	evaluation []validation.Option
}

// WithLogger sets the logger used for diagnostics. The evaluator shares it.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithValidationOptions forwards options to every evaluator the field builds.
func WithValidationOptions(options ...validation.Option) Option {
	return func(cfg *config) {
		cfg.evaluation = append(cfg.evaluation, options...)
	}
}

// Field is a multi-line text input with inline validation. A Field is owned
// by a single goroutine, the same way a UI widget belongs to its event loop.
type Field struct {
	props     Props
	value     string
	state     State
	message   string
	source    source
	last      validation.Result
	evaluator *validation.Evaluator

	logger     *slog.Logger
	evaluation []validation.Option
}

// New builds a field from props. When props.Validate is already set the
// value is evaluated immediately.
func New(props Props, options ...Option) *Field {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	f := &Field{
		props:      props,
		value:      props.Value,
		logger:     cfg.logger,
		evaluation: cfg.evaluation,
	}
	f.evaluator = f.newEvaluator(props.Validation)

	if props.Async != nil {
		f.applyAsync(*props.Async)
	}
	if props.Validate {
		f.validate()
	}
	return f
}

func (f *Field) newEvaluator(constraints validation.Constraints) *validation.Evaluator {
	options := append([]validation.Option{validation.WithLogger(f.logger)}, f.evaluation...)
	return validation.NewEvaluator(constraints, options...)
}

// Value returns the current value.
func (f *Field) Value() string { return f.value }

// State returns the message visibility state.
func (f *Field) State() State { return f.state }

// Message returns the visible message, empty while Hidden.
func (f *Field) Message() string { return f.message }

// Result returns the last synchronous evaluation.
func (f *Field) Result() validation.Result { return f.last }

// Props returns the current props.
func (f *Field) Props() Props { return f.props }

// Evaluator exposes the evaluator built from the current constraint set.
func (f *Field) Evaluator() *validation.Evaluator { return f.evaluator }

// Focus hides any visible message, including an async overlay, then
// forwards to OnFocus.
func (f *Field) Focus() {
	if f.props.Disabled {
		return
	}
	f.hide()
	if f.props.OnFocus != nil {
		f.props.OnFocus()
	}
}

// Blur evaluates the current value, updates the visible message and reports
// whether it failed to ValidationCallback before forwarding to OnBlur.
func (f *Field) Blur() {
	if f.props.Disabled {
		return
	}
	f.validate()
	if f.props.OnBlur != nil {
		f.props.OnBlur()
	}
}

// Change replaces the value. A value longer than Attributes.MaxLength runes
// is rejected: the value stays as it was, OnChange is not called and Change
// returns false. A MaxLength of 0 means unbounded.
func (f *Field) Change(value string) bool {
	if f.props.Disabled {
		return false
	}
	if limit := int(f.props.Attributes.MaxLength); limit > 0 && utf8.RuneCountInString(value) > limit {
		f.logger.Debug("textarea: change rejected, value exceeds maxLength",
			slog.String("field", f.props.Name),
			slog.Int("maxLength", limit),
			slog.Int("length", utf8.RuneCountInString(value)),
		)
		return false
	}

	f.value = value
	if f.source == sourceAsync {
		f.hide()
	}
	if f.props.OnChange != nil {
		f.props.OnChange(value)
	}
	return true
}

// KeyUp forwards to OnKeyUp.
func (f *Field) KeyUp(key string) {
	if f.props.Disabled {
		return
	}
	if f.props.OnKeyUp != nil {
		f.props.OnKeyUp(key)
	}
}

// Click forwards to OnClick.
func (f *Field) Click() {
	if f.props.Disabled {
		return
	}
	if f.props.OnClick != nil {
		f.props.OnClick()
	}
}

// PushAsync overlays an externally computed result. It stays visible until
// the field is focused again or its value changes, or a newer evaluation
// replaces it.
func (f *Field) PushAsync(result AsyncResult) {
	pushed := result
	f.props.Async = &pushed
	f.applyAsync(result)
}

// SetProps reconciles the field with new props, the way a parent re-render
// would: a changed constraint set rebuilds the evaluator, a changed value
// replaces the current one, a changed async result is overlaid and Validate
// turning true forces an evaluation.
func (f *Field) SetProps(next Props) {
	prev := f.props
	f.props = next

	if !sameConstraints(prev.Validation, next.Validation) {
		f.evaluator = f.newEvaluator(next.Validation)
	}

	if next.Value != prev.Value {
		f.value = next.Value
		if f.source == sourceAsync {
			f.hide()
		}
	}

	if next.Async != nil && (prev.Async == nil || !prev.Async.equal(*next.Async)) {
		f.applyAsync(*next.Async)
	}

	if next.Validate && !prev.Validate {
		f.validate()
	}
}

func (f *Field) validate() validation.Result {
	result := f.evaluator.Evaluate(f.value)
	f.last = result

	switch {
	case !result.HasMessage() || !f.evaluator.ShowMessages():
		f.hide()
	case result.Outcome == validation.Fail:
		f.show(ShowingError, result.Message, sourceSync)
	default:
		f.show(ShowingSuccess, result.Message, sourceSync)
	}

	if !result.Skipped && f.props.ValidationCallback != nil {
		f.props.ValidationCallback(!result.Valid())
	}
	return result
}

func (f *Field) applyAsync(result AsyncResult) {
	switch {
	case result.Error && boolOr(result.ShowOnError, true):
		f.show(ShowingError, result.Message, sourceAsync)
	case !result.Error && boolOr(result.ShowOnSuccess, false):
		f.show(ShowingSuccess, result.Message, sourceAsync)
	}
}

func (f *Field) show(state State, message string, from source) {
	f.state = state
	f.message = message
	f.source = from
}

func (f *Field) hide() {
	f.state = Hidden
	f.message = ""
	f.source = sourceNone
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// sameConstraints compares constraint sets; custom funcs compare by identity.
func sameConstraints(a, b validation.Constraints) bool {
	fnA, fnB := a.CustomFunc, b.CustomFunc
	a.CustomFunc, b.CustomFunc = nil, nil
	if !reflect.DeepEqual(a, b) {
		return false
	}
	if fnA == nil || fnB == nil {
		return fnA == nil && fnB == nil
	}
	return reflect.ValueOf(fnA).Pointer() == reflect.ValueOf(fnB).Pointer()
}
