package validation

import (
	"errors"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	translator Translator
	onMissing  MissingTranslationHandler
}

// WithLogger routes configuration diagnostics to logger. Without it
// diagnostics are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTranslator replaces the default catalog. Locale checks only run when
// the translator also implements LocaleResolver.
func WithTranslator(t Translator) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.translator = t
		}
	}
}

// WithMissingTranslationHandler controls the text used when a message key
// cannot be translated.
func WithMissingTranslationHandler(fn MissingTranslationHandler) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.onMissing = fn
		}
	}
}

// Evaluator runs a constraint set against values. The configuration is
// checked once, at construction.
type Evaluator struct {
	constraints Constraints
	valueType   ValueType
	locale      string
	reg         *regexp.Regexp
	disabled    bool
	skipLength  bool
	skipBounds  bool
	issues      []ConfigError

	logger     *slog.Logger
	translator Translator
	onMissing  MissingTranslationHandler
}

// NewEvaluator validates constraints and prepares them for evaluation.
// Configuration problems are logged and kept in Issues; they never prevent
// construction.
func NewEvaluator(constraints Constraints, options ...Option) *Evaluator {
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
	if cfg.translator == nil {
		cfg.translator = DefaultCatalog()
	}
	if cfg.onMissing == nil {
		cfg.onMissing = missingTranslationDefault
	}

	e := &Evaluator{
		constraints: constraints,
		valueType:   constraints.Type.OrDefault(),
		logger:      cfg.logger,
		translator:  cfg.translator,
		onMissing:   cfg.onMissing,
	}
	e.prepare()
	return e
}

// Validate reports configuration problems in c using the default catalog.
// It returns nil when the set is usable as is.
func (c Constraints) Validate() error {
	issues := NewEvaluator(c).Issues()
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, 0, len(issues))
	for _, issue := range issues {
		errs = append(errs, issue)
	}
	return errors.Join(errs...)
}

// Constraints returns the constraint set the evaluator was built from.
func (e *Evaluator) Constraints() Constraints {
	return e.constraints
}

// Issues returns the configuration problems found at construction.
func (e *Evaluator) Issues() []ConfigError {
	return append([]ConfigError(nil), e.issues...)
}

// Locale returns the locale messages are produced in.
func (e *Evaluator) Locale() string {
	return e.locale
}

// ShowMessages reports whether results should be displayed.
func (e *Evaluator) ShowMessages() bool {
	return e.constraints.ShowMessages()
}

func (e *Evaluator) prepare() {
	c := e.constraints

	if !c.Type.Valid() {
		e.disabled = true
		e.diagnose(ConfigError{
			Option: "type",
			Value:  string(c.Type),
			Reason: `must be "string" or "number"`,
		})
	}

	e.locale = strings.TrimSpace(c.Locale)
	if e.locale == "" {
		e.locale = DefaultLocale
	}
	if resolver, ok := e.translator.(LocaleResolver); ok {
		resolved, known := resolver.Resolve(c.Locale)
		if !known {
			e.diagnose(ConfigError{
				Option: "locale",
				Value:  c.Locale,
				Reason: "no message set registered, using " + resolved,
			})
		}
		e.locale = resolved
	}

	if pattern := c.Reg; pattern != "" {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			e.diagnose(ConfigError{Option: "reg", Value: pattern, Reason: err.Error()})
		} else {
			e.reg = compiled
		}
	}

	if c.Length != nil && *c.Length < 0 {
		e.skipLength = true
		e.diagnose(ConfigError{Option: "length", Value: strconv.Itoa(*c.Length), Reason: "must not be negative"})
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		e.skipBounds = true
		e.diagnose(ConfigError{
			Option: "min",
			Value:  formatNumber(*c.Min),
			Reason: "greater than max " + formatNumber(*c.Max),
		})
	}
}

func (e *Evaluator) diagnose(issue ConfigError) {
	issue.Field = e.constraints.Name
	e.issues = append(e.issues, issue)
	e.logger.Warn("validation: invalid configuration",
		slog.String("field", e.constraints.Name),
		slog.String("option", issue.Option),
		slog.String("value", issue.Value),
		slog.String("reason", issue.Reason),
	)
}

// Evaluate checks value against the constraint set. Checks run in a fixed
// order and the first failing one decides the message.
func (e *Evaluator) Evaluate(value string) Result {
	c := e.constraints

	if !c.CheckEnabled() {
		return Result{Outcome: Pass, Rule: RuleCheck, Skipped: true}
	}
	if e.disabled {
		e.logger.Debug("validation: skipped, constraint set is misconfigured",
			slog.String("field", c.Name))
		return Result{Outcome: Pass, Rule: RuleType, Skipped: true}
	}

	if value == "" {
		if !c.RequiredEnabled() {
			return Result{Outcome: Pass}
		}
		return e.fail(RuleRequired, e.message(MsgEmpty))
	}

	size := utf8.RuneCountInString(value)

	if c.Length != nil && !e.skipLength && size != *c.Length {
		return e.fail(RuleLength, e.message(MsgLengthEqual, "length", strconv.Itoa(*c.Length)))
	}

	if e.reg != nil && !e.reg.MatchString(value) {
		if c.RegMsg != "" {
			return Result{Outcome: Fail, Message: c.RegMsg, Rule: RuleReg}
		}
		return e.fail(RuleReg, e.message(MsgInvalid))
	}

	bound := float64(size)
	if e.valueType == TypeNumber {
		number, ok := parseNumber(value)
		if !ok {
			return e.fail(RuleNumber, e.message(MsgInvalid))
		}
		bound = number
	}
	if !e.skipBounds {
		if result, failed := e.checkBounds(bound); failed {
			return result
		}
	}

	if c.Compare != nil && value != *c.Compare {
		return e.fail(RuleCompare, e.message(MsgTwoInputsNotEqual))
	}

	if c.CustomFunc != nil {
		if err := c.CustomFunc(value); err != nil {
			return Result{Outcome: Fail, Message: err.Error(), Rule: RuleCustom}
		}
	}

	if c.MsgOnSuccess != "" {
		return Result{Outcome: Success, Message: c.MsgOnSuccess}
	}
	return Result{Outcome: Pass}
}

// parseNumber accepts finite decimal numbers only. Hex floats, digit
// separators, NaN and infinities are rejected.
func parseNumber(value string) (float64, bool) {
	raw := strings.TrimSpace(value)
	if raw == "" || strings.ContainsAny(raw, "xX_") {
		return 0, false
	}
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

func (e *Evaluator) checkBounds(bound float64) (Result, bool) {
	minimum, maximum := e.constraints.Min, e.constraints.Max
	switch {
	case minimum != nil && maximum != nil:
		if bound < *minimum || bound > *maximum {
			return e.fail(RuleRange, e.message(MsgInBetween,
				"min", formatNumber(*minimum), "max", formatNumber(*maximum))), true
		}
	case minimum != nil:
		if bound < *minimum {
			return e.fail(RuleMin, e.message(MsgLessThan, "min", formatNumber(*minimum))), true
		}
	case maximum != nil:
		if bound > *maximum {
			return e.fail(RuleMax, e.message(MsgGreaterThan, "max", formatNumber(*maximum))), true
		}
	}
	return Result{}, false
}

// fail builds a failure from a localized default; MsgOnError replaces it.
func (e *Evaluator) fail(rule Rule, localized string) Result {
	msg := localized
	if e.constraints.MsgOnError != "" {
		msg = e.constraints.MsgOnError
	}
	return Result{Outcome: Fail, Message: msg, Rule: rule}
}

func (e *Evaluator) message(key string, args ...any) string {
	full := string(e.valueType) + "." + key
	params := append([]any{"name", e.displayName()}, args...)

	msg, err := e.translator.Translate(e.locale, full, params...)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	if err == nil {
		err = ErrMissingMessage
	}
	return e.onMissing(e.locale, full, params, err)
}

func (e *Evaluator) displayName() string {
	name := strings.TrimSpace(e.constraints.Name)
	if name == "" {
		return ""
	}
	formatted, err := e.translator.Translate(e.locale, msgName, "name", name)
	if err != nil || formatted == "" {
		return name + " "
	}
	return formatted
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
