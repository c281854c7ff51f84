// Package validation evaluates a single field value against a declarative
// constraint set and produces the message a form field should display.
//
// Checks run in a fixed order (required, length, pattern, bounds, compare,
// custom predicate) and the first failing check decides the message.
// Messages are localized through a Translator; the default Catalog ships
// en-US and zh-CN message sets.
//
// Misconfigured constraint sets (unknown type or locale, invalid pattern)
// are reported through the injected *slog.Logger and never surface to the
// end user: the evaluator degrades to a safe default instead.
package validation
