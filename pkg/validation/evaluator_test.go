package validation_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/validation"
)

func TestEvaluate_Rules(t *testing.T) {
	const address = `^0x[a-fA-F0-9]{40}$`

	tests := []struct {
		name        string
		constraints validation.Constraints
		value       string
		want        validation.Result
	}{
		{
			name:        "check disabled skips evaluation",
			constraints: validation.Constraints{Check: validation.Bool(false)},
			value:       "",
			want:        validation.Result{Outcome: validation.Pass, Rule: validation.RuleCheck, Skipped: true},
		},
		{
			name:        "optional empty value passes silently",
			constraints: validation.Constraints{Required: validation.Bool(false), MsgOnSuccess: "ok"},
			value:       "",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "required empty value fails",
			constraints: validation.Constraints{},
			value:       "",
			want:        validation.Result{Outcome: validation.Fail, Message: "cannot be empty", Rule: validation.RuleRequired},
		},
		{
			name:        "required message carries the name",
			constraints: validation.Constraints{Name: "Description"},
			value:       "",
			want:        validation.Result{Outcome: validation.Fail, Message: "Description cannot be empty", Rule: validation.RuleRequired},
		},
		{
			name:        "msgOnError overrides the required message",
			constraints: validation.Constraints{MsgOnError: "msgOnError"},
			value:       "",
			want:        validation.Result{Outcome: validation.Fail, Message: "msgOnError", Rule: validation.RuleRequired},
		},
		{
			name:        "length mismatch without name",
			constraints: validation.Constraints{Length: validation.Int(5)},
			value:       "success",
			want:        validation.Result{Outcome: validation.Fail, Message: "length must be 5", Rule: validation.RuleLength},
		},
		{
			name:        "length mismatch with name",
			constraints: validation.Constraints{Name: "foobar", Length: validation.Int(5)},
			value:       "success",
			want:        validation.Result{Outcome: validation.Fail, Message: "foobar length must be 5", Rule: validation.RuleLength},
		},
		{
			name:        "length counts runes",
			constraints: validation.Constraints{Length: validation.Int(3)},
			value:       "日本語",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "reg mismatch uses default message",
			constraints: validation.Constraints{Type: validation.TypeString, Reg: address},
			value:       "foobar",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleReg},
		},
		{
			name:        "reg mismatch uses regMsg",
			constraints: validation.Constraints{Reg: address, RegMsg: "regMsg"},
			value:       "abc",
			want:        validation.Result{Outcome: validation.Fail, Message: "regMsg", Rule: validation.RuleReg},
		},
		{
			name:        "reg match passes",
			constraints: validation.Constraints{Reg: address},
			value:       "0x0D36396E5f5EC58F0ff4569ED463CBEF03B0ba52",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "string below min",
			constraints: validation.Constraints{Min: validation.Float(10)},
			value:       "foobar",
			want:        validation.Result{Outcome: validation.Fail, Message: "length cannot less than 10", Rule: validation.RuleMin},
		},
		{
			name:        "string at min",
			constraints: validation.Constraints{Min: validation.Float(6)},
			value:       "foobar",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "string above max",
			constraints: validation.Constraints{Max: validation.Float(1)},
			value:       "foobar",
			want:        validation.Result{Outcome: validation.Fail, Message: "length cannot greater than 1", Rule: validation.RuleMax},
		},
		{
			name:        "string outside range",
			constraints: validation.Constraints{Min: validation.Float(1), Max: validation.Float(3)},
			value:       "12345",
			want:        validation.Result{Outcome: validation.Fail, Message: "length must be 1-3", Rule: validation.RuleRange},
		},
		{
			name:        "string inside range",
			constraints: validation.Constraints{Min: validation.Float(1), Max: validation.Float(10)},
			value:       "12345",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "number must be numeric",
			constraints: validation.Constraints{Type: validation.TypeNumber},
			value:       "abc",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "number bounds use the numeric value",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(10)},
			value:       "15",
			want:        validation.Result{Outcome: validation.Fail, Message: "must be 1-10", Rule: validation.RuleRange},
		},
		{
			name:        "number inside bounds",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(10)},
			value:       "5",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "NaN is not a number",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(3)},
			value:       "NaN",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "lowercase nan is not a number",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(3)},
			value:       "nan",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "infinity is not a number",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(3)},
			value:       "Inf",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "hex float is not a number",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(3)},
			value:       "0x1p1",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "digit separators are not a number",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(3)},
			value:       "1_0",
			want:        validation.Result{Outcome: validation.Fail, Message: "invalid format", Rule: validation.RuleNumber},
		},
		{
			name:        "number accepts decimals and exponents",
			constraints: validation.Constraints{Type: validation.TypeNumber, Min: validation.Float(1), Max: validation.Float(30)},
			value:       " 2.5e1 ",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "compare equal passes",
			constraints: validation.Constraints{Compare: validation.String("abc")},
			value:       "abc",
			want:        validation.Result{Outcome: validation.Pass},
		},
		{
			name:        "compare mismatch fails",
			constraints: validation.Constraints{Compare: validation.String("abc")},
			value:       "abd",
			want:        validation.Result{Outcome: validation.Fail, Message: "two inputs are not equal", Rule: validation.RuleCompare},
		},
		{
			name:        "success message when everything passes",
			constraints: validation.Constraints{Name: "foobar", MsgOnSuccess: "msgOnSuccess"},
			value:       "foobar",
			want:        validation.Result{Outcome: validation.Success, Message: "msgOnSuccess"},
		},
		{
			name:        "misconfigured type skips evaluation",
			constraints: validation.Constraints{Type: "array"},
			value:       "",
			want:        validation.Result{Outcome: validation.Pass, Rule: validation.RuleType, Skipped: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.NewEvaluator(tt.constraints).Evaluate(tt.value)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_CustomFunc(t *testing.T) {
	const errorMessage = "Description cannot be other things but milk"
	constraints := validation.Constraints{
		CustomFunc: func(value string) error {
			if value != "milk" {
				return errors.New(errorMessage)
			}
			return nil
		},
	}
	evaluator := validation.NewEvaluator(constraints)

	if got := evaluator.Evaluate("milk"); got.Outcome != validation.Pass {
		t.Fatalf("expected milk to pass, got %+v", got)
	}

	got := evaluator.Evaluate("water")
	want := validation.Result{Outcome: validation.Fail, Message: errorMessage, Rule: validation.RuleCustom}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_CustomFuncRunsLast(t *testing.T) {
	called := false
	evaluator := validation.NewEvaluator(validation.Constraints{
		Length: validation.Int(2),
		CustomFunc: func(string) error {
			called = true
			return nil
		},
	})

	evaluator.Evaluate("abc")
	if called {
		t.Fatalf("custom func should not run after an earlier rule failed")
	}
	evaluator.Evaluate("ab")
	if !called {
		t.Fatalf("custom func should run when declarative rules pass")
	}
}

func TestEvaluate_LocalizedMessages(t *testing.T) {
	evaluator := validation.NewEvaluator(validation.Constraints{Name: "描述", Locale: "zh-CN"})
	if got := evaluator.Evaluate("").Message; got != "描述不能为空" {
		t.Fatalf("unexpected zh-CN message %q", got)
	}
	if got := evaluator.Locale(); got != "zh-CN" {
		t.Fatalf("unexpected locale %q", got)
	}
	if issues := evaluator.Issues(); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestNewEvaluator_DiagnosesUnknownLocale(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	evaluator := validation.NewEvaluator(validation.Constraints{Locale: "foobar"}, validation.WithLogger(logger))

	issues := evaluator.Issues()
	if len(issues) != 1 || issues[0].Option != "locale" {
		t.Fatalf("expected a single locale issue, got %v", issues)
	}
	if evaluator.Locale() != validation.DefaultLocale {
		t.Fatalf("expected fallback to %s, got %s", validation.DefaultLocale, evaluator.Locale())
	}
	if got := evaluator.Evaluate("").Message; got != "cannot be empty" {
		t.Fatalf("expected en-US fallback message, got %q", got)
	}
	if !strings.Contains(buf.String(), `"option":"locale"`) {
		t.Fatalf("expected locale diagnostic in log output, got %s", buf.String())
	}
}

func TestNewEvaluator_DiagnosesInvalidType(t *testing.T) {
	for _, valueType := range []validation.ValueType{"array", validation.TypeNull} {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		evaluator := validation.NewEvaluator(validation.Constraints{Type: valueType}, validation.WithLogger(logger))

		if issues := evaluator.Issues(); len(issues) != 1 || issues[0].Option != "type" {
			t.Fatalf("type %q: expected a single type issue, got %v", valueType, issues)
		}
		if !strings.Contains(buf.String(), "level=WARN") {
			t.Fatalf("type %q: expected warning, got %s", valueType, buf.String())
		}
		if got := evaluator.Evaluate("anything"); !got.Skipped {
			t.Fatalf("type %q: expected evaluation to be skipped, got %+v", valueType, got)
		}
	}
}

func TestNewEvaluator_InvalidPatternIsSkipped(t *testing.T) {
	evaluator := validation.NewEvaluator(validation.Constraints{Reg: "("})

	if issues := evaluator.Issues(); len(issues) != 1 || issues[0].Option != "reg" {
		t.Fatalf("expected a reg issue, got %v", issues)
	}
	if got := evaluator.Evaluate("value"); got.Outcome != validation.Pass {
		t.Fatalf("expected reg rule to be skipped, got %+v", got)
	}
}

func TestNewEvaluator_InvalidLengthAndBoundsAreSkipped(t *testing.T) {
	tests := []struct {
		name        string
		constraints validation.Constraints
		option      string
	}{
		{
			name:        "negative length",
			constraints: validation.Constraints{Length: validation.Int(-1)},
			option:      "length",
		},
		{
			name:        "min greater than max",
			constraints: validation.Constraints{Min: validation.Float(5), Max: validation.Float(2)},
			option:      "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluator := validation.NewEvaluator(tt.constraints)
			if issues := evaluator.Issues(); len(issues) != 1 || issues[0].Option != tt.option {
				t.Fatalf("expected a single %s issue, got %v", tt.option, issues)
			}
			if got := evaluator.Evaluate("value"); got.Outcome != validation.Pass {
				t.Fatalf("expected misconfigured rule to be skipped, got %+v", got)
			}
			if got := evaluator.Evaluate(""); got.Rule != validation.RuleRequired {
				t.Fatalf("expected remaining rules to apply, got %+v", got)
			}
		})
	}
}

func TestConstraintsValidate(t *testing.T) {
	if err := (validation.Constraints{Name: "ok"}).Validate(); err != nil {
		t.Fatalf("expected valid constraints, got %v", err)
	}

	err := validation.Constraints{Type: "array", Min: validation.Float(5), Max: validation.Float(1)}.Validate()
	if err == nil {
		t.Fatalf("expected configuration errors")
	}
	var configErr validation.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError in %v", err)
	}
	if !strings.Contains(err.Error(), "type") || !strings.Contains(err.Error(), "min") {
		t.Fatalf("expected type and min issues, got %v", err)
	}
}

func TestWithTranslator(t *testing.T) {
	evaluator := validation.NewEvaluator(
		validation.Constraints{Name: "Bio", Locale: "fr"},
		validation.WithTranslator(stubTranslator{"string.empty": "{name}est requis"}),
	)

	if issues := evaluator.Issues(); len(issues) != 0 {
		t.Fatalf("translators without a resolver should not diagnose locales, got %v", issues)
	}
	if got := evaluator.Evaluate("").Message; got != "Bio est requis" {
		t.Fatalf("unexpected translated message %q", got)
	}
	if got := evaluator.Evaluate("x").Outcome; got != validation.Pass {
		t.Fatalf("expected pass, got %v", got)
	}
}

func TestWithMissingTranslationHandler(t *testing.T) {
	evaluator := validation.NewEvaluator(
		validation.Constraints{},
		validation.WithTranslator(stubTranslator{}),
		validation.WithMissingTranslationHandler(func(locale, key string, _ []any, err error) string {
			return locale + ":" + key
		}),
	)

	if got := evaluator.Evaluate("").Message; got != "en-US:string.empty" {
		t.Fatalf("unexpected fallback message %q", got)
	}
}

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, args ...any) (string, error) {
	msg, ok := t[key]
	if !ok {
		return "", errors.New("missing translation")
	}
	for i := 0; i+1 < len(args); i += 2 {
		placeholder := "{" + args[i].(string) + "}"
		value, _ := args[i+1].(string)
		msg = strings.ReplaceAll(msg, placeholder, value)
	}
	return msg, nil
}
