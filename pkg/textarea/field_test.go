package textarea_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/textarea"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func focusBlur(f *textarea.Field) {
	f.Focus()
	f.Blur()
}

func TestField_BlurShowsLocalizedMessages(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		constraints validation.Constraints
		wantState   textarea.State
		wantMessage string
	}{
		{
			name:        "no constraints and empty value reports required",
			constraints: validation.Constraints{},
			wantState:   textarea.ShowingError,
			wantMessage: "cannot be empty",
		},
		{
			name:        "length mismatch without name",
			value:       "success",
			constraints: validation.Constraints{Length: validation.Int(5)},
			wantState:   textarea.ShowingError,
			wantMessage: "length must be 5",
		},
		{
			name:        "length mismatch with name",
			value:       "success",
			constraints: validation.Constraints{Name: "foobar", Length: validation.Int(5)},
			wantState:   textarea.ShowingError,
			wantMessage: "foobar length must be 5",
		},
		{
			name:        "length match",
			value:       "abcde",
			constraints: validation.Constraints{Length: validation.Int(5)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "min not reached",
			value:       "foobar",
			constraints: validation.Constraints{Type: validation.TypeString, Min: validation.Float(10), Locale: "en-US"},
			wantState:   textarea.ShowingError,
			wantMessage: "length cannot less than 10",
		},
		{
			name:        "min reached",
			value:       "foobar",
			constraints: validation.Constraints{Min: validation.Float(6)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "max exceeded",
			value:       "foobar",
			constraints: validation.Constraints{Max: validation.Float(1)},
			wantState:   textarea.ShowingError,
			wantMessage: "length cannot greater than 1",
		},
		{
			name:        "max respected",
			value:       "foobar",
			constraints: validation.Constraints{Max: validation.Float(7)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "range exceeded",
			value:       "12345",
			constraints: validation.Constraints{Min: validation.Float(1), Max: validation.Float(3)},
			wantState:   textarea.ShowingError,
			wantMessage: "length must be 1-3",
		},
		{
			name:        "range respected",
			value:       "12345",
			constraints: validation.Constraints{Min: validation.Float(1), Max: validation.Float(10)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "reg mismatch",
			value:       "foobar",
			constraints: validation.Constraints{Reg: `^0x[a-fA-F0-9]{40}$`},
			wantState:   textarea.ShowingError,
			wantMessage: "invalid format",
		},
		{
			name:        "reg match",
			value:       "0x0D36396E5f5EC58F0ff4569ED463CBEF03B0ba52",
			constraints: validation.Constraints{Reg: `^0x[a-fA-F0-9]{40}$`},
			wantState:   textarea.Hidden,
		},
		{
			name:        "reg mismatch with regMsg",
			value:       "abc",
			constraints: validation.Constraints{Reg: `^0x[a-fA-F0-9]{40}$`, RegMsg: "regMsg"},
			wantState:   textarea.ShowingError,
			wantMessage: "regMsg",
		},
		{
			name:        "compare equal",
			value:       "abc",
			constraints: validation.Constraints{Compare: validation.String("abc")},
			wantState:   textarea.Hidden,
		},
		{
			name:        "msgOnError replaces the default",
			constraints: validation.Constraints{MsgOnError: "msgOnError"},
			wantState:   textarea.ShowingError,
			wantMessage: "msgOnError",
		},
		{
			name:        "msgOnSuccess shown on pass",
			value:       "foobar",
			constraints: validation.Constraints{Name: "foobar", MsgOnSuccess: "msgOnSuccess"},
			wantState:   textarea.ShowingSuccess,
			wantMessage: "msgOnSuccess",
		},
		{
			name:        "check disabled",
			constraints: validation.Constraints{Check: validation.Bool(false)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "not required and empty",
			constraints: validation.Constraints{Required: validation.Bool(false)},
			wantState:   textarea.Hidden,
		},
		{
			name:        "showMsg false hides failures",
			constraints: validation.Constraints{ShowMsg: validation.Bool(false)},
			wantState:   textarea.Hidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := textarea.New(textarea.Props{Value: tt.value, Validation: tt.constraints})
			focusBlur(field)

			if field.State() != tt.wantState {
				t.Fatalf("state = %s, want %s", field.State(), tt.wantState)
			}
			if field.Message() != tt.wantMessage {
				t.Fatalf("message = %q, want %q", field.Message(), tt.wantMessage)
			}
		})
	}
}

func TestField_CustomFuncPassHidesMessage(t *testing.T) {
	field := textarea.New(textarea.Props{
		Value: "milk",
		Validation: validation.Constraints{
			CustomFunc: func(value string) error {
				if value != "milk" {
					return errors.New("Description cannot be other things but milk")
				}
				return nil
			},
		},
	})
	focusBlur(field)
	if field.State() != textarea.Hidden {
		t.Fatalf("expected hidden, got %s %q", field.State(), field.Message())
	}

	field.Focus()
	field.Change("water")
	field.Blur()
	if field.Message() != "Description cannot be other things but milk" {
		t.Fatalf("unexpected message %q", field.Message())
	}
}

func TestField_FocusHidesMessage(t *testing.T) {
	field := textarea.New(textarea.Props{})
	focusBlur(field)
	if field.State() != textarea.ShowingError {
		t.Fatalf("expected error after blur, got %s", field.State())
	}

	field.Focus()
	if field.State() != textarea.Hidden || field.Message() != "" {
		t.Fatalf("expected hidden after focus, got %s %q", field.State(), field.Message())
	}
}

func TestField_SuccessThenSilentPass(t *testing.T) {
	field := textarea.New(textarea.Props{
		Validation: validation.Constraints{Name: "foobar", Check: validation.Bool(true), Required: validation.Bool(true)},
	})
	focusBlur(field)
	if field.State() != textarea.ShowingError {
		t.Fatalf("expected required error, got %s", field.State())
	}

	field.Focus()
	if !field.Change("foobar") {
		t.Fatalf("expected change to be accepted")
	}
	field.Blur()
	if field.State() != textarea.Hidden {
		t.Fatalf("expected silent pass, got %s %q", field.State(), field.Message())
	}
}

func TestField_ChangeWithoutCallbackUpdatesValue(t *testing.T) {
	field := textarea.New(textarea.Props{
		Validation: validation.Constraints{MsgOnSuccess: "msgOnSuccess"},
	})
	field.Focus()
	field.Change("foobar")
	field.Blur()

	if field.Value() != "foobar" {
		t.Fatalf("value = %q", field.Value())
	}
	if field.Message() != "msgOnSuccess" {
		t.Fatalf("message = %q", field.Message())
	}
}

func TestField_MaxLength(t *testing.T) {
	tests := []struct {
		name      string
		maxLength textarea.Limit
		input     string
		wantValue string
		accepted  bool
	}{
		{name: "longer than limit is rejected", maxLength: 2, input: "foobar", wantValue: "", accepted: false},
		{name: "within limit is accepted", maxLength: 10, input: "foo", wantValue: "foo", accepted: true},
		{name: "zero means unbounded", maxLength: 0, input: "foo", wantValue: "foo", accepted: true},
		{name: "runes not bytes", maxLength: 2, input: "日本", wantValue: "日本", accepted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var forwarded string
			field := textarea.New(textarea.Props{
				Attributes: textarea.Attributes{MaxLength: tt.maxLength},
				OnChange:   func(value string) { forwarded = value },
			})

			if got := field.Change(tt.input); got != tt.accepted {
				t.Fatalf("Change returned %v, want %v", got, tt.accepted)
			}
			if forwarded != tt.wantValue {
				t.Fatalf("forwarded %q, want %q", forwarded, tt.wantValue)
			}
			if field.Value() != tt.wantValue {
				t.Fatalf("value %q, want %q", field.Value(), tt.wantValue)
			}
		})
	}
}

func TestField_ForwardsEvents(t *testing.T) {
	var events []string
	field := textarea.New(textarea.Props{
		Validation: validation.Constraints{Required: validation.Bool(false)},
		OnFocus:    func() { events = append(events, "focus") },
		OnBlur:     func() { events = append(events, "blur") },
		OnChange:   func(v string) { events = append(events, "change:"+v) },
		OnKeyUp:    func(k string) { events = append(events, "keyup:"+k) },
		OnClick:    func() { events = append(events, "click") },
	})

	field.Click()
	field.Focus()
	field.Change("a")
	field.KeyUp("a")
	field.Blur()

	want := []string{"click", "focus", "change:a", "keyup:a", "blur"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestField_NilCallbacksAreNoOps(t *testing.T) {
	field := textarea.New(textarea.Props{})
	field.Click()
	field.KeyUp("x")
	field.Focus()
	field.Change("x")
	field.Blur()
	if field.Value() != "x" {
		t.Fatalf("value = %q", field.Value())
	}
}

func TestField_DisabledIgnoresEvents(t *testing.T) {
	called := false
	field := textarea.New(textarea.Props{
		Disabled: true,
		OnChange: func(string) { called = true },
		OnBlur:   func() { called = true },
	})

	if field.Change("foo") {
		t.Fatalf("expected disabled change to be rejected")
	}
	field.Blur()
	if called {
		t.Fatalf("expected no callbacks on a disabled field")
	}
	if field.State() != textarea.Hidden {
		t.Fatalf("expected hidden, got %s", field.State())
	}
}

func TestField_ValidationCallback(t *testing.T) {
	var reports []bool
	field := textarea.New(textarea.Props{
		ValidationCallback: func(hasError bool) { reports = append(reports, hasError) },
	})

	focusBlur(field)
	field.Focus()
	field.Change("filled")
	field.Blur()

	if diff := cmp.Diff([]bool{true, false}, reports); diff != "" {
		t.Fatalf("reports mismatch (-want +got):\n%s", diff)
	}
}

func TestField_ValidationCallbackSkippedWhenCheckDisabled(t *testing.T) {
	called := false
	field := textarea.New(textarea.Props{
		Validation:         validation.Constraints{Check: validation.Bool(false)},
		ValidationCallback: func(bool) { called = true },
	})
	focusBlur(field)
	if called {
		t.Fatalf("expected skipped evaluation not to report")
	}
}

func TestField_ValidateToggle(t *testing.T) {
	field := textarea.New(textarea.Props{Validate: false})
	if field.State() != textarea.Hidden {
		t.Fatalf("expected hidden before toggle")
	}

	props := field.Props()
	props.Validate = true
	field.SetProps(props)

	if field.State() != textarea.ShowingError || field.Message() != "cannot be empty" {
		t.Fatalf("expected required error after toggle, got %s %q", field.State(), field.Message())
	}
}

func TestField_ValidateAtConstruction(t *testing.T) {
	field := textarea.New(textarea.Props{Validate: true, Value: "abc", Validation: validation.Constraints{Length: validation.Int(2)}})
	if field.Message() != "length must be 2" {
		t.Fatalf("unexpected message %q", field.Message())
	}
}

func TestField_AsyncOverlay(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		async       textarea.AsyncResult
		wantState   textarea.State
		wantMessage string
	}{
		{
			name:        "error replaces sync message",
			async:       textarea.AsyncResult{Error: true, Message: "has error"},
			wantState:   textarea.ShowingError,
			wantMessage: "has error",
		},
		{
			name:      "error suppressed by showOnError",
			value:     "foobar",
			async:     textarea.AsyncResult{Error: true, Message: "has error", ShowOnError: validation.Bool(false)},
			wantState: textarea.Hidden,
		},
		{
			name:        "success shown when asked",
			async:       textarea.AsyncResult{Message: "success", ShowOnSuccess: validation.Bool(true)},
			wantState:   textarea.ShowingSuccess,
			wantMessage: "success",
		},
		{
			name:        "success hidden by default keeps sync state",
			async:       textarea.AsyncResult{Message: "success"},
			wantState:   textarea.ShowingError,
			wantMessage: "cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := textarea.New(textarea.Props{Value: tt.value, Async: &textarea.AsyncResult{}})
			focusBlur(field)

			props := field.Props()
			async := tt.async
			props.Async = &async
			field.SetProps(props)

			if field.State() != tt.wantState || field.Message() != tt.wantMessage {
				t.Fatalf("got %s %q, want %s %q", field.State(), field.Message(), tt.wantState, tt.wantMessage)
			}
		})
	}
}

func TestField_AsyncOverlayDismissal(t *testing.T) {
	field := textarea.New(textarea.Props{Value: "taken"})
	field.PushAsync(textarea.AsyncResult{Error: true, Message: "username taken"})
	if field.Message() != "username taken" {
		t.Fatalf("expected overlay, got %q", field.Message())
	}

	field.Change("taken2")
	if field.State() != textarea.Hidden {
		t.Fatalf("expected change to dismiss overlay, got %s", field.State())
	}

	field.PushAsync(textarea.AsyncResult{Error: true, Message: "still taken"})
	field.Focus()
	if field.State() != textarea.Hidden {
		t.Fatalf("expected focus to dismiss overlay, got %s", field.State())
	}

	// Pushing the same result through SetProps again is not a change.
	props := field.Props()
	field.SetProps(props)
	if field.State() != textarea.Hidden {
		t.Fatalf("expected unchanged async to stay dismissed, got %s", field.State())
	}
}

func TestField_FocusClearsForcedOverlay(t *testing.T) {
	tests := []struct {
		name  string
		async textarea.AsyncResult
		want  textarea.State
	}{
		{
			name:  "error overlay",
			async: textarea.AsyncResult{Error: true, Message: "username taken"},
			want:  textarea.ShowingError,
		},
		{
			name:  "success overlay",
			async: textarea.AsyncResult{Message: "available", ShowOnSuccess: validation.Bool(true)},
			want:  textarea.ShowingSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			focused := 0
			async := tt.async
			field := textarea.New(textarea.Props{
				Value:   "ada",
				Async:   &async,
				OnFocus: func() { focused++ },
			})
			if field.State() != tt.want {
				t.Fatalf("expected initial overlay %s, got %s", tt.want, field.State())
			}

			field.Focus()
			if field.State() != textarea.Hidden || field.Message() != "" {
				t.Fatalf("expected focus to clear the overlay, got %s %q", field.State(), field.Message())
			}
			if focused != 1 {
				t.Fatalf("expected OnFocus once, got %d", focused)
			}

			field.Blur()
			if field.State() != textarea.Hidden {
				t.Fatalf("expected blur to show the sync result only, got %s %q", field.State(), field.Message())
			}

			field.PushAsync(tt.async)
			if field.State() != tt.want {
				t.Fatalf("expected a new push to show again, got %s", field.State())
			}
		})
	}
}

func TestField_SetPropsRebuildsEvaluator(t *testing.T) {
	field := textarea.New(textarea.Props{Value: "abc", Validation: validation.Constraints{Length: validation.Int(3)}})
	focusBlur(field)
	if field.State() != textarea.Hidden {
		t.Fatalf("expected pass, got %q", field.Message())
	}

	props := field.Props()
	props.Validation.Length = validation.Int(4)
	field.SetProps(props)
	focusBlur(field)
	if field.Message() != "length must be 4" {
		t.Fatalf("expected rebuilt evaluator, got %q", field.Message())
	}
}

func TestField_SetPropsValueBypassesMaxLength(t *testing.T) {
	field := textarea.New(textarea.Props{Attributes: textarea.Attributes{MaxLength: 2}})
	props := field.Props()
	props.Value = "host owned"
	field.SetProps(props)
	if field.Value() != "host owned" {
		t.Fatalf("value = %q", field.Value())
	}
}

func TestField_LogsConfigurationIssues(t *testing.T) {
	tests := []struct {
		name        string
		constraints validation.Constraints
	}{
		{name: "unknown locale", constraints: validation.Constraints{Locale: "foobar"}},
		{name: "null type", constraints: validation.Constraints{Type: validation.TypeNull}},
		{name: "array type", constraints: validation.Constraints{Type: "array"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			field := textarea.New(textarea.Props{Validation: tt.constraints}, textarea.WithLogger(logger))
			focusBlur(field)
			if !strings.Contains(buf.String(), "level=WARN") {
				t.Fatalf("expected a warning, got %q", buf.String())
			}
		})
	}
}

func TestField_View(t *testing.T) {
	field := textarea.New(textarea.Props{
		ID:         "bio",
		Name:       "bio",
		Attributes: textarea.Attributes{Cols: 10, Rows: 4},
		Validation: validation.Constraints{Name: "Bio"},
	})

	view := field.View()
	if view.Visible() || view.MsgClass != "" {
		t.Fatalf("expected no message element before blur: %+v", view)
	}

	focusBlur(field)
	view = field.View()
	want := textarea.View{
		ID:         "bio",
		Name:       "bio",
		Attributes: textarea.Attributes{Cols: 10, Rows: 4},
		State:      textarea.ShowingError,
		Message:    "Bio cannot be empty",
		Error:      true,
		MsgClass:   textarea.MsgClassIdentifier,
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}
