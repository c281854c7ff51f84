package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/textarea"
)

// Renderer drives a textarea field from a terminal. Prompt runs the
// interactive loop; Render serializes a field snapshot.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	confirm      bool
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme: Theme{
			SuccessPrefix: "✔ ",
			ErrorPrefix:   "✘ ",
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Prompt asks for a value until the field accepts it. Each answer goes
// through the field lifecycle (Focus, Change, Blur) so maxLength, constraint
// evaluation and callbacks behave as they do in a browser. The final message,
// if any, is printed through the driver.
func (r *Renderer) Prompt(ctx context.Context, field *textarea.Field, opts render.RenderOptions) (string, error) {
	if ctx == nil {
		return "", errors.New("tui: context is required")
	}
	if field == nil {
		return "", errors.New("tui: field is required")
	}
	if field.Props().Disabled {
		return "", ErrDisabled
	}

	view := field.View()
	label := render.Localize(&view, opts)
	if label == "" {
		label = field.Props().Name
	}

	for {
		field.Focus()
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message:   r.theme.PromptPrefix + label,
			Default:   field.Value(),
			Help:      view.Attributes.Placeholder,
			Validator: r.validator(field),
		})
		if err != nil {
			return "", err
		}

		if r.confirm {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Keep this value?", Default: true})
			if err != nil {
				return "", err
			}
			if !ok {
				r.logger.Debug("tui: answer declined", slog.String("field", field.Props().Name))
				continue
			}
		}

		if msg := r.statusLine(field.View()); msg != "" {
			if err := r.driver.Info(ctx, msg); err != nil {
				return "", err
			}
		}
		return answer, nil
	}
}

// validator pushes an answer through the field. survey re-asks while it
// returns an error.
func (r *Renderer) validator(field *textarea.Field) func(string) error {
	return func(answer string) error {
		field.Focus()
		if !field.Change(answer) {
			return fmt.Errorf("%w (%d)", ErrTooLong, int(field.Props().Attributes.MaxLength))
		}
		field.Blur()
		if field.State() == textarea.ShowingError {
			r.logger.Debug("tui: answer rejected",
				slog.String("field", field.Props().Name),
				slog.String("rule", string(field.Result().Rule)),
			)
			return errors.New(field.Message())
		}
		return nil
	}
}

func (r *Renderer) statusLine(view textarea.View) string {
	switch view.State {
	case textarea.ShowingError:
		return r.theme.ErrorPrefix + view.Message
	case textarea.ShowingSuccess:
		return r.theme.SuccessPrefix + view.Message
	default:
		return ""
	}
}

type fieldPayload struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// Render serializes the view in the configured output format.
func (r *Renderer) Render(ctx context.Context, view textarea.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	label := render.Localize(&view, opts)
	if label == "" {
		label = view.Name
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		values.Set(view.Name, view.Value)
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s\n", label, view.Value)
		if line := r.statusLine(view); line != "" {
			fmt.Fprintf(&sb, "  %s\n", line)
		}
		return []byte(sb.String()), nil
	default:
		payload, err := json.Marshal(fieldPayload{
			Name:    view.Name,
			Value:   view.Value,
			State:   view.State.String(),
			Message: view.Message,
		})
		if err != nil {
			return nil, fmt.Errorf("tui: encode payload: %w", err)
		}
		return payload, nil
	}
}
