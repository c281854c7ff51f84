package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfield/pkg/fieldconfig"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
	"github.com/goliatone/go-formfield/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfield/pkg/textarea"
)

var errCheckFailed = errors.New("formfield: check failed")

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report configuration issues and validate field values",
		Long: `Check builds every selected field, reports constraint configuration
issues and validates its value (--value, or the configured value) as a blur
would. It exits non-zero when a value fails or a configuration issue exists.
With --watch it re-runs whenever the --config path changes.`,
		Args: cobra.NoArgs,
	}
	flags := cmd.Flags()
	value := flags.String("value", "", "value to validate instead of the configured one")
	watch := flags.Bool("watch", false, "re-run when the definition file changes")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		var submitted *string
		if flags.Changed("value") {
			submitted = value
		}
		if *watch {
			return a.watchCheck(cmd, submitted)
		}
		failed, err := a.runCheck(cmd, submitted)
		if err != nil {
			return err
		}
		if failed {
			return errCheckFailed
		}
		return nil
	}
	return cmd
}

// runCheck prints one line per field and reports whether any check failed.
func (a *app) runCheck(cmd *cobra.Command, value *string) (bool, error) {
	store, err := a.store(cmd.Context())
	if err != nil {
		return false, err
	}
	names := store.Names()
	if name := a.v.GetString("field"); name != "" {
		names = []string{name}
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, name := range names {
		def, ok := store.Field(name)
		if !ok {
			return false, fmt.Errorf("formfield: %w: %q", fieldconfig.ErrUnknownField, name)
		}
		def = a.localize(def)

		field := textarea.New(def.Props(), textarea.WithLogger(a.logger))
		for _, issue := range field.Evaluator().Issues() {
			fmt.Fprintf(out, "%s: config: %s\n", name, issue.Error())
			failed = true
		}
		if value != nil && !field.Change(*value) {
			fmt.Fprintf(out, "%s: error: value exceeds maxLength %d\n", name, int(def.Attributes.MaxLength))
			failed = true
			continue
		}
		field.Blur()

		switch field.State() {
		case textarea.ShowingError:
			fmt.Fprintf(out, "%s: error: %s\n", name, field.Message())
			failed = true
		case textarea.ShowingSuccess:
			fmt.Fprintf(out, "%s: success: %s\n", name, field.Message())
		default:
			if field.Result().Valid() {
				fmt.Fprintf(out, "%s: ok\n", name)
			} else {
				fmt.Fprintf(out, "%s: error\n", name)
				failed = true
			}
		}
	}
	return failed, nil
}

// watchCheck runs the check, then again after every write to --config, until
// the command context is done. Load errors are reported and watching goes on.
func (a *app) watchCheck(cmd *cobra.Command, value *string) error {
	path := a.v.GetString("config")
	if path == "" {
		return errors.New("formfield: --watch requires --config")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("formfield: create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("formfield: watch %s: %w", path, err)
	}

	rerun := func() {
		if _, err := a.runCheck(cmd, value); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "--")
	}
	rerun()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			a.logger.Debug("formfield: definitions changed", "path", event.Name, "op", event.Op.String())
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("formfield: watcher error", "err", err)
		}
	}
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a field as HTML or a serialized snapshot",
		Args:  cobra.NoArgs,
	}
	flags := cmd.Flags()
	value := flags.String("value", "", "submitted value")
	validate := flags.Bool("validate", false, "validate the value before rendering")
	rendererName := flags.String("renderer", "vanilla", "renderer (vanilla, tui)")
	format := flags.String("format", string(tui.OutputFormatJSON), "tui output format (json, form, pretty)")
	errorsFile := flags.String("errors", "", "JSON file with a server error payload keyed by field path")
	output := flags.String("output", "", "output file (stdout if empty)")
	defaultStyles := flags.Bool("default-styles", false, "inline the vanilla stylesheet")
	label := flags.String("label", "", "label text")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := a.store(ctx)
		if err != nil {
			return err
		}
		def, err := a.definition(store)
		if err != nil {
			return err
		}
		selector, err := a.themeSelector()
		if err != nil {
			return err
		}

		vanillaOpts := []vanilla.Option{vanilla.WithLogger(a.logger)}
		if *defaultStyles {
			vanillaOpts = append(vanillaOpts, vanilla.WithDefaultStyles())
		}
		html, err := vanilla.New(vanillaOpts...)
		if err != nil {
			return err
		}
		text, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(*format)), tui.WithLogger(a.logger))
		if err != nil {
			return err
		}
		registry := render.NewRegistry()
		registry.MustRegister(html)
		registry.MustRegister(text)

		req := orchestrator.Request{
			Definition:    &def,
			Validate:      *validate,
			Renderer:      *rendererName,
			ThemeName:     a.v.GetString("theme"),
			ThemeVariant:  a.v.GetString("variant"),
			RenderOptions: render.RenderOptions{Label: *label},
		}
		if flags.Changed("value") {
			req.Value = value
		}
		if *errorsFile != "" {
			payload, err := readErrorPayload(*errorsFile)
			if err != nil {
				return err
			}
			req.ServerErrors = payload
		}

		gen := orchestrator.New(
			orchestrator.WithRegistry(registry),
			orchestrator.WithThemeSelector(selector),
			orchestrator.WithLogger(a.logger),
		)
		data, err := gen.Generate(ctx, req)
		if err != nil {
			return err
		}

		if *output != "" {
			if err := os.WriteFile(*output, data, 0o644); err != nil {
				return fmt.Errorf("formfield: write output: %w", err)
			}
			a.logger.Info("formfield: output written", "path", *output)
			return nil
		}
		return writeOutput(cmd.OutOrStdout(), data)
	}
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a field value in the terminal until it validates",
		Args:  cobra.NoArgs,
	}
	format := cmd.Flags().String("format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	confirm := cmd.Flags().Bool("confirm", false, "confirm the answer before accepting it")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := a.store(ctx)
		if err != nil {
			return err
		}
		def, err := a.definition(store)
		if err != nil {
			return err
		}

		renderer, err := tui.New(
			tui.WithPromptDriver(a.driver),
			tui.WithOutputFormat(tui.OutputFormat(*format)),
			tui.WithConfirm(*confirm),
			tui.WithLogger(a.logger),
		)
		if err != nil {
			return err
		}

		field := textarea.New(def.Props(), textarea.WithLogger(a.logger))
		opts := def.RenderOptions()
		if _, err := renderer.Prompt(ctx, field, opts); err != nil {
			return err
		}
		data, err := renderer.Render(ctx, field.View(), opts)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), data)
	}
	return cmd
}

func readErrorPayload(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formfield: read errors file: %w", err)
	}
	var payload map[string][]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("formfield: parse errors file %s: %w", path, err)
	}
	return payload, nil
}
