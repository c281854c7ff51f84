package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/fieldconfig"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/tui"
)

const envPrefix = "FORMFIELD"

// app carries per-invocation state shared by the subcommands.
type app struct {
	v      *viper.Viper
	driver tui.PromptDriver
	logger *slog.Logger
}

// newRootCmd builds the command tree. driver replaces the terminal prompt
// driver; nil uses survey.
func newRootCmd(driver tui.PromptDriver) *cobra.Command {
	a := &app{v: viper.New(), driver: driver}

	root := &cobra.Command{
		Use:          "formfield",
		Short:        "Validate and render textarea form fields",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "field definition file or directory (YAML/JSON)")
	flags.String("openapi", "", "OpenAPI document to derive field definitions from")
	flags.String("schema", "", "component schema name used with --openapi")
	flags.String("field", "", "field name")
	flags.String("locale", "", "override the message locale")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("theme-manifest", "", "go-theme manifest file (YAML/JSON)")
	flags.String("theme", "", "theme name")
	flags.String("variant", "", "theme variant")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(newCheckCmd(a), newRenderCmd(a), newPromptCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	a.v.AddConfigPath(".")
	a.v.SetConfigType("yaml")
	a.v.SetConfigName(".formfield")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("formfield: read settings: %w", err)
		}
	}

	level, err := parseLevel(a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("formfield: using settings file", slog.String("path", used))
	}
	return nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("formfield: invalid log level %q: %w", raw, err)
	}
	return level, nil
}

// store loads definitions from --config or --openapi.
func (a *app) store(ctx context.Context) (*fieldconfig.Store, error) {
	configPath := a.v.GetString("config")
	openapiPath := a.v.GetString("openapi")

	switch {
	case configPath != "":
		info, err := os.Stat(configPath)
		if err != nil {
			return nil, fmt.Errorf("formfield: %w", err)
		}
		if info.IsDir() {
			return fieldconfig.LoadFS(os.DirFS(configPath))
		}
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("formfield: read config: %w", err)
		}
		return fieldconfig.Parse(data, configPath)
	case openapiPath != "":
		data, err := os.ReadFile(openapiPath)
		if err != nil {
			return nil, fmt.Errorf("formfield: read openapi document: %w", err)
		}
		return fieldconfig.FromOpenAPI(ctx, data, fieldconfig.OpenAPIOptions{Schema: a.v.GetString("schema")})
	default:
		return nil, errors.New("formfield: --config or --openapi is required")
	}
}

// definition resolves --field, applying --locale.
func (a *app) definition(store *fieldconfig.Store) (fieldconfig.Definition, error) {
	name := a.v.GetString("field")
	if name == "" {
		names := store.Names()
		if len(names) != 1 {
			return fieldconfig.Definition{}, fmt.Errorf("formfield: --field is required, choose one of %s", strings.Join(names, ", "))
		}
		name = names[0]
	}
	def, ok := store.Field(name)
	if !ok {
		return fieldconfig.Definition{}, fmt.Errorf("formfield: %w: %q", fieldconfig.ErrUnknownField, name)
	}
	return a.localize(def), nil
}

func (a *app) localize(def fieldconfig.Definition) fieldconfig.Definition {
	if locale := a.v.GetString("locale"); locale != "" {
		def.Validation.Locale = locale
	}
	return def
}

// themeSelector loads --theme-manifest. It returns nil without a manifest.
func (a *app) themeSelector() (theme.ThemeSelector, error) {
	path := a.v.GetString("theme-manifest")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formfield: read theme manifest: %w", err)
	}
	var manifest theme.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("formfield: parse theme manifest %s: %w", path, err)
	}
	selector, err := render.NewManifestSelector(a.v.GetString("theme"), a.v.GetString("variant"), &manifest)
	if err != nil {
		return nil, err
	}
	return selector, nil
}

func writeOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
