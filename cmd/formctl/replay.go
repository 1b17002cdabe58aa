package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/zoobzio/formstate"
)

// Script is an interaction recording replayed against a schema.
type Script struct {
	Values       formstate.Values  `json:"values" yaml:"values"`
	ServerErrors formstate.Errors  `json:"server_errors" yaml:"server_errors"`
	Events       []formstate.Event `json:"events" yaml:"events"`
}

// formatData is the template input for --format.
type formatData struct {
	Form    string
	Field   string
	Label   string
	Key     string
	Message string
}

type replayOptions struct {
	schemaPath string
	eventsPath string
	output     string
	format     string
	verbose    bool
}

func newReplayCmd() *cobra.Command {
	var opts replayOptions

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay an event script against a schema and print the final view",
		Long: `Replay mounts the form described by --schema, applies the initial values
and server errors of the script, dispatches every event in order and prints
the resulting view.

Script format:

  values:
    email: ""
  server_errors:
    email:
      - key: taken
        message: already taken
  events:
    - type: change
      field: email
      value: someone@example.com
    - type: submit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "path to the schema document (yaml or json)")
	cmd.Flags().StringVarP(&opts.eventsPath, "events", "e", "", "path to the event script (yaml or json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "output format: yaml or json")
	cmd.Flags().StringVar(&opts.format, "format", "", "error message template, e.g. '{{.Form}}: {{.Field}} is {{.Key}}'")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log form signals to stderr")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

func runReplay(cmd *cobra.Command, opts replayOptions) error {
	ctx := cmd.Context()

	codec, err := formstate.CodecFor(opts.output)
	if err != nil {
		return err
	}

	if opts.verbose {
		defer observe(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)))()
	}

	if opts.format != "" {
		fn, err := templateFormatter(opts.format)
		if err != nil {
			return err
		}
		formstate.Configure(formstate.Config{ErrorMessageFormat: fn})
		defer formstate.Configure(formstate.Config{})
	}

	doc, err := loadDocument(opts.schemaPath)
	if err != nil {
		return err
	}
	form, err := doc.Build()
	if err != nil {
		return err
	}

	script, err := loadScript(opts.eventsPath)
	if err != nil {
		return err
	}

	state, err := formstate.NewContext(ctx, form, script.Values, script.ServerErrors)
	if err != nil {
		return err
	}
	for i, e := range script.Events {
		if _, err := state.Dispatch(ctx, e); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, e.Kind, err)
		}
	}

	data, err := codec.Marshal(state.View())
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func loadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read events: %w", err)
	}
	var script Script
	if err := codecForPath(path).Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("events %s: %w", path, err)
	}
	return script, nil
}

// templateFormatter compiles a text/template into a FormatFunc.
func templateFormatter(text string) (formstate.FormatFunc, error) {
	tmpl, err := template.New("format").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid --format template: %w", err)
	}

	return func(e formstate.Error, form *formstate.Form, _ *formstate.FormState, field *formstate.FieldState) string {
		data := formatData{
			Form:    form.Name,
			Field:   field.Name(),
			Key:     e.Key,
			Message: e.Message,
		}
		if f, ok := form.Lookup(field.Name()); ok {
			data.Label = f.Label
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return e.Message
		}
		return buf.String()
	}, nil
}
