package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/formstate"
	"github.com/zoobzio/formstate/schema"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formctl",
		Short:         "Inspect form schemas and replay form interactions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newCheckCmd(), newReplayCmd())
	return root
}

// codecForPath picks a codec from a file extension, defaulting to YAML.
func codecForPath(path string) formstate.Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formstate.JSONCodec{}
	default:
		return formstate.YAMLCodec{}
	}
}

// loadDocument reads and validates a schema document.
func loadDocument(path string) (schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Document{}, fmt.Errorf("failed to read schema: %w", err)
	}
	doc, err := schema.Decode(codecForPath(path), data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("schema %s: %w", path, err)
	}
	return doc, nil
}
