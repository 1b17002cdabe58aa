package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a schema document and list its fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := loadDocument(schemaPath)
			if err != nil {
				return err
			}
			if _, err := doc.Build(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "form %s: %d fields\n", doc.Name, len(doc.Fields))
			for _, f := range doc.Rules() {
				names := make([]string, len(f.Rules))
				for i, r := range f.Rules {
					names[i] = r.Name
				}
				fmt.Fprintf(out, "  %s [%s]\n", f.Name, strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to the schema document (yaml or json)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
