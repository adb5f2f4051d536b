package main

import (
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a document to HTML5",
		Long: `Render a JSON or YAML document through the configured template chains.

Examples:
  # Render to stdout with templates from ./templates
  doctemplate render doc.yaml -t ./templates

  # Layer two directories; templates in ./overrides run first
  doctemplate render doc.yaml -t ./templates -t ./overrides

  # Use a configuration file and write the result atomically
  doctemplate render doc.yaml -c doctemplate.hcl -o out.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFile(args[0]); err != nil {
				return err
			}
			orch, err := flags.orchestrator(cmd)
			if err != nil {
				return err
			}

			out, err := orch.Convert(cmd.Context(), orchestrator.Request{Path: args[0]})
			if err != nil {
				return err
			}
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if err := atomic.WriteFile(output, strings.NewReader(out)); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Document written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
