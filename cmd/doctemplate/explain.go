package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/document"
	"github.com/goliatone/go-doctemplate/pkg/node"
)

func newExplainCmd(flags *globalFlags) *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "explain [node-type...]",
		Short: "Show the template chain for node types",
		Long: `List, for each node type, the sources contributing a template in the
order they run. Each one reaches the next through next(); the default
renderer terminates every chain.

With no arguments every node type that has at least one template is shown.
With --document only the types present in that document are shown.

Examples:
  doctemplate explain paragraph image -t ./templates
  doctemplate explain --document doc.yaml -c doctemplate.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := flags.orchestrator(cmd)
			if err != nil {
				return err
			}

			types, err := explainTypes(args, docPath)
			if err != nil {
				return err
			}

			conv, err := orch.Converter()
			if err != nil {
				return err
			}
			if types == nil {
				types = conv.Table().Types()
			}

			w := cmd.OutOrStdout()
			if len(types) == 0 {
				fmt.Fprintln(w, "No templates found.")
				return nil
			}
			for _, typ := range types {
				sources := orch.Explain(typ)
				slices.Reverse(sources)
				sources = append(sources, conv.Fallback().Name()+" (default)")
				fmt.Fprintf(w, "%s: %s\n", typ, strings.Join(sources, " -> "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&docPath, "document", "d", "", "limit output to the node types in this document")
	return cmd
}

func explainTypes(args []string, docPath string) ([]node.Type, error) {
	var types []node.Type
	for _, arg := range args {
		typ, ok := node.ParseType(arg)
		if !ok {
			return nil, fmt.Errorf("unknown node type %q", arg)
		}
		types = append(types, typ)
	}
	if docPath != "" {
		doc, err := document.Load(docPath)
		if err != nil {
			return nil, err
		}
		types = append(types, document.TypesIn(doc)...)
	}
	return types, nil
}
