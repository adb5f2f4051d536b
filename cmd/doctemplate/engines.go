package main

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
	"github.com/goliatone/go-doctemplate/pkg/render/template"
)

func newEnginesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List template engines and pattern bindings",
		Long: `List the engine names usable in configuration files, then the pattern
bindings in resolution order. The first pattern matching a file name selects
the engine that compiles it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := orchestrator.DefaultCatalog()
			if err != nil {
				return err
			}
			orch, err := flags.orchestrator(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Engines:")
			for _, name := range catalog.List() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "Bindings:")
			for _, binding := range orch.Engines().Bindings() {
				fmt.Fprintf(w, "  %-10s %s\n", binding.Pattern, engineLabel(catalog, binding.Engine))
			}
			return nil
		},
	}
}

// engineLabel names engine by catalog entry type, falling back to its Go
// type for engines the catalog does not know.
func engineLabel(catalog *template.Catalog, engine template.Engine) string {
	want := reflect.TypeOf(engine)
	for _, name := range catalog.List() {
		candidate, err := catalog.Get(name)
		if err != nil {
			continue
		}
		if reflect.TypeOf(candidate) == want {
			return name
		}
	}
	return fmt.Sprintf("%T", engine)
}
