package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/document"
	"github.com/goliatone/go-doctemplate/pkg/node"
)

// errAborted signals the user interrupted the prompt.
var errAborted = errors.New("preview: aborted")

// chooser asks the user to pick one of options.
type chooser func(message string, options []string) (string, error)

func surveyChooser(message string, options []string) (string, error) {
	var out string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		Help:     "The selected node type is rendered through its template chain.",
		PageSize: 12,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

func newPreviewCmd(flags *globalFlags, choose chooser) *cobra.Command {
	var (
		typeName string
		children bool
	)

	cmd := &cobra.Command{
		Use:   "preview <document>",
		Short: "Render every node of one type",
		Long: `Prompt for a node type present in the document, then render each node of
that type through its template chain. Pass --type to skip the prompt and
--children to show only what each node's content() would produce.

Examples:
  doctemplate preview doc.yaml -t ./templates
  doctemplate preview doc.yaml --type image -c doctemplate.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			types := document.TypesIn(doc)
			if len(types) == 0 {
				return fmt.Errorf("document %s has no nodes", args[0])
			}

			if typeName == "" {
				options := make([]string, len(types))
				for idx, typ := range types {
					options[idx] = typ.String()
				}
				typeName, err = choose("Node type", options)
				if err != nil {
					return err
				}
			}
			typ, ok := node.ParseType(typeName)
			if !ok {
				return fmt.Errorf("unknown node type %q", typeName)
			}

			orch, err := flags.orchestrator(cmd)
			if err != nil {
				return err
			}
			conv, err := orch.Converter()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			count := 0
			var renderErr error
			document.Walk(doc, func(n node.Node) {
				if renderErr != nil || n.Type() != typ {
					return
				}
				renderNode := conv.Render
				if children {
					renderNode = conv.RenderChildren
				}
				out, err := renderNode(n)
				if err != nil {
					renderErr = err
					return
				}
				count++
				label := n.ID()
				if label == "" {
					label = fmt.Sprintf("#%d", count)
				}
				fmt.Fprintf(w, "--- %s %s\n%s\n", typ, label, out)
			})
			if renderErr != nil {
				return renderErr
			}
			if count == 0 {
				return fmt.Errorf("document %s has no %s nodes", args[0], typ)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "", "node type to render without prompting")
	cmd.Flags().BoolVar(&children, "children", false, "render only the children of each node")
	return cmd
}
