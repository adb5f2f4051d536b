package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-doctemplate/pkg/chain"
	"github.com/goliatone/go-doctemplate/pkg/config"
	"github.com/goliatone/go-doctemplate/pkg/logging"
	"github.com/goliatone/go-doctemplate/pkg/orchestrator"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath   string
	templateDirs []string
	order        string
	strict       bool
	sanitize     bool
	backend      string
	logLevel     string
	logFormat    string
}

func newRootCmd(choose chooser) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "doctemplate",
		Short: "Render documents through user template chains",
		Long: `doctemplate converts a JSON or YAML document tree to HTML5. For every node
type the templates found in --template-dir directories (and in the
configuration file) form a chain: the last declared template runs first and
can delegate to the next one, down to the built-in html5 renderer.

Configuration can be provided with flags or a YAML, JSON or HCL file passed
with --config. Flags are applied after the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "configuration file (.yaml, .json or .hcl)")
	pf.StringArrayVarP(&flags.templateDirs, "template-dir", "t", nil, "template directory, repeatable; later directories win")
	pf.StringVar(&flags.order, "order", "", "source order: dirs_first or templates_first")
	pf.BoolVar(&flags.strict, "strict", false, "warn about skipped template files")
	pf.BoolVar(&flags.sanitize, "sanitize", false, "sanitize template output with the markup policy")
	pf.StringVar(&flags.backend, "backend", "", "default renderer terminating every chain")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newRenderCmd(flags),
		newExplainCmd(flags),
		newEnginesCmd(flags),
		newPreviewCmd(flags, choose),
	)
	return root
}

func (g *globalFlags) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(g.logLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(g.logFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}), nil
}

// options merges the configuration file with the command-line overrides.
func (g *globalFlags) options(cmd *cobra.Command) ([]orchestrator.Option, error) {
	logger, err := g.logger(cmd)
	if err != nil {
		return nil, err
	}

	var options []orchestrator.Option
	if g.configPath != "" {
		file, err := config.LoadFile(g.configPath)
		if err != nil {
			return nil, err
		}
		fromFile, err := file.Options(nil, logger)
		if err != nil {
			return nil, err
		}
		options = append(options, fromFile...)
	} else {
		options = append(options, orchestrator.WithLogger(logger))
	}

	if len(g.templateDirs) > 0 {
		options = append(options, orchestrator.WithTemplateDirs(g.templateDirs...))
	}
	if g.order != "" {
		order, err := orchestrator.ParseOrder(g.order)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithOrder(order))
	}
	if g.strict {
		options = append(options, orchestrator.WithStrict(true))
	}
	if g.sanitize {
		options = append(options, orchestrator.WithSanitizer(chain.MarkupPolicy()))
	}
	if g.backend != "" {
		options = append(options, orchestrator.WithDefaultRenderer(g.backend))
	}
	return options, nil
}

func (g *globalFlags) orchestrator(cmd *cobra.Command) (*orchestrator.Orchestrator, error) {
	options, err := g.options(cmd)
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("document %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("document %s is a directory", path)
	}
	return nil
}
