package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
)

// maxDepth caps tree nesting when the configuration leaves it unlimited. Trees reach
// the CLI and the server from untrusted input.
const maxDepth = 256

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string
	// title overrides the configured document title when set
	title string

	once   sync.Once
	engine *docxgen.Engine
	logger zerolog.Logger
	err    error
}

// ensureEngine loads the configuration once and builds the engine and logger from it.
// Log lines go to the command's error output.
func (c *commandContext) ensureEngine(cmd *cobra.Command) (*docxgen.Engine, error) {
	c.once.Do(func() {
		var config *docxgen.Config
		if path := strings.TrimSpace(c.configFlag); path != "" {
			config, c.err = docxgen.LoadConfig(path)
			if c.err != nil {
				return
			}
		} else {
			config = docxgen.ConfigFromEnvironment()
		}
		if c.logLevelFlag != "" {
			config.LogLevel = c.logLevelFlag
		}
		if c.logFormatFlag != "" {
			config.LogFormat = c.logFormatFlag
		}
		if c.title != "" {
			config.Title = c.title
		}
		if config.MaxDepth == 0 {
			config.MaxDepth = maxDepth
		}
		if c.err = config.Validate(); c.err != nil {
			return
		}

		out := cmd.ErrOrStderr()
		c.logger = docxgen.NewLogger(out, config, shouldColorize(out))
		c.engine, c.err = docxgen.NewWithConfig(config, docxgen.WithLogger(c.logger))
	})
	return c.engine, c.err
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "docxgen",
		Short:         "Render Markdown, HTML and text into DOCX documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), "docxgen version "+version+"\n")
			return err
		},
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
