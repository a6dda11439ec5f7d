package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/markup"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a Markdown, HTML or text file to DOCX",
		Long: "Render converts the input file and writes a DOCX package. Use - to read " +
			"standard input. The output defaults to the input name with a .docx extension, " +
			"and - writes the package to standard output.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			src, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			if format == "" {
				format = markup.FormatFromPath(input)
			}
			tree, err := markup.Convert(format, src)
			if err != nil {
				return err
			}

			engine, err := ctx.ensureEngine(cmd)
			if err != nil {
				return err
			}

			if output == "" {
				if input == "-" {
					return fmt.Errorf("--output is required when reading standard input")
				}
				output = strings.TrimSuffix(input, filepath.Ext(input)) + ".docx"
			}
			if input != "-" && output != "-" && sameFile(input, output) {
				return fmt.Errorf("output %s would overwrite the input; choose another path with --output", output)
			}
			if output == "-" {
				return engine.RenderTo(cmd.Context(), tree, cmd.OutOrStdout())
			}
			if err := engine.Render(cmd.Context(), tree, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: "+strings.Join(markup.Formats, ", ")+" (default from the file extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path, - for standard output")
	cmd.Flags().StringVar(&ctx.title, "title", "", "Document title")

	return cmd
}

func readInput(cmd *cobra.Command, input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// sameFile reports whether a and b name the same file. Paths that do not exist yet
// are compared after cleaning.
func sameFile(a, b string) bool {
	ai, aerr := os.Stat(a)
	bi, berr := os.Stat(b)
	if aerr == nil && berr == nil {
		return os.SameFile(ai, bi)
	}
	absA, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return absA == absB
}
