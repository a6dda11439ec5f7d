package main

import (
	"archive/zip"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.docx>",
		Short: "List the parts of a DOCX package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := docxgen.Inspect(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(parts))
			for _, p := range parts {
				rows = append(rows, []string{
					p.Name,
					p.ContentType,
					methodName(p.Method),
					strconv.FormatUint(p.UncompressedSize, 10),
					strconv.FormatUint(p.CompressedSize, 10),
				})
			}
			table := renderTable(
				[]string{"Part", "Content Type", "Method", "Size", "Compressed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}

func methodName(method uint16) string {
	switch method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return strconv.Itoa(int(method))
	}
}
