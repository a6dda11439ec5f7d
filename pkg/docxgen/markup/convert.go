package markup

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
)

// Input formats accepted by Convert
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatText     = "text"
)

// Formats lists the accepted format names
var Formats = []string{FormatMarkdown, FormatHTML, FormatText}

// FromText wraps plain text in a document. Each line becomes a paragraph.
func FromText(src []byte) docxgen.ElementDescriptor {
	return docxgen.Document(literalText(string(src))...)
}

// literalText builds Text elements for s. A backslash followed by n is split across
// two elements so the engine never reads it as a break marker.
func literalText(s string) []docxgen.ElementDescriptor {
	var out []docxgen.ElementDescriptor
	for {
		i := strings.Index(s, `\n`)
		if i < 0 {
			break
		}
		out = append(out, docxgen.Text(s[:i+1]))
		s = s[i+1:]
	}
	return append(out, docxgen.Text(s))
}

// Convert builds a document tree from src in the named format
func Convert(format string, src []byte) (docxgen.ElementDescriptor, error) {
	switch strings.ToLower(format) {
	case FormatMarkdown, "md":
		return FromMarkdown(src), nil
	case FormatHTML, "htm":
		return FromHTML(bytes.NewReader(src))
	case FormatText, "txt", "":
		return FromText(src), nil
	default:
		return docxgen.ElementDescriptor{}, fmt.Errorf("unknown input format %q", format)
	}
}

// FormatFromPath guesses the input format from a file extension
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}
