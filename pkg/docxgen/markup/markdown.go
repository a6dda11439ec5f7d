package markup

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
)

// headingSizes are the font sizes in points for heading levels 1 to 6
var headingSizes = [...]float64{20, 16, 14, 12, 11, 11}

// linkColor is the colour Word uses for hyperlinks
const linkColor = "0563C1"

const indent = "    "

// FromMarkdown converts Markdown source into a document tree. Headings become bold
// paragraphs, emphasis maps to Italic and strong emphasis to Bold, list items are
// prefixed with a bullet or their number and hard line breaks become Break elements.
func FromMarkdown(src []byte) docxgen.ElementDescriptor {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(src))

	c := &markdownConverter{src: src}
	return docxgen.Document(c.blocks(doc, 0)...)
}

type markdownConverter struct {
	src []byte
}

// blocks converts the block children of n
func (c *markdownConverter) blocks(n ast.Node, depth int) []docxgen.ElementDescriptor {
	var out []docxgen.ElementDescriptor
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.block(child, depth)...)
	}
	return out
}

func (c *markdownConverter) block(n ast.Node, depth int) []docxgen.ElementDescriptor {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level < 1 || level > len(headingSizes) {
			level = len(headingSizes)
		}
		para := docxgen.Paragraph(c.inlines(node)...).WithProps(docxgen.Props{
			docxgen.PropBold: true,
			docxgen.PropSize: headingSizes[level-1],
		})
		return []docxgen.ElementDescriptor{para}

	case *ast.Paragraph, *ast.TextBlock:
		return []docxgen.ElementDescriptor{docxgen.Paragraph(c.inlines(node)...)}

	case *ast.Blockquote:
		var out []docxgen.ElementDescriptor
		for _, para := range c.blocks(node, depth) {
			out = append(out, para.WithProps(docxgen.Props{docxgen.PropItalic: true}))
		}
		return out

	case *ast.List:
		return c.list(node, depth)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var children []docxgen.ElementDescriptor
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			if i > 0 {
				children = append(children, docxgen.Break())
			}
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(c.src)), "\r\n")
			if line != "" {
				children = append(children, literalText(line)...)
			}
		}
		return []docxgen.ElementDescriptor{docxgen.Paragraph(children...)}

	case *ast.ThematicBreak:
		return []docxgen.ElementDescriptor{docxgen.Paragraph()}

	case *ast.HTMLBlock:
		return nil

	default:
		return c.blocks(node, depth)
	}
}

func (c *markdownConverter) list(list *ast.List, depth int) []docxgen.ElementDescriptor {
	var out []docxgen.ElementDescriptor
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}

		first := true
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if nested, ok := child.(*ast.List); ok {
				out = append(out, c.list(nested, depth+1)...)
				continue
			}
			prefix := strings.Repeat(indent, depth+1)
			if first {
				prefix = strings.Repeat(indent, depth) + marker
				first = false
			}
			for _, para := range c.block(child, depth+1) {
				para.Children = append([]docxgen.ElementDescriptor{docxgen.Text(prefix)}, para.Children...)
				out = append(out, para)
			}
		}
	}
	return out
}

// inlines converts the inline children of n
func (c *markdownConverter) inlines(n ast.Node) []docxgen.ElementDescriptor {
	var out []docxgen.ElementDescriptor
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.inline(child)...)
	}
	return out
}

func (c *markdownConverter) inline(n ast.Node) []docxgen.ElementDescriptor {
	switch node := n.(type) {
	case *ast.Text:
		var out []docxgen.ElementDescriptor
		if s := plain(string(node.Segment.Value(c.src))); s != "" {
			out = append(out, literalText(s)...)
		}
		switch {
		case node.HardLineBreak():
			out = append(out, docxgen.Break())
		case node.SoftLineBreak():
			out = append(out, docxgen.Text(" "))
		}
		return out

	case *ast.String:
		return literalText(plain(string(node.Value)))

	case *ast.Emphasis:
		if node.Level >= 2 {
			return []docxgen.ElementDescriptor{docxgen.Bold(c.inlines(node)...)}
		}
		return []docxgen.ElementDescriptor{docxgen.Italic(c.inlines(node)...)}

	case *east.Strikethrough:
		return []docxgen.ElementDescriptor{docxgen.Strike(c.inlines(node)...)}

	case *ast.Link:
		return []docxgen.ElementDescriptor{link(c.inlines(node)...)}

	case *ast.AutoLink:
		return []docxgen.ElementDescriptor{link(literalText(string(node.URL(c.src)))...)}

	case *ast.RawHTML:
		return nil

	default:
		// Code spans and image alt text keep their text only
		return c.inlines(node)
	}
}

func link(children ...docxgen.ElementDescriptor) docxgen.ElementDescriptor {
	return docxgen.Underline(children...).WithProps(docxgen.Props{docxgen.PropColor: linkColor})
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// plain removes line breaks, which would otherwise start new paragraphs
func plain(s string) string {
	return lineBreaks.Replace(s)
}
