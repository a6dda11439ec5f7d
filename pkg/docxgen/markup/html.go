package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen"
)

// formatTags maps inline HTML tags to the formatting element they produce
var formatTags = map[string]docxgen.Kind{
	"b":      docxgen.KindBold,
	"strong": docxgen.KindBold,
	"i":      docxgen.KindItalic,
	"em":     docxgen.KindItalic,
	"u":      docxgen.KindUnderline,
	"ins":    docxgen.KindUnderline,
	"s":      docxgen.KindStrike,
	"strike": docxgen.KindStrike,
	"del":    docxgen.KindStrike,
	"sup":    docxgen.KindSuperscript,
	"sub":    docxgen.KindSubscript,
}

// blockTags end the current paragraph and start a new one
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "section": true, "article": true, "header": true, "footer": true,
}

// skipTags are never rendered
var skipTags = map[string]bool{
	"head": true, "script": true, "style": true, "template": true, "noscript": true,
}

// format is the formatting inherited by text below an element
type format struct {
	kinds []docxgen.Kind
	color string
	pre   bool
}

func (f format) with(kind docxgen.Kind) format {
	kinds := make([]docxgen.Kind, len(f.kinds), len(f.kinds)+1)
	copy(kinds, f.kinds)
	f.kinds = append(kinds, kind)
	return f
}

// wrap nests el inside the formatting elements of f, outermost first
func (f format) wrap(el docxgen.ElementDescriptor) docxgen.ElementDescriptor {
	if f.color != "" {
		el = el.WithProps(docxgen.Props{docxgen.PropColor: f.color})
	}
	for i := len(f.kinds) - 1; i >= 0; i-- {
		el = docxgen.Element(f.kinds[i], nil, el)
	}
	return el
}

// FromHTML converts an HTML fragment or document into a document tree. Block
// elements become paragraphs, inline formatting tags map to the matching formatting
// elements and <br> becomes a Break.
func FromHTML(r io.Reader) (docxgen.ElementDescriptor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return docxgen.ElementDescriptor{}, fmt.Errorf("parse html: %w", err)
	}

	c := &htmlConverter{lineStart: true}
	root := findBody(doc)
	if root == nil {
		root = doc
	}
	c.walkChildren(root, format{})
	c.flush()
	return docxgen.Document(c.paragraphs...), nil
}

type htmlConverter struct {
	paragraphs []docxgen.ElementDescriptor
	current    []docxgen.ElementDescriptor
	props      docxgen.Props
	lists      []listState
	// lineStart drops whitespace at the start of a line
	lineStart bool
	// space is collapsed whitespace waiting for the next word
	space bool
}

type listState struct {
	ordered bool
	next    int
}

// flush closes the paragraph being collected
func (c *htmlConverter) flush() {
	if len(c.current) == 0 {
		c.props = nil
		c.lineStart, c.space = true, false
		return
	}
	para := docxgen.Paragraph(c.current...)
	if len(c.props) > 0 {
		para = para.WithProps(c.props)
	}
	c.paragraphs = append(c.paragraphs, para)
	c.current = nil
	c.props = nil
	c.lineStart, c.space = true, false
}

func (c *htmlConverter) walkChildren(n *html.Node, f format) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child, f)
	}
}

func (c *htmlConverter) walk(n *html.Node, f format) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data, f)
		return
	case html.ElementNode:
	default:
		c.walkChildren(n, f)
		return
	}

	tag := strings.ToLower(n.Data)
	if skipTags[tag] {
		return
	}

	if color, ok := hexColor(styleValue(n, "color")); ok {
		f.color = color
	}

	switch {
	case tag == "br":
		c.current = append(c.current, f.wrap(docxgen.Break()))
		c.lineStart, c.space = true, false
		return

	case tag == "ul" || tag == "ol":
		c.flush()
		c.lists = append(c.lists, listState{ordered: tag == "ol", next: startAttr(n)})
		c.walkChildren(n, f)
		c.lists = c.lists[:len(c.lists)-1]
		return

	case formatTags[tag] != "":
		c.walkChildren(n, f.with(formatTags[tag]))
		return

	case tag == "a":
		f = f.with(docxgen.KindUnderline)
		if f.color == "" {
			f.color = linkColor
		}
		c.walkChildren(n, f)
		return

	case blockTags[tag]:
		c.flush()
		c.props = blockProps(n, tag)
		if tag == "li" {
			c.current = append(c.current, docxgen.Text(c.listMarker()))
		}
		if tag == "pre" {
			f.pre = true
		}
		c.walkChildren(n, f)
		c.flush()
		return

	default:
		c.walkChildren(n, f)
	}
}

func (c *htmlConverter) text(s string, f format) {
	if f.pre {
		for i, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
			if i > 0 {
				c.current = append(c.current, f.wrap(docxgen.Break()))
			}
			if line != "" {
				c.appendText(line, f)
			}
		}
		return
	}

	s = collapseSpace(s)
	lead := strings.HasPrefix(s, " ")
	trail := strings.HasSuffix(s, " ")
	s = strings.Trim(s, " ")
	if s == "" {
		c.space = c.space || (!c.lineStart && (lead || trail))
		return
	}
	if c.space || (lead && !c.lineStart) {
		s = " " + s
	}
	c.appendText(s, f)
	c.lineStart = false
	c.space = trail
}

func (c *htmlConverter) appendText(s string, f format) {
	for _, el := range literalText(s) {
		c.current = append(c.current, f.wrap(el))
	}
}

// collapseSpace folds each run of HTML whitespace into a single space
func collapseSpace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

func (c *htmlConverter) listMarker() string {
	if len(c.lists) == 0 {
		return "• "
	}
	prefix := strings.Repeat(indent, len(c.lists)-1)
	top := &c.lists[len(c.lists)-1]
	if !top.ordered {
		return prefix + "• "
	}
	marker := prefix + strconv.Itoa(top.next) + ". "
	top.next++
	return marker
}

// blockProps derives paragraph properties from a block element
func blockProps(n *html.Node, tag string) docxgen.Props {
	props := docxgen.Props{}
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		props[docxgen.PropBold] = true
		props[docxgen.PropSize] = headingSizes[tag[1]-'1']
	}
	if tag == "blockquote" {
		props[docxgen.PropItalic] = true
	}

	align := styleValue(n, "text-align")
	if align == "" {
		align = attr(n, "align")
	}
	switch strings.ToLower(align) {
	case "left", "center", "right", "justify":
		props[docxgen.PropAlign] = strings.ToLower(align)
	}
	return props
}

func startAttr(n *html.Node) int {
	if v, err := strconv.Atoi(attr(n, "start")); err == nil {
		return v
	}
	return 1
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// styleValue returns one declaration from an inline style attribute
func styleValue(n *html.Node, property string) string {
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// hexColor accepts #RRGGBB and #RGB colours. Named colours are ignored.
func hexColor(v string) (string, bool) {
	v = strings.TrimPrefix(v, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return "", false
	}
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	return strings.ToUpper(v), true
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
