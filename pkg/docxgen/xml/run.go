package xml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties
	Text       *Text
	Break      *Break
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil && !r.Properties.IsEmpty() {
		if err := e.EncodeElement(r.Properties, wName("rPr")); err != nil {
			return err
		}
	}

	if r.Break != nil {
		if err := e.EncodeElement(r.Break, wName("br")); err != nil {
			return err
		}
	}

	if r.Text != nil {
		if err := e.EncodeElement(r.Text, wName("t")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run
func (r *Run) GetText() string {
	if r.Text == nil {
		return ""
	}
	return r.Text.Content
}

// Text represents text content
type Text struct {
	Space   string
	Content string
}

// NewText returns a Text, marking it xml:space="preserve" when the content has
// leading or trailing whitespace that a consumer would otherwise collapse.
func NewText(content string) *Text {
	t := &Text{Content: content}
	if content != strings.TrimSpace(content) {
		t.Space = "preserve"
	}
	return t
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space == "preserve" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Space: NamespaceXML, Local: "space"},
			Value: "preserve",
		})
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line break
type Break struct {
	Type string
}

// MarshalXML writes w:br, with w:type only for non-default break types
func (b Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "w:type"},
			Value: b.Type,
		})
	}
	return e.EncodeElement(struct{}{}, start)
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Font          *Font
	Bold          *Empty
	Italic        *Empty
	Strike        *Empty
	Color         *Val
	Size          *Size
	SizeCs        *Size // Complex script size
	Underline     *Val
	VerticalAlign *Val
	Lang          *Lang
}

// IsEmpty reports whether no property is set
func (p *RunProperties) IsEmpty() bool {
	return p.Font == nil && p.Bold == nil && p.Italic == nil && p.Strike == nil &&
		p.Color == nil && p.Size == nil && p.SizeCs == nil && p.Underline == nil &&
		p.VerticalAlign == nil && p.Lang == nil
}

// MarshalXML writes the properties in CT_RPr sequence order
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:rPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	type field struct {
		name  string
		set   bool
		value any
	}
	fields := []field{
		{"rFonts", p.Font != nil, p.Font},
		{"b", p.Bold != nil, p.Bold},
		{"i", p.Italic != nil, p.Italic},
		{"strike", p.Strike != nil, p.Strike},
		{"color", p.Color != nil, p.Color},
		{"sz", p.Size != nil, p.Size},
		{"szCs", p.SizeCs != nil, p.SizeCs},
		{"u", p.Underline != nil, p.Underline},
		{"vertAlign", p.VerticalAlign != nil, p.VerticalAlign},
		{"lang", p.Lang != nil, p.Lang},
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if err := e.EncodeElement(f.value, wName(f.name)); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Size represents a font size in half-points
type Size struct {
	Val int
}

// MarshalXML implements custom XML marshaling for Size
func (s Size) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: strconv.Itoa(s.Val)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// Font represents font information
type Font struct {
	ASCII    string
	HAnsi    string
	EastAsia string
	CS       string
}

// MarshalXML implements custom XML marshaling for Font
func (f Font) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	for _, a := range []struct{ name, value string }{
		{"w:ascii", f.ASCII},
		{"w:hAnsi", f.HAnsi},
		{"w:eastAsia", f.EastAsia},
		{"w:cs", f.CS},
	} {
		if a.value != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.name}, Value: a.value})
		}
	}
	return e.EncodeElement(struct{}{}, start)
}

// Lang represents language settings
type Lang struct {
	Val      string
	EastAsia string
	Bidi     string
}

// MarshalXML implements custom XML marshaling for Lang
func (l Lang) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{}

	if l.Val != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:val"}, Value: l.Val})
	}
	if l.EastAsia != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:eastAsia"}, Value: l.EastAsia})
	}
	if l.Bidi != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:bidi"}, Value: l.Bidi})
	}

	return e.EncodeElement(struct{}{}, start)
}
