package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Document represents the w:document root of word/document.xml
type Document struct {
	Body *Body
}

// MarshalXML writes the root element with the namespace declarations the body relies on
func (d Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceMain},
		{Name: xml.Name{Local: "xmlns:r"}, Value: NamespaceRelationships},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	body := d.Body
	if body == nil {
		body = &Body{}
	}
	if err := e.EncodeElement(body, wName("body")); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *SectionProperties
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:body"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i, elem := range b.Elements {
		switch el := elem.(type) {
		case *Paragraph:
			if err := e.EncodeElement(el, wName("p")); err != nil {
				return err
			}
		default:
			return fmt.Errorf("body element %d: unsupported type %T", i, elem)
		}
	}

	if b.SectionProperties != nil {
		if err := e.EncodeElement(b.SectionProperties, wName("sectPr")); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// PageSize is a page size in twentieths of a point
type PageSize struct {
	Width  int
	Height int
}

// Common page sizes.
var (
	PageLetter = PageSize{Width: 12240, Height: 15840}
	PageA4     = PageSize{Width: 11906, Height: 16838}
)

// SectionProperties represents the trailing w:sectPr of the body
type SectionProperties struct {
	Size PageSize
	// Margin is applied to all four edges, in twentieths of a point
	Margin int
}

// MarshalXML writes w:pgSz and w:pgMar in schema order
func (s SectionProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:sectPr"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	pgSz := wName("pgSz")
	pgSz.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(s.Size.Width)},
		{Name: xml.Name{Local: "w:h"}, Value: strconv.Itoa(s.Size.Height)},
	}
	if err := e.EncodeElement(struct{}{}, pgSz); err != nil {
		return err
	}

	margin := strconv.Itoa(s.Margin)
	pgMar := wName("pgMar")
	pgMar.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:top"}, Value: margin},
		{Name: xml.Name{Local: "w:right"}, Value: margin},
		{Name: xml.Name{Local: "w:bottom"}, Value: margin},
		{Name: xml.Name{Local: "w:left"}, Value: margin},
		{Name: xml.Name{Local: "w:header"}, Value: "720"},
		{Name: xml.Name{Local: "w:footer"}, Value: "720"},
		{Name: xml.Name{Local: "w:gutter"}, Value: "0"},
	}
	if err := e.EncodeElement(struct{}{}, pgMar); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Marshal encodes v as a standalone part: the XML declaration followed by the root element.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)

	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
