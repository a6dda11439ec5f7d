package xml

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *ParagraphProperties
	// Content maintains the order of runs (and future inline elements)
	Content []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil && !p.Properties.isEmpty() {
		if err := e.EncodeElement(p.Properties, wName("pPr")); err != nil {
			return err
		}
	}

	for i, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			if err := e.EncodeElement(c, wName("r")); err != nil {
				return err
			}
		default:
			return fmt.Errorf("paragraph content %d: unsupported type %T", i, content)
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Runs returns the runs of the paragraph in order
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, content := range p.Content {
		if run, ok := content.(*Run); ok {
			runs = append(runs, run)
		}
	}
	return runs
}

// GetText returns the concatenated text of all runs in a paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, run := range p.Runs() {
		sb.WriteString(run.GetText())
	}
	return sb.String()
}

// ParagraphProperties represents paragraph formatting properties
type ParagraphProperties struct {
	Style     *Val
	Alignment *Val
}

func (p *ParagraphProperties) isEmpty() bool {
	return p.Style == nil && p.Alignment == nil
}

// MarshalXML writes the properties in CT_PPr sequence order
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:pPr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Style != nil {
		if err := e.EncodeElement(p.Style, wName("pStyle")); err != nil {
			return err
		}
	}
	if p.Alignment != nil {
		if err := e.EncodeElement(p.Alignment, wName("jc")); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
