package xml

import (
	"encoding/xml"
)

// Namespace URIs used by the generated parts.
const (
	NamespaceMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceXML           = "http://www.w3.org/XML/1998/namespace"

	NamespacePackageRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	NamespaceContentTypes         = "http://schemas.openxmlformats.org/package/2006/content-types"
	NamespaceCoreProperties       = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NamespaceExtendedProperties   = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NamespaceDocPropsVTypes       = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NamespaceDC                   = "http://purl.org/dc/elements/1.1/"
	NamespaceDCTerms              = "http://purl.org/dc/terms/"
	NamespaceDCMIType             = "http://purl.org/dc/dcmitype/"
	NamespaceXSI                  = "http://www.w3.org/2001/XMLSchema-instance"
)

// Header is written before the root element of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// Empty represents an empty element (used for boolean properties such as w:b)
type Empty struct{}

// MarshalXML writes the element with no attributes and no content
func (Empty) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	return e.EncodeElement(struct{}{}, start)
}

// Val represents an element whose only payload is a w:val attribute (w:jc, w:u, w:color, ...)
type Val struct {
	Val string
}

// MarshalXML implements custom XML marshaling for Val
func (v Val) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:val"}, Value: v.Val},
	}
	return e.EncodeElement(struct{}{}, start)
}

func wName(local string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: "w:" + local}}
}
