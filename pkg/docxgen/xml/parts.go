package xml

import (
	"encoding/xml"
	"strconv"
)

// Relationship types referenced by the generated package.
const (
	RelTypeOfficeDocument     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeStyles             = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelTypeCoreProperties     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeExtendedProperties = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
)

// Content types of the generated parts.
const (
	ContentTypeRelationships      = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML                = "application/xml"
	ContentTypeDocumentMain       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeStyles             = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ContentTypeCoreProperties     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtendedProperties = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship represents a relationship in the package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships of one source part
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps a single part name to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// CoreProperties represents docProps/core.xml
type CoreProperties struct {
	XMLName        xml.Name  `xml:"cp:coreProperties"`
	NSCP           string    `xml:"xmlns:cp,attr"`
	NSDC           string    `xml:"xmlns:dc,attr"`
	NSDCTerms      string    `xml:"xmlns:dcterms,attr"`
	NSDCMIType     string    `xml:"xmlns:dcmitype,attr"`
	NSXSI          string    `xml:"xmlns:xsi,attr"`
	Title          string    `xml:"dc:title,omitempty"`
	Subject        string    `xml:"dc:subject,omitempty"`
	Creator        string    `xml:"dc:creator,omitempty"`
	Keywords       string    `xml:"cp:keywords,omitempty"`
	Description    string    `xml:"dc:description,omitempty"`
	LastModifiedBy string    `xml:"cp:lastModifiedBy,omitempty"`
	Language       string    `xml:"dc:language,omitempty"`
	Created        *W3CDTF   `xml:"dcterms:created,omitempty"`
	Modified       *W3CDTF   `xml:"dcterms:modified,omitempty"`
}

// NewCoreProperties returns core properties with every namespace declared
func NewCoreProperties() *CoreProperties {
	return &CoreProperties{
		NSCP:       NamespaceCoreProperties,
		NSDC:       NamespaceDC,
		NSDCTerms:  NamespaceDCTerms,
		NSDCMIType: NamespaceDCMIType,
		NSXSI:      NamespaceXSI,
	}
}

// W3CDTF is a dcterms date value typed as xsi:type="dcterms:W3CDTF"
type W3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// NewW3CDTF wraps an already formatted timestamp
func NewW3CDTF(value string) *W3CDTF {
	return &W3CDTF{Type: "dcterms:W3CDTF", Value: value}
}

// AppProperties represents docProps/app.xml
type AppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Namespace   string   `xml:"xmlns,attr"`
	NSVT        string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application,omitempty"`
	DocSecurity int      `xml:"DocSecurity"`
	Words       int      `xml:"Words"`
	Characters  int      `xml:"Characters"`
	Paragraphs  int      `xml:"Paragraphs"`
	AppVersion  string   `xml:"AppVersion,omitempty"`
}

// NewAppProperties returns extended properties with namespaces declared
func NewAppProperties(application string) *AppProperties {
	return &AppProperties{
		Namespace:   NamespaceExtendedProperties,
		NSVT:        NamespaceDocPropsVTypes,
		Application: application,
	}
}

// Styles represents word/styles.xml. Only document defaults and the Normal
// paragraph style are written.
type Styles struct {
	Font     Font
	FontSize int // half-points
	Lang     string
}

// MarshalXML writes w:styles with w:docDefaults and the default paragraph style
func (s Styles) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:styles"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: NamespaceMain},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	defaults := wName("docDefaults")
	if err := e.EncodeToken(defaults); err != nil {
		return err
	}
	rPrDefault := wName("rPrDefault")
	if err := e.EncodeToken(rPrDefault); err != nil {
		return err
	}
	props := RunProperties{}
	if s.Font != (Font{}) {
		font := s.Font
		props.Font = &font
	}
	if s.FontSize > 0 {
		props.Size = &Size{Val: s.FontSize}
		props.SizeCs = &Size{Val: s.FontSize}
	}
	if s.Lang != "" {
		props.Lang = &Lang{Val: s.Lang}
	}
	if err := e.EncodeElement(props, wName("rPr")); err != nil {
		return err
	}
	if err := e.EncodeToken(rPrDefault.End()); err != nil {
		return err
	}
	if err := e.EncodeElement(struct{}{}, wName("pPrDefault")); err != nil {
		return err
	}
	if err := e.EncodeToken(defaults.End()); err != nil {
		return err
	}

	style := wName("style")
	style.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:type"}, Value: "paragraph"},
		{Name: xml.Name{Local: "w:default"}, Value: strconv.Itoa(1)},
		{Name: xml.Name{Local: "w:styleId"}, Value: "Normal"},
	}
	if err := e.EncodeToken(style); err != nil {
		return err
	}
	if err := e.EncodeElement(Val{Val: "Normal"}, wName("name")); err != nil {
		return err
	}
	if err := e.EncodeElement(Empty{}, wName("qFormat")); err != nil {
		return err
	}
	if err := e.EncodeToken(style.End()); err != nil {
		return err
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
