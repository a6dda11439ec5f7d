package docxgen

import (
	"fmt"
	"math"
	"time"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/render"
	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/xml"
)

// Part names of the parts produced by the serializer
const (
	PartDocument = "word/document.xml"
	PartStyles   = "word/styles.xml"
	PartCore     = "docProps/core.xml"
	PartApp      = "docProps/app.xml"
)

// Application is the name written to docProps/app.xml
const Application = "go-docxgen"

// pageMargin is one inch in twentieths of a point
const pageMargin = 1440

var pageSizes = map[string]xml.PageSize{
	"letter": xml.PageLetter,
	"a4":     xml.PageA4,
}

// Part is one named XML member of a package
type Part struct {
	// Name is the member path inside the archive, without a leading slash
	Name        string
	ContentType string
	// RelType is the type of the relationship that targets this part
	RelType string
	// Source is the part whose relationship table targets this part; empty for the package root
	Source  string
	Content []byte
}

// Serializer converts a DocumentModel into package parts
type Serializer struct {
	config *Config
}

// NewSerializer creates a serializer. A nil config uses the defaults.
func NewSerializer(config *Config) *Serializer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Serializer{config: config.normalized()}
}

// Serialize validates the model and builds the document, styles and properties parts.
// Nothing is produced when the model is invalid.
func (s *Serializer) Serialize(model *DocumentModel) ([]Part, error) {
	body, err := s.buildBody(model)
	if err != nil {
		return nil, err
	}
	if s.config.MergeRuns {
		render.MergeBody(body)
	}

	document, err := marshalPart(PartDocument, &xml.Document{Body: body})
	if err != nil {
		return nil, err
	}
	styles, err := marshalPart(PartStyles, s.styles())
	if err != nil {
		return nil, err
	}
	core, err := marshalPart(PartCore, s.coreProperties())
	if err != nil {
		return nil, err
	}
	app, err := marshalPart(PartApp, s.appProperties(model))
	if err != nil {
		return nil, err
	}

	return []Part{
		{Name: PartDocument, ContentType: xml.ContentTypeDocumentMain, RelType: xml.RelTypeOfficeDocument, Content: document},
		{Name: PartStyles, ContentType: xml.ContentTypeStyles, RelType: xml.RelTypeStyles, Source: PartDocument, Content: styles},
		{Name: PartCore, ContentType: xml.ContentTypeCoreProperties, RelType: xml.RelTypeCoreProperties, Content: core},
		{Name: PartApp, ContentType: xml.ContentTypeExtendedProperties, RelType: xml.RelTypeExtendedProperties, Content: app},
	}, nil
}

func marshalPart(name string, v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, newError(SerializationError, "serialize", name, err, "failed to marshal part")
	}
	return data, nil
}

// buildBody checks every block and run and converts them to body XML structures
func (s *Serializer) buildBody(model *DocumentModel) (*xml.Body, error) {
	if model == nil || len(model.Blocks) == 0 {
		return nil, newError(InvalidStructure, "serialize", "", nil, "document has no paragraphs")
	}

	size, ok := pageSizes[s.config.PageSize]
	if !ok {
		size = xml.PageLetter
	}
	body := &xml.Body{
		Elements:          make([]xml.BodyElement, 0, len(model.Blocks)),
		SectionProperties: &xml.SectionProperties{Size: size, Margin: pageMargin},
	}

	for i, block := range model.Blocks {
		path := fmt.Sprintf("Block[%d]", i)
		switch b := block.(type) {
		case *ParagraphBlock:
			if b == nil {
				return nil, newError(InvalidStructure, "serialize", path, nil, "nil paragraph")
			}
			para, err := buildParagraph(b, path)
			if err != nil {
				return nil, err
			}
			body.Elements = append(body.Elements, para)
		case *Run:
			return nil, newError(InvalidStructure, "serialize", path, nil, "run outside of a paragraph")
		default:
			return nil, newError(InvalidStructure, "serialize", path, nil, "unsupported block %T", block)
		}
	}
	return body, nil
}

func buildParagraph(p *ParagraphBlock, path string) (*xml.Paragraph, error) {
	para := &xml.Paragraph{
		Content: make([]xml.ParagraphContent, 0, len(p.Runs)),
	}

	switch p.Alignment {
	case AlignDefault:
	case AlignLeft, AlignCenter, AlignRight:
		para.Properties = &xml.ParagraphProperties{Alignment: &xml.Val{Val: string(p.Alignment)}}
	case AlignJustify:
		para.Properties = &xml.ParagraphProperties{Alignment: &xml.Val{Val: "both"}}
	default:
		return nil, newError(SerializationError, "serialize", path, nil, "unknown alignment %q", p.Alignment)
	}

	for j, run := range p.Runs {
		runPath := fmt.Sprintf("%s/Run[%d]", path, j)
		if run.Text == "" && !run.Break {
			return nil, newError(InvalidStructure, "serialize", runPath, nil, "run has neither text nor a break")
		}
		if err := run.Style.Validate(); err != nil {
			serr := &Error{Kind: SerializationError, Op: "serialize", Path: runPath, Msg: "inconsistent run style", Err: err}
			// Reconciled runs point back at the tree node they came from
			if run.path != "" {
				serr.Path, serr.Node = run.path, run.node
			}
			return nil, serr
		}

		r := &xml.Run{Properties: runProperties(run.Style)}
		if run.Break {
			r.Break = &xml.Break{}
		}
		if run.Text != "" {
			r.Text = xml.NewText(run.Text)
		}
		para.Content = append(para.Content, r)
	}
	return para, nil
}

// runProperties maps a validated style to w:rPr, nil when there is nothing to write
func runProperties(style RunStyle) *xml.RunProperties {
	if style.IsZero() {
		return nil
	}
	props := &xml.RunProperties{}
	if style.Bold {
		props.Bold = &xml.Empty{}
	}
	if style.Italic {
		props.Italic = &xml.Empty{}
	}
	if style.Strike {
		props.Strike = &xml.Empty{}
	}
	if style.Color != "" {
		props.Color = &xml.Val{Val: style.Color}
	}
	if style.Size > 0 {
		props.Size = &xml.Size{Val: style.Size}
		props.SizeCs = &xml.Size{Val: style.Size}
	}
	if style.Underline != "" {
		props.Underline = &xml.Val{Val: style.Underline}
	}
	switch {
	case style.Superscript:
		props.VerticalAlign = &xml.Val{Val: "superscript"}
	case style.Subscript:
		props.VerticalAlign = &xml.Val{Val: "subscript"}
	}
	return props
}

func (s *Serializer) styles() xml.Styles {
	styles := xml.Styles{
		FontSize: int(math.Round(s.config.DefaultFontSize * 2)),
		Lang:     s.config.Language,
	}
	if s.config.DefaultFont != "" {
		styles.Font = xml.Font{
			ASCII:    s.config.DefaultFont,
			HAnsi:    s.config.DefaultFont,
			EastAsia: s.config.DefaultFont,
			CS:       s.config.DefaultFont,
		}
	}
	return styles
}

func (s *Serializer) coreProperties() *xml.CoreProperties {
	core := xml.NewCoreProperties()
	core.Title = s.config.Title
	core.Subject = s.config.Subject
	core.Creator = s.config.Creator
	core.Keywords = s.config.Keywords
	core.Description = s.config.Description
	core.LastModifiedBy = s.config.Creator
	core.Language = s.config.Language
	if !s.config.Created.IsZero() {
		core.Created = xml.NewW3CDTF(formatW3CDTF(s.config.Created))
	}
	if !s.config.Modified.IsZero() {
		core.Modified = xml.NewW3CDTF(formatW3CDTF(s.config.Modified))
	}
	return core
}

func formatW3CDTF(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

func (s *Serializer) appProperties(model *DocumentModel) *xml.AppProperties {
	app := xml.NewAppProperties(Application)
	app.Words, app.Characters = model.stats()
	app.Paragraphs = len(model.Paragraphs())
	return app
}
