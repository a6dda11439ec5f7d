package xml

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDocument(t *testing.T) {
	doc := &Document{
		Body: &Body{
			Elements: []BodyElement{
				&Paragraph{
					Properties: &ParagraphProperties{Alignment: &Val{Val: "center"}},
					Content: []ParagraphContent{
						&Run{Text: NewText("Hello")},
					},
				},
			},
			SectionProperties: &SectionProperties{Size: PageLetter, Margin: 1440},
		},
	}

	data, err := Marshal(doc)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, Header))
	assert.Contains(t, out, `<w:document xmlns:w="`+NamespaceMain+`" xmlns:r="`+NamespaceRelationships+`">`)
	assert.Contains(t, out, `<w:body><w:p><w:pPr><w:jc w:val="center"></w:jc></w:pPr><w:r><w:t>Hello</w:t></w:r></w:p>`)
	assert.Contains(t, out, `<w:sectPr><w:pgSz w:w="12240" w:h="15840"></w:pgSz><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"></w:pgMar></w:sectPr></w:body></w:document>`)

	// The output is well formed
	var v struct{}
	assert.NoError(t, xml.Unmarshal(data, &v))
}

func TestMarshalDocument_NilBody(t *testing.T) {
	data, err := Marshal(&Document{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "<w:body></w:body>")
}

type fakeBlock struct{}

func (fakeBlock) isBodyElement() {}

type fakeInline struct{}

func (fakeInline) isParagraphContent() {}

func TestMarshal_UnsupportedContent(t *testing.T) {
	_, err := Marshal(&Document{Body: &Body{Elements: []BodyElement{fakeBlock{}}}})
	assert.ErrorContains(t, err, "unsupported type")

	_, err = Marshal(&Paragraph{Content: []ParagraphContent{fakeInline{}}})
	assert.ErrorContains(t, err, "unsupported type")
}

func TestText_Space(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"plain", `<w:t>plain</w:t>`},
		{" leading", `<w:t xml:space="preserve"> leading</w:t>`},
		{"trailing ", `<w:t xml:space="preserve">trailing </w:t>`},
		{"inner space", `<w:t>inner space</w:t>`},
		{"a & b < c", `<w:t>a &amp; b &lt; c</w:t>`},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			data, err := xml.Marshal(NewText(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestRunProperties_Order(t *testing.T) {
	props := RunProperties{
		Lang:          &Lang{Val: "en-US"},
		VerticalAlign: &Val{Val: "superscript"},
		Underline:     &Val{Val: "single"},
		Size:          &Size{Val: 24},
		Color:         &Val{Val: "FF0000"},
		Italic:        &Empty{},
		Bold:          &Empty{},
		Font:          &Font{ASCII: "Arial"},
	}
	data, err := xml.Marshal(props)
	require.NoError(t, err)

	assert.Equal(t, `<w:rPr>`+
		`<w:rFonts w:ascii="Arial"></w:rFonts>`+
		`<w:b></w:b><w:i></w:i>`+
		`<w:color w:val="FF0000"></w:color>`+
		`<w:sz w:val="24"></w:sz>`+
		`<w:u w:val="single"></w:u>`+
		`<w:vertAlign w:val="superscript"></w:vertAlign>`+
		`<w:lang w:val="en-US"></w:lang>`+
		`</w:rPr>`, string(data))
	assert.False(t, props.IsEmpty())
	assert.True(t, (&RunProperties{}).IsEmpty())
}

func TestRun_EmptyPropertiesOmitted(t *testing.T) {
	data, err := xml.Marshal(&Run{Properties: &RunProperties{}, Break: &Break{}})
	require.NoError(t, err)
	assert.Equal(t, `<w:r><w:br></w:br></w:r>`, string(data))

	data, err = xml.Marshal(&Run{Break: &Break{Type: "page"}})
	require.NoError(t, err)
	assert.Equal(t, `<w:r><w:br w:type="page"></w:br></w:r>`, string(data))
}

func TestParagraph_GetText(t *testing.T) {
	p := &Paragraph{Content: []ParagraphContent{
		&Run{Text: NewText("a ")},
		&Run{Break: &Break{}},
		&Run{Text: NewText("b")},
	}}
	assert.Equal(t, "a b", p.GetText())
	assert.Len(t, p.Runs(), 3)
}

func TestMarshalParts(t *testing.T) {
	rels := &Relationships{
		Namespace: NamespacePackageRelationships,
		Relationship: []Relationship{
			{ID: "rId1", Type: RelTypeOfficeDocument, Target: "word/document.xml"},
		},
	}
	data, err := Marshal(rels)
	require.NoError(t, err)
	assert.Equal(t, Header+`<Relationships xmlns="`+NamespacePackageRelationships+`">`+
		`<Relationship Id="rId1" Type="`+RelTypeOfficeDocument+`" Target="word/document.xml"></Relationship>`+
		`</Relationships>`, string(data))

	core := NewCoreProperties()
	core.Title = "T"
	core.Created = NewW3CDTF("2024-01-01T00:00:00Z")
	data, err = Marshal(core)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `<cp:coreProperties xmlns:cp="`+NamespaceCoreProperties+`"`)
	assert.Contains(t, out, `<dc:title>T</dc:title>`)
	assert.Contains(t, out, `<dcterms:created xsi:type="dcterms:W3CDTF">2024-01-01T00:00:00Z</dcterms:created>`)
	assert.NotContains(t, out, "dc:subject")

	data, err = Marshal(Styles{FontSize: 22, Lang: "en-US"})
	require.NoError(t, err)
	out = string(data)
	assert.Contains(t, out, `<w:docDefaults><w:rPrDefault><w:rPr><w:sz w:val="22"></w:sz><w:szCs w:val="22"></w:szCs><w:lang w:val="en-US"></w:lang></w:rPr></w:rPrDefault><w:pPrDefault></w:pPrDefault></w:docDefaults>`)
	assert.Contains(t, out, `<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"></w:name><w:qFormat></w:qFormat></w:style>`)
}
