package docxgen

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dxml "github.com/benjaminschreck/go-docxgen/pkg/docxgen/xml"
)

func TestPackageReader_List(t *testing.T) {
	data, err := RenderBytes(Document(Text("inspect me")))
	require.NoError(t, err)

	pr, err := NewPackageReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	infos, err := pr.List()
	require.NoError(t, err)
	require.Len(t, infos, 7)

	want := map[string]string{
		PartContentTypes:               dxml.ContentTypeXML,
		PartRootRels:                   dxml.ContentTypeRelationships,
		"word/_rels/document.xml.rels": dxml.ContentTypeRelationships,
		PartDocument:                   dxml.ContentTypeDocumentMain,
		PartStyles:                     dxml.ContentTypeStyles,
		PartCore:                       dxml.ContentTypeCoreProperties,
		PartApp:                        dxml.ContentTypeExtendedProperties,
	}
	for _, info := range infos {
		assert.Equal(t, want[info.Name], info.ContentType, info.Name)
		assert.Equal(t, zip.Deflate, info.Method)
		assert.NotZero(t, info.UncompressedSize)
	}
	assert.Equal(t, PartContentTypes, infos[0].Name)

	content, err := pr.GetPart(PartDocument)
	require.NoError(t, err)
	assert.Contains(t, string(content), "inspect me")

	_, err = pr.GetPart("word/missing.xml")
	assert.Error(t, err)
}

func TestNewPackageReader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		setup func() []byte
	}{
		{
			name:  "not a zip",
			setup: func() []byte { return []byte("not a zip file") },
		},
		{
			name: "empty zip",
			setup: func() []byte {
				buf := new(bytes.Buffer)
				w := zip.NewWriter(buf)
				w.Close()
				return buf.Bytes()
			},
		},
		{
			name: "no main document",
			setup: func() []byte {
				buf := new(bytes.Buffer)
				w := zip.NewWriter(buf)
				f, _ := w.Create(PartContentTypes)
				f.Write([]byte(`<Types/>`))
				w.Close()
				return buf.Bytes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.setup()
			_, err := NewPackageReader(bytes.NewReader(data), int64(len(data)))
			assert.Error(t, err)
		})
	}
}
