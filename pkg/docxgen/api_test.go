package docxgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() ElementDescriptor {
	return Document(
		Paragraph(
			Text("Welcome to "),
			Bold(Text("docxgen")),
			Text(" & friends"),
		).WithProps(Props{PropAlign: "center"}),
		Text("Second line\nThird line"),
		Paragraph(Italic(Text(" padded ")), Break(), Underline(Text("under"))),
	)
}

func docxTexts(t *testing.T, data []byte) []string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var texts []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		texts = append(texts, sb.String())
	}
	return texts
}

func TestRender_WritesFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, Render(context.Background(), sampleTree(), dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	parts, err := Inspect(dest)
	require.NoError(t, err)
	assert.Len(t, parts, 7)
}

func TestRender_RoundTripWithGoDocx(t *testing.T) {
	data, err := RenderBytes(sampleTree())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Welcome to docxgen & friends",
		"Second line",
		"Third line",
		" padded under",
	}, docxTexts(t, data))
}

func TestRender_Deterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.docx")
	second := filepath.Join(dir, "second.docx")

	require.NoError(t, Render(context.Background(), sampleTree(), first))
	require.NoError(t, Render(context.Background(), sampleTree(), second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_EmptyDocument(t *testing.T) {
	data, err := RenderBytes(Document())
	require.NoError(t, err)
	assert.Equal(t, []string{""}, docxTexts(t, data))
}

func TestRender_FailureLeavesDestinationUntouched(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.docx")
	require.NoError(t, os.WriteFile(dest, []byte("previous"), 0o644))

	err := Render(context.Background(), Document(Element("Table", nil)), dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedElementKind))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRender_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "report.docx")
	require.NoError(t, os.WriteFile(dest, []byte("previous"), 0o600))

	require.NoError(t, Render(context.Background(), sampleTree(), dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestRender_Cancelled(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.docx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Render(ctx, sampleTree(), dest)
	require.Error(t, err)
	assert.True(t, IsKind(err, IOError))
	assert.True(t, errors.Is(err, context.Canceled))

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))

	var buf bytes.Buffer
	err = RenderTo(ctx, sampleTree(), &buf)
	assert.True(t, errors.Is(err, ErrIO))
	assert.Zero(t, buf.Len())
}

func TestRender_UnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "out.docx")

	err := Render(context.Background(), sampleTree(), dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTo(context.Background(), sampleTree(), &buf))

	data, err := RenderBytes(sampleTree())
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())

	err = RenderTo(context.Background(), sampleTree(), failingWriter{})
	assert.True(t, IsKind(err, IOError))
	assert.Contains(t, err.Error(), "disk full")
}

func TestRender_Concurrent(t *testing.T) {
	dir := t.TempDir()
	engine := New()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tree := Document(Text(fmt.Sprintf("worker %d\nsecond paragraph", i)))
			errs[i] = engine.Render(context.Background(), tree, filepath.Join(dir, fmt.Sprintf("out-%d.docx", i)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("out-%d.docx", i)))
		require.NoError(t, err)
		assert.Equal(t, []string{fmt.Sprintf("worker %d", i), "second paragraph"}, docxTexts(t, data))
	}
}

func TestNewWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.Language = "fr-fr"
	config.FileMode = 0o600

	engine, err := NewWithConfig(config)
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", engine.Config().Language)

	// The engine keeps its own copy
	config.Title = "changed"
	assert.Empty(t, engine.Config().Title)

	dest := filepath.Join(t.TempDir(), "private.docx")
	require.NoError(t, engine.Render(context.Background(), Document(Text("x")), dest))
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	bad := DefaultConfig()
	bad.Language = "not a language tag"
	_, err = NewWithConfig(bad)
	assert.Error(t, err)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	engine := New(WithLogger(logger))

	dest := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, engine.Render(context.Background(), Document(Text("a\nb")), dest))

	out := buf.String()
	assert.Contains(t, out, `"message":"reconciled"`)
	assert.Contains(t, out, `"paragraphs":2`)
	assert.Contains(t, out, `"message":"serialized"`)
	assert.Contains(t, out, `"message":"packaged"`)
	assert.Contains(t, out, `"message":"published"`)
	assert.Contains(t, out, `"dest":"`+dest+`"`)
}

func TestEngine_Package(t *testing.T) {
	pkg, err := New().Package(Document(Text("x")))
	require.NoError(t, err)

	part, ok := pkg.Part(PartDocument)
	require.True(t, ok)
	assert.Contains(t, string(part.Content), "<w:t>x</w:t>")
}
