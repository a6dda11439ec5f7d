package docxgen

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/xml"
)

// Member names of the parts the package writer generates itself
const (
	PartContentTypes = "[Content_Types].xml"
	PartRootRels     = "_rels/.rels"
)

// dosEpoch is 1980-01-01 in MS-DOS date format, the earliest date a zip header can carry
const dosEpoch = 0x21

// Package is an assembled set of parts ready to be written as a zip archive
type Package struct {
	// Parts holds every member in archive order, including the generated manifest
	// and relationship parts
	Parts []Part
	level int
}

// PackageWriter assembles parts into an OPC package. Relationship IDs come from
// counters owned by the writer, so a writer assembles exactly one package.
type PackageWriter struct {
	level  int
	tables map[string]*relTable
	order  []string
	used   bool
}

// relTable is the relationship table of one source part
type relTable struct {
	next int
	rels []xml.Relationship
}

func (t *relTable) add(relType, target string) string {
	t.next++
	id := "rId" + strconv.Itoa(t.next)
	t.rels = append(t.rels, xml.Relationship{ID: id, Type: relType, Target: target})
	return id
}

// NewPackageWriter creates a writer that compresses members at the given Deflate level
func NewPackageWriter(level int) *PackageWriter {
	return &PackageWriter{
		level:  level,
		tables: make(map[string]*relTable),
	}
}

// Assemble validates the parts and builds the content-type manifest and relationship
// tables. The root table is always written; other tables exist only for sources with
// at least one target.
func (w *PackageWriter) Assemble(parts []Part) (*Package, error) {
	if w.used {
		return nil, newError(PackagingError, "package", "", nil, "package writer already used")
	}
	w.used = true

	if w.level < flate.HuffmanOnly || w.level > flate.BestCompression {
		return nil, newError(PackagingError, "package", "", nil, "invalid compression level %d", w.level)
	}

	// names holds the caller's parts; generated members are checked against it below
	names := make(map[string]bool, len(parts))
	hasMain := false
	for _, p := range parts {
		if p.Name == "" || strings.HasPrefix(p.Name, "/") || strings.HasSuffix(p.Name, "/") {
			return nil, newError(PackagingError, "package", p.Name, nil, "invalid part name")
		}
		if names[p.Name] || p.Name == PartContentTypes || p.Name == PartRootRels {
			return nil, newError(PackagingError, "package", p.Name, nil, "duplicate part name")
		}
		names[p.Name] = true
		if p.ContentType == "" {
			return nil, newError(PackagingError, "package", p.Name, nil, "part has no content type")
		}
		if p.ContentType == xml.ContentTypeDocumentMain {
			hasMain = true
		}
	}
	if !hasMain {
		return nil, newError(PackagingError, "package", "", nil, "package has no main document part")
	}

	w.table("")
	for _, p := range parts {
		if p.RelType == "" {
			continue
		}
		if p.Source != "" && !names[p.Source] {
			return nil, newError(PackagingError, "package", p.Name, nil, "relationship source %s is not in the package", p.Source)
		}
		w.table(p.Source).add(p.RelType, relTarget(p.Source, p.Name))
	}

	members := make([]Part, 0, len(parts)+len(w.order)+1)

	manifest, err := contentTypes(parts)
	if err != nil {
		return nil, err
	}
	members = append(members, Part{Name: PartContentTypes, ContentType: xml.ContentTypeXML, Content: manifest})

	for _, source := range w.order {
		name := relsPartName(source)
		if names[name] {
			return nil, newError(PackagingError, "package", name, nil, "duplicate part name")
		}
		data, err := xml.Marshal(&xml.Relationships{
			Namespace:    xml.NamespacePackageRelationships,
			Relationship: w.tables[source].rels,
		})
		if err != nil {
			return nil, newError(PackagingError, "package", name, err, "failed to marshal relationships")
		}
		members = append(members, Part{Name: name, ContentType: xml.ContentTypeRelationships, Content: data})
	}

	members = append(members, parts...)
	return &Package{Parts: members, level: w.level}, nil
}

// table returns the relationship table of source, creating it in first-use order
func (w *PackageWriter) table(source string) *relTable {
	t, ok := w.tables[source]
	if !ok {
		t = &relTable{}
		w.tables[source] = t
		w.order = append(w.order, source)
	}
	return t
}

// relsPartName returns the relationships part of a source part,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels"
func relsPartName(source string) string {
	if source == "" {
		return PartRootRels
	}
	dir, base := path.Split(source)
	return dir + "_rels/" + base + ".rels"
}

// relTarget expresses target relative to the folder of source
func relTarget(source, target string) string {
	dir := path.Dir(source)
	if source == "" || dir == "." {
		return target
	}
	if strings.HasPrefix(target, dir+"/") {
		return strings.TrimPrefix(target, dir+"/")
	}
	return "/" + target
}

func contentTypes(parts []Part) ([]byte, error) {
	types := &xml.ContentTypes{
		Namespace: xml.NamespaceContentTypes,
		Defaults: []xml.ContentTypeDefault{
			{Extension: "rels", ContentType: xml.ContentTypeRelationships},
			{Extension: "xml", ContentType: xml.ContentTypeXML},
		},
	}
	for _, p := range parts {
		types.Overrides = append(types.Overrides, xml.ContentTypeOverride{
			PartName:    "/" + p.Name,
			ContentType: p.ContentType,
		})
	}
	data, err := xml.Marshal(types)
	if err != nil {
		return nil, newError(PackagingError, "package", PartContentTypes, err, "failed to marshal content types")
	}
	return data, nil
}

// WriteTo writes the package as a zip archive. Members carry a fixed timestamp and
// no extra fields, so the same package always produces the same bytes.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	level := p.level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	for _, part := range p.Parts {
		header := &zip.FileHeader{
			Name:         part.Name,
			Method:       zip.Deflate,
			ModifiedDate: dosEpoch,
			ModifiedTime: 0,
		}
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return cw.n, newError(PackagingError, "package", part.Name, err, "failed to create archive member")
		}
		if _, err := fw.Write(part.Content); err != nil {
			return cw.n, newError(PackagingError, "package", part.Name, err, "failed to write archive member")
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, newError(PackagingError, "package", "", err, "failed to finish archive")
	}
	return cw.n, nil
}

// Bytes writes the package into memory
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Part returns the member with the given name
func (p *Package) Part(name string) (Part, bool) {
	for _, part := range p.Parts {
		if part.Name == name {
			return part, true
		}
	}
	return Part{}, false
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
