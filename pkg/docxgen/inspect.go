package docxgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// PartInfo describes one archive member of a package
type PartInfo struct {
	Name             string
	ContentType      string
	Method           uint16
	CompressedSize   uint64
	UncompressedSize uint64
}

// PackageReader lists the members of an existing package for diagnostics. It reads
// the zip directory and the content-type manifest only; part content is never parsed.
type PackageReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

type contentTypesManifest struct {
	Defaults []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// NewPackageReader opens a package held by r
func NewPackageReader(r io.ReaderAt, size int64) (*PackageReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pr := &PackageReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		pr.Parts[file.Name] = file
	}

	if _, ok := pr.Parts[PartContentTypes]; !ok {
		return nil, fmt.Errorf("not a valid package: missing %s", PartContentTypes)
	}
	if _, ok := pr.Parts[PartDocument]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", PartDocument)
	}
	return pr, nil
}

// PackageReaderFromFile opens the package stored at path
func PackageReaderFromFile(path string) (*PackageReader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return NewPackageReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the raw bytes of a member
func (pr *PackageReader) GetPart(name string) ([]byte, error) {
	file, ok := pr.Parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", name, err)
	}
	return content, nil
}

// List returns the members in archive order with their declared content types
func (pr *PackageReader) List() ([]PartInfo, error) {
	data, err := pr.GetPart(PartContentTypes)
	if err != nil {
		return nil, err
	}
	var manifest contentTypesManifest
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PartContentTypes, err)
	}

	defaults := make(map[string]string, len(manifest.Defaults))
	for _, d := range manifest.Defaults {
		defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	overrides := make(map[string]string, len(manifest.Overrides))
	for _, o := range manifest.Overrides {
		overrides[strings.TrimPrefix(o.PartName, "/")] = o.ContentType
	}

	infos := make([]PartInfo, 0, len(pr.reader.File))
	for _, file := range pr.reader.File {
		ct, ok := overrides[file.Name]
		if !ok {
			ct = defaults[strings.ToLower(strings.TrimPrefix(path.Ext(file.Name), "."))]
		}
		infos = append(infos, PartInfo{
			Name:             file.Name,
			ContentType:      ct,
			Method:           file.Method,
			CompressedSize:   file.CompressedSize64,
			UncompressedSize: file.UncompressedSize64,
		})
	}
	return infos, nil
}

// Inspect lists the members of the package stored at path
func Inspect(path string) ([]PartInfo, error) {
	pr, err := PackageReaderFromFile(path)
	if err != nil {
		return nil, err
	}
	return pr.List()
}
