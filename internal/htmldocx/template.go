package htmldocx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
)

const (
	corePropertiesPart = "docProps/core.xml"
	stylesPart         = "word/styles.xml"
)

const corePropertiesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><dc:title>%s</dc:title><dc:creator>md2docx</dc:creator><cp:lastModifiedBy>md2docx</cp:lastModifiedBy><dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created><dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified></cp:coreProperties>`

// coreProperties renders docProps/core.xml for the given title and time.
func coreProperties(title string, created time.Time) []byte {
	var escaped strings.Builder
	_ = xml.EscapeText(&escaped, []byte(title))
	stamp := created.UTC().Format(time.RFC3339)
	return fmt.Appendf(nil, corePropertiesXML, escaped.String(), stamp, stamp)
}

// templateFS serves the go-docx default theme with some parts replaced.
type templateFS struct {
	base  fs.FS
	parts map[string][]byte
}

func newTemplateFS(parts map[string][]byte) (*templateFS, error) {
	base, err := fs.Sub(docx.TemplateXMLFS, "xml/default")
	if err != nil {
		return nil, err
	}
	return &templateFS{base: base, parts: parts}, nil
}

func (t *templateFS) Open(name string) (fs.File, error) {
	if data, ok := t.parts[name]; ok {
		return &memFile{name: name, Reader: bytes.NewReader(data), size: int64(len(data))}, nil
	}
	return t.base.Open(name)
}

type memFile struct {
	*bytes.Reader
	name string
	size int64
}

func (f *memFile) Stat() (fs.FileInfo, error) { return memInfo{f}, nil }
func (f *memFile) Close() error               { return nil }

type memInfo struct{ f *memFile }

func (i memInfo) Name() string       { return i.f.name[strings.LastIndexByte(i.f.name, '/')+1:] }
func (i memInfo) Size() int64        { return i.f.size }
func (i memInfo) Mode() fs.FileMode  { return 0o444 }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }
