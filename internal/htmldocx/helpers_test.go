package htmldocx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
)

func buildHTML(t *testing.T, body string, meta Metadata, opts ...Option) []byte {
	t.Helper()

	out, err := NewBuilder(opts...).Build(context.Background(), "<!DOCTYPE html><html><body>"+body+"</body></html>", meta)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return out
}

func parseDocx(t *testing.T, data []byte) *docx.Docx {
	t.Helper()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("docx.Parse() error = %v", err)
	}
	return doc
}

// zipPart returns the content of one part of a DOCX package.
func zipPart(t *testing.T, data []byte, name string) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	return ""
}

func hasZipPrefix(t *testing.T, data []byte, prefix string) bool {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}

func paragraphs(doc *docx.Docx) []*docx.Paragraph {
	var out []*docx.Paragraph
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

func styleOf(p *docx.Paragraph) string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

func runsOf(p *docx.Paragraph) []*docx.Run {
	var out []*docx.Run
	for _, c := range p.Children {
		if r, ok := c.(*docx.Run); ok {
			out = append(out, r)
		}
	}
	return out
}

func textOf(p *docx.Paragraph) string {
	var b strings.Builder
	for _, c := range p.Children {
		switch v := c.(type) {
		case *docx.Run:
			writeRunText(&b, v.Children)
		case *docx.Hyperlink:
			writeRunText(&b, v.Run.Children)
		}
	}
	return b.String()
}

func writeRunText(b *strings.Builder, children []any) {
	for _, c := range children {
		switch v := c.(type) {
		case *docx.Text:
			b.WriteString(v.Text)
		case *docx.Tab:
			b.WriteByte('\t')
		case *docx.BarterRabbet:
			b.WriteByte('\n')
		}
	}
}
