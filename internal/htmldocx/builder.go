package htmldocx

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fumiama/go-docx"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultMaxImageSize caps the size of a local picture that gets embedded.
const DefaultMaxImageSize = 10 << 20

// Metadata describes one document being built.
type Metadata struct {
	// Title goes into docProps/core.xml.
	Title string
	// ImageDir is the directory local pictures may be embedded from.
	// Empty disables local pictures; they render as their alt text.
	ImageDir string
}

// Builder converts HTML to a base DOCX. It holds no per-call state and is
// safe for concurrent use.
type Builder struct {
	referenceStyles []byte
	maxImageSize    int64
	logger          *zap.Logger
	now             func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithReferenceStyles replaces go-docx's default word/styles.xml.
func WithReferenceStyles(stylesXML []byte) Option {
	return func(b *Builder) {
		b.referenceStyles = stylesXML
	}
}

// WithLogger sets the logger used for skipped content.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMaxImageSize sets the largest local picture that is embedded.
func WithMaxImageSize(n int64) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxImageSize = n
		}
	}
}

// WithClock sets the time source for the document creation stamp.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		maxImageSize: DefaultMaxImageSize,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build converts htmlContent into DOCX bytes.
func (b *Builder) Build(ctx context.Context, htmlContent string, meta Metadata) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}

	parts := map[string][]byte{
		corePropertiesPart: coreProperties(meta.Title, b.now()),
	}
	if len(b.referenceStyles) > 0 {
		parts[stylesPart] = b.referenceStyles
	}
	tmpl, err := newTemplateFS(parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackDocument, err)
	}

	doc := docx.New().UseTemplate("", docx.DefaultTemplateFilesList, tmpl)

	w := &walker{
		ctx:      ctx,
		doc:      doc,
		logger:   b.logger,
		imageDir: meta.ImageDir,
		maxImage: b.maxImageSize,
	}
	if err := w.walkBlocks(findBody(root), bodyTarget(doc), blockState{}); err != nil {
		return nil, err
	}
	if len(doc.Document.Body.Items) == 0 {
		doc.AddParagraph()
	}
	addSection(doc)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackDocument, err)
	}
	return buf.Bytes(), nil
}

// addSection appends an A4 section with default margins.
func addSection(doc *docx.Docx) {
	doc.WithA4Page()
	for i := len(doc.Document.Body.Items) - 1; i >= 0; i-- {
		sect, ok := doc.Document.Body.Items[i].(*docx.SectPr)
		if !ok {
			continue
		}
		if sect.PgSz == nil {
			sect.PgSz = &docx.PgSz{W: a4Width, H: a4Height}
		}
		if sect.PgMar == nil {
			sect.PgMar = &docx.PgMar{
				Top:    marginTopBottom,
				Bottom: marginTopBottom,
				Left:   marginLeftRight,
				Right:  marginLeftRight,
				Header: marginHeaderFooter,
				Footer: marginHeaderFooter,
			}
		}
		return
	}
}

// findBody returns the <body> element, or n itself when there is none.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	if n.Type == html.DocumentNode {
		return n
	}
	return nil
}
