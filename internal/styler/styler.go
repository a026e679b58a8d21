package styler

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/styles"
)

// Request selects what Apply does to a document.
type Request struct {
	// Registry holds the loaded templates. Nil means the registry is
	// unavailable and the fallback table is used.
	Registry *styles.Registry
	// Profile names a template by display name, slug or alias.
	Profile string
	// Overrides patch the template for this call only.
	Overrides styles.Overrides
	// Page patches the page descriptor after the template page.
	Page *styles.PageOverride
}

// Report describes what Apply did.
type Report struct {
	// TemplateFound is true when Profile matched a registry template.
	TemplateFound bool
	// Fallback is true when the hardcoded table was used.
	Fallback bool
	// Paragraphs counts styled paragraphs, table cells included.
	Paragraphs int
	// Runs counts styled runs, hyperlinks included.
	Runs int
}

// resolver returns the descriptors for a Word style name.
type resolver func(styleName string) (styles.Key, styles.FontStyle, styles.ParagraphStyle)

// Apply styles a DOCX and returns the new bytes. Panics inside go-docx or
// the walk are returned as ErrPanic so callers can fall back to the input.
func Apply(data []byte, req Request) (out []byte, rep Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, rep, fmt.Errorf("%w: %v", ErrParseDocument, err)
	}
	names, err := styleNames(data)
	if err != nil {
		return nil, rep, fmt.Errorf("%w: reading %s: %v", ErrParseDocument, stylesPart, err)
	}

	m, found := newManager(req)
	rep.TemplateFound = found
	page, write, err := resolvePage(req, m)
	if err != nil {
		return nil, rep, err
	}
	if write {
		applyPage(doc, page)
	}

	var resolve resolver
	if m == nil {
		rep.Fallback = true
		resolve = fallbackResolver(req.Overrides)
	} else {
		resolve = managerResolver(m)
	}

	w := &walk{names: names, resolve: resolve, report: &rep}
	w.body(doc.Document.Body.Items)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, rep, fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	return buf.Bytes(), rep, nil
}

func managerResolver(m *styles.Manager) resolver {
	return func(name string) (styles.Key, styles.FontStyle, styles.ParagraphStyle) {
		key := styles.KeyForStyleName(name)
		return key, m.Font(key), m.Paragraph(key)
	}
}

func fallbackResolver(o styles.Overrides) resolver {
	return func(name string) (styles.Key, styles.FontStyle, styles.ParagraphStyle) {
		font, para := styles.Fallback(styles.NormalizeStyleName(name), o)
		return styles.KeyForStyleName(name), font, para
	}
}

// ResolvePage returns the page box Apply writes for req: the template page
// patched by req.Page, or A4 patched by req.Page when the registry is
// unavailable. write is false when the document section is left alone.
// Margins that leave no printable area return ErrInvalidPage.
func ResolvePage(req Request) (page styles.PageStyle, write bool, err error) {
	m, _ := newManager(req)
	return resolvePage(req, m)
}

// newManager builds the style tree for req, or returns nil when the
// registry is unavailable. found reports whether the profile matched.
func newManager(req Request) (m *styles.Manager, found bool) {
	if req.Registry == nil {
		return nil, false
	}
	m = styles.NewManager()
	if tmpl, ok := req.Registry.Lookup(req.Profile); ok {
		m.ApplyTemplate(tmpl)
		found = true
	}
	m.ApplyOverrides(req.Overrides)
	m.ApplyPageOverride(req.Page)
	return m, found
}

func resolvePage(req Request, m *styles.Manager) (styles.PageStyle, bool, error) {
	var page styles.PageStyle
	switch {
	case m != nil:
		page = m.Page()
	case req.Page.IsEmpty():
		return page, false, nil
	default:
		fallback := styles.NewManager()
		fallback.ApplyPageOverride(req.Page)
		page = fallback.Page()
	}
	if err := page.Validate(); err != nil {
		return page, true, err
	}
	return page, true, nil
}
