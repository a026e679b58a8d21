package htmldocx

import (
	"context"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// target creates paragraphs either in the document body or in a table cell.
type target struct {
	addParagraph func() *docx.Paragraph
	inCell       bool
}

func bodyTarget(doc *docx.Docx) target {
	return target{addParagraph: doc.AddParagraph}
}

func cellTarget(cell *docx.WTableCell) target {
	return target{addParagraph: cell.AddParagraph, inCell: true}
}

// blockState is inherited by nested blocks.
type blockState struct {
	quoteDepth int
	listDepth  int
}

type walker struct {
	ctx      context.Context
	doc      *docx.Docx
	logger   *zap.Logger
	imageDir string
	maxImage int64
}

var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Ul: true, atom.Ol: true, atom.Pre: true, atom.Table: true, atom.Hr: true,
	atom.Div: true, atom.Section: true, atom.Article: true, atom.Main: true, atom.Header: true,
	atom.Footer: true, atom.Nav: true, atom.Aside: true, atom.Figure: true, atom.Dl: true, atom.Dt: true,
	atom.Dd: true, atom.Details: true, atom.Summary: true, atom.Li: true,
}

func isBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

// walkBlocks emits the children of n. Runs of inline children are grouped
// into one paragraph.
func (w *walker) walkBlocks(n *html.Node, t target, st blockState) error {
	var pending []*html.Node
	flush := func() {
		if hasContent(pending) {
			w.inlines(w.newParagraph(t, st), pending, format{}, t)
		}
		pending = nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if isBlock(c) {
			flush()
			if err := w.block(c, t, st); err != nil {
				return err
			}
			continue
		}
		if c.Type == html.CommentNode {
			continue
		}
		pending = append(pending, c)
	}
	flush()
	return nil
}

func (w *walker) block(n *html.Node, t target, st blockState) error {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		p := t.addParagraph()
		p.Style(StyleHeading(int(n.Data[1] - '0')))
		w.inlines(p, children(n), format{}, t)

	case atom.P:
		p := w.newParagraph(t, st)
		if onlyImage(n) {
			p.Justification("center")
		}
		w.inlines(p, children(n), format{}, t)

	case atom.Blockquote:
		st.quoteDepth++
		return w.walkBlocks(n, t, st)

	case atom.Ul, atom.Ol:
		return w.list(n, t, st)

	case atom.Pre:
		w.pre(n, t)

	case atom.Table:
		w.table(n, t, st)

	case atom.Hr:
		t.addParagraph()

	case atom.Dt:
		w.inlines(w.newParagraph(t, st), children(n), format{bold: true}, t)

	case atom.Dd:
		p := w.newParagraph(t, st)
		props(p).Ind = &docx.Ind{Left: listIndentPerLevel}
		w.inlines(p, children(n), format{}, t)

	default:
		return w.walkBlocks(n, t, st)
	}
	return nil
}

// newParagraph adds a body-text paragraph, styled as a quote inside
// blockquotes.
func (w *walker) newParagraph(t target, st blockState) *docx.Paragraph {
	p := t.addParagraph()
	if st.quoteDepth > 0 {
		p.Style(StyleQuote)
		if st.quoteDepth > 1 {
			props(p).Ind = &docx.Ind{Left: quoteIndent * st.quoteDepth}
		}
	}
	return p
}

func (w *walker) list(n *html.Node, t target, st blockState) error {
	ordered := n.DataAtom == atom.Ol
	index := 1
	if start, err := strconv.Atoi(attr(n, "start")); err == nil {
		index = start
	}
	st.listDepth++

	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.DataAtom != atom.Li {
			continue
		}
		marker := "•"
		if ordered {
			marker = strconv.Itoa(index) + "."
			index++
		}
		if box, ok := taskMarker(li); ok {
			marker = box
		}
		if err := w.listItem(li, t, st, marker); err != nil {
			return err
		}
	}
	return nil
}

// listItem writes the marker and the first block of li into one paragraph.
// Later blocks become unmarked paragraphs at the same indent.
func (w *walker) listItem(li *html.Node, t target, st blockState, marker string) error {
	p := w.listParagraph(t, st)
	p.Children = append(p.Children, textRun(marker+" ", format{}))
	used := false

	var pending []*html.Node
	flush := func() {
		if hasContent(pending) {
			if used {
				p = w.listParagraph(t, st)
			}
			w.inlines(p, pending, format{}, t)
			used = true
		}
		pending = nil
	}

	for c := li.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.P:
			flush()
			if used {
				p = w.listParagraph(t, st)
			}
			w.inlines(p, children(c), format{}, t)
			used = true
		case isBlock(c):
			flush()
			if err := w.block(c, t, st); err != nil {
				return err
			}
			used = true
		default:
			pending = append(pending, c)
		}
	}
	flush()
	return nil
}

func (w *walker) listParagraph(t target, st blockState) *docx.Paragraph {
	p := t.addParagraph()
	p.Style(StyleListParagraph)
	props(p).Ind = &docx.Ind{Left: listIndentPerLevel * st.listDepth}
	return p
}

func (w *walker) pre(n *html.Node, t target) {
	p := t.addParagraph()
	p.Style(StylePreformatted)

	fill := preShadeFill
	if bg := styleColor(attr(n, "style"), "background-color"); bg != "" {
		fill = bg
	}
	props(p).Shade = &docx.Shade{Val: "clear", Color: "auto", Fill: fill}

	segs := collect(n, format{}, true)
	w.emit(p, trimPre(segs), t)
}

// inlines renders inline nodes into p.
func (w *walker) inlines(p *docx.Paragraph, nodes []*html.Node, f format, t target) {
	var segs []segment
	for _, n := range nodes {
		segs = append(segs, collect(n, f, false)...)
	}
	w.emit(p, collapse(segs), t)
}

func (w *walker) emit(p *docx.Paragraph, segs []segment, t target) {
	for _, s := range segs {
		switch {
		case s.image != nil:
			w.image(p, s, t)
		case s.brk:
			p.Children = append(p.Children, &docx.Run{Children: []any{&docx.BarterRabbet{}}})
		case s.f.link != "" && !t.inCell:
			w.hyperlink(p, s)
		default:
			p.Children = append(p.Children, textRun(s.text, s.f))
		}
	}
}

func (w *walker) hyperlink(p *docx.Paragraph, s segment) {
	h := p.AddLink(s.text, s.f.link)
	h.Run.InstrText = ""
	h.Run.Children = textChildren(s.text)
	rp := &docx.RunProperties{
		RunStyle:  &docx.RunStyle{Val: CharStyleHyperlink},
		Color:     &docx.Color{Val: hyperlinkColor},
		Underline: &docx.Underline{Val: "single"},
	}
	if s.f.bold {
		rp.Bold = &docx.Bold{}
	}
	if s.f.italic {
		rp.Italic = &docx.Italic{}
	}
	h.Run.RunProperties = rp
}

// props returns p's paragraph properties, creating them when missing.
func props(p *docx.Paragraph) *docx.ParagraphProperties {
	if p.Properties == nil {
		p.Properties = &docx.ParagraphProperties{}
	}
	return p.Properties
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasContent reports whether any node carries text or a picture.
func hasContent(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) != "":
			return true
		case n.Type == html.ElementNode && (n.DataAtom == atom.Img || n.DataAtom == atom.Br):
			return true
		case n.Type == html.ElementNode && hasContent(children(n)):
			return true
		}
	}
	return false
}

// onlyImage reports whether p holds a single picture and nothing else.
func onlyImage(p *html.Node) bool {
	images := 0
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Img:
			images++
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		default:
			return false
		}
	}
	return images == 1
}

// taskMarker returns the checkbox glyph for a GFM task list item.
func taskMarker(li *html.Node) (string, bool) {
	n := firstElement(li)
	if n != nil && n.DataAtom == atom.P {
		n = firstElement(n)
	}
	if n == nil || n.DataAtom != atom.Input || attr(n, "type") != "checkbox" {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == "checked" {
			return "☑", true
		}
	}
	return "☐", true
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return nil
		}
	}
	return nil
}
