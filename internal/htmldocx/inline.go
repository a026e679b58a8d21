package htmldocx

import (
	"strings"

	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// format is the character formatting accumulated down the inline tree.
type format struct {
	bold      bool
	italic    bool
	strike    bool
	underline bool
	code      bool
	mark      bool
	vertAlign string // superscript or subscript
	color     string // RRGGBB
	link      string
}

// segment is a piece of paragraph content with uniform formatting.
type segment struct {
	text  string
	f     format
	brk   bool
	image *html.Node
}

// collect flattens an inline subtree into segments. Inside <pre>, <code>
// does not mark runs as inline code since the paragraph style covers it.
func collect(n *html.Node, f format, pre bool) []segment {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []segment{{text: n.Data, f: f}}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Input, atom.Head:
		return nil
	case atom.Br:
		return []segment{{brk: true, f: f}}
	case atom.Img:
		return []segment{{image: n, f: f}}
	case atom.Strong, atom.B:
		f.bold = true
	case atom.Em, atom.I, atom.Cite, atom.Dfn:
		f.italic = true
	case atom.Del, atom.S, atom.Strike:
		f.strike = true
	case atom.U, atom.Ins:
		f.underline = true
	case atom.Mark:
		f.mark = true
	case atom.Sup:
		f.vertAlign = "superscript"
	case atom.Sub:
		f.vertAlign = "subscript"
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		f.code = !pre
	case atom.A:
		if strings.Contains(attr(n, "class"), "footnote-backref") {
			return nil
		}
		if href := attr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			f.link = href
		}
	case atom.Span:
	}
	applyInlineStyle(&f, attr(n, "style"))

	var segs []segment
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		segs = append(segs, collect(c, f, pre)...)
	}
	return segs
}

// applyInlineStyle reads the declarations chroma emits on spans.
func applyInlineStyle(f *format, style string) {
	if style == "" {
		return
	}
	if c := styleColor(style, "color"); c != "" {
		f.color = c
	}
	for decl := range strings.SplitSeq(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name, value = strings.TrimSpace(name), strings.TrimSpace(value)
		switch {
		case name == "font-weight" && (value == "bold" || value == "700"):
			f.bold = true
		case name == "font-style" && value == "italic":
			f.italic = true
		case name == "text-decoration" && value == "underline":
			f.underline = true
		}
	}
}

// styleColor extracts a #RGB or #RRGGBB property from a style attribute and
// returns it as upper-case RRGGBB.
func styleColor(style, property string) string {
	for decl := range strings.SplitSeq(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(name) != property {
			continue
		}
		return hexColor(strings.TrimSpace(value))
	}
	return ""
}

func hexColor(v string) string {
	v, ok := strings.CutPrefix(v, "#")
	if !ok {
		return ""
	}
	for _, r := range v {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return ""
		}
	}
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return ""
	}
	return strings.ToUpper(v)
}

func isCollapsible(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// collapse applies HTML white-space rules: runs of whitespace become one
// space, and the paragraph is trimmed at both ends.
func collapse(segs []segment) []segment {
	out := make([]segment, 0, len(segs))
	prevSpace := true
	for _, s := range segs {
		if s.image != nil || s.brk {
			out = append(out, s)
			prevSpace = s.brk
			continue
		}
		var b strings.Builder
		for _, r := range s.text {
			if isCollapsible(r) {
				if !prevSpace {
					b.WriteByte(' ')
					prevSpace = true
				}
				continue
			}
			b.WriteRune(r)
			prevSpace = false
		}
		if b.Len() == 0 {
			continue
		}
		s.text = b.String()
		out = append(out, s)
	}
	return trimTrailing(out, " ")
}

// trimPre drops the newline goldmark leaves after the last code line.
func trimPre(segs []segment) []segment {
	return trimTrailing(segs, "\n")
}

func trimTrailing(segs []segment, cutset string) []segment {
	for len(segs) > 0 {
		last := &segs[len(segs)-1]
		if last.image != nil || last.brk {
			break
		}
		last.text = strings.TrimRight(last.text, cutset)
		if last.text != "" {
			break
		}
		segs = segs[:len(segs)-1]
	}
	return segs
}

// textRun builds a run carrying text and direct formatting.
func textRun(text string, f format) *docx.Run {
	r := &docx.Run{RunProperties: &docx.RunProperties{}, Children: textChildren(text)}
	if f.bold {
		r.RunProperties.Bold = &docx.Bold{}
	}
	if f.italic {
		r.RunProperties.Italic = &docx.Italic{}
	}
	if f.strike {
		r.Strike(true)
	}
	if f.underline || f.link != "" {
		r.Underline("single")
	}
	if f.mark {
		r.Highlight("yellow")
	}
	if f.vertAlign != "" {
		r.RunProperties.VertAlign = &docx.VertAlign{Val: f.vertAlign}
	}
	if f.code {
		r.RunProperties.RunStyle = &docx.RunStyle{Val: CharStyleCode}
		r.Font("Consolas", "Consolas", "Consolas", "")
		r.Shade("clear", "auto", codeShadeFill)
	}
	switch {
	case f.color != "":
		r.Color(f.color)
	case f.link != "":
		r.Color(hyperlinkColor)
	}
	return r
}

// textChildren splits text into w:t, w:tab and w:br elements. Every w:t
// preserves spaces, which matters for indented code.
func textChildren(text string) []any {
	var out []any
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, &docx.BarterRabbet{})
		}
		for j, part := range strings.Split(line, "\t") {
			if j > 0 {
				out = append(out, &docx.Tab{})
			}
			if part != "" {
				out = append(out, &docx.Text{XMLSpace: "preserve", Text: part})
			}
		}
	}
	return out
}
