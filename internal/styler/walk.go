package styler

import (
	"math"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/styles"
)

// defaultLineSpacing applies when a descriptor leaves line spacing at zero.
const defaultLineSpacing = 1.5

type walk struct {
	names   map[string]string
	resolve resolver
	report  *Report
	// carry is the previous paragraph's space after, in points. The
	// go-docx spacing model has no after attribute, so it is added to the
	// next paragraph's space before.
	carry float64
}

func (w *walk) body(items []any) {
	for _, item := range items {
		switch v := item.(type) {
		case *docx.Paragraph:
			key, font, para := w.resolve(w.styleName(v))
			w.fonts(v, key, font)
			w.carry = applyParagraph(v, para, w.carry)
			w.report.Paragraphs++
		case *docx.Table:
			w.table(v)
			w.carry = 0
		}
	}
}

// table styles the runs of every cell. Cell paragraphs keep their own
// alignment and spacing.
func (w *walk) table(t *docx.Table) {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			for _, p := range cell.Paragraphs {
				key, font, _ := w.resolve(w.styleName(p))
				w.fonts(p, key, font)
				w.report.Paragraphs++
			}
			for _, nested := range cell.Tables {
				w.table(nested)
			}
		}
	}
}

func (w *walk) styleName(p *docx.Paragraph) string {
	id := ""
	if p.Properties != nil && p.Properties.Style != nil {
		id = p.Properties.Style.Val
	}
	return nameFor(w.names, id)
}

func (w *walk) fonts(p *docx.Paragraph, key styles.Key, font styles.FontStyle) {
	for _, c := range p.Children {
		switch v := c.(type) {
		case *docx.Run:
			applyFont(v, key, font)
			w.report.Runs++
		case *docx.Hyperlink:
			applyFont(&v.Run, key, font)
			w.report.Runs++
		}
	}
}

// applyFont writes a font descriptor onto a run.
//
// Bold and italic are OR-ed with the run's own flags so inline emphasis
// survives. Runs with a character style (inline code, hyperlinks) keep
// their Latin family, and their colour outside headings; code block runs
// keep chroma colours.
func applyFont(r *docx.Run, key styles.Key, font styles.FontStyle) {
	if r.RunProperties == nil {
		r.RunProperties = &docx.RunProperties{}
	}
	rp := r.RunProperties
	charStyled := rp.RunStyle != nil

	if font.Family != "" {
		switch {
		case charStyled && rp.Fonts != nil:
			rp.Fonts.EastAsia = font.Family
		default:
			rp.Fonts = &docx.RunFonts{ASCII: font.Family, EastAsia: font.Family, HAnsi: font.Family}
		}
	}

	if font.Size > 0 {
		half := strconv.Itoa(int(math.Round(font.Size * 2)))
		rp.Size = &docx.Size{Val: half}
		rp.SizeCs = &docx.SizeCs{Val: half}
	}

	if font.Bold && rp.Bold == nil {
		rp.Bold = &docx.Bold{}
	}
	if font.Italic && rp.Italic == nil {
		rp.Italic = &docx.Italic{}
	}

	keepColor := (charStyled && key.HeadingLevel() == 0) || (key == styles.KeyCode && rp.Color != nil)
	if !keepColor && styles.ValidColor(font.Color) {
		rp.Color = &docx.Color{Val: strings.ToUpper(strings.TrimPrefix(font.Color, "#"))}
	}
}

// applyParagraph writes a paragraph descriptor and returns the space after
// to carry into the next paragraph.
func applyParagraph(p *docx.Paragraph, para styles.ParagraphStyle, carry float64) float64 {
	if p.Properties == nil {
		p.Properties = &docx.ParagraphProperties{}
	}
	pp := p.Properties

	pp.Justification = &docx.Justification{Val: justification(para.Alignment)}

	ls := para.LineSpacing
	if ls <= 0 {
		ls = defaultLineSpacing
	}
	spacing := &docx.Spacing{Line: int(math.Round(ls * 240)), LineRule: "auto"}
	if before := para.SpaceBefore + carry; before > 0 {
		spacing.Before = ptToTwips(before)
	}
	pp.Spacing = spacing

	if para.IndentFirstLine > 0 || para.IndentLeft > 0 {
		if pp.Ind == nil {
			pp.Ind = &docx.Ind{}
		}
		if para.IndentFirstLine > 0 {
			pp.Ind.FirstLine = ptToTwips(para.IndentFirstLine)
			pp.Ind.FirstLineChars = 0
			pp.Ind.Hanging = 0
		}
		if para.IndentLeft > 0 {
			pp.Ind.Left = ptToTwips(para.IndentLeft)
			pp.Ind.LeftChars = 0
		}
	}

	return max(para.SpaceAfter, 0)
}

func justification(align string) string {
	switch align {
	case styles.AlignCenter:
		return "center"
	case styles.AlignRight:
		return "right"
	case styles.AlignJustify:
		return "both"
	default:
		return "left"
	}
}

func ptToTwips(pt float64) int {
	return int(math.Round(pt * 20))
}
