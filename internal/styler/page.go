package styler

import (
	"math"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/styles"
)

// defaultHeaderFooter is the header and footer distance, 1.5 cm.
const defaultHeaderFooter = 851

// MMToTwips converts millimetres to twips, rounding to the nearest twip.
// The error is at most 0.009 mm.
func MMToTwips(mm float64) int {
	return int(math.Round(mm / 25.4 * 1440))
}

// TwipsToMM converts twips back to millimetres.
func TwipsToMM(twips int) float64 {
	return float64(twips) * 25.4 / 1440
}

// applyPage writes the page box and margins to the last section of the
// document, appending one when the body has none. Landscape is expressed
// by the box order, which Effective already guarantees.
func applyPage(doc *docx.Docx, page styles.PageStyle) {
	eff := page.Effective()

	var sect *docx.SectPr
	items := doc.Document.Body.Items
	for i := len(items) - 1; i >= 0; i-- {
		if s, ok := items[i].(*docx.SectPr); ok {
			sect = s
			break
		}
	}
	if sect == nil {
		sect = &docx.SectPr{}
		doc.Document.Body.Items = append(doc.Document.Body.Items, sect)
	}

	sect.PgSz = &docx.PgSz{W: MMToTwips(eff.Width), H: MMToTwips(eff.Height)}

	header, footer := defaultHeaderFooter, defaultHeaderFooter
	if sect.PgMar != nil {
		if sect.PgMar.Header > 0 {
			header = sect.PgMar.Header
		}
		if sect.PgMar.Footer > 0 {
			footer = sect.PgMar.Footer
		}
	}
	sect.PgMar = &docx.PgMar{
		Top:    MMToTwips(eff.MarginTop),
		Bottom: MMToTwips(eff.MarginBottom),
		Left:   MMToTwips(eff.MarginLeft),
		Right:  MMToTwips(eff.MarginRight),
		Header: header,
		Footer: footer,
	}
}
