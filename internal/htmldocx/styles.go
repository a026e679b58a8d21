package htmldocx

import "strconv"

// Paragraph and character style ids emitted by the builder. They must exist
// in the reference styles.xml so Word shows the right style names.
const (
	StyleListParagraph = "ListParagraph"
	StyleQuote         = "Quote"
	StylePreformatted  = "Preformatted"

	CharStyleCode      = "CodeChar"
	CharStyleHyperlink = "Hyperlink"
)

// StyleHeading returns the paragraph style id for a heading level, 1..6.
func StyleHeading(level int) string {
	level = min(max(level, 1), 6)
	return "Heading" + strconv.Itoa(level)
}

// Layout constants, in twips unless stated otherwise.
const (
	listIndentPerLevel = 420 // 21pt
	quoteIndent        = 480
	defaultTableWidth  = 8640

	// A4 portrait with the default 25.4/31.8 mm margins.
	a4Width, a4Height  = 11906, 16838
	marginTopBottom    = 1440
	marginLeftRight    = 1803
	marginHeaderFooter = 851

	// Maximum drawing width in EMU (about 15.9 cm, the A4 printable width).
	maxDrawingWidthEMU = 5731510
)

// Colours used when the HTML does not supply one, without '#'.
const (
	hyperlinkColor = "0563C1"
	codeShadeFill  = "F2F2F2"
	preShadeFill   = "F6F8FA"
	headerFill     = "D9E2F3"
)
