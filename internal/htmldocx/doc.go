// Package htmldocx builds a base Word document from goldmark HTML.
//
// The builder walks the golang.org/x/net/html tree and emits go-docx
// paragraphs, runs, hyperlinks, tables and inline pictures. Paragraphs carry
// the style ids found in the reference styles.xml:
//
//	h1..h6        Heading1..Heading6
//	p             (none, renders with Normal)
//	li            ListParagraph
//	blockquote p  Quote
//	pre           Preformatted
//
// Character formatting (bold, italic, strike, highlight, inline code,
// colours from chroma spans) is written directly on runs. Typography such as
// fonts, sizes and spacing is left to internal/styler.
package htmldocx
