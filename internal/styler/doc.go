// Package styler applies a style template to a base DOCX.
//
// Apply parses the document with go-docx, resolves every paragraph's style
// id to a template key through word/styles.xml, and writes run fonts, sizes,
// flags and colours plus paragraph alignment, spacing and indents. The
// section gets the template page box and margins.
//
// Without a registry the hardcoded fallback table from internal/styles is
// used, so paragraphs are never left entirely unstyled.
package styler
