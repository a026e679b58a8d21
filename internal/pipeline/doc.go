// Package pipeline implements the Markdown-to-HTML half of the conversion.
//
// This package handles the stages that run before a Word document exists:
//   - Markdown preprocessing (line normalization, ==highlight== syntax)
//   - Markdown to HTML conversion via Goldmark, with inline chroma colours
//   - Relative image and link rewriting against the source directory
//
// The HTML is turned into a document by internal/htmldocx and styled by
// internal/styler. Keeping the split means the HTML can be inspected on its
// own (ConvertResult.HTML) when a document does not look right.
package pipeline
