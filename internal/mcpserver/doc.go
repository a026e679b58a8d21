// Package mcpserver exposes the markdown_to_docx tool over the Model Context
// Protocol.
//
// The server registers two tools: markdown_to_docx, which answers with the
// document as an embedded resource followed by the JSON summary, and
// list_style_profiles. Arguments are decoded with json.Number so size fields
// keep the number-or-string coercion of the tool package.
package mcpserver
