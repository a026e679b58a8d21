package md2docx

import "strings"

// DefaultFilename is used when no filename is given.
const DefaultFilename = "document.docx"

const docxExt = ".docx"

// NormalizeFilename trims name and appends ".docx" unless it already ends
// with it in any case. Blank names become DefaultFilename. The result is
// stable: NormalizeFilename(NormalizeFilename(x)) == NormalizeFilename(x).
func NormalizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), docxExt) {
		name += docxExt
	}
	return name
}
