package styles

import "strings"

// NormalizeStyleName lowercases a Word style name and removes spaces, so
// "Heading 1", "heading 1" and "Heading1" compare equal.
func NormalizeStyleName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}

// KeyForStyleName maps a Word paragraph style name to a template key.
// Unknown names map to KeyNormal.
func KeyForStyleName(name string) Key {
	switch n := NormalizeStyleName(name); n {
	case "heading1", "heading2", "heading3", "heading4", "heading5":
		return Key(n)
	case "heading6":
		return KeyHeading5
	case "title":
		return KeyTitle
	case "quote", "intensequote":
		return KeyQuote
	case "preformatted", "code", "htmlpreformatted":
		return KeyCode
	default:
		return KeyNormal
	}
}
