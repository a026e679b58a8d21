package styles

import "strings"

// fallbackHeadingSizes are the hardcoded heading sizes used without a registry.
var fallbackHeadingSizes = [HeadingLevels]float64{16, 14, 12, 11, 10}

// Fallback returns the descriptors applied to a paragraph when no registry
// could be loaded. styleName is a normalised style name such as "heading2"
// or "normal". Headings outside levels 1..5 use the level-3 entry.
func Fallback(styleName string, o Overrides) (FontStyle, ParagraphStyle) {
	if strings.HasPrefix(styleName, "heading") {
		level := Key(styleName).HeadingLevel()
		if level == 0 {
			level = 3
		}
		ov := o.Heading(level)
		font := FontStyle{
			Family: ov.family(""),
			Size:   ov.size(fallbackHeadingSizes[level-1]),
			Bold:   true,
			Color:  Black,
		}
		align := AlignLeft
		if level == 1 {
			align = AlignCenter
		}
		return font, ParagraphStyle{Alignment: align, LineSpacing: 1.0}
	}

	font := FontStyle{
		Family: o.Body.family(""),
		Size:   o.Body.size(DefaultSize),
		Color:  Black,
	}
	return font, ParagraphStyle{Alignment: AlignLeft, LineSpacing: 1.0, IndentFirstLine: DefaultFirstLineIndent}
}
