package styles

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Key names one entry of a style template.
type Key string

// Template keys.
const (
	KeyNormal   Key = "normal"
	KeyHeading1 Key = "heading1"
	KeyHeading2 Key = "heading2"
	KeyHeading3 Key = "heading3"
	KeyHeading4 Key = "heading4"
	KeyHeading5 Key = "heading5"
	KeyTitle    Key = "title"
	KeyQuote    Key = "quote"
	KeyCode     Key = "code"
)

// HeadingLevels is the number of heading levels a template can describe.
const HeadingLevels = 5

// Keys lists every template key in canonical order.
var Keys = []Key{
	KeyNormal,
	KeyHeading1, KeyHeading2, KeyHeading3, KeyHeading4, KeyHeading5,
	KeyTitle, KeyQuote, KeyCode,
}

// HeadingKey returns the key for a heading level, clamped to 1..5.
func HeadingKey(level int) Key {
	level = max(1, min(level, HeadingLevels))
	return Key("heading" + strconv.Itoa(level))
}

// HeadingLevel returns the level of a heading key, or 0 for other keys.
func (k Key) HeadingLevel() int {
	rest, ok := strings.CutPrefix(string(k), "heading")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > HeadingLevels {
		return 0
	}
	return n
}

// IsValid reports whether k is one of Keys.
func (k Key) IsValid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// Alignment values for ParagraphStyle.Alignment.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Orientation values for PageStyle.Orientation.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Defaults used when a descriptor leaves a value unset.
const (
	DefaultFamily          = "宋体"
	DefaultSize            = 12.0
	DefaultLineSpacing     = 1.5
	DefaultFirstLineIndent = 24.0
	Black                  = "#000000"
)

// FontStyle describes character formatting. Size is in points.
type FontStyle struct {
	Family string  `yaml:"family" json:"family"`
	Size   float64 `yaml:"size" json:"size"`
	Bold   bool    `yaml:"bold" json:"bold"`
	Italic bool    `yaml:"italic" json:"italic"`
	Color  string  `yaml:"color,omitempty" json:"color,omitempty"`
}

// ParagraphStyle describes paragraph formatting. Spacing and indents are in
// points; LineSpacing is a multiple of single spacing.
type ParagraphStyle struct {
	Alignment       string  `yaml:"alignment,omitempty" json:"alignment,omitempty"`
	LineSpacing     float64 `yaml:"line_spacing,omitempty" json:"line_spacing,omitempty"`
	SpaceBefore     float64 `yaml:"space_before,omitempty" json:"space_before,omitempty"`
	SpaceAfter      float64 `yaml:"space_after,omitempty" json:"space_after,omitempty"`
	IndentFirstLine float64 `yaml:"indent_first_line,omitempty" json:"indent_first_line,omitempty"`
	IndentLeft      float64 `yaml:"indent_left,omitempty" json:"indent_left,omitempty"`
	IndentRight     float64 `yaml:"indent_right,omitempty" json:"indent_right,omitempty"`
}

// PageStyle describes the page box in millimetres.
type PageStyle struct {
	Width        float64 `yaml:"width" json:"width"`
	Height       float64 `yaml:"height" json:"height"`
	MarginTop    float64 `yaml:"margin_top" json:"margin_top"`
	MarginBottom float64 `yaml:"margin_bottom" json:"margin_bottom"`
	MarginLeft   float64 `yaml:"margin_left" json:"margin_left"`
	MarginRight  float64 `yaml:"margin_right" json:"margin_right"`
	Orientation  string  `yaml:"orientation,omitempty" json:"orientation,omitempty"`
}

// templateMargin replaces margins a template page leaves unset, in mm.
const templateMargin = 25

// A4 page with the margins Word uses for Chinese documents.
func DefaultPage() PageStyle {
	return PageStyle{
		Width:        210,
		Height:       297,
		MarginTop:    25.4,
		MarginBottom: 25.4,
		MarginLeft:   31.8,
		MarginRight:  31.8,
		Orientation:  OrientationPortrait,
	}
}

// Effective fills an unset width or height with A4 and turns a landscape
// page that is taller than wide on its side. Margins are kept as given,
// zero included.
func (p PageStyle) Effective() PageStyle {
	orDefault := func(v, def float64) float64 {
		if v > 0 {
			return v
		}
		return def
	}
	out := p
	out.Width = orDefault(p.Width, 210)
	out.Height = orDefault(p.Height, 297)
	out.Orientation = strings.ToLower(p.Orientation)
	if out.Orientation != OrientationLandscape {
		out.Orientation = OrientationPortrait
	}
	if out.Orientation == OrientationLandscape && out.Width < out.Height {
		out.Width, out.Height = out.Height, out.Width
	}
	return out
}

// withTemplateDefaults fills the margins a template page leaves at zero
// with 25 mm. An omitted YAML margin decodes as 0, so a template cannot
// ask for a zero margin.
func (p PageStyle) withTemplateDefaults() PageStyle {
	for _, m := range []*float64{&p.MarginTop, &p.MarginBottom, &p.MarginLeft, &p.MarginRight} {
		if *m <= 0 {
			*m = templateMargin
		}
	}
	return p
}

// Validate checks that the margins leave a printable area.
func (p PageStyle) Validate() error {
	e := p.Effective()
	if e.MarginLeft+e.MarginRight >= e.Width {
		return errInvalidPage("horizontal margins %.1f+%.1f mm leave no room on a %.1f mm page", e.MarginLeft, e.MarginRight, e.Width)
	}
	if e.MarginTop+e.MarginBottom >= e.Height {
		return errInvalidPage("vertical margins %.1f+%.1f mm leave no room on a %.1f mm page", e.MarginTop, e.MarginBottom, e.Height)
	}
	return nil
}

// StyleDef pairs the optional descriptors of one template key.
type StyleDef struct {
	Font      *FontStyle      `yaml:"font,omitempty" json:"font,omitempty"`
	Paragraph *ParagraphStyle `yaml:"paragraph,omitempty" json:"paragraph,omitempty"`
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether s is a #RRGGBB colour.
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// RoundHalfPoint rounds a point size to the nearest half point, the
// smallest size step a Word document can store.
func RoundHalfPoint(size float64) float64 {
	return math.Round(size*2) / 2
}
