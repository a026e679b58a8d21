package md2docx

import "github.com/alnah/go-md2docx/internal/styles"

// DefaultProfile is the style profile used when Input.Profile is empty.
const DefaultProfile = "学术论文"

// MIMEType is the media type of the generated document.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// HeadingLevels is the number of heading levels that take overrides.
const HeadingLevels = styles.HeadingLevels

// Orientation constants.
const (
	OrientationPortrait  = styles.OrientationPortrait
	OrientationLandscape = styles.OrientationLandscape
)

// Input contains the markdown source and per-call styling.
type Input struct {
	Markdown string // Required: markdown content
	// Filename is written to the document title. It is normalized with
	// NormalizeFilename; empty means DefaultFilename.
	Filename string
	Profile  string // Style profile by name, slug or alias (default: DefaultProfile)
	// SourceDir resolves relative image and link paths. Local pictures are
	// embedded only from inside this directory.
	SourceDir string
	Overrides Overrides     // Per-call font patches (zero value: none)
	Page      *PageOverride // Per-call page patch (nil: template page)
}

// ConvertResult contains the outputs of a successful conversion.
type ConvertResult struct {
	DOCX []byte // Final document bytes
	HTML string // Intermediate HTML, for debugging

	// Styled is true when the style profile was applied. When false, DOCX
	// holds the unstyled base document and StyleErr says why.
	Styled   bool
	StyleErr error

	// Fallback is true when the hardcoded style table replaced the registry.
	Fallback bool
	// TemplateFound is false when Profile matched no registry template.
	TemplateFound bool
}

// FontOverride replaces the family and/or size of one style entry.
// Empty Family and nil Size mean "keep the profile value".
type FontOverride struct {
	Family string
	Size   *float64 // points
}

// Overrides patches a style profile for one conversion.
type Overrides struct {
	Headings [HeadingLevels]FontOverride // index 0 is heading level 1
	Body     FontOverride
}

// PageOverride replaces individual page fields, in millimetres.
// Nil fields keep the profile value.
type PageOverride struct {
	Width        *float64 `json:"width_mm,omitempty"`
	Height       *float64 `json:"height_mm,omitempty"`
	MarginTop    *float64 `json:"margin_top_mm,omitempty"`
	MarginBottom *float64 `json:"margin_bottom_mm,omitempty"`
	MarginLeft   *float64 `json:"margin_left_mm,omitempty"`
	MarginRight  *float64 `json:"margin_right_mm,omitempty"`
	Orientation  string   `json:"orientation,omitempty"` // "portrait", "landscape"
}

// Validate checks that page override values are usable.
// Returns nil if p is nil (nil means use the profile page).
// Errors wrap ErrInvalidPage.
func (p *PageOverride) Validate() error {
	return p.internal().Validate()
}

// IsEmpty reports whether p is nil or sets no field.
func (p *PageOverride) IsEmpty() bool {
	return p.internal().IsEmpty()
}

func (p *PageOverride) internal() *styles.PageOverride {
	if p == nil {
		return nil
	}
	v := styles.PageOverride(*p)
	return &v
}

func (o Overrides) internal() styles.Overrides {
	var out styles.Overrides
	for i, h := range o.Headings {
		out.Headings[i] = styles.FontOverride(h)
	}
	out.Body = styles.FontOverride(o.Body)
	return out
}

// ProfileInfo describes one available style profile.
type ProfileInfo struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description,omitempty"`
}
