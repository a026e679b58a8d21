package tool

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx"
)

// Parameter names.
const (
	ParamMarkdown     = "markdown"
	ParamFilename     = "filename"
	ParamStyleProfile = "style_profile"
	ParamBodyFont     = "body_font"
	ParamBodySize     = "body_size_pt"
	ParamPageWidth    = "page_width_mm"
	ParamPageHeight   = "page_height_mm"
	ParamMarginTop    = "margin_top_mm"
	ParamMarginBottom = "margin_bottom_mm"
	ParamMarginLeft   = "margin_left_mm"
	ParamMarginRight  = "margin_right_mm"
	ParamOrientation  = "orientation"
)

// HeadingFontParam returns "h<level>_font".
func HeadingFontParam(level int) string { return fmt.Sprintf("h%d_font", level) }

// HeadingSizeParam returns "h<level>_size_pt".
func HeadingSizeParam(level int) string { return fmt.Sprintf("h%d_size_pt", level) }

// RequestedOverrides is the override set as the caller sent it, after
// coercion. Absent values are nil and marshal as null.
type RequestedOverrides struct {
	H1Font     *string  `json:"h1_font"`
	H1SizePt   *float64 `json:"h1_size_pt"`
	H2Font     *string  `json:"h2_font"`
	H2SizePt   *float64 `json:"h2_size_pt"`
	H3Font     *string  `json:"h3_font"`
	H3SizePt   *float64 `json:"h3_size_pt"`
	H4Font     *string  `json:"h4_font"`
	H4SizePt   *float64 `json:"h4_size_pt"`
	H5Font     *string  `json:"h5_font"`
	H5SizePt   *float64 `json:"h5_size_pt"`
	BodyFont   *string  `json:"body_font"`
	BodySizePt *float64 `json:"body_size_pt"`
}

// heading returns pointers to the font and size fields of a level.
func (r *RequestedOverrides) heading(level int) (**string, **float64) {
	switch level {
	case 1:
		return &r.H1Font, &r.H1SizePt
	case 2:
		return &r.H2Font, &r.H2SizePt
	case 3:
		return &r.H3Font, &r.H3SizePt
	case 4:
		return &r.H4Font, &r.H4SizePt
	default:
		return &r.H5Font, &r.H5SizePt
	}
}

// Overrides converts the requested set into library overrides.
func (r RequestedOverrides) Overrides() md2docx.Overrides {
	var o md2docx.Overrides
	for level := 1; level <= md2docx.HeadingLevels; level++ {
		font, size := r.heading(level)
		o.Headings[level-1] = md2docx.FontOverride{Family: deref(*font), Size: *size}
	}
	o.Body = md2docx.FontOverride{Family: deref(r.BodyFont), Size: r.BodySizePt}
	return o
}

// Params is a coerced tool call.
type Params struct {
	Markdown  string
	Filename  string // normalized, ends with .docx
	Profile   string
	Overrides RequestedOverrides
	Page      *md2docx.PageOverride // nil when no page field was given
}

// ExtractParams reads a tool call. Only a missing or non-string markdown
// is an error; every other field degrades to its default when unreadable.
func ExtractParams(args map[string]any) (Params, error) {
	var p Params

	md, ok := args[ParamMarkdown].(string)
	if !ok || md == "" {
		return p, ErrMarkdownRequired
	}
	p.Markdown = md

	name, _ := args[ParamFilename].(string)
	p.Filename = md2docx.NormalizeFilename(name)

	p.Profile = md2docx.DefaultProfile
	if s := toString(args[ParamStyleProfile]); s != nil {
		p.Profile = *s
	}

	for level := 1; level <= md2docx.HeadingLevels; level++ {
		font, size := p.Overrides.heading(level)
		*font = toString(args[HeadingFontParam(level)])
		*size = toFloat(args[HeadingSizeParam(level)])
	}
	p.Overrides.BodyFont = toString(args[ParamBodyFont])
	p.Overrides.BodySizePt = toFloat(args[ParamBodySize])

	page := &md2docx.PageOverride{
		Width:        toFloat(args[ParamPageWidth]),
		Height:       toFloat(args[ParamPageHeight]),
		MarginTop:    toFloat(args[ParamMarginTop]),
		MarginBottom: toFloat(args[ParamMarginBottom]),
		MarginLeft:   toFloat(args[ParamMarginLeft]),
		MarginRight:  toFloat(args[ParamMarginRight]),
	}
	if s := toString(args[ParamOrientation]); s != nil {
		switch o := strings.ToLower(*s); o {
		case md2docx.OrientationPortrait, md2docx.OrientationLandscape:
			page.Orientation = o
		}
	}
	if !page.IsEmpty() {
		p.Page = page
	}

	return p, nil
}

// Input builds the library request.
func (p Params) Input() md2docx.Input {
	return md2docx.Input{
		Markdown:  p.Markdown,
		Filename:  p.Filename,
		Profile:   p.Profile,
		Overrides: p.Overrides.Overrides(),
		Page:      p.Page,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// requestedFrom reverses Overrides: empty families become nil.
func requestedFrom(o md2docx.Overrides) RequestedOverrides {
	var r RequestedOverrides
	for level := 1; level <= md2docx.HeadingLevels; level++ {
		font, size := r.heading(level)
		*font = nonEmpty(o.Headings[level-1].Family)
		*size = o.Headings[level-1].Size
	}
	r.BodyFont = nonEmpty(o.Body.Family)
	r.BodySizePt = o.Body.Size
	return r
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
