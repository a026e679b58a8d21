package styles

import (
	"fmt"
	"strings"
)

// FontOverride replaces the family and/or size of one style entry.
type FontOverride struct {
	Family string
	Size   *float64
}

// IsSet reports whether the override carries a family or a positive size.
func (f FontOverride) IsSet() bool {
	return strings.TrimSpace(f.Family) != "" || (f.Size != nil && *f.Size > 0)
}

func (f FontOverride) family(prior string) string {
	if v := strings.TrimSpace(f.Family); v != "" {
		return v
	}
	if prior != "" {
		return prior
	}
	return DefaultFamily
}

func (f FontOverride) size(prior float64) float64 {
	if f.Size != nil && *f.Size > 0 {
		return RoundHalfPoint(*f.Size)
	}
	if prior > 0 {
		return prior
	}
	return DefaultSize
}

// Overrides is the per-call patch over a template.
type Overrides struct {
	Headings [HeadingLevels]FontOverride
	Body     FontOverride
}

// Heading returns the override of a heading level; out-of-range levels
// have none.
func (o Overrides) Heading(level int) FontOverride {
	if level < 1 || level > HeadingLevels {
		return FontOverride{}
	}
	return o.Headings[level-1]
}

// IsEmpty reports whether no override is set.
func (o Overrides) IsEmpty() bool {
	for _, h := range o.Headings {
		if h.IsSet() {
			return false
		}
	}
	return !o.Body.IsSet()
}

// PageOverride replaces individual page fields. Nil fields keep the
// template value.
type PageOverride struct {
	Width        *float64 `json:"width_mm,omitempty"`
	Height       *float64 `json:"height_mm,omitempty"`
	MarginTop    *float64 `json:"margin_top_mm,omitempty"`
	MarginBottom *float64 `json:"margin_bottom_mm,omitempty"`
	MarginLeft   *float64 `json:"margin_left_mm,omitempty"`
	MarginRight  *float64 `json:"margin_right_mm,omitempty"`
	Orientation  string   `json:"orientation,omitempty"`
}

// IsEmpty reports whether p is nil or carries no field.
func (p *PageOverride) IsEmpty() bool {
	return p == nil || (p.Width == nil && p.Height == nil &&
		p.MarginTop == nil && p.MarginBottom == nil &&
		p.MarginLeft == nil && p.MarginRight == nil &&
		p.Orientation == "")
}

// Validate checks the values the override carries on their own: positive
// sizes, non-negative margins, a known orientation, and margins that fit
// inside a width or height given alongside them.
func (p *PageOverride) Validate() error {
	if p.IsEmpty() {
		return nil
	}
	for name, v := range map[string]*float64{"width": p.Width, "height": p.Height} {
		if v != nil && *v <= 0 {
			return errInvalidPage("%s must be positive, got %v", name, *v)
		}
	}
	for name, v := range map[string]*float64{
		"margin_top":    p.MarginTop,
		"margin_bottom": p.MarginBottom,
		"margin_left":   p.MarginLeft,
		"margin_right":  p.MarginRight,
	} {
		if v != nil && *v < 0 {
			return errInvalidPage("%s must not be negative, got %v", name, *v)
		}
	}
	switch strings.ToLower(p.Orientation) {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidPage, p.Orientation)
	}
	if p.Width != nil && p.MarginLeft != nil && p.MarginRight != nil && *p.MarginLeft+*p.MarginRight >= *p.Width {
		return errInvalidPage("horizontal margins leave no room on a %v mm page", *p.Width)
	}
	if p.Height != nil && p.MarginTop != nil && p.MarginBottom != nil && *p.MarginTop+*p.MarginBottom >= *p.Height {
		return errInvalidPage("vertical margins leave no room on a %v mm page", *p.Height)
	}
	return nil
}
