package styles

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Template is a named style profile.
type Template struct {
	// Slug is the file name the template was loaded from, without extension.
	Slug        string              `yaml:"-" json:"slug"`
	Name        string              `yaml:"name" json:"name"`
	Aliases     []string            `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Styles      map[string]StyleDef `yaml:"styles" json:"styles"`
	Page        *PageStyle          `yaml:"page,omitempty" json:"page,omitempty"`
}

// ParseTemplate decodes and validates a YAML profile. Unknown keys are
// rejected so that a misspelled field does not silently keep its default.
func ParseTemplate(slug string, data []byte) (*Template, error) {
	var t Template
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTemplate, slug, err)
	}
	t.Slug = slug
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks keys, alignments, orientation, sizes and colours.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return t.invalid("name is required")
	}
	for name, def := range t.Styles {
		if !Key(name).IsValid() {
			return t.invalid("unknown style key %q", name)
		}
		if f := def.Font; f != nil {
			if f.Size < 0 {
				return t.invalid("%s: negative font size %v", name, f.Size)
			}
			if f.Color != "" && !ValidColor(f.Color) {
				return t.invalid("%s: color %q is not #RRGGBB", name, f.Color)
			}
		}
		if p := def.Paragraph; p != nil {
			switch p.Alignment {
			case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
			default:
				return t.invalid("%s: unknown alignment %q", name, p.Alignment)
			}
			for field, v := range map[string]float64{
				"line_spacing":      p.LineSpacing,
				"space_before":      p.SpaceBefore,
				"space_after":       p.SpaceAfter,
				"indent_first_line": p.IndentFirstLine,
				"indent_left":       p.IndentLeft,
				"indent_right":      p.IndentRight,
			} {
				if v < 0 {
					return t.invalid("%s: negative %s %v", name, field, v)
				}
			}
		}
	}
	if p := t.Page; p != nil {
		switch strings.ToLower(p.Orientation) {
		case "", OrientationPortrait, OrientationLandscape:
		default:
			return t.invalid("page: unknown orientation %q", p.Orientation)
		}
		if p.Width < 0 || p.Height < 0 || p.MarginTop < 0 || p.MarginBottom < 0 || p.MarginLeft < 0 || p.MarginRight < 0 {
			return t.invalid("page: negative dimension")
		}
		if err := p.withTemplateDefaults().Validate(); err != nil {
			return t.invalid("page: %v", err)
		}
	}
	return nil
}

// Names returns the display name followed by the slug and aliases.
func (t *Template) Names() []string {
	names := make([]string, 0, 2+len(t.Aliases))
	names = append(names, t.Name)
	if t.Slug != "" {
		names = append(names, t.Slug)
	}
	return append(names, t.Aliases...)
}

func (t *Template) invalid(format string, args ...any) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidTemplate, t.Slug, fmt.Sprintf(format, args...))
}

func errInvalidPage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPage, fmt.Sprintf(format, args...))
}
