package styles

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx/internal/assets"
)

const validProfile = `
name: 内部报告
aliases: [internal]
styles:
  normal:
    font: {family: 宋体, size: 12, color: "#000000"}
    paragraph: {alignment: justify, line_spacing: 1.5, indent_first_line: 24}
  heading1:
    font: {family: 黑体, size: 16, bold: true}
page:
  width: 210
  height: 297
  margin_top: 20
  margin_bottom: 20
  margin_left: 20
  margin_right: 20
`

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate("internal", []byte(validProfile))
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}

	if tmpl.Slug != "internal" || tmpl.Name != "内部报告" {
		t.Errorf("Slug/Name = %q/%q", tmpl.Slug, tmpl.Name)
	}
	normal := tmpl.Styles["normal"]
	if normal.Font == nil || normal.Font.Family != "宋体" || normal.Font.Size != 12 {
		t.Errorf("normal font = %+v", normal.Font)
	}
	if normal.Paragraph == nil || normal.Paragraph.Alignment != AlignJustify {
		t.Errorf("normal paragraph = %+v", normal.Paragraph)
	}
	if h1 := tmpl.Styles["heading1"]; h1.Paragraph != nil {
		t.Errorf("heading1 paragraph = %+v, want nil when absent", h1.Paragraph)
	}
	if tmpl.Page == nil || tmpl.Page.MarginLeft != 20 {
		t.Errorf("page = %+v", tmpl.Page)
	}
	if got := strings.Join(tmpl.Names(), ","); got != "内部报告,internal,internal" {
		t.Errorf("Names() = %q", got)
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "missing name",
			yaml:    "styles: {}",
			wantMsg: "name is required",
		},
		{
			name:    "unknown style key",
			yaml:    "name: x\nstyles:\n  heading6:\n    font: {size: 10}",
			wantMsg: `unknown style key "heading6"`,
		},
		{
			name:    "misspelled field",
			yaml:    "name: x\nstyles:\n  normal:\n    font: {famliy: 宋体}",
			wantMsg: "famliy",
		},
		{
			name:    "bad colour",
			yaml:    "name: x\nstyles:\n  normal:\n    font: {color: red}",
			wantMsg: "#RRGGBB",
		},
		{
			name:    "negative size",
			yaml:    "name: x\nstyles:\n  normal:\n    font: {size: -1}",
			wantMsg: "negative font size",
		},
		{
			name:    "unknown alignment",
			yaml:    "name: x\nstyles:\n  normal:\n    paragraph: {alignment: distribute}",
			wantMsg: "unknown alignment",
		},
		{
			name:    "negative indent",
			yaml:    "name: x\nstyles:\n  quote:\n    paragraph: {indent_left: -2}",
			wantMsg: "negative indent_left",
		},
		{
			name:    "unknown orientation",
			yaml:    "name: x\npage: {orientation: diagonal}",
			wantMsg: "unknown orientation",
		},
		{
			name:    "margins larger than page",
			yaml:    "name: x\npage: {width: 100, height: 100, margin_left: 60, margin_right: 60}",
			wantMsg: "no room",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTemplate("broken", []byte(tt.yaml))
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Fatalf("ParseTemplate() error = %v, want ErrInvalidTemplate", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestEmbeddedProfilesParse(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()
	slugs, err := loader.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}

	for _, slug := range slugs {
		t.Run(slug, func(t *testing.T) {
			t.Parallel()

			data, err := loader.LoadProfile(slug)
			if err != nil {
				t.Fatalf("LoadProfile() error = %v", err)
			}
			tmpl, err := ParseTemplate(slug, data)
			if err != nil {
				t.Fatalf("ParseTemplate() error = %v", err)
			}
			for _, key := range Keys {
				def, ok := tmpl.Styles[string(key)]
				if !ok || def.Font == nil || def.Paragraph == nil {
					t.Errorf("profile %s: key %s should define font and paragraph", slug, key)
				}
			}
			if tmpl.Page == nil {
				t.Errorf("profile %s has no page", slug)
			}
		})
	}
}
