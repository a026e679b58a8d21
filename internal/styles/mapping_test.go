package styles

import "testing"

func TestKeyForStyleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Key
	}{
		{"Normal", KeyNormal},
		{"heading 1", KeyHeading1},
		{"Heading 3", KeyHeading3},
		{"Heading5", KeyHeading5},
		{"heading 6", KeyHeading5},
		{"List Paragraph", KeyNormal},
		{"Quote", KeyQuote},
		{"Intense Quote", KeyQuote},
		{"Preformatted", KeyCode},
		{"Code", KeyCode},
		{"HTML Preformatted", KeyCode},
		{"Title", KeyTitle},
		{"Caption", KeyNormal},
		{"", KeyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KeyForStyleName(tt.name); got != tt.want {
				t.Errorf("KeyForStyleName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestNormalizeStyleName(t *testing.T) {
	t.Parallel()

	if got := NormalizeStyleName("  Intense  Quote "); got != "intensequote" {
		t.Errorf("NormalizeStyleName() = %q", got)
	}
}
