package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Introduction",
			wantContains: []string{`<h1 id="introduction">Introduction</h1>`},
		},
		{
			name:         "gfm table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "task list",
			input:        "- [x] 完成\n- [ ] 待办",
			wantContains: []string{`type="checkbox"`, "checked"},
		},
		{
			name:         "soft break between chinese characters is dropped",
			input:        "中文段落\n继续",
			wantContains: []string{"中文段落继续"},
		},
		{
			name:         "no hard wraps",
			input:        "line one\nline two",
			wantExcludes: []string{"<br"},
		},
		{
			name:         "code block highlighted with inline styles",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`<pre`, `style="`},
			wantExcludes: []string{`class="chroma"`},
		},
		{
			name:         "raw html is not passed through",
			input:        "<script>alert(1)</script>",
			wantExcludes: []string{"<script>"},
		},
		{
			name:         "footnote",
			input:        "正文[^1]\n\n[^1]: 注释",
			wantContains: []string{`class="footnotes"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			if !strings.HasPrefix(got, "<!DOCTYPE html>") {
				t.Error("output should be a full HTML document")
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
