package md2docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-md2docx/internal/assets"
)

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

type countingRecorder struct {
	mu        sync.Mutex
	outcomes  []string
	fallbacks []string
}

func (r *countingRecorder) ConversionDone(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *countingRecorder) StylingFallback(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks = append(r.fallbacks, reason)
}

// brokenLoader fails to list profiles but still serves reference styles.
type brokenLoader struct{}

func (brokenLoader) LoadProfile(string) ([]byte, error) { return nil, ErrProfileNotFound }
func (brokenLoader) ListProfiles() ([]string, error)    { return nil, errors.New("disk on fire") }
func (brokenLoader) LoadReferenceStyles() ([]byte, error) {
	return assets.NewEmbeddedLoader().LoadReferenceStyles()
}

type failingHTMLConverter struct{}

func (failingHTMLConverter) ToHTML(context.Context, string) (string, error) {
	return "", errors.New("renderer exploded")
}

type panickingPreprocessor struct{}

func (panickingPreprocessor) PreprocessMarkdown(context.Context, string) string {
	panic("unexpected state")
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return conv
}

func convert(t *testing.T, conv *Converter, input Input) *ConvertResult {
	t.Helper()

	res, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return res
}

func parseResult(t *testing.T, res *ConvertResult) *docx.Docx {
	t.Helper()

	doc, err := docx.Parse(bytes.NewReader(res.DOCX), int64(len(res.DOCX)))
	if err != nil {
		t.Fatalf("docx.Parse() error = %v", err)
	}
	return doc
}

func zipPart(t *testing.T, data []byte, name string) (string, bool) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b), true
	}
	return "", false
}

func hasPartPrefix(t *testing.T, data []byte, prefix string) bool {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, prefix) {
			return true
		}
	}
	return false
}

// firstRun returns the properties of the first run of the i-th body paragraph.
func firstRun(t *testing.T, doc *docx.Docx, i int) *docx.RunProperties {
	t.Helper()

	n := 0
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if n == i {
			for _, c := range p.Children {
				if r, ok := c.(*docx.Run); ok && r.RunProperties != nil {
					return r.RunProperties
				}
			}
			t.Fatalf("paragraph %d has no styled run", i)
		}
		n++
	}
	t.Fatalf("no paragraph %d", i)
	return nil
}

// ---------------------------------------------------------------------------
// TestConvert - Happy path
// ---------------------------------------------------------------------------

func TestConvert_DefaultProfile(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	conv := newTestConverter(t, WithRecorder(rec))
	res := convert(t, conv, Input{Markdown: "# Title\n\nBody text.", Filename: "report"})

	if !res.Styled || res.StyleErr != nil {
		t.Fatalf("Styled = %v, StyleErr = %v", res.Styled, res.StyleErr)
	}
	if !res.TemplateFound || res.Fallback {
		t.Errorf("TemplateFound = %v, Fallback = %v", res.TemplateFound, res.Fallback)
	}
	if !strings.Contains(res.HTML, "<h1") {
		t.Errorf("HTML missing heading: %s", res.HTML)
	}

	doc := parseResult(t, res)
	h1 := firstRun(t, doc, 0)
	if h1.Fonts == nil || h1.Fonts.EastAsia != "黑体" || h1.Size.Val != "32" || h1.Bold == nil {
		t.Errorf("h1 run = fonts %+v size %+v bold %v", h1.Fonts, h1.Size, h1.Bold != nil)
	}
	body := firstRun(t, doc, 1)
	if body.Fonts == nil || body.Fonts.EastAsia != "宋体" || body.Size.Val != "24" {
		t.Errorf("body run = fonts %+v size %+v", body.Fonts, body.Size)
	}

	core, ok := zipPart(t, res.DOCX, "docProps/core.xml")
	if !ok || !strings.Contains(core, "report.docx") {
		t.Errorf("core.xml should carry the normalized filename, got %q", core)
	}

	if len(rec.outcomes) != 1 || rec.outcomes[0] != "success" {
		t.Errorf("outcomes = %v, want [success]", rec.outcomes)
	}
	if len(rec.fallbacks) != 0 {
		t.Errorf("fallbacks = %v, want none", rec.fallbacks)
	}
}

func TestConvert_HeadingOverrideForcesBlackBold(t *testing.T) {
	t.Parallel()

	size := 20.0
	var o Overrides
	o.Headings[0] = FontOverride{Family: "楷体", Size: &size}

	conv := newTestConverter(t)
	res := convert(t, conv, Input{Markdown: "# 一级\n\n## 二级\n\n# 又一级", Profile: "商务报告", Overrides: o})
	doc := parseResult(t, res)

	for _, i := range []int{0, 2} {
		rp := firstRun(t, doc, i)
		if rp.Fonts.EastAsia != "楷体" || rp.Size.Val != "40" {
			t.Errorf("h1 #%d = %s %s, want 楷体 40", i, rp.Fonts.EastAsia, rp.Size.Val)
		}
		if rp.Bold == nil || rp.Color == nil || rp.Color.Val != "000000" {
			t.Errorf("h1 #%d should be bold black, got bold=%v color=%+v", i, rp.Bold != nil, rp.Color)
		}
	}

	h2 := firstRun(t, doc, 1)
	if h2.Color == nil || h2.Color.Val != "1F3864" {
		t.Errorf("h2 without override keeps the profile colour, got %+v", h2.Color)
	}
}

func TestConvert_UnknownProfileStillProducesDocument(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res := convert(t, conv, Input{Markdown: "正文", Profile: "no-such-profile"})

	if !res.Styled || res.TemplateFound {
		t.Errorf("Styled = %v, TemplateFound = %v", res.Styled, res.TemplateFound)
	}
	parseResult(t, res)
}

func TestConvert_PageOverride(t *testing.T) {
	t.Parallel()

	width, top := 182.5, 15.0
	conv := newTestConverter(t)
	res := convert(t, conv, Input{
		Markdown: "x",
		Page:     &PageOverride{Width: &width, MarginTop: &top},
	})

	xml, _ := zipPart(t, res.DOCX, "word/document.xml")
	// 182.5 mm = 10346.46 twips, 15 mm = 850.39 twips.
	for _, want := range []string{`w:w="10346"`, `w:top="850"`} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
}

func TestConvert_ZeroMarginOverride(t *testing.T) {
	t.Parallel()

	zero := 0.0
	conv := newTestConverter(t)
	res := convert(t, conv, Input{
		Markdown: "x",
		Page:     &PageOverride{MarginTop: &zero, MarginLeft: &zero},
	})

	xml, _ := zipPart(t, res.DOCX, "word/document.xml")
	// Bottom keeps the academic 25.4 mm (1440 twips).
	for _, want := range []string{`w:top="0"`, `w:left="0"`, `w:bottom="1440"`} {
		if !strings.Contains(xml, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
}

func TestConvert_EmbedsLocalImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dot.png"), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	conv := newTestConverter(t)
	res := convert(t, conv, Input{Markdown: "![dot](dot.png)", SourceDir: dir})

	if !hasPartPrefix(t, res.DOCX, "word/media/") {
		t.Error("local image under SourceDir should be embedded")
	}

	res = convert(t, conv, Input{Markdown: "![dot](dot.png)"})
	if hasPartPrefix(t, res.DOCX, "word/media/") {
		t.Error("image should not be embedded without SourceDir")
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Fallback - Registry unavailable
// ---------------------------------------------------------------------------

func TestConvert_Fallback(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	conv := newTestConverter(t, WithAssetLoader(brokenLoader{}), WithRecorder(rec))

	if conv.RegistryErr() == nil {
		t.Fatal("RegistryErr() = nil, want load failure")
	}
	if _, err := conv.Profiles(); !errors.Is(err, ErrRegistryUnavailable) {
		t.Errorf("Profiles() error = %v, want ErrRegistryUnavailable", err)
	}

	res := convert(t, conv, Input{Markdown: "# 一\n\n## 二\n\n### 三\n\n#### 四\n\n##### 五\n\n正文"})
	if !res.Styled || !res.Fallback {
		t.Fatalf("Styled = %v, Fallback = %v", res.Styled, res.Fallback)
	}

	doc := parseResult(t, res)
	for i, want := range []string{"32", "28", "24", "22", "20"} {
		rp := firstRun(t, doc, i)
		if rp.Fonts.EastAsia != "宋体" || rp.Size.Val != want || rp.Bold == nil {
			t.Errorf("h%d = %s %s bold=%v, want 宋体 %s bold", i+1, rp.Fonts.EastAsia, rp.Size.Val, rp.Bold != nil, want)
		}
	}
	if body := firstRun(t, doc, 5); body.Size.Val != "24" || body.Bold != nil {
		t.Errorf("body = %s bold=%v, want 24 regular", body.Size.Val, body.Bold != nil)
	}

	if len(rec.fallbacks) != 1 || rec.fallbacks[0] != FallbackRegistryUnavailable {
		t.Errorf("fallbacks = %v, want [%s]", rec.fallbacks, FallbackRegistryUnavailable)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Errors - Validation and pipeline failures
// ---------------------------------------------------------------------------

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	negative := -5.0
	wide := 300.0
	narrow := 50.0

	tests := []struct {
		name    string
		mutate  func(c *Converter)
		ctx     func() context.Context
		input   Input
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty markdown",
			input:   Input{},
			wantErr: ErrEmptyMarkdown,
		},
		{
			name:    "negative width",
			input:   Input{Markdown: "x", Page: &PageOverride{Width: &negative}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "margins wider than page",
			input:   Input{Markdown: "x", Page: &PageOverride{Width: &wide, MarginLeft: &wide, MarginRight: &wide}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "width narrower than profile margins",
			input:   Input{Markdown: "x", Page: &PageOverride{Width: &narrow}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "bad orientation",
			input:   Input{Markdown: "x", Page: &PageOverride{Orientation: "sideways"}},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "html conversion failure",
			mutate:  func(c *Converter) { c.htmlConverter = failingHTMLConverter{} },
			input:   Input{Markdown: "x"},
			wantErr: ErrHTMLConversion,
		},
		{
			name:    "panic is recovered",
			mutate:  func(c *Converter) { c.preprocessor = panickingPreprocessor{} },
			input:   Input{Markdown: "x"},
			wantMsg: "internal error: unexpected state",
		},
		{
			name: "cancelled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			input:   Input{Markdown: "x"},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &countingRecorder{}
			conv := newTestConverter(t, WithRecorder(rec))
			if tt.mutate != nil {
				tt.mutate(conv)
			}
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}

			res, err := conv.Convert(ctx, tt.input)
			if err == nil {
				t.Fatal("Convert() error = nil")
			}
			if res != nil {
				t.Error("failed Convert() should return no result")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if len(rec.outcomes) != 1 || rec.outcomes[0] != "failed" {
				t.Errorf("outcomes = %v, want [failed]", rec.outcomes)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Options
// ---------------------------------------------------------------------------

func TestNewConverter_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithAssetPath(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewConverter_CustomProfileShadowsEmbedded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles")
	if err := os.MkdirAll(profiles, 0o750); err != nil {
		t.Fatal(err)
	}
	custom := `name: 内部报告
aliases: [internal]
styles:
  normal:
    font: {family: 仿宋, size: 14}
    paragraph: {alignment: left, line_spacing: 1.0}
`
	if err := os.WriteFile(filepath.Join(profiles, "internal.yaml"), []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	conv := newTestConverter(t, WithAssetPath(dir))
	infos, err := conv.Profiles()
	if err != nil {
		t.Fatalf("Profiles() error = %v", err)
	}
	if len(infos) != 5 {
		t.Errorf("profiles = %d, want 4 embedded + 1 custom", len(infos))
	}

	res := convert(t, conv, Input{Markdown: "正文", Profile: "internal"})
	if rp := firstRun(t, parseResult(t, res), 0); rp.Fonts.EastAsia != "仿宋" || rp.Size.Val != "28" {
		t.Errorf("body = %s %s, want 仿宋 28", rp.Fonts.EastAsia, rp.Size.Val)
	}
}

func TestConverter_Profiles(t *testing.T) {
	t.Parallel()

	infos, err := newTestConverter(t).Profiles()
	if err != nil {
		t.Fatalf("Profiles() error = %v", err)
	}

	wantSlugs := []string{"academic", "business", "official", "technical"}
	if len(infos) != len(wantSlugs) {
		t.Fatalf("profiles = %d, want %d", len(infos), len(wantSlugs))
	}
	for i, slug := range wantSlugs {
		if infos[i].Slug != slug {
			t.Errorf("profile[%d].Slug = %q, want %q", i, infos[i].Slug, slug)
		}
	}
	if infos[0].Name != DefaultProfile {
		t.Errorf("academic name = %q, want %q", infos[0].Name, DefaultProfile)
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// TestConvert_Concurrent - A converter is shared safely
// ---------------------------------------------------------------------------

func TestConvert_Concurrent(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := conv.Convert(context.Background(), Input{Markdown: strings.Repeat("段落。\n\n", i+1)})
			if err != nil {
				errs <- err
				return
			}
			if !res.Styled {
				errs <- res.StyleErr
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Convert() error = %v", err)
	}
}
