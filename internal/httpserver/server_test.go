package httpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/metrics"
	"github.com/alnah/go-md2docx/internal/tool"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type stubService struct {
	convErr     error
	profilesErr error
	panicMsg    string
}

func (s stubService) Convert(context.Context, md2docx.Input) (*md2docx.ConvertResult, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return nil, s.convErr
}

func (s stubService) Profiles(context.Context) ([]md2docx.ProfileInfo, error) {
	return nil, s.profilesErr
}

func newPool(t *testing.T, opts ...md2docx.Option) *md2docx.ConverterPool {
	t.Helper()
	pool := md2docx.NewConverterPool(1, opts...)
	t.Cleanup(func() { _ = pool.Close() })
	return pool
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTool(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body struct {
		Messages []map[string]any `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, w.Body.String())
	}
	return body.Messages
}

// ---------------------------------------------------------------------------
// TestHealthz - Liveness and request ids
// ---------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := New(stubService{}).Handler()

	t.Run("generated request id", func(t *testing.T) {
		t.Parallel()

		w := do(t, h, http.MethodGet, "/healthz", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
			t.Errorf("%s = %q is not a uuid: %v", RequestIDHeader, w.Header().Get(RequestIDHeader), err)
		}
	})

	t.Run("caller request id is echoed", func(t *testing.T) {
		t.Parallel()

		w := do(t, h, http.MethodGet, "/healthz", "", RequestIDHeader, "trace-42")
		if got := w.Header().Get(RequestIDHeader); got != "trace-42" {
			t.Errorf("%s = %q, want trace-42", RequestIDHeader, got)
		}
	})

	t.Run("oversized request id is replaced", func(t *testing.T) {
		t.Parallel()

		w := do(t, h, http.MethodGet, "/healthz", "", RequestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
		if _, err := uuid.Parse(w.Header().Get(RequestIDHeader)); err != nil {
			t.Errorf("oversized id should be replaced, got %q", w.Header().Get(RequestIDHeader))
		}
	})
}

// ---------------------------------------------------------------------------
// TestToolEndpoint - JSON tool messages
// ---------------------------------------------------------------------------

func TestToolEndpoint_Success(t *testing.T) {
	t.Parallel()

	h := New(newPool(t)).Handler()
	w := do(t, h, http.MethodPost, "/v1/tools/markdown_to_docx",
		`{"markdown":"# Title\n\nBody text.","filename":"report","body_size_pt":"12"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	msgs := decodeTool(t, w)
	if len(msgs) != 2 || msgs[0]["type"] != "blob" || msgs[1]["type"] != "json" {
		t.Fatalf("messages = %v, want [blob json]", msgs)
	}

	data, err := base64.StdEncoding.DecodeString(msgs[0]["data"].(string))
	if err != nil {
		t.Fatalf("blob data is not base64: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("blob is not a zip archive")
	}
	if msgs[0]["filename"] != "report.docx" || msgs[0]["mime_type"] != md2docx.MIMEType {
		t.Errorf("blob meta = %v", msgs[0])
	}

	summary := msgs[1]["json"].(map[string]any)
	if summary["filename"] != "report.docx" || summary["style_profile"] != md2docx.DefaultProfile {
		t.Errorf("summary = %v", summary)
	}
	if overrides := summary["overrides"].(map[string]any); overrides["body_size_pt"] != float64(12) {
		t.Errorf("overrides.body_size_pt = %v, want 12", overrides["body_size_pt"])
	}
}

func TestToolEndpoint_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		svc        tool.Service
		opts       []Option
		body       string
		wantStatus int
		wantText   string
	}{
		{
			name:       "missing markdown",
			svc:        stubService{},
			body:       `{"filename":"x"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   tool.ErrMarkdownRequired.Error(),
		},
		{
			name:       "conversion failure",
			svc:        stubService{convErr: errors.New("boom")},
			body:       `{"markdown":"x"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantText:   "Conversion failed: boom",
		},
		{
			name:       "malformed json",
			svc:        stubService{},
			body:       `{"markdown":`,
			wantStatus: http.StatusBadRequest,
			wantText:   "Invalid request body",
		},
		{
			name:       "empty body",
			svc:        stubService{},
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantText:   "Invalid request body",
		},
		{
			name:       "body too large",
			svc:        stubService{},
			opts:       []Option{WithMaxBodyBytes(16)},
			body:       `{"markdown":"` + strings.Repeat("x", 64) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantText:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := New(tt.svc, tt.opts...).Handler()
			w := do(t, h, http.MethodPost, "/v1/tools/markdown_to_docx", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			msgs := decodeTool(t, w)
			if len(msgs) != 1 || msgs[0]["type"] != "text" {
				t.Fatalf("messages = %v, want one text", msgs)
			}
			if text := msgs[0]["text"].(string); !strings.HasPrefix(text, tt.wantText) {
				t.Errorf("text = %q, want prefix %q", text, tt.wantText)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertEndpoint - Raw document download
// ---------------------------------------------------------------------------

func TestConvertEndpoint_Success(t *testing.T) {
	t.Parallel()

	h := New(newPool(t)).Handler()
	w := do(t, h, http.MethodPost, "/v1/convert", `{"markdown":"# 标题\n\n正文。","filename":"report.docx"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != md2docx.MIMEType {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=report.docx" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("body is not a zip archive")
	}

	var summary map[string]any
	if err := json.Unmarshal([]byte(w.Header().Get(SummaryHeader)), &summary); err != nil {
		t.Fatalf("%s is not JSON: %v", SummaryHeader, err)
	}
	if summary["filename"] != "report.docx" || int(summary["size_bytes"].(float64)) != w.Body.Len() {
		t.Errorf("summary = %v, body %d bytes", summary, w.Body.Len())
	}
	if summary["style_profile"] != md2docx.DefaultProfile {
		t.Errorf("style_profile = %v, want %s", summary["style_profile"], md2docx.DefaultProfile)
	}
	for i, b := range []byte(w.Header().Get(SummaryHeader)) {
		if b >= 0x80 {
			t.Fatalf("%s byte %d is not ASCII: %#x", SummaryHeader, i, b)
		}
	}
}

func TestASCIIJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii unchanged", in: `{"a":"b"}`, want: `{"a":"b"}`},
		{name: "cjk", in: `{"p":"学术"}`, want: `{"p":"\u5b66\u672f"}`},
		{name: "surrogate pair", in: `"😀"`, want: `"\ud83d\ude00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := asciiJSON([]byte(tt.in))
			if got != tt.want {
				t.Errorf("asciiJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
			var back, orig any
			if err := json.Unmarshal([]byte(got), &back); err != nil {
				t.Fatalf("escaped value is not JSON: %v", err)
			}
			_ = json.Unmarshal([]byte(tt.in), &orig)
			if fmt.Sprint(back) != fmt.Sprint(orig) {
				t.Errorf("round trip = %v, want %v", back, orig)
			}
		})
	}
}

func TestConvertEndpoint_Failure(t *testing.T) {
	t.Parallel()

	h := New(stubService{}).Handler()
	w := do(t, h, http.MethodPost, "/v1/convert", `{"markdown":""}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if w.Body.String() != tool.ErrMarkdownRequired.Error() {
		t.Errorf("body = %q", w.Body.String())
	}
	if w.Header().Get(SummaryHeader) != "" {
		t.Error("summary header set on failure")
	}
}

// ---------------------------------------------------------------------------
// TestProfilesEndpoint
// ---------------------------------------------------------------------------

func TestProfilesEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("lists embedded profiles", func(t *testing.T) {
		t.Parallel()

		w := do(t, New(newPool(t)).Handler(), http.MethodGet, "/v1/profiles", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var body struct {
			Profiles []md2docx.ProfileInfo `json:"profiles"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if len(body.Profiles) != 4 {
			t.Errorf("len(profiles) = %d, want 4", len(body.Profiles))
		}
	})

	t.Run("registry unavailable", func(t *testing.T) {
		t.Parallel()

		svc := stubService{profilesErr: md2docx.ErrRegistryUnavailable}
		w := do(t, New(svc).Handler(), http.MethodGet, "/v1/profiles", "")
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRecovery - Handler panics become 500
// ---------------------------------------------------------------------------

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := New(stubService{panicMsg: "kaboom"}).Handler()
	w := do(t, h, http.MethodPost, "/v1/tools/markdown_to_docx", `{"markdown":"x"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal error") {
		t.Errorf("body = %q", w.Body.String())
	}
}

// ---------------------------------------------------------------------------
// TestMetricsEndpoint - Requests and conversions are exported
// ---------------------------------------------------------------------------

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := New(newPool(t, md2docx.WithRecorder(m)), WithMetrics(m, reg)).Handler()

	do(t, h, http.MethodGet, "/healthz", "")
	do(t, h, http.MethodPost, "/v1/tools/markdown_to_docx", `{"markdown":"# 标题"}`)
	do(t, h, http.MethodPost, "/v1/tools/markdown_to_docx", `{}`)
	do(t, h, http.MethodGet, "/nope", "")

	w := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	out := w.Body.String()
	for _, want := range []string{
		`md2docx_http_requests_total{method="GET",route="/healthz",status="200"} 1`,
		`md2docx_http_requests_total{method="POST",route="/v1/tools/markdown_to_docx",status="200"} 1`,
		`md2docx_http_requests_total{method="POST",route="/v1/tools/markdown_to_docx",status="422"} 1`,
		`md2docx_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`md2docx_conversions_total{outcome="success"} 1`,
		`md2docx_conversions_total{outcome="invalid_params"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
