package main

// Notes:
// - Test infrastructure shared across the command tests: an isolated
//   Environment, a fake converter and small file helpers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-md2docx"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv is an Environment with captured output and a fixed variable set.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv isolates the command from the process environment: vars are
// the only variables seen and no dotenv file is read.
func newTestEnv(vars ...string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:     func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
			Stdin:   strings.NewReader(""),
			Stdout:  stdout,
			Stderr:  stderr,
			Environ: func() []string { return vars },
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// ---------------------------------------------------------------------------
// Fake converter
// ---------------------------------------------------------------------------

// fakeConverter records inputs and returns a canned result.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []md2docx.Input
	result md2docx.ConvertResult
	err    error
	// failOn fails conversions whose markdown contains this text.
	failOn string
}

func (f *fakeConverter) Convert(_ context.Context, input md2docx.Input) (*md2docx.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.failOn != "" && strings.Contains(input.Markdown, f.failOn) {
		return nil, md2docx.ErrHTMLConversion
	}
	res := f.result
	if res.DOCX == nil {
		res.DOCX = []byte("PK fake docx")
		res.Styled = true
		res.TemplateFound = true
	}
	return &res, nil
}

func (f *fakeConverter) calls() []md2docx.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]md2docx.Input(nil), f.inputs...)
}

// ---------------------------------------------------------------------------
// File helpers
// ---------------------------------------------------------------------------

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// assertDocx checks that path holds a zip archive.
func assertDocx(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("%s is not a zip archive (starts with %q)", path, data[:min(len(data), 4)])
	}
}
