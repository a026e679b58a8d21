package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the library, config, logging
//   and CLI packages, plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logging"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"conversion failed", ErrConversionFailed, ExitGeneral},
		{"html conversion", md2docx.ErrHTMLConversion, ExitGeneral},
		{"cancelled", context.Canceled, ExitGeneral},

		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write docx", ErrWriteDOCX, ExitIO},
		{"no input", ErrNoInput, ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"log level", logging.ErrInvalidLevel, ExitUsage},
		{"log format", logging.ErrInvalidFormat, ExitUsage},
		{"empty markdown", md2docx.ErrEmptyMarkdown, ExitUsage},
		{"invalid page", md2docx.ErrInvalidPage, ExitUsage},
		{"invalid asset path", md2docx.ErrInvalidAssetPath, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid env", ErrInvalidEnv, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},

		{"wrapped io", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},
		{"wrapped usage", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"double wrapped", fmt.Errorf("outer: %w", fmt.Errorf("%w: page: %w", config.ErrInvalidValue, md2docx.ErrInvalidPage)), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints on stderr
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"config not found", fmt.Errorf("loading: %w", config.ErrConfigNotFound), "--config"},
		{"timeout", fmt.Errorf("%w: %w", md2docx.ErrHTMLConversion, context.DeadlineExceeded), "--timeout"},
		{"write", fmt.Errorf("%w: disk full", ErrWriteDOCX), "writable"},
		{"styles dir", fmt.Errorf("%w: not a directory", md2docx.ErrInvalidAssetPath), "--styles-dir"},
		{"no input", ErrNoInput, "for stdin"},
		{"no hint", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor(%v) = %q, want empty", tt.err, got)
				}
				return
			}
			if !strings.Contains(got, "hint:") || !strings.Contains(got, tt.want) {
				t.Errorf("hintFor(%v) = %q, want a hint containing %q", tt.err, got, tt.want)
			}
		})
	}
}
