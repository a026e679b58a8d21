package main

// Notes:
// - runDoctor: checks with the embedded styles, a broken styles directory,
//   a missing configured profile and an unwritable output directory.
// - isContainer: only env-based signals are asserted; /.dockerenv depends on
//   the machine running the tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	t.Run("embedded styles ready", func(t *testing.T) {
		t.Parallel()

		r := runDoctor(context.Background(), config.DefaultConfig(), nil)

		if r.Status != statusReady {
			t.Fatalf("Status = %q, warnings %v, errors %v", r.Status, r.Warnings, r.Errors)
		}
		if !r.Styles.Loaded || r.Styles.Source != "embedded" || len(r.Styles.Profiles) < 4 {
			t.Errorf("Styles = %+v", r.Styles)
		}
		if !r.Styles.ReferenceStyles {
			t.Error("embedded reference styles should load")
		}
		if !r.Conversion.OK || !r.Conversion.Styled || r.Conversion.Bytes == 0 {
			t.Errorf("Conversion = %+v", r.Conversion)
		}
		if r.Env.Workers < 1 || !r.System.TempWritable {
			t.Errorf("Env = %+v, System = %+v", r.Env, r.System)
		}
	})

	t.Run("configured profile by alias", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Profile = "official"
		r := runDoctor(context.Background(), cfg, nil)

		if !r.Styles.ConfiguredFound || r.Status != statusReady {
			t.Errorf("Styles = %+v, warnings %v", r.Styles, r.Warnings)
		}
	})

	t.Run("unknown configured profile warns", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style.Profile = "不存在"
		r := runDoctor(context.Background(), cfg, nil)

		if r.Status != statusWarnings {
			t.Errorf("Status = %q, want %q", r.Status, statusWarnings)
		}
		if len(r.Warnings) == 0 || !strings.Contains(r.Warnings[0], "不存在") {
			t.Errorf("Warnings = %v", r.Warnings)
		}
	})

	t.Run("missing styles dir is an error", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Assets.BasePath = filepath.Join(t.TempDir(), "nope")
		r := runDoctor(context.Background(), cfg, nil)

		if r.Status != statusErrors {
			t.Errorf("Status = %q, want %q", r.Status, statusErrors)
		}
		if r.Styles.Loaded || r.Conversion.OK {
			t.Errorf("nothing should load: %+v %+v", r.Styles, r.Conversion)
		}
	})

	t.Run("broken custom profile degrades to warnings", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "profiles", "broken.yaml"), "aliases: [x]\n")
		cfg := config.DefaultConfig()
		cfg.Assets.BasePath = dir
		r := runDoctor(context.Background(), cfg, nil)

		if r.Status != statusWarnings {
			t.Errorf("Status = %q, warnings %v, errors %v", r.Status, r.Warnings, r.Errors)
		}
		if r.Styles.Loaded {
			t.Error("registry should be reported unavailable")
		}
		if !r.Conversion.OK {
			t.Error("conversion should still succeed with built-in defaults")
		}
	})

	t.Run("invalid config is an error", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Page.Orientation = "sideways"
		r := runDoctor(context.Background(), cfg, nil)

		if r.Status != statusErrors {
			t.Errorf("Status = %q, want %q", r.Status, statusErrors)
		}
	})

	t.Run("output dir", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = t.TempDir()
		r := runDoctor(context.Background(), cfg, nil)
		if !r.System.OutputWritable {
			t.Errorf("System = %+v", r.System)
		}

		cfg.Output.DefaultDir = filepath.Join(t.TempDir(), "absent")
		r = runDoctor(context.Background(), cfg, nil)
		if r.System.OutputWritable || r.Status != statusWarnings {
			t.Errorf("System = %+v, Status = %q", r.System, r.Status)
		}
	})

	t.Run("ci detection", func(t *testing.T) {
		t.Parallel()

		r := runDoctor(context.Background(), config.DefaultConfig(), map[string]string{"GITHUB_ACTIONS": "true"})
		if !r.Env.CI {
			t.Error("CI not detected")
		}
	})
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat("/.dockerenv"); err == nil {
		t.Skip("running inside docker")
	}

	tests := []struct {
		name     string
		vars     map[string]string
		want     bool
		wantHint string
	}{
		{"explicit", map[string]string{"MD2DOCX_CONTAINER": "1"}, true, "MD2DOCX_CONTAINER=1"},
		{"podman", map[string]string{"container": "podman"}, true, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, true, "KUBERNETES_SERVICE_HOST"},
		{"none", map[string]string{"MD2DOCX_CONTAINER": "0"}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, hint := isContainer(tt.vars)
			if got != tt.want || hint != tt.wantHint {
				t.Errorf("isContainer() = (%v, %q), want (%v, %q)", got, hint, tt.want, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runDoctorCmd(context.Background(), nil, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d\n%s", code, env.stdout.String())
		}
		for _, want := range []string{"Styles", "[OK] Reference styles: loaded", "[OK] Sample converted", "Status: Ready to convert"} {
			if !strings.Contains(env.stdout.String(), want) {
				t.Errorf("output missing %q:\n%s", want, env.stdout.String())
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv("MD2DOCX_PROFILE=商务报告")
		if code := runDoctorCmd(context.Background(), []string{"--json"}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit = %d", code)
		}
		var r doctorResult
		if err := json.Unmarshal(env.stdout.Bytes(), &r); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if r.Styles.ConfiguredProfile != "商务报告" || !r.Styles.ConfiguredFound {
			t.Errorf("Styles = %+v", r.Styles)
		}
		if r.Styles.DefaultProfile != md2docx.DefaultProfile {
			t.Errorf("DefaultProfile = %q", r.Styles.DefaultProfile)
		}
	})

	t.Run("errors exit 1", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := runDoctorCmd(context.Background(), []string{"--styles-dir", filepath.Join(t.TempDir(), "nope")}, env.Environment)
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(env.stdout.String(), "Not ready") {
			t.Errorf("output:\n%s", env.stdout.String())
		}
	})

	t.Run("bad flag exit 2", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runDoctorCmd(context.Background(), []string{"--bogus"}, env.Environment); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}
