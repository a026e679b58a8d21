package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver == nil {
			t.Fatal("NewAssetResolver() returned nil")
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadProfile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "profiles/academic.yaml", "name: 本校论文\n")
	writeAsset(t, tmpDir, "profiles/memo.yaml", "name: 备忘录\n")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name        string
		slug        string
		wantErr     error
		wantContain string
	}{
		{
			name:        "custom shadows embedded",
			slug:        "academic",
			wantContain: "本校论文",
		},
		{
			name:        "custom only profile",
			slug:        "memo",
			wantContain: "备忘录",
		},
		{
			name:        "falls back to embedded",
			slug:        "official",
			wantContain: "仿宋_GB2312",
		},
		{
			name:    "unknown everywhere",
			slug:    "nonexistent",
			wantErr: ErrProfileNotFound,
		},
		{
			name:    "invalid name does not fall back",
			slug:    "../official",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadProfile(tt.slug)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadProfile(%q) error = %v, want %v", tt.slug, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadProfile(%q) unexpected error: %v", tt.slug, err)
			}
			if !strings.Contains(string(got), tt.wantContain) {
				t.Errorf("LoadProfile(%q) = %q, want it to contain %q", tt.slug, got, tt.wantContain)
			}
		})
	}
}

func TestAssetResolver_LoadProfile_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	got, err := resolver.LoadProfile("technical")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if !strings.Contains(string(got), "技术文档") {
		t.Errorf("LoadProfile(technical) = %q", got)
	}
}

func TestAssetResolver_LoadReferenceStyles(t *testing.T) {
	t.Parallel()

	t.Run("custom styles.xml wins", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, "docx/styles.xml", "<w:styles>custom</w:styles>")

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		got, err := resolver.LoadReferenceStyles()
		if err != nil {
			t.Fatalf("LoadReferenceStyles() error = %v", err)
		}
		if string(got) != "<w:styles>custom</w:styles>" {
			t.Errorf("LoadReferenceStyles() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded when missing", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		got, err := resolver.LoadReferenceStyles()
		if err != nil {
			t.Fatalf("LoadReferenceStyles() error = %v", err)
		}
		if !strings.Contains(string(got), `w:styleId="Heading1"`) {
			t.Error("expected embedded reference styles")
		}
	})
}

func TestAssetResolver_LoadProfile_ReadErrorDoesNotFallBack(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	outside := t.TempDir()
	writeAsset(t, outside, "official.yaml", "name: outside\n")

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "profiles"), 0o755); err != nil {
		t.Fatalf("failed to create profiles dir: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "official.yaml"), filepath.Join(base, "profiles", "official.yaml")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	resolver, err := NewAssetResolver(base)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadProfile("official")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadProfile() error = %v, want ErrPathTraversal without embedded fallback", err)
	}
}

func TestAssetResolver_ListProfiles(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		got, err := resolver.ListProfiles()
		if err != nil {
			t.Fatalf("ListProfiles() error = %v", err)
		}
		if strings.Join(got, ",") != "academic,business,official,technical" {
			t.Errorf("ListProfiles() = %v", got)
		}
	})

	t.Run("union with custom", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, "profiles/academic.yaml", "name: x\n")
		writeAsset(t, tmpDir, "profiles/memo.yml", "name: y\n")

		resolver, err := NewAssetResolver(tmpDir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}

		got, err := resolver.ListProfiles()
		if err != nil {
			t.Fatalf("ListProfiles() error = %v", err)
		}
		want := "academic,business,memo,official,technical"
		if strings.Join(got, ",") != want {
			t.Errorf("ListProfiles() = %v, want %s", got, want)
		}
	})
}

func TestAssetResolver_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()

	var _ AssetLoader = (*AssetResolver)(nil)
}
