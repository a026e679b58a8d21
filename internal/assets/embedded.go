package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed profiles/*.yaml
var profiles embed.FS

//go:embed docx/styles.xml
var referenceStyles []byte

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadProfile loads a built-in style profile by slug.
func (e *EmbeddedLoader) LoadProfile(slug string) ([]byte, error) {
	if err := ValidateAssetName(slug); err != nil {
		return nil, err
	}

	content, err := profiles.ReadFile("profiles/" + slug + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, slug)
	}

	return content, nil
}

// ListProfiles returns the slugs of the built-in profiles.
func (e *EmbeddedLoader) ListProfiles() ([]string, error) {
	entries, err := fs.ReadDir(profiles, "profiles")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if slug, ok := slugFromFilename(entry.Name()); ok && !entry.IsDir() {
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// LoadReferenceStyles returns the built-in styles.xml.
func (e *EmbeddedLoader) LoadReferenceStyles() ([]byte, error) {
	out := make([]byte, len(referenceStyles))
	copy(out, referenceStyles)
	return out, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
