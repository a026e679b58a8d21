package assets

import (
	"errors"
	"sort"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadProfile loads a profile, trying the custom loader first if available.
func (r *AssetResolver) LoadProfile(slug string) ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadProfile(slug)
	})
}

// LoadReferenceStyles loads styles.xml, trying the custom loader first.
func (r *AssetResolver) LoadReferenceStyles() ([]byte, error) {
	return r.loadWithFallback(func(loader AssetLoader) ([]byte, error) {
		return loader.LoadReferenceStyles()
	})
}

// ListProfiles returns the union of custom and embedded slugs, sorted.
func (r *AssetResolver) ListProfiles() ([]string, error) {
	slugs, err := r.embedded.ListProfiles()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return slugs, nil
	}

	customSlugs, err := r.custom.ListProfiles()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(slugs)+len(customSlugs))
	merged := make([]string, 0, len(slugs)+len(customSlugs))
	for _, s := range append(slugs, customSlugs...) {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) ([]byte, error)) ([]byte, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return nil, err
	}

	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrReferenceStylesNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
