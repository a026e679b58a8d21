package md2docx

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2docx/internal/assets"
)

// AssetLoader defines the contract for loading style profiles and the
// reference styles part. Implementations may load from the filesystem,
// embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadProfile loads a profile YAML document by slug (without extension).
	// Returns ErrProfileNotFound if the profile doesn't exist.
	LoadProfile(slug string) ([]byte, error)

	// ListProfiles returns the slugs of all available profiles.
	ListProfiles() ([]string, error)

	// LoadReferenceStyles returns the word/styles.xml part used for new
	// documents. Returns ErrReferenceStylesNotFound if there is none.
	LoadReferenceStyles() ([]byte, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - profiles/{slug}.yaml for style profiles
//   - docx/styles.xml for the reference styles
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal AssetResolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadProfile(slug string) ([]byte, error) {
	data, err := a.resolver.LoadProfile(slug)
	return data, convertAssetError(err)
}

func (a *assetLoaderAdapter) ListProfiles() ([]string, error) {
	slugs, err := a.resolver.ListProfiles()
	return slugs, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadReferenceStyles() ([]byte, error) {
	data, err := a.resolver.LoadReferenceStyles()
	return data, convertAssetError(err)
}

// publicToInternalAdapter wraps a public AssetLoader so internal packages
// see the internal sentinel errors.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadProfile(slug string) ([]byte, error) {
	data, err := a.pub.LoadProfile(slug)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("%w: %v", assets.ErrProfileNotFound, err)
	}
	return data, err
}

func (a *publicToInternalAdapter) ListProfiles() ([]string, error) {
	return a.pub.ListProfiles()
}

func (a *publicToInternalAdapter) LoadReferenceStyles() ([]byte, error) {
	data, err := a.pub.LoadReferenceStyles()
	if errors.Is(err, ErrReferenceStylesNotFound) {
		return nil, fmt.Errorf("%w: %v", assets.ErrReferenceStylesNotFound, err)
	}
	return data, err
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrProfileNotFound):
		return fmt.Errorf("%w: %v", ErrProfileNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %v", ErrProfileNotFound, err) // invalid name means not found
	case errors.Is(err, assets.ErrReferenceStylesNotFound):
		return fmt.Errorf("%w: %v", ErrReferenceStylesNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return err
	}
}
