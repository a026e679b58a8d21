package assets

// AssetLoader defines the contract for loading style profiles and the
// reference styles part. Implementations may load from embedded assets,
// the filesystem, or any other store.
type AssetLoader interface {
	// LoadProfile loads a style profile document by slug (without extension).
	// Returns ErrProfileNotFound if the profile doesn't exist.
	// Returns ErrInvalidAssetName if the slug contains invalid characters.
	LoadProfile(slug string) ([]byte, error)

	// ListProfiles returns the slugs of all available profiles, sorted.
	ListProfiles() ([]string, error)

	// LoadReferenceStyles returns the word/styles.xml part for new documents.
	// Returns ErrReferenceStylesNotFound if the loader has none.
	LoadReferenceStyles() ([]byte, error)
}

// Profile file extensions, in lookup order.
var profileExtensions = []string{".yaml", ".yml"}
