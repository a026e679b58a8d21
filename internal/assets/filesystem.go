package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads assets from a directory on the filesystem.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path so containment checks compare real paths
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// BasePath returns the resolved directory the loader reads from.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// LoadProfile loads a style profile from the filesystem.
// Looks for {basePath}/profiles/{slug}.yaml, then .yml.
func (f *FilesystemLoader) LoadProfile(slug string) ([]byte, error) {
	if err := ValidateAssetName(slug); err != nil {
		return nil, err
	}

	for _, ext := range profileExtensions {
		filePath := filepath.Join(f.basePath, "profiles", slug+ext)
		content, err := f.readContained(filePath)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, slug)
}

// ListProfiles returns the slugs found under {basePath}/profiles.
// A missing profiles directory yields an empty list.
func (f *FilesystemLoader) ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "profiles"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	seen := make(map[string]bool, len(entries))
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		slug, ok := slugFromFilename(entry.Name())
		if !ok || seen[slug] {
			continue
		}
		seen[slug] = true
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// LoadReferenceStyles loads {basePath}/docx/styles.xml.
func (f *FilesystemLoader) LoadReferenceStyles() ([]byte, error) {
	content, err := f.readContained(filepath.Join(f.basePath, "docx", "styles.xml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrReferenceStylesNotFound, f.basePath)
		}
		return nil, err
	}
	return content, nil
}

// readContained reads filePath after verifying it stays inside basePath.
// Not-exist errors are returned unwrapped so callers can fall through.
func (f *FilesystemLoader) readContained(filePath string) ([]byte, error) {
	if err := f.verifyPathContainment(filePath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fs.ErrNotExist
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return content, nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks so a link pointing outside basePath is rejected.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// If EvalSymlinks fails (file missing), the prefix check still runs on
	// the cleaned absolute path and the read fails afterwards.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
