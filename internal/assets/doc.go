// Package assets provides style profiles and the reference Word styles part.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in profiles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in profiles (academic, official,
// business, technical) and the reference styles.xml that defines the
// paragraph styles the HTML to DOCX builder emits.
//
// FilesystemLoader lets users ship their own profiles, or a reference
// styles.xml exported from a Word template, with path traversal protection
// and symlink resolution.
//
// AssetResolver is the loader used by the converter. A custom profile with
// the same slug shadows the embedded one; anything not found in the custom
// directory falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── profiles/
//	│   └── {slug}.yaml          # Style profile (e.g., academic.yaml)
//	└── docx/
//	    └── styles.xml           # Reference styles part
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
