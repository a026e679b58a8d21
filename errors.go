package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/styles"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrDOCXGeneration = errors.New("DOCX generation failed")

	// Page override validation errors.
	ErrInvalidPage = styles.ErrInvalidPage

	// Style registry errors.
	ErrRegistryUnavailable = errors.New("style registry unavailable")

	// Asset loading errors.
	ErrProfileNotFound         = errors.New("style profile not found")
	ErrReferenceStylesNotFound = errors.New("reference styles not found")
	ErrInvalidAssetPath        = errors.New("invalid asset path")
)
