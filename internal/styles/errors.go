package styles

import "errors"

// Sentinel errors for template loading and validation.
var (
	ErrInvalidTemplate  = errors.New("invalid style template")
	ErrDuplicateProfile = errors.New("duplicate style profile name")
	ErrRegistryLoad     = errors.New("style registry unavailable")
	ErrInvalidPage      = errors.New("invalid page settings")
)
