package styler

import "errors"

var (
	ErrParseDocument = errors.New("styler: parse document")
	ErrWriteDocument = errors.New("styler: write document")
	ErrPanic         = errors.New("styler: panic while styling")
)
