package tool

import "errors"

// ErrMarkdownRequired is the only parameter error. Its text is shown to
// the caller verbatim.
//
//lint:ignore ST1005 shown to users as a sentence
var ErrMarkdownRequired = errors.New("Parameter 'markdown' is required and must be a string.")
