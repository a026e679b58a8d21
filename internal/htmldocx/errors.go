package htmldocx

import "errors"

var (
	ErrParseHTML    = errors.New("htmldocx: parse HTML")
	ErrPackDocument = errors.New("htmldocx: pack document")
)
