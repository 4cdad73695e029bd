package windowing

import "errors"

var (
	// ErrUnknownMode is returned by ParseMode for unrecognised names.
	ErrUnknownMode = errors.New("windowing: unknown mode")
	// ErrUnknownDomain is returned by ParseDomain for unrecognised names.
	ErrUnknownDomain = errors.New("windowing: unknown domain")
)
