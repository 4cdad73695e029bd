package transform

import "errors"

// Errors returned by transform preparation and execution.
var (
	ErrInvalidSize        = errors.New("transform: size must be a power of two >= 2")
	ErrInvalidSampleRate  = errors.New("transform: sample rate must be positive")
	ErrInvalidDenominator = errors.New("transform: log window denominator must be positive")
	ErrNotPrepared        = errors.New("transform: Prepare must be called after configuration changes")
	ErrWrongType          = errors.New("transform: operation not available for this transform type")
	ErrUnknownBackend     = errors.New("transform: unknown backend")
)
