package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned for window types or names with no shape.
	ErrUnknownType = errors.New("window: unknown window type")

	errMismatchedLength = errors.New("window: buffer and window must have same length")
)

func unknownType(t Type) error {
	return fmt.Errorf("%w: %d", ErrUnknownType, int(t))
}

func unknownName(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}
