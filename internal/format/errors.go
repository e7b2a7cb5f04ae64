package format

import "errors"

var (
	// ErrInvalidValue indicates a string could not be parsed as a numeric value.
	ErrInvalidValue = errors.New("format: invalid numeric value")
)
