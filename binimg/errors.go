package binimg

import "errors"

// Structural and configuration errors are fatal: callers are expected to
// abort composition rather than continue with a broken layout. All errors
// raised by this package wrap one of these sentinels so callers can
// distinguish the failure kind with errors.Is.
var (
	// ErrPattern indicates a fill pattern specification is neither a
	// recognized token nor a parseable numeric literal.
	ErrPattern = errors.New("binimg: unsupported pattern")
	// ErrFit indicates a sub-image range extends beyond its parent's bounds.
	ErrFit = errors.New("binimg: image does not fit parent")
	// ErrOverlap indicates two sibling image ranges share bytes.
	ErrOverlap = errors.New("binimg: images overlap")
	// ErrNoChildren indicates an operation requiring sub-images was called
	// on an image without any.
	ErrNoChildren = errors.New("binimg: image has no sub-images")
	// ErrLoad indicates an external source file could not be decoded.
	ErrLoad = errors.New("binimg: cannot load image")
)
