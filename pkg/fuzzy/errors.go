package fuzzy

import "errors"

// Errors returned by the package. They are always wrapped with context,
// so callers should match them with errors.Is.
var (
	// ErrMixedSign reports a ULP distance requested across the zero boundary.
	ErrMixedSign = errors.New("mixed signs")

	// ErrBufferTooSmall reports a destination buffer that cannot hold an encoded value.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrTypeMismatch reports a hash request for a value of the wrong floating point type.
	ErrTypeMismatch = errors.New("type mismatch")
)
