// Error taxonomy for the resize engine
package core

import "errors"

// All engine failures are recoverable: a failed operation reports one of
// these and leaves the session state untouched.
var (
	// ErrInvalidImage means the source file could not be decoded.
	ErrInvalidImage = errors.New("invalid or unreadable image")

	// ErrNoImageLoaded means a scale or render operation was attempted
	// before any image was loaded.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrUnsupportedFormat means the pixel layout is not one the kernel set
	// handles; such images must be normalized to RGBA upstream.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrDimensionOverflow means the target buffer would exceed the
	// configured safety ceiling.
	ErrDimensionOverflow = errors.New("target dimensions exceed safety ceiling")

	// ErrEncodeFailure means the save-path codec rejected the image.
	ErrEncodeFailure = errors.New("failed to encode image")
)
