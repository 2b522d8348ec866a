// Source image container with validation
package core

import (
	"fmt"
	"image"
)

// Per-axis ceiling, same guard the loader applies. Prevents absurd
// allocations from corrupt headers.
const maxSourceDimension = 16384

// SourceImage is the originally loaded image. It is immutable once created:
// every render reads from it and never from a previously scaled output, so
// interpolation error cannot compound across scale steps. A new load replaces
// the whole value.
type SourceImage struct {
	pix    *image.RGBA
	width  int
	height int
	path   string
}

// NewSourceImage validates and wraps a decoded RGBA buffer.
func NewSourceImage(pix *image.RGBA, path string) (*SourceImage, error) {
	if err := ValidateSource(pix); err != nil {
		return nil, err
	}
	return &SourceImage{
		pix:    pix,
		width:  pix.Bounds().Dx(),
		height: pix.Bounds().Dy(),
		path:   path,
	}, nil
}

func (s *SourceImage) Width() int   { return s.width }
func (s *SourceImage) Height() int  { return s.height }
func (s *SourceImage) Path() string { return s.path }

// RGBA returns the underlying pixel buffer. Callers must treat it as
// read-only; it is shared across concurrent renders.
func (s *SourceImage) RGBA() *image.RGBA { return s.pix }

// ValidateSource checks that a decoded buffer is usable by the kernel set.
func ValidateSource(pix *image.RGBA) error {
	if pix == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidImage)
	}

	w, h := pix.Bounds().Dx(), pix.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidImage, w, h)
	}
	if w > maxSourceDimension || h > maxSourceDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d per axis",
			ErrInvalidImage, w, h, maxSourceDimension)
	}
	if len(pix.Pix) < w*h*4 {
		return fmt.Errorf("%w: truncated pixel buffer", ErrUnsupportedFormat)
	}
	return nil
}
