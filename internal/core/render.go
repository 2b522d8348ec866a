// Resize orchestrator: tick + method -> rendered buffer
package core

import (
	"fmt"
	"image"

	"image-resolution-scaler/internal/resample"
)

// DefaultMaxOutputPixels bounds the render target buffer (width * height).
// 2^26 pixels is 256 MiB of RGBA, comfortably above any 3.00x upscale of a
// sane photograph while still rejecting corrupt or hostile sizes.
const DefaultMaxOutputPixels = 1 << 26

// RenderedImage is the ephemeral output of one render: a pixel buffer plus
// the parameters that produced it. It is recomputed from the SourceImage on
// every scale or method change and never used as a resize input itself.
type RenderedImage struct {
	Image  *image.RGBA
	Width  int
	Height int
	Tick   int
	Method resample.Method
}

// Render resamples source to the target dimensions implied by tick using the
// requested method. It is deterministic: identical (source, tick, method)
// inputs produce bit-identical buffers, so callers may cache results freely.
func Render(source *SourceImage, tick int, method resample.Method, maxPixels int) (*RenderedImage, error) {
	if source == nil {
		return nil, fmt.Errorf("render: %w", ErrNoImageLoaded)
	}
	if tick < MinTick || tick > MaxTick {
		return nil, fmt.Errorf("render: tick %d outside [%d, %d]", tick, MinTick, MaxTick)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxOutputPixels
	}

	dstW := scaleDim(source.Width(), tick)
	dstH := scaleDim(source.Height(), tick)
	if dstW*dstH > maxPixels {
		return nil, fmt.Errorf("render %dx%d at %.2fx: %w",
			dstW, dstH, TickFactor(tick), ErrDimensionOverflow)
	}

	if _, exists := resample.Get(method); !exists {
		return nil, fmt.Errorf("render: method %s: %w", method, ErrUnsupportedFormat)
	}

	out, err := resample.Resample(method, source.RGBA(), dstW, dstH)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &RenderedImage{
		Image:  out,
		Width:  dstW,
		Height: dstH,
		Tick:   tick,
		Method: method,
	}, nil
}
