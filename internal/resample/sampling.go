// Shared sampling helpers for the kernel implementations
package resample

import (
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"
)

// texelAt reads the source pixel at (x, y) with clamp-to-edge semantics:
// out-of-bounds coordinates replicate the nearest edge pixel.
func texelAt(src *image.RGBA, x, y int) color.RGBA {
	b := src.Bounds()
	if x < 0 {
		x = 0
	} else if x > b.Dx()-1 {
		x = b.Dx() - 1
	}
	if y < 0 {
		y = 0
	} else if y > b.Dy()-1 {
		y = b.Dy() - 1
	}
	return src.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// clamp8 rounds v and clamps it to the valid channel range [0, 255].
func clamp8(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(math.Round(v))
}

// setRGBA writes one destination pixel from float channel values.
func setRGBA(dst *image.RGBA, x, y int, r, g, b, a float64) {
	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = clamp8(r)
	dst.Pix[i+1] = clamp8(g)
	dst.Pix[i+2] = clamp8(b)
	dst.Pix[i+3] = clamp8(a)
}

// forEachRow distributes the row range [0, height) over worker goroutines.
// Each worker owns a disjoint contiguous band of rows, so kernels need no
// synchronization while writing the destination buffer.
func forEachRow(height int, fn func(yStart, yEnd int)) {
	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	chunk := (height + workers - 1) / workers
	for start := 0; start < height; start += chunk {
		end := start + chunk
		if end > height {
			end = height
		}
		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			fn(yStart, yEnd)
		}(start, end)
	}
	wg.Wait()
}
