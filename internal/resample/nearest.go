package resample

import (
	"image"
	"math"
)

// nearestKernel copies the source pixel whose center is closest to each
// target pixel. It never introduces color values absent from the source,
// which keeps hard edges intact; an integer scale factor k turns every
// source pixel into an exact k-by-k block.
type nearestKernel struct{}

func (k *nearestKernel) Name() string { return "Nearest" }

func (k *nearestKernel) Description() string {
	return "Nearest-neighbor sampling; preserves hard edges and introduces no new colors"
}

func (k *nearestKernel) Resample(src *image.RGBA, dstW, dstH int) *image.RGBA {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	forEachRow(dstH, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			sy := int(math.Floor((float64(y) + 0.5) * scaleY))
			for x := 0; x < dstW; x++ {
				sx := int(math.Floor((float64(x) + 0.5) * scaleX))
				c := texelAt(src, sx, sy)
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	})

	return dst
}
