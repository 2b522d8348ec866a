package resample

import (
	"image"
	"math"
)

// bilinearKernel interpolates linearly over the 2x2 source neighborhood
// around each target pixel center. Samples outside the source replicate the
// edge pixel.
type bilinearKernel struct{}

func (k *bilinearKernel) Name() string { return "Bilinear" }

func (k *bilinearKernel) Description() string {
	return "Linear interpolation over the four nearest source pixels"
}

func (k *bilinearKernel) Resample(src *image.RGBA, dstW, dstH int) *image.RGBA {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	forEachRow(dstH, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			sy := (float64(y)+0.5)*scaleY - 0.5
			y0 := int(math.Floor(sy))
			fy := sy - float64(y0)

			for x := 0; x < dstW; x++ {
				sx := (float64(x)+0.5)*scaleX - 0.5
				x0 := int(math.Floor(sx))
				fx := sx - float64(x0)

				c00 := texelAt(src, x0, y0)
				c10 := texelAt(src, x0+1, y0)
				c01 := texelAt(src, x0, y0+1)
				c11 := texelAt(src, x0+1, y0+1)

				top := [4]float64{
					float64(c00.R)*(1-fx) + float64(c10.R)*fx,
					float64(c00.G)*(1-fx) + float64(c10.G)*fx,
					float64(c00.B)*(1-fx) + float64(c10.B)*fx,
					float64(c00.A)*(1-fx) + float64(c10.A)*fx,
				}
				bottom := [4]float64{
					float64(c01.R)*(1-fx) + float64(c11.R)*fx,
					float64(c01.G)*(1-fx) + float64(c11.G)*fx,
					float64(c01.B)*(1-fx) + float64(c11.B)*fx,
					float64(c01.A)*(1-fx) + float64(c11.A)*fx,
				}

				setRGBA(dst, x, y,
					top[0]*(1-fy)+bottom[0]*fy,
					top[1]*(1-fy)+bottom[1]*fy,
					top[2]*(1-fy)+bottom[2]*fy,
					top[3]*(1-fy)+bottom[3]*fy)
			}
		}
	})

	return dst
}
