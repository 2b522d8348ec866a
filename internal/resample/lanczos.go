package resample

import (
	"image"
	"math"
)

// lanczosSupport is the window radius of the sinc kernel. Lanczos-3 is the
// conventional choice; it is fixed so identical inputs keep producing
// identical outputs across releases.
const lanczosSupport = 3.0

// lanczosKernel performs windowed-sinc convolution over a 6x6 source
// neighborhood per target pixel, with weight normalization so uniform areas
// stay uniform.
type lanczosKernel struct{}

func (k *lanczosKernel) Name() string { return "Lanczos" }

func (k *lanczosKernel) Description() string {
	return "Lanczos-3 windowed-sinc convolution"
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

// lanczosWeight is the Lanczos window value at distance x from the sample
// center, zero outside the support radius.
func lanczosWeight(x float64) float64 {
	x = math.Abs(x)
	if x >= lanczosSupport {
		return 0
	}
	return sinc(x) * sinc(x/lanczosSupport)
}

func (k *lanczosKernel) Resample(src *image.RGBA, dstW, dstH int) *image.RGBA {
	srcW := src.Bounds().Dx()
	srcH := src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	forEachRow(dstH, func(yStart, yEnd int) {
		for y := yStart; y < yEnd; y++ {
			sy := (float64(y)+0.5)*scaleY - 0.5
			yMin := int(math.Floor(sy - lanczosSupport + 1))
			yMax := int(math.Ceil(sy + lanczosSupport - 1))

			for x := 0; x < dstW; x++ {
				sx := (float64(x)+0.5)*scaleX - 0.5
				xMin := int(math.Floor(sx - lanczosSupport + 1))
				xMax := int(math.Ceil(sx + lanczosSupport - 1))

				var sumR, sumG, sumB, sumA, sumW float64
				for yi := yMin; yi <= yMax; yi++ {
					wy := lanczosWeight(float64(yi) - sy)
					if wy == 0 {
						continue
					}
					for xi := xMin; xi <= xMax; xi++ {
						w := wy * lanczosWeight(float64(xi)-sx)
						if w == 0 {
							continue
						}
						c := texelAt(src, xi, yi)
						sumR += float64(c.R) * w
						sumG += float64(c.G) * w
						sumB += float64(c.B) * w
						sumA += float64(c.A) * w
						sumW += w
					}
				}
				if sumW == 0 {
					sumW = 1
				}

				setRGBA(dst, x, y, sumR/sumW, sumG/sumW, sumB/sumW, sumA/sumW)
			}
		}
	})

	return dst
}
