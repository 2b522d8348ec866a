package resample

import (
	"image"
	"math"
)

// bicubicKernel performs cubic convolution over a 4x4 source neighborhood
// using the Catmull-Rom spline (the a = -0.5 cubic family). The coefficients
// are fixed; changing them would change rendered output between releases.
type bicubicKernel struct{}

func (k *bicubicKernel) Name() string { return "Bicubic" }

func (k *bicubicKernel) Description() string {
	return "Catmull-Rom cubic convolution over a 4x4 neighborhood"
}

// catmullRom evaluates the Catmull-Rom spline at fractional offset u given
// the four samples p[0]..p[3] surrounding the interval [p[1], p[2]].
func catmullRom(u float64, p *[4]float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * ((-p[0]+3*p[1]-3*p[2]+p[3])*u3 +
		(2*p[0]-5*p[1]+4*p[2]-p[3])*u2 +
		(-p[0]+p[2])*u +
		2*p[1])
}

func (k *bicubicKernel) Resample(src *image.RGBA, dstW, dstH int) *image.RGBA {
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

				// Interpolate each neighborhood row along x, then the
				// resulting column along y, separately per channel.
				var colR, colG, colB, colA [4]float64
				for i := 0; i < 4; i++ {
					var pr, pg, pb, pa [4]float64
					for j := 0; j < 4; j++ {
						c := texelAt(src, x0-1+j, y0-1+i)
						pr[j] = float64(c.R)
						pg[j] = float64(c.G)
						pb[j] = float64(c.B)
						pa[j] = float64(c.A)
					}
					colR[i] = catmullRom(fx, &pr)
					colG[i] = catmullRom(fx, &pg)
					colB[i] = catmullRom(fx, &pb)
					colA[i] = catmullRom(fx, &pa)
				}

				setRGBA(dst, x, y,
					catmullRom(fy, &colR),
					catmullRom(fy, &colG),
					catmullRom(fy, &colB),
					catmullRom(fy, &colA))
			}
		}
	})

	return dst
}
