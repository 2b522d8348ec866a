// Size report formatter for presentation layers
package core

import (
	"fmt"

	"image-resolution-scaler/internal/resample"
)

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%d×%d px", d.Width, d.Height)
}

// SizeReport is the read-only record a presentation layer needs to describe
// the current scale step: the native size, the true scaled size, and the
// size after any viewport fit. Scaled is always the engine's real output
// size regardless of how the UI clamps the display.
type SizeReport struct {
	Original  Dimensions
	Scaled    Dimensions
	Displayed Dimensions

	Factor     float64
	IsUpscaled bool

	// MethodLabel names the active interpolation method, populated only
	// when the image is upscaled.
	MethodLabel string
}

// BuildSizeReport derives a report from the original and scaled sizes.
// When viewport is non-nil, Displayed is the largest size that fits inside
// it while preserving the aspect ratio of Scaled; otherwise Displayed equals
// Scaled.
func BuildSizeReport(original, scaled Dimensions, viewport *Dimensions, tick int, method resample.Method) SizeReport {
	report := SizeReport{
		Original:   original,
		Scaled:     scaled,
		Displayed:  scaled,
		Factor:     TickFactor(tick),
		IsUpscaled: tick > DefaultTick,
	}
	if viewport != nil {
		report.Displayed = fitWithin(scaled, *viewport)
	}
	if report.IsUpscaled {
		report.MethodLabel = method.String()
	}
	return report
}

// fitWithin shrinks d to fit inside bound, preserving aspect ratio. A size
// already inside the bound is returned unchanged; the result never rounds
// below one pixel.
func fitWithin(d, bound Dimensions) Dimensions {
	if bound.Width <= 0 || bound.Height <= 0 {
		return d
	}
	if d.Width <= bound.Width && d.Height <= bound.Height {
		return d
	}

	scaleW := float64(bound.Width) / float64(d.Width)
	scaleH := float64(bound.Height) / float64(d.Height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	fitted := Dimensions{
		Width:  int(float64(d.Width)*scale + 0.5),
		Height: int(float64(d.Height)*scale + 0.5),
	}
	if fitted.Width > bound.Width {
		fitted.Width = bound.Width
	}
	if fitted.Height > bound.Height {
		fitted.Height = bound.Height
	}
	if fitted.Width < 1 {
		fitted.Width = 1
	}
	if fitted.Height < 1 {
		fitted.Height = 1
	}
	return fitted
}
