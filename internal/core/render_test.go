package core

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"image-resolution-scaler/internal/resample"
)

func testSource(t *testing.T, w, h int) *SourceImage {
	t.Helper()
	pix := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix.SetRGBA(x, y, color.RGBA{
				R: uint8((x * 7) % 256),
				G: uint8((y * 13) % 256),
				B: uint8((x*y + 3) % 256),
				A: 255,
			})
		}
	}
	source, err := NewSourceImage(pix, "test.png")
	require.NoError(t, err)
	return source
}

func TestRender_IdentityDimensionsAtNaturalScale(t *testing.T) {
	source := testSource(t, 200, 100)
	for _, m := range resample.Methods() {
		rendered, err := Render(source, DefaultTick, m, 0)
		require.NoError(t, err, m.String())
		require.Equal(t, 200, rendered.Width, m.String())
		require.Equal(t, 100, rendered.Height, m.String())
	}
}

func TestRender_MinimumSizeGuard(t *testing.T) {
	source := testSource(t, 10, 10)
	rendered, err := Render(source, MinTick, resample.Bicubic, 0)
	require.NoError(t, err)
	require.Equal(t, 1, rendered.Width)
	require.Equal(t, 1, rendered.Height)
}

func TestRender_Deterministic(t *testing.T) {
	source := testSource(t, 33, 21)
	for _, m := range resample.Methods() {
		first, err := Render(source, 47, m, 0)
		require.NoError(t, err)
		second, err := Render(source, 47, m, 0)
		require.NoError(t, err)
		require.True(t, bytes.Equal(first.Image.Pix, second.Image.Pix),
			"%s: repeated render not bit-identical", m)
	}
}

func TestRender_NilSource(t *testing.T) {
	_, err := Render(nil, DefaultTick, resample.Bicubic, 0)
	require.ErrorIs(t, err, ErrNoImageLoaded)
}

func TestRender_TickOutOfRange(t *testing.T) {
	source := testSource(t, 8, 8)
	_, err := Render(source, 0, resample.Bicubic, 0)
	require.Error(t, err)
	_, err = Render(source, MaxTick+1, resample.Bicubic, 0)
	require.Error(t, err)
}

func TestRender_DimensionOverflow(t *testing.T) {
	source := testSource(t, 100, 100)
	// 2.00x would need 200*200 = 40000 pixels
	_, err := Render(source, 40, resample.Nearest, 30000)
	require.ErrorIs(t, err, ErrDimensionOverflow)

	// at the natural scale the same ceiling is fine
	rendered, err := Render(source, DefaultTick, resample.Nearest, 30000)
	require.NoError(t, err)
	require.Equal(t, 100, rendered.Width)
}

func TestRender_NearestDoublingIsExactBlocks(t *testing.T) {
	source := testSource(t, 16, 9)
	rendered, err := Render(source, 40, resample.Nearest, 0)
	require.NoError(t, err)
	require.Equal(t, 32, rendered.Width)
	require.Equal(t, 18, rendered.Height)

	src := source.RGBA()
	for y := 0; y < 18; y++ {
		for x := 0; x < 32; x++ {
			require.Equal(t, src.RGBAAt(x/2, y/2), rendered.Image.RGBAAt(x, y),
				"pixel (%d,%d) is not part of a clean 2x2 block", x, y)
		}
	}
}
