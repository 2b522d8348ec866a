// Codec boundary backed by OpenCV imcodecs
package imgio

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"image-resolution-scaler/internal/core"
)

// Loader decodes and encodes image files through OpenCV. Decoded images are
// normalized to RGBA before they reach the kernel set, so indexed, grayscale
// and BGR layouts are all handled here, not in the engine.
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{logger: logger}
}

// SupportedExtensions lists the file extensions the codec accepts, suitable
// for file-dialog filters.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}
}

// IsSupportedPath reports whether the path's extension is one the codec
// accepts.
func IsSupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Load reads and decodes the image at path into an RGBA buffer.
func (l *Loader) Load(path string) (*image.RGBA, error) {
	if !IsSupportedPath(path) {
		return nil, fmt.Errorf("%w: unsupported extension %q",
			core.ErrInvalidImage, filepath.Ext(path))
	}

	// OpenCV imcodecs has no GIF support; GIF goes through the stdlib codec.
	if isGIF(path) {
		return l.loadGIF(path)
	}

	mat := gocv.IMRead(path, gocv.IMReadUnchanged)
	if mat.Empty() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidImage, path)
	}
	defer mat.Close()

	if ch := mat.Channels(); ch != 1 && ch != 3 && ch != 4 {
		return nil, fmt.Errorf("%w: %d channels", core.ErrUnsupportedFormat, ch)
	}

	decoded, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidImage, err)
	}
	pix := normalizeRGBA(decoded)

	if err := core.ValidateSource(pix); err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"path":     path,
		"width":    pix.Bounds().Dx(),
		"height":   pix.Bounds().Dy(),
		"channels": mat.Channels(),
	}).Info("Image loaded")

	return pix, nil
}

// Save encodes img to path, with the format keyed by the extension.
func (l *Loader) Save(img *image.RGBA, path string) error {
	if img == nil {
		return fmt.Errorf("%w: nothing to save", core.ErrEncodeFailure)
	}
	if !IsSupportedPath(path) {
		return fmt.Errorf("%w: unsupported extension %q",
			core.ErrEncodeFailure, filepath.Ext(path))
	}

	if isGIF(path) {
		return l.saveGIF(img, path)
	}

	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncodeFailure, err)
	}
	defer rgba.Close()

	// OpenCV encoders expect BGR channel order; alpha survives only in
	// formats that carry it.
	out := gocv.NewMat()
	defer out.Close()
	if hasAlphaChannel(path) {
		gocv.CvtColor(rgba, &out, gocv.ColorRGBAToBGRA)
	} else {
		gocv.CvtColor(rgba, &out, gocv.ColorRGBAToBGR)
	}

	if ok := gocv.IMWrite(path, out); !ok {
		return fmt.Errorf("%w: %s", core.ErrEncodeFailure, path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("Image saved")
	return nil
}

func isGIF(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".gif"
}

func (l *Loader) loadGIF(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidImage, err)
	}
	defer f.Close()

	decoded, err := gif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidImage, err)
	}
	pix := normalizeRGBA(decoded)

	if err := core.ValidateSource(pix); err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  pix.Bounds().Dx(),
		"height": pix.Bounds().Dy(),
	}).Info("Image loaded")

	return pix, nil
}

// saveGIF encodes through image/gif; the encoder palettizes the RGBA
// buffer itself.
func (l *Loader) saveGIF(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncodeFailure, err)
	}
	if err := gif.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", core.ErrEncodeFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrEncodeFailure, err)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("Image saved")
	return nil
}

// hasAlphaChannel reports whether the target format can store alpha.
func hasAlphaChannel(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".tif", ".tiff":
		return true
	}
	return false
}

// normalizeRGBA converts any decoded layout to a zero-origin RGBA buffer.
func normalizeRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return out
}
