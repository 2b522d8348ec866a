package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

// Viewer displays the rendered image fitted into the available frame.
// Fitting is visual only; the engine keeps the full-resolution pixels.
type Viewer struct {
	logger      *logrus.Logger
	image       *canvas.Image
	placeholder *widget.Label
	container   *fyne.Container
}

func NewViewer(logger *logrus.Logger) *Viewer {
	v := &Viewer{logger: logger}
	v.initializeUI()
	return v
}

func (v *Viewer) initializeUI() {
	v.image = &canvas.Image{}
	v.image.FillMode = canvas.ImageFillContain
	v.image.SetMinSize(fyne.NewSize(300, 300))
	v.image.Hide()

	v.placeholder = widget.NewLabel("Load an image to begin")
	v.placeholder.Alignment = fyne.TextAlignCenter

	v.container = container.NewStack(v.placeholder, v.image)
}

func (v *Viewer) GetContainer() fyne.CanvasObject {
	return v.container
}

// UpdateImage swaps in a freshly rendered image and refreshes the canvas.
func (v *Viewer) UpdateImage(img image.Image) {
	if img == nil {
		return
	}
	v.image.Image = img
	v.image.Show()
	v.placeholder.Hide()
	v.image.Refresh()

	bounds := img.Bounds()
	v.logger.WithFields(logrus.Fields{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Viewer updated")
}

// FrameSize reports the current on-screen frame in pixels, used as the
// viewport for displayed-size reporting. Zero before the first layout pass.
func (v *Viewer) FrameSize() (int, int) {
	size := v.container.Size()
	return int(size.Width), int(size.Height)
}
