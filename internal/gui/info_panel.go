// Size info table and interpolation indicator
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-resolution-scaler/internal/core"
)

// InfoPanel shows the four-row size table (scale factor, original size,
// scaled size, size in frame) plus the interpolation-method indicator that
// appears only while the image is upscaled.
type InfoPanel struct {
	logger *logrus.Logger

	scaleValue     *widget.Label
	originalValue  *widget.Label
	scaledValue    *widget.Label
	displayedValue *widget.Label
	methodLabel    *widget.Label

	container *fyne.Container
}

func NewInfoPanel(logger *logrus.Logger) *InfoPanel {
	ip := &InfoPanel{logger: logger}
	ip.initializeUI()
	return ip
}

func (ip *InfoPanel) initializeUI() {
	ip.scaleValue = widget.NewLabel("-")
	ip.originalValue = widget.NewLabel("-")
	ip.scaledValue = widget.NewLabel("-")
	ip.displayedValue = widget.NewLabel("-")

	ip.methodLabel = widget.NewLabel("")
	ip.methodLabel.TextStyle = fyne.TextStyle{Bold: true}
	ip.methodLabel.Importance = widget.DangerImportance
	ip.methodLabel.Hide()

	grid := container.NewGridWithColumns(2,
		widget.NewLabel("Scale:"), ip.scaleValue,
		widget.NewLabel("Original size:"), ip.originalValue,
		widget.NewLabel("Current size (with scale):"), ip.scaledValue,
		widget.NewLabel("Size in frame:"), ip.displayedValue,
	)

	ip.container = container.NewVBox(
		container.NewCenter(grid),
		ip.methodLabel,
	)
}

func (ip *InfoPanel) GetContainer() fyne.CanvasObject {
	return ip.container
}

// Update refreshes the table from a size report. Must run on the UI thread.
func (ip *InfoPanel) Update(report core.SizeReport) {
	ip.scaleValue.SetText(fmt.Sprintf("%.2fx", report.Factor))
	ip.originalValue.SetText(report.Original.String())
	ip.scaledValue.SetText(report.Scaled.String())
	ip.displayedValue.SetText(report.Displayed.String())

	if report.MethodLabel != "" {
		ip.methodLabel.SetText("Interpolation method: " + report.MethodLabel)
		ip.methodLabel.Show()
	} else {
		ip.methodLabel.Hide()
	}
}

// Clear returns the table to its unloaded state.
func (ip *InfoPanel) Clear() {
	for _, label := range []*widget.Label{
		ip.scaleValue, ip.originalValue, ip.scaledValue, ip.displayedValue,
	} {
		label.SetText("-")
	}
	ip.methodLabel.Hide()
}
