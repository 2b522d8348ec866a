// Control panel with scale stepping, method selection and file actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"image-resolution-scaler/internal/resample"
)

// ControlPanel holds the button row and the interpolation-method selector.
// The Application wires the callbacks; the panel only owns widget state.
type ControlPanel struct {
	logger *logrus.Logger

	loadBtn     *widget.Button
	decreaseBtn *widget.Button
	increaseBtn *widget.Button
	saveBtn     *widget.Button
	methodSel   *widget.Select

	container *fyne.Container

	onLoad          func()
	onDecrease      func()
	onIncrease      func()
	onSave          func()
	onMethodChanged func(resample.Method)
}

func NewControlPanel(defaultMethod resample.Method, logger *logrus.Logger) *ControlPanel {
	cp := &ControlPanel{logger: logger}
	cp.initializeUI(defaultMethod)
	return cp
}

func (cp *ControlPanel) initializeUI(defaultMethod resample.Method) {
	cp.loadBtn = widget.NewButton("Load Image", func() {
		if cp.onLoad != nil {
			cp.onLoad()
		}
	})
	cp.decreaseBtn = widget.NewButton("Decrease Resolution", func() {
		if cp.onDecrease != nil {
			cp.onDecrease()
		}
	})
	cp.increaseBtn = widget.NewButton("Increase Resolution", func() {
		if cp.onIncrease != nil {
			cp.onIncrease()
		}
	})
	cp.saveBtn = widget.NewButton("Save As...", func() {
		if cp.onSave != nil {
			cp.onSave()
		}
	})

	names := make([]string, 0, len(resample.Methods()))
	for _, m := range resample.Methods() {
		names = append(names, m.String())
	}
	cp.methodSel = widget.NewSelect(names, func(name string) {
		method, err := resample.ParseMethod(name)
		if err != nil {
			cp.logger.WithError(err).Warn("Method selection rejected")
			return
		}
		if cp.onMethodChanged != nil {
			cp.onMethodChanged(method)
		}
	})
	cp.methodSel.SetSelected(defaultMethod.String())

	buttons := container.NewHBox(
		cp.loadBtn,
		cp.decreaseBtn,
		cp.increaseBtn,
		cp.saveBtn,
	)
	methodRow := container.NewHBox(
		widget.NewLabel("Interpolation:"),
		cp.methodSel,
	)

	cp.container = container.NewVBox(
		container.NewCenter(buttons),
		container.NewCenter(methodRow),
	)

	// nothing to scale or save before the first load
	cp.SetImageLoaded(false, false, false)
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

// SetCallbacks wires the panel's actions.
func (cp *ControlPanel) SetCallbacks(
	onLoad, onDecrease, onIncrease, onSave func(),
	onMethodChanged func(resample.Method),
) {
	cp.onLoad = onLoad
	cp.onDecrease = onDecrease
	cp.onIncrease = onIncrease
	cp.onSave = onSave
	cp.onMethodChanged = onMethodChanged
}

// SetImageLoaded toggles the stepping and save controls, disabling the
// respective step button at a scale bound. Must run on the UI thread.
func (cp *ControlPanel) SetImageLoaded(loaded, atMin, atMax bool) {
	setEnabled(cp.saveBtn, loaded)
	setEnabled(cp.decreaseBtn, loaded && !atMin)
	setEnabled(cp.increaseBtn, loaded && !atMax)
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
