// Main application window wiring the engine to the widgets
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/sirupsen/logrus"

	"image-resolution-scaler/internal/config"
	"image-resolution-scaler/internal/core"
	"image-resolution-scaler/internal/imgio"
	"image-resolution-scaler/internal/resample"
)

// Application owns the window and connects the resize engine to the panels.
// All engine callbacks are marshaled onto the UI thread with fyne.Do; the
// GUI never computes sizes itself, it renders SizeReport values.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger
	cfg    config.Config

	// engine
	session *core.Session
	loader  *imgio.Loader

	// panels
	viewer   *Viewer
	info     *InfoPanel
	controls *ControlPanel
	menu     *MenuHandler
}

func NewApplication(app fyne.App, logger *logrus.Logger, cfg config.Config) *Application {
	window := app.NewWindow("Image Resolution Scaler")
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
		cfg:    cfg,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()

	return a
}

func (a *Application) initializeCore() {
	a.loader = imgio.NewLoader(a.logger)
	a.session = core.NewSession(a.loader, a.logger, core.SessionConfig{
		Method:          a.cfg.Method(),
		MaxOutputPixels: a.cfg.MaxOutputPixels,
		RenderDebounce:  a.cfg.RenderDebounce(),
	})
}

func (a *Application) initializeGUI() {
	a.viewer = NewViewer(a.logger)
	a.info = NewInfoPanel(a.logger)
	a.controls = NewControlPanel(a.cfg.Method(), a.logger)
	a.menu = NewMenuHandler(a.window)
}

func (a *Application) setupLayout() {
	bottom := container.NewVBox(
		a.info.GetContainer(),
		a.controls.GetContainer(),
	)

	content := container.NewBorder(
		nil,    // top
		bottom, // bottom
		nil,    // left
		nil,    // right
		a.viewer.GetContainer(),
	)

	a.window.SetMainMenu(a.menu.GetMainMenu())
	a.window.SetContent(content)
}

func (a *Application) setupCallbacks() {
	a.session.SetCallbacks(
		func(rendered *core.RenderedImage, report core.SizeReport) {
			fyne.Do(func() {
				a.viewer.UpdateImage(rendered.Image)
				a.refreshStatus()
			})
		},
		func(err error) {
			fyne.Do(func() {
				a.showError("Processing Error", err)
			})
		},
	)

	a.controls.SetCallbacks(
		a.openImage,
		a.decreaseScale,
		a.increaseScale,
		a.saveImage,
		a.setMethod,
	)

	a.menu.SetCallbacks(a.openImage, a.saveImage, a.resetScale)
}

// ShowAndRun enters the Fyne event loop until the window closes.
func (a *Application) ShowAndRun() {
	defer a.session.Close()
	a.window.ShowAndRun()
}

// LoadStartupImage loads an image given on the command line before the event
// loop starts. Failures are reported but not fatal.
func (a *Application) LoadStartupImage(path string) {
	if path == "" {
		return
	}
	if err := a.session.Load(path); err != nil {
		a.showError("Failed to Load Image", err)
		return
	}
	if rendered := a.session.CurrentRendered(); rendered != nil {
		a.viewer.UpdateImage(rendered.Image)
	}
	a.refreshStatus()
}

func (a *Application) openImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := a.session.Load(path); err != nil {
			a.showError("Failed to Load Image", err)
			return
		}
		if rendered := a.session.CurrentRendered(); rendered != nil {
			a.viewer.UpdateImage(rendered.Image)
		}
		a.refreshStatus()
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions()))
	fileDialog.Show()
}

func (a *Application) saveImage() {
	if !a.session.HasImage() {
		a.showError("No Image", core.ErrNoImageLoaded)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := a.session.Save(path); err != nil {
			a.showError("Failed to Save Image", err)
		}
	}, a.window)

	fileDialog.SetFileName("scaled_image.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.SupportedExtensions()))
	fileDialog.Show()
}

func (a *Application) increaseScale() {
	if err := a.session.Increase(); err != nil {
		a.showError("Scale Error", err)
		return
	}
	a.refreshStatus()
}

func (a *Application) decreaseScale() {
	if err := a.session.Decrease(); err != nil {
		a.showError("Scale Error", err)
		return
	}
	a.refreshStatus()
}

func (a *Application) resetScale() {
	if !a.session.HasImage() {
		return
	}
	if err := a.session.Reset(); err != nil {
		a.showError("Scale Error", err)
		return
	}
	a.refreshStatus()
}

func (a *Application) setMethod(method resample.Method) {
	if err := a.session.SetMethod(method); err != nil {
		a.showError("Interpolation Error", err)
		return
	}
	a.refreshStatus()
}

// refreshStatus re-reads the engine state into the info table and control
// enablement. The size report updates immediately on a scale step, even
// while the render itself is still in flight.
func (a *Application) refreshStatus() {
	if !a.session.HasImage() {
		a.info.Clear()
		a.controls.SetImageLoaded(false, false, false)
		return
	}

	frameW, frameH := a.viewer.FrameSize()
	if frameW > 0 && frameH > 0 {
		a.session.SetViewport(&core.Dimensions{Width: frameW, Height: frameH})
	}

	report, err := a.session.CurrentSizeReport()
	if err != nil {
		a.logger.WithError(err).Warn("Size report unavailable")
		return
	}
	a.info.Update(report)
	a.controls.SetImageLoaded(true, a.session.IsAtMinScale(), a.session.IsAtMaxScale())
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
}
