// Menu handler for application actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MenuHandler builds the main menu. The actions delegate to the same
// Application methods the control panel uses.
type MenuHandler struct {
	window fyne.Window

	onOpen  func()
	onSave  func()
	onReset func()
}

func NewMenuHandler(window fyne.Window) *MenuHandler {
	return &MenuHandler{window: window}
}

func (mh *MenuHandler) SetCallbacks(onOpen, onSave, onReset func()) {
	mh.onOpen = onOpen
	mh.onSave = onSave
	mh.onReset = onReset
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() {
			if mh.onOpen != nil {
				mh.onOpen()
			}
		}),
		fyne.NewMenuItem("Save Image...", func() {
			if mh.onSave != nil {
				mh.onSave()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Reset Scale", func() {
			if mh.onReset != nil {
				mh.onReset()
			}
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Image Resolution Scaler"),
		widget.NewSeparator(),
		widget.NewLabel("Scale images between 0.05x and 3.00x in 5% steps"),
		widget.NewLabel("with Nearest, Bilinear, Bicubic and Lanczos resampling."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne v2.6 and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(420, 260))
	aboutDialog.Show()
}
