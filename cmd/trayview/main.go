// TrayView is the desktop editor for tray projects: it draws each tray's
// cable bundles and exports reports, drawings and label sheets.
//
// Build:
//   go build -o trayview ./cmd/trayview
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
	"github.com/piwi3910/TrayLayout/internal/ui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          "trayview",
	})

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("using default settings", "err", err)
		cfg = model.DefaultAppConfig()
	}
	catalog, catalogPath, err := project.LoadOrCreateCatalog()
	if err != nil {
		logger.Warn("using default catalog", "path", catalogPath, "err", err)
		catalog = model.DefaultCatalog()
	}

	application := app.NewWithID("com.piwi3910.traylayout")
	application.Settings().SetTheme(ui.NewTrayTheme(cfg.Theme))

	window := application.NewWindow("TrayView - Cable Tray Layout")

	appUI := ui.NewApp(window, cfg, catalog, catalogPath, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
