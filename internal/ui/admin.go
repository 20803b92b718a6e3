package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TrayLayout/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	scaleEntry := widget.NewEntry()
	scaleEntry.SetText(strconv.FormatFloat(cfg.DefaultScale, 'f', -1, 64))
	scaleEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			cfg.DefaultScale = v
		}
	}

	pageSelect := widget.NewSelect([]string{"A4", "A3", "Letter", "Legal"}, func(selected string) {
		cfg.PDFPageSize = selected
	})
	pageSelect.SetSelected(cfg.PDFPageSize)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	outputEntry := widget.NewEntry()
	outputEntry.SetText(cfg.OutputDir)
	outputEntry.OnChanged = func(text string) { cfg.OutputDir = text }

	headerEntry := widget.NewEntry()
	headerEntry.SetText(cfg.ReportHeader)
	headerEntry.OnChanged = func(text string) { cfg.ReportHeader = text }

	footerEntry := widget.NewMultiLineEntry()
	footerEntry.SetText(cfg.ReportFooter)
	footerEntry.OnChanged = func(text string) { cfg.ReportFooter = text }

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Drawing Scale (px/mm)", scaleEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Output Directory", outputEntry),
		widget.NewFormItem("PDF Page Size", pageSelect),
		widget.NewFormItem("Report Header", headerEntry),
		widget.NewFormItem("Report Footer", footerEntry),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if cfg.DefaultScale <= 0 {
				dialog.ShowError(fmt.Errorf("drawing scale must be > 0"), a.window)
				return
			}
			a.config = cfg
			fyne.CurrentApp().Settings().SetTheme(NewTrayTheme(cfg.Theme))
			a.refreshDetail()
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(520, 460))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.catalog); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.logger.Info("exported backup", "path", path)
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Settings and catalog exported to:\n%s", path), a.window)
		}, a.window)
		d.SetFileName("traylayout-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Restoring a backup replaces the drawing settings and the catalog.\nCable types already used by the open project are not changed.",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := project.ImportAllData(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					a.catalog = backup.Catalog
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					a.saveCatalog()
					a.logger.Info("imported backup", "path", reader.URI().Path(), "created", backup.CreatedAt)
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Imported %d cable types and %d tray presets.", len(backup.Catalog.CableTypes), len(backup.Catalog.Trays)), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Back up the drawing settings together with the cable type and\ntray preset catalog, or restore them from an earlier backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
