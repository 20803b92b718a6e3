// Package ui provides the tray viewer window.
package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/piwi3910/TrayLayout/internal/export"
	"github.com/piwi3910/TrayLayout/internal/importer"
	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
	"github.com/piwi3910/TrayLayout/internal/ui/widgets"
)

const maxRecentProjects = 10

// App holds all application state and UI references.
type App struct {
	window      fyne.Window
	project     model.Project
	projectPath string
	config      model.AppConfig
	catalog     model.Catalog
	catalogPath string
	logger      *log.Logger

	selected int // index into project.Trays, -1 when none

	// UI references for dynamic updates
	trayList        *widget.List
	detailContainer *fyne.Container
}

func NewApp(window fyne.Window, config model.AppConfig, catalog model.Catalog, catalogPath string, logger *log.Logger) *App {
	return &App{
		window:      window,
		project:     model.NewProject(),
		config:      config,
		catalog:     catalog,
		catalogPath: catalogPath,
		logger:      logger,
		selected:    -1,
	}
}

func (a *App) settings() model.DrawSettings {
	s := model.DefaultDrawSettings()
	a.config.ApplyToSettings(&s)
	return s
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.setProject(model.NewProject(), "")
		}),
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Workbook...", a.importWorkbook),
		fyne.NewMenuItem("Import CSV...", a.importCSV),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Tray Report...", a.exportReport),
		fyne.NewMenuItem("Export Tray DXF...", a.exportDXF),
		fyne.NewMenuItem("Export Trays Table...", a.exportTraysExcel),
		fyne.NewMenuItem("Export Tray Labels...", a.exportLabels),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Tray...", a.showAddTrayDialog),
		fyne.NewMenuItem("Catalog...", a.showCatalogDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About TrayLayout",
		"TrayLayout - Cable Tray Bundle Layout\n\n"+
			"Lays out cable bundles in tray cross-sections and\n"+
			"calculates occupied space and tray loads.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.trayList = widget.NewList(
		func() int { return len(a.project.Trays) },
		func() fyne.CanvasObject { return widget.NewLabel("tray") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			t := a.project.Trays[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  (%s)", t.Name, export.ShortTrayPurpose(t.Purpose)))
		},
	)
	a.trayList.OnSelected = func(id widget.ListItemID) {
		a.selected = id
		a.refreshDetail()
	}

	addBtn := newIconButtonWithTooltip(theme.ContentAddIcon(), "Add tray from catalog", a.showAddTrayDialog)
	left := container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Trays", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		a.trayList,
	)

	a.detailContainer = container.NewStack()
	a.refreshDetail()

	split := container.NewHSplit(left, a.detailContainer)
	split.Offset = 0.22
	return split
}

func (a *App) setProject(p model.Project, path string) {
	a.project = p
	a.projectPath = path
	a.selected = -1
	if path != "" {
		a.config.AddRecentProject(path, maxRecentProjects)
		if err := a.saveConfig(); err != nil {
			a.logger.Warn("saving recent projects failed", "err", err)
		}
	}
	a.window.SetTitle("TrayLayout - " + p.Name)
	a.trayList.UnselectAll()
	a.trayList.Refresh()
	a.refreshDetail()
}

func (a *App) selectedTray() (model.Tray, bool) {
	if a.selected < 0 || a.selected >= len(a.project.Trays) {
		return model.Tray{}, false
	}
	return a.project.Trays[a.selected], true
}

// ─── Tray Detail ───────────────────────────────────────────

func (a *App) refreshDetail() {
	a.detailContainer.RemoveAll()

	tray, ok := a.selectedTray()
	if !ok {
		a.detailContainer.Add(widget.NewLabel("Select a tray to see its cable layout. Open a project or import trays and cables first."))
		return
	}

	ev, err := project.NewRepository(&a.project).Evaluate(tray)
	if err != nil {
		a.detailContainer.Add(widget.NewLabel("Cannot lay out tray " + tray.Name + ":\n" + err.Error()))
		return
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%s: %s, %s x %s mm, %d cables",
		tray.Name, tray.Type, model.FormatNumber(tray.Width), model.FormatNumber(tray.Height), len(ev.Cables),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	toolbar := container.NewHBox(
		header,
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.DocumentPrintIcon(), "Export PDF report", a.exportReport),
		newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Export DXF drawing", a.exportDXF),
	)

	trayCanvas := widgets.NewTrayCanvas(tray, ev.Cables, ev.Bundles, a.settings(), a.logger, 800, 420)
	items := []fyne.CanvasObject{toolbar, trayCanvas}
	if trayCanvas.Err != nil {
		warning := widget.NewLabel("Some cables could not be drawn: " + trayCanvas.Err.Error())
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}
	items = append(items, widget.NewSeparator(), buildCalculations(ev))

	a.detailContainer.Add(container.NewVScroll(container.NewVBox(items...)))
}

// buildCalculations shows the space and weight sections as cards.
func buildCalculations(ev project.Evaluation) fyne.CanvasObject {
	var cards []fyne.CanvasObject
	for _, sec := range calculationSections(ev) {
		grid := container.NewGridWithColumns(2)
		for _, row := range sec.Rows {
			grid.Add(widget.NewLabel(row[0]))
			grid.Add(widget.NewLabel(row[1]))
		}
		cards = append(cards, widget.NewCard(sec.Title, "", grid))
	}
	return container.NewVBox(cards...)
}

func (a *App) showAddTrayDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Tray name")
	nameEntry.SetText(fmt.Sprintf("T-%d", len(a.project.Trays)+1))

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText("6000")

	presetSelect := widget.NewSelect(a.catalog.TrayTypes(), nil)
	if types := a.catalog.TrayTypes(); len(types) > 0 {
		presetSelect.SetSelected(types[0])
	}
	purposeSelect := widget.NewSelect(model.TrayPurposes(), nil)
	purposeSelect.SetSelected(model.TrayPurposeTypeB)

	form := dialog.NewForm("Add Tray", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Tray Type", presetSelect),
			widget.NewFormItem("Purpose", purposeSelect),
			widget.NewFormItem("Length (mm)", lengthEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			preset := a.catalog.FindTrayByType(presetSelect.Selected)
			length, _ := strconv.ParseFloat(lengthEntry.Text, 64)
			name := strings.TrimSpace(nameEntry.Text)
			switch {
			case preset == nil:
				dialog.ShowError(errors.New("select a tray type"), a.window)
				return
			case name == "" || a.project.FindTray(name) != nil:
				dialog.ShowError(fmt.Errorf("tray name %q is empty or already used", name), a.window)
				return
			}
			a.project.Trays = append(a.project.Trays, preset.ToTray(name, purposeSelect.Selected, length))
			a.trayList.Refresh()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(520, 300))
	form.Show()
}

// ─── Project Files ─────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.projectPath = path
	}, a.window)
	d.SetFileName(export.SafeFileName(a.project.Name) + project.FileExtension)
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		proj, err := project.LoadProject(path)
		if err != nil && !errors.Is(err, model.ErrDataInconsistency) {
			dialog.ShowError(err, a.window)
			return
		}
		a.setProject(proj, path)
		if err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importWorkbook() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(importer.ImportWorkbook(reader.URI().Path()))
	}, a.window)
}

func (a *App) importCSV() {
	kinds := []string{importer.KindCableTypes.String(), importer.KindCables.String(), importer.KindTrays.String()}
	kindSelect := widget.NewSelect(kinds, nil)
	kindSelect.SetSelected(importer.KindCables.String())

	dialog.ShowForm("Import CSV", "Choose File...", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Records", kindSelect)},
		func(ok bool) {
			if !ok {
				return
			}
			kind, err := importer.ParseKind(kindSelect.Selected)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				defer reader.Close()
				a.handleImportResult(importer.ImportCSV(reader.URI().Path(), kind))
			}, a.window)
		},
		a.window,
	)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(errors.New(errorMsg), a.window)
	}

	result.Apply(&a.project)
	for _, w := range result.Warnings {
		a.logger.Warn("import", "msg", w)
	}
	if err := a.project.Resolve(); err != nil {
		a.logger.Warn("project has unresolved cables", "err", err)
	}
	a.trayList.Refresh()
	a.refreshDetail()

	imported := len(result.CableTypes) + len(result.Cables) + len(result.Trays)
	if imported == 0 {
		return
	}
	msg := fmt.Sprintf("Imported %d cable types, %d cables and %d trays.",
		len(result.CableTypes), len(result.Cables), len(result.Trays))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// ─── Export Functions ───────────────────────────────────────

// saveAs asks for a target file and runs write on it.
func (a *App) saveAs(defaultName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", "Saved to "+path, a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) currentEvaluation() (project.Evaluation, bool) {
	tray, ok := a.selectedTray()
	if !ok {
		dialog.ShowInformation("No tray selected", "Select a tray in the list first.", a.window)
		return project.Evaluation{}, false
	}
	ev, err := project.NewRepository(&a.project).Evaluate(tray)
	if err != nil {
		dialog.ShowError(err, a.window)
		return project.Evaluation{}, false
	}
	return ev, true
}

func (a *App) exportReport() {
	ev, ok := a.currentEvaluation()
	if !ok {
		return
	}
	a.saveAs(export.SafeFileName(ev.Tray.Name)+".pdf", func(path string) error {
		return export.ExportTrayReport(path, export.ReportInput{
			Tray:     ev.Tray,
			Cables:   ev.Cables,
			Bundles:  ev.Bundles,
			Settings: a.settings(),
			Config:   a.config,
			Logger:   a.logger,
		})
	})
}

func (a *App) exportDXF() {
	ev, ok := a.currentEvaluation()
	if !ok {
		return
	}
	a.saveAs(export.SafeFileName(ev.Tray.Name)+".dxf", func(path string) error {
		return export.ExportDXF(path, ev.Tray, ev.Cables, ev.Bundles, a.settings())
	})
}

func (a *App) summaries() []export.TraySummary {
	evs := project.NewRepository(&a.project).EvaluateAll(func(tray model.Tray, err error) {
		a.logger.Warn("tray skipped", "tray", tray.Name, "err", err)
	})
	out := make([]export.TraySummary, len(evs))
	for i, ev := range evs {
		out[i] = export.Summarize(ev.Tray, len(ev.Cables), ev.Space, ev.Weights)
	}
	return out
}

func (a *App) exportTraysExcel() {
	a.saveAs(export.SafeFileName(a.project.Name)+"-trays.xlsx", func(path string) error {
		return export.ExportTraysExcel(path, a.summaries())
	})
}

func (a *App) exportLabels() {
	a.saveAs(export.SafeFileName(a.project.Name)+"-labels.pdf", func(path string) error {
		return export.ExportTrayLabels(path, a.summaries())
	})
}
