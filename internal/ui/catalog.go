package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

// ─── Catalog Dialog ────────────────────────────────────────

func (a *App) showCatalogDialog() {
	typeList := container.NewVBox()
	trayList := container.NewVBox()
	var refresh func()

	bold := func(s string) *widget.Label {
		return widget.NewLabelWithStyle(s, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}

	refresh = func() {
		typeList.RemoveAll()
		trayList.RemoveAll()

		if len(a.catalog.CableTypes) == 0 {
			typeList.Add(widget.NewLabel("No cable types defined."))
		} else {
			typeList.Add(container.NewGridWithColumns(6,
				bold("Type"), bold("Purpose"), bold("Diameter"), bold("Weight"), bold(""), bold("")))
			typeList.Add(widget.NewSeparator())
		}
		for i := range a.catalog.CableTypes {
			idx := i
			ct := a.catalog.CableTypes[idx]
			typeList.Add(container.NewGridWithColumns(6,
				widget.NewLabel(ct.Type),
				widget.NewLabel(ct.Purpose),
				widget.NewLabel(model.FormatNumber(ct.Diameter)+" mm"),
				widget.NewLabel(model.FormatNumber(ct.Weight)+" kg/m"),
				widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
					a.addCableTypeToProject(ct)
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.catalog.CableTypes = append(a.catalog.CableTypes[:idx], a.catalog.CableTypes[idx+1:]...)
					a.saveCatalog()
					refresh()
				}),
			))
		}

		if len(a.catalog.Trays) == 0 {
			trayList.Add(widget.NewLabel("No tray presets defined."))
		} else {
			trayList.Add(container.NewGridWithColumns(5,
				bold("Type"), bold("Width"), bold("Height"), bold("Weight"), bold("")))
			trayList.Add(widget.NewSeparator())
		}
		for i := range a.catalog.Trays {
			idx := i
			tp := a.catalog.Trays[idx]
			trayList.Add(container.NewGridWithColumns(5,
				widget.NewLabel(tp.Type),
				widget.NewLabel(model.FormatNumber(tp.Width)+" mm"),
				widget.NewLabel(model.FormatNumber(tp.Height)+" mm"),
				widget.NewLabel(model.FormatNumber(tp.Weight)+" kg/m"),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.catalog.Trays = append(a.catalog.Trays[:idx], a.catalog.Trays[idx+1:]...)
					a.saveCatalog()
					refresh()
				}),
			))
		}
	}
	refresh()

	addTypeBtn := widget.NewButtonWithIcon("Add Cable Type", theme.ContentAddIcon(), func() {
		a.showAddCableTypeDialog(refresh)
	})
	addTrayBtn := widget.NewButtonWithIcon("Add Tray Preset", theme.ContentAddIcon(), func() {
		a.showAddTrayPresetDialog(refresh)
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importCatalog(refresh)
	})

	tabs := container.NewAppTabs(
		container.NewTabItem("Cable Types", container.NewVScroll(typeList)),
		container.NewTabItem("Tray Presets", container.NewVScroll(trayList)),
	)
	content := container.NewBorder(
		container.NewHBox(addTypeBtn, addTrayBtn, layout.NewSpacer(), importBtn),
		nil, nil, nil,
		tabs,
	)

	d := dialog.NewCustom("Catalog", "Close", content, a.window)
	d.Resize(fyne.NewSize(760, 520))
	d.Show()
}

func (a *App) showAddCableTypeDialog(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Cable type, e.g. NYY-J 5x16")

	purposeSelect := widget.NewSelect(purposeNames(), nil)
	purposeSelect.SetSelected(model.PurposePower.String())

	diameterEntry := widget.NewEntry()
	diameterEntry.SetText("20")

	weightEntry := widget.NewEntry()
	weightEntry.SetText("1.0")

	form := dialog.NewForm("Add Cable Type", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Type", nameEntry),
			widget.NewFormItem("Purpose", purposeSelect),
			widget.NewFormItem("Diameter (mm)", diameterEntry),
			widget.NewFormItem("Weight (kg/m)", weightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			d, _ := strconv.ParseFloat(diameterEntry.Text, 64)
			w, _ := strconv.ParseFloat(weightEntry.Text, 64)
			if nameEntry.Text == "" || d <= 0 || w < 0 {
				dialog.ShowError(fmt.Errorf("type is required, diameter must be > 0 and weight >= 0"), a.window)
				return
			}
			if a.catalog.FindCableTypeByName(nameEntry.Text) != nil {
				dialog.ShowError(fmt.Errorf("cable type %q already exists", nameEntry.Text), a.window)
				return
			}
			a.catalog.CableTypes = append(a.catalog.CableTypes, model.NewCableType(nameEntry.Text, purposeSelect.Selected, d, w))
			a.saveCatalog()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 320))
	form.Show()
}

func (a *App) showAddTrayPresetDialog(onDone func()) {
	typeEntry := widget.NewEntry()
	typeEntry.SetPlaceHolder("Tray type, e.g. KL 110.400")

	widthEntry := widget.NewEntry()
	widthEntry.SetText("400")

	heightEntry := widget.NewEntry()
	heightEntry.SetText("110")

	weightEntry := widget.NewEntry()
	weightEntry.SetText("6")

	form := dialog.NewForm("Add Tray Preset", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Type", typeEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Weight (kg/m)", weightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			kg, _ := strconv.ParseFloat(weightEntry.Text, 64)
			if typeEntry.Text == "" || w <= 0 || h <= model.CProfileHeight {
				dialog.ShowError(fmt.Errorf("type is required, width must be > 0 and height > %g mm", model.CProfileHeight), a.window)
				return
			}
			a.catalog.Trays = append(a.catalog.Trays, model.NewTrayPreset(typeEntry.Text, w, h, kg))
			a.saveCatalog()
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 320))
	form.Show()
}

// addCableTypeToProject copies a catalog cable type into the open project.
func (a *App) addCableTypeToProject(ct model.CableType) {
	if a.project.FindCableType(ct.Type) != nil {
		dialog.ShowInformation("Already in project", fmt.Sprintf("Cable type %q is already part of the project.", ct.Type), a.window)
		return
	}
	a.project.CableTypes = append(a.project.CableTypes, ct)
	// Appending may move the slice; cables must point at the new elements.
	if err := a.project.Resolve(); err != nil {
		a.logger.Warn("project has unresolved cables", "err", err)
	}
	a.refreshDetail()
}

func (a *App) importCatalog(onDone func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		merged, err := project.ImportCatalog(reader.URI().Path(), a.catalog)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.catalog = merged
		a.saveCatalog()
		onDone()
		dialog.ShowInformation("Import Complete",
			fmt.Sprintf("Catalog now has %d cable types and %d tray presets.",
				len(a.catalog.CableTypes), len(a.catalog.Trays)), a.window)
	}, a.window)
}

func (a *App) saveCatalog() {
	if a.catalogPath == "" {
		return
	}
	if err := project.SaveCatalog(a.catalogPath, a.catalog); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save catalog: %w", err), a.window)
	}
}

func purposeNames() []string {
	ps := model.Purposes()
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
