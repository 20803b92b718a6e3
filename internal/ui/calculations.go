package ui

import (
	"github.com/piwi3910/TrayLayout/internal/export"
	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

type calcSection struct {
	Title string
	Rows  [][2]string
}

// calculationSections lists the values shown below the drawing.
func calculationSections(ev project.Evaluation) []calcSection {
	t := ev.Tray
	w := ev.Weights
	return []calcSection{
		{"Tray", [][2]string{
			{"Type", t.Type},
			{"Purpose", export.ShortTrayPurpose(t.Purpose)},
			{"Useful height", model.FormatNumber(t.UsableHeight()) + " mm"},
			{"Length", model.FormatNumber(t.Length) + " mm"},
		}},
		{"Cables bundles space", [][2]string{
			{"Occupied width", ev.Space.OccupiedText},
			{"Free space", ev.Space.AvailableText},
		}},
		{"Supports", [][2]string{
			{"Count", w.Supports.CountText},
			{"Weight", w.Supports.TotalWeightText},
			{"Weight per meter", w.Supports.WeightPerMeterText},
		}},
		{"Tray own weight", [][2]string{
			{"Weight per meter", w.Own.WeightPerMeterText},
			{"Weight load", w.Own.WeightLoadText},
		}},
		{"Cables weight", [][2]string{
			{"Weight per meter", w.Cables.WeightPerMeterText},
			{"Weight load", w.Cables.WeightLoadText},
		}},
		{"Total weight", [][2]string{
			{"Weight per meter", w.Total.WeightPerMeterText},
			{"Weight load", w.Total.WeightLoadText},
		}},
	}
}
