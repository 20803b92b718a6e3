package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

// TraySummary is the condensed result for one tray. It is what the report
// QR code and tray labels encode.
type TraySummary struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Purpose       string  `json:"purpose"`
	Width         float64 `json:"width_mm"`
	Height        float64 `json:"height_mm"`
	Length        float64 `json:"length_mm"`
	Cables        int     `json:"cables"`
	DiametersSum  string  `json:"occupied_mm"`
	FreeSpace     string  `json:"free_space_pct"`
	SupportsCount int     `json:"supports"`
	CablesWeight  float64 `json:"cables_kg_per_m"`
	TotalWeight   float64 `json:"total_kg"`
}

// Summarize condenses a tray's space and weight results.
func Summarize(tray model.Tray, cableCount int, space engine.SpaceResult, weights model.WeightReport) TraySummary {
	s := TraySummary{
		Name:          tray.Name,
		Type:          tray.Type,
		Purpose:       ShortTrayPurpose(tray.Purpose),
		Width:         tray.Width,
		Height:        tray.Height,
		Length:        tray.Length,
		Cables:        cableCount,
		DiametersSum:  engine.NotApplicable,
		FreeSpace:     engine.NotApplicable,
		SupportsCount: weights.Supports.Count,
		CablesWeight:  weights.Cables.WeightPerMeter,
		TotalWeight:   weights.Total.WeightLoad,
	}
	if space.OccupiedText != engine.NotApplicable {
		s.DiametersSum = model.FormatNumber(model.Round(space.Occupied, 3))
		s.FreeSpace = model.FormatNumber(space.Available)
	}
	return s
}

// ShortTrayPurpose returns the leading "Type X" of a tray purpose text.
func ShortTrayPurpose(purpose string) string {
	fields := strings.Fields(purpose)
	if len(fields) < 2 {
		return purpose
	}
	return fields[0] + " " + fields[1]
}

// FillTemplate replaces report tokens such as {DiametersSum} or {FreeSpace}
// in tmpl. Unknown tokens are left as they are.
func FillTemplate(tmpl string, s TraySummary, date time.Time) string {
	num := func(v float64) string { return model.FormatNumber(model.Round(v, 3)) }
	r := strings.NewReplacer(
		"{TrayName}", s.Name,
		"{TrayType}", s.Type,
		"{TrayPurpose}", s.Purpose,
		"{CablesCount}", strconv.Itoa(s.Cables),
		"{DiametersSum}", s.DiametersSum,
		"{FreeSpace}", s.FreeSpace,
		"{SupportsCount}", strconv.Itoa(s.SupportsCount),
		"{CablesWeight}", num(s.CablesWeight),
		"{TotalWeight}", num(s.TotalWeight),
		"{Date}", date.Format("2006-01-02"),
	)
	return r.Replace(tmpl)
}

// SafeFileName replaces characters that are not allowed in file names on
// common platforms.
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "tray"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '/', '\\', '"', ':', '?', '*', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
