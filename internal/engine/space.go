package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// NotApplicable is reported instead of a formula when no width applies.
const NotApplicable = "N/A"

// SpaceResult is the floor width occupied by a tray's bottom-row cables.
type SpaceResult struct {
	Occupied      float64    `json:"occupied"`  // mm
	Available     float64    `json:"available"` // % of tray width
	OccupiedText  string     `json:"occupied_text"`
	AvailableText string     `json:"available_text"`
	BottomRow     []RowEntry `json:"bottom_row,omitempty"`
}

func notApplicable() SpaceResult {
	return SpaceResult{Occupied: 0, Available: 100, OccupiedText: NotApplicable, AvailableText: NotApplicable}
}

// CalculateSpace sums diameter plus spacing over every cable that rests on
// the tray floor, visiting bundles exactly as the drawing does. MV cables and
// sentinel gap entries are not counted. Type A trays are not evaluated.
func CalculateSpace(tray model.Tray, bundles BundleMap) (SpaceResult, error) {
	if tray.Purpose == model.TrayPurposeTypeA {
		return notApplicable(), nil
	}
	if bundles == nil {
		return SpaceResult{}, fmt.Errorf("%w: bundle map is nil", model.ErrInvalidArgument)
	}
	if err := tray.Validate(); err != nil {
		return SpaceResult{}, err
	}

	var (
		occupied float64
		bottom   []RowEntry
	)
	for _, p := range bundles.Purposes() {
		if p == model.PurposeMV {
			continue
		}
		seqs, err := sequencePurpose(bundles, p, tray.UsableHeight())
		if err != nil {
			return SpaceResult{}, &PurposeError{Purpose: p, Err: err}
		}
		for _, seq := range seqs {
			for _, sl := range seq.floorSlots() {
				occupied += sl.diameter + model.Spacing
				bottom = append(bottom, floorEntry(seq.Bundle, sl))
			}
		}
	}
	if len(bottom) == 0 {
		return notApplicable(), nil
	}

	available := model.Round(100-occupied/tray.Width*100, 2)
	return SpaceResult{
		Occupied:      occupied,
		Available:     available,
		OccupiedText:  occupiedText(bottom, occupied),
		AvailableText: fmt.Sprintf("100 - (%s / %s * 100) = %s [%%]", r3(occupied), r3(tray.Width), model.FormatNumber(model.Round(available, 2))),
		BottomRow:     bottom,
	}, nil
}

// occupiedText renders "(d * n) + 1 * n" per distinct diameter, in order of
// first appearance.
func occupiedText(bottom []RowEntry, occupied float64) string {
	var order []float64
	counts := make(map[float64]int)
	for _, e := range bottom {
		if _, ok := counts[e.Diameter]; !ok {
			order = append(order, e.Diameter)
		}
		counts[e.Diameter]++
	}

	terms := make([]string, len(order))
	spacing := model.FormatNumber(model.Spacing)
	for i, d := range order {
		n := counts[d]
		terms[i] = fmt.Sprintf("(%s * %d) + %s * %d", model.FormatNumber(d), n, spacing, n)
	}
	return fmt.Sprintf("%s = %s [mm]", strings.Join(terms, " + "), r3(occupied))
}

func r3(v float64) string { return model.FormatNumber(model.Round(v, 3)) }
