package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NoCablesText is reported in place of a formula when a tray carries no cables.
const NoCablesText = "No cables on this tray"

// Round rounds v to the given number of decimal places, halves to even.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// FormatNumber renders v with the fewest digits that represent it exactly.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func r3(v float64) string { return FormatNumber(Round(v, 3)) }

// SupportsWeight holds the result of the tray supports calculation.
type SupportsWeight struct {
	Count          int     `json:"count"`
	Distance       float64 `json:"distance"`         // m between supports
	TotalWeight    float64 `json:"total_weight"`     // kg
	WeightPerMeter float64 `json:"weight_per_meter"` // kg/m

	CountText          string `json:"count_text"`
	TotalWeightText    string `json:"total_weight_text"`
	WeightPerMeterText string `json:"weight_per_meter_text"`
}

// SupportDistance returns the distance between supports in m for a tray type.
func SupportDistance(trayType string) float64 {
	if strings.HasPrefix(trayType, KLTrayTypePrefix) {
		return KLSupportDistance
	}
	return WSLSupportDistance
}

// CalculateSupportsWeight counts the supports along a tray and their weight.
func CalculateSupportsWeight(t Tray) SupportsWeight {
	distance := SupportDistance(t.Type)
	exact := t.Length/1000/distance + 1
	var count int
	if exact < 0.2 {
		count = int(math.Floor(exact))
	} else {
		count = int(math.Ceil(exact))
	}
	total := float64(count) * SupportWeight
	var perMeter float64
	if t.Length > 0 {
		perMeter = Round(total/t.Length*1000, 3)
	}

	return SupportsWeight{
		Count:              count,
		Distance:           distance,
		TotalWeight:        Round(total, 3),
		WeightPerMeter:     perMeter,
		CountText:          fmt.Sprintf("(%s / 1000) / %s + 1 ≈ %s = %d [pcs.]", r3(t.Length), FormatNumber(distance), r3(exact), count),
		TotalWeightText:    fmt.Sprintf("%d * %s = %s [kg]", count, FormatNumber(SupportWeight), r3(total)),
		WeightPerMeterText: fmt.Sprintf("%s / %s * 1000 = %s [kg/m]", r3(total), r3(t.Length), FormatNumber(perMeter)),
	}
}

// TrayOwnWeight is the weight of the tray itself plus its supports.
type TrayOwnWeight struct {
	WeightPerMeter float64 `json:"weight_per_meter"` // kg/m
	WeightLoad     float64 `json:"weight_load"`      // kg

	WeightPerMeterText string `json:"weight_per_meter_text"`
	WeightLoadText     string `json:"weight_load_text"`
}

// CalculateTrayOwnWeight adds the supports load to the tray's own weight.
func CalculateTrayOwnWeight(t Tray, supports SupportsWeight) TrayOwnWeight {
	perMeter := Round(t.Weight+supports.WeightPerMeter, 3)
	load := Round(perMeter*t.Length/1000, 3)
	return TrayOwnWeight{
		WeightPerMeter:     perMeter,
		WeightLoad:         load,
		WeightPerMeterText: fmt.Sprintf("%s + %s = %s [kg/m]", r3(t.Weight), r3(supports.WeightPerMeter), r3(perMeter)),
		WeightLoadText:     fmt.Sprintf("%s * (%s / 1000) = %s [kg]", r3(perMeter), r3(t.Length), r3(load)),
	}
}

// CablesWeight is the combined weight of the cables laid on a tray.
type CablesWeight struct {
	HasCables      bool    `json:"has_cables"`
	WeightPerMeter float64 `json:"weight_per_meter"` // kg/m
	WeightLoad     float64 `json:"weight_load"`      // kg

	WeightPerMeterText string `json:"weight_per_meter_text"`
	WeightLoadText     string `json:"weight_load_text"`
}

// CalculateCablesWeight sums cable weights. Trays of type B and BC also
// carry a grounding cable.
func CalculateCablesWeight(t Tray, cables []Cable) CablesWeight {
	if len(cables) == 0 {
		return CablesWeight{
			WeightPerMeterText: NoCablesText,
			WeightLoadText:     NoCablesText,
		}
	}

	weights := make([]float64, 0, len(cables)+1)
	for _, c := range cables {
		weights = append(weights, c.Weight())
	}
	if HasGroundingCable(t.Purpose) {
		weights = append(weights, GroundingCableWeight)
	}

	var sum float64
	terms := make([]string, len(weights))
	for i, w := range weights {
		sum += w
		terms[i] = FormatNumber(w)
	}
	perMeter := Round(sum, 3)
	load := Round(perMeter*t.Length/1000, 3)

	return CablesWeight{
		HasCables:          true,
		WeightPerMeter:     perMeter,
		WeightLoad:         load,
		WeightPerMeterText: fmt.Sprintf("%s = %s [kg/m]", strings.Join(terms, " + "), r3(sum)),
		WeightLoadText:     fmt.Sprintf("%s * (%s / 1000) = %s [kg]", r3(perMeter), r3(t.Length), r3(load)),
	}
}

// TotalWeight is the tray's own weight plus its cables.
type TotalWeight struct {
	WeightPerMeter float64 `json:"weight_per_meter"`
	WeightLoad     float64 `json:"weight_load"`

	WeightPerMeterText string `json:"weight_per_meter_text"`
	WeightLoadText     string `json:"weight_load_text"`
}

// CalculateTotalWeight combines own and cables weight. Without cables the
// total equals the tray's own weight.
func CalculateTotalWeight(own TrayOwnWeight, cables CablesWeight) TotalWeight {
	if !cables.HasCables {
		return TotalWeight{
			WeightPerMeter:     own.WeightPerMeter,
			WeightLoad:         own.WeightLoad,
			WeightPerMeterText: own.WeightPerMeterText,
			WeightLoadText:     own.WeightLoadText,
		}
	}
	perMeter := Round(own.WeightPerMeter+cables.WeightPerMeter, 3)
	load := Round(own.WeightLoad+cables.WeightLoad, 3)
	return TotalWeight{
		WeightPerMeter:     perMeter,
		WeightLoad:         load,
		WeightPerMeterText: fmt.Sprintf("%s + %s = %s [kg/m]", r3(own.WeightPerMeter), r3(cables.WeightPerMeter), r3(perMeter)),
		WeightLoadText:     fmt.Sprintf("%s + %s = %s [kg]", r3(own.WeightLoad), r3(cables.WeightLoad), r3(load)),
	}
}

// WeightReport collects every weight calculation for one tray.
type WeightReport struct {
	Supports SupportsWeight `json:"supports"`
	Own      TrayOwnWeight  `json:"own"`
	Cables   CablesWeight   `json:"cables"`
	Total    TotalWeight    `json:"total"`
}

// CalculateWeights runs the supports, own, cables and total calculations in order.
func CalculateWeights(t Tray, cables []Cable) WeightReport {
	supports := CalculateSupportsWeight(t)
	own := CalculateTrayOwnWeight(t, supports)
	cw := CalculateCablesWeight(t, cables)
	return WeightReport{
		Supports: supports,
		Own:      own,
		Cables:   cw,
		Total:    CalculateTotalWeight(own, cw),
	}
}
