package project

import (
	"fmt"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

// Evaluation is everything derived for one tray of a project.
type Evaluation struct {
	Tray    model.Tray
	Cables  []model.Cable
	Bundles engine.BundleMap
	Space   engine.SpaceResult
	Weights model.WeightReport
}

// Evaluate collects the tray's cables and computes its space and weights.
func (r *Repository) Evaluate(tray model.Tray) (Evaluation, error) {
	cables, err := r.CablesOnTray(tray)
	if err != nil {
		return Evaluation{}, err
	}
	bundles, err := engine.BuildBundleMap(cables)
	if err != nil {
		return Evaluation{}, fmt.Errorf("tray %s: %w", tray.Name, err)
	}
	space, err := engine.CalculateSpace(tray, bundles)
	if err != nil {
		return Evaluation{}, fmt.Errorf("tray %s: %w", tray.Name, err)
	}
	return Evaluation{
		Tray:    tray,
		Cables:  cables,
		Bundles: bundles,
		Space:   space,
		Weights: model.CalculateWeights(tray, cables),
	}, nil
}

// EvaluateAll evaluates every tray of the project in order. Trays that fail
// are reported through onError and left out.
func (r *Repository) EvaluateAll(onError func(tray model.Tray, err error)) []Evaluation {
	out := make([]Evaluation, 0, len(r.project.Trays))
	for _, t := range r.project.Trays {
		ev, err := r.Evaluate(t)
		if err != nil {
			if onError != nil {
				onError(t, err)
			}
			continue
		}
		out = append(out, ev)
	}
	return out
}
