package engine

import "github.com/piwi3910/TrayLayout/internal/model"

// Phase is a step of one layout pass.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDrawingPower
	PhaseDrawingControl
	PhaseDrawingMV
	PhaseDrawingVFD
	PhaseDrawingSeparators
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseDrawingPower:
		return "DrawingPower"
	case PhaseDrawingControl:
		return "DrawingControl"
	case PhaseDrawingMV:
		return "DrawingMV"
	case PhaseDrawingVFD:
		return "DrawingVFD"
	case PhaseDrawingSeparators:
		return "DrawingSeparators"
	default:
		return "Done"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func phaseFor(p model.Purpose) Phase {
	switch p {
	case model.PurposePower:
		return PhaseDrawingPower
	case model.PurposeControl:
		return PhaseDrawingControl
	case model.PurposeMV:
		return PhaseDrawingMV
	default:
		return PhaseDrawingVFD
	}
}

// RowEntry is one cable resting on the tray floor. Sentinel entries are the
// gap copies added between bundles; they are never drawn.
type RowEntry struct {
	Cable    model.Cable   `json:"-"`
	Tag      string        `json:"tag"`
	Diameter float64       `json:"diameter"`
	Purpose  model.Purpose `json:"purpose"`
	Bucket   model.Bucket  `json:"bucket"`
	Sentinel bool          `json:"sentinel,omitempty"`
}

func newRowEntry(c model.Cable, p model.Purpose, b model.Bucket, sentinel bool) RowEntry {
	return RowEntry{
		Cable:    c,
		Tag:      c.Tag,
		Diameter: c.Diameter(),
		Purpose:  p,
		Bucket:   b,
		Sentinel: sentinel,
	}
}

// LayoutState holds the bottom-row lists of one pass. MV floor cables share
// the Power list since both are laid from the left edge.
type LayoutState struct {
	Power   []RowEntry `json:"power"`
	Control []RowEntry `json:"control"`
	VFD     []RowEntry `json:"vfd"`
}

// Reset clears all lists.
func (s *LayoutState) Reset() {
	s.Power = nil
	s.Control = nil
	s.VFD = nil
}

// rowWidth sums diameter plus spacing over entries, in mm.
func rowWidth(entries []RowEntry) float64 {
	var w float64
	for _, e := range entries {
		w += e.Diameter + model.Spacing
	}
	return w
}

// rowDiameters sums bare diameters over entries, in mm.
func rowDiameters(entries []RowEntry) float64 {
	var w float64
	for _, e := range entries {
		w += e.Diameter
	}
	return w
}

// FloorCables returns the non-sentinel entries of a list.
func FloorCables(entries []RowEntry) []RowEntry {
	out := make([]RowEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Sentinel {
			out = append(out, e)
		}
	}
	return out
}

// LayoutCursor is the next free position on one side of the tray, in px.
type LayoutCursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
