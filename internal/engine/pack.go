package engine

import (
	"strconv"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// CablePlacement is one cable circle on the drawing, in px.
type CablePlacement struct {
	Cable   model.Cable   `json:"-"`
	Tag     string        `json:"tag"`
	Label   string        `json:"label"`
	Purpose model.Purpose `json:"purpose"`
	Bucket  model.Bucket  `json:"bucket"`
	CenterX float64       `json:"x"`
	CenterY float64       `json:"y"`
	Radius  float64       `json:"r"`
	Lifted  bool          `json:"lifted,omitempty"`
}

// labeler numbers cables by their 1-based position in the tray's cable list.
type labeler map[string]int

func cableKey(c model.Cable) string {
	if c.ID != "" {
		return "id:" + c.ID
	}
	return "tag:" + c.Tag
}

func newLabeler(cables []model.Cable) labeler {
	l := make(labeler, len(cables))
	for i, c := range cables {
		k := cableKey(c)
		if _, ok := l[k]; !ok {
			l[k] = i + 1
		}
	}
	return l
}

// label returns the cable's number, or its tag when it is not in the list.
func (l labeler) label(c model.Cable) string {
	if n, ok := l[cableKey(c)]; ok {
		return strconv.Itoa(n)
	}
	return c.Tag
}

// packer accumulates placements and bottom-row entries for one pass.
type packer struct {
	geo        geometry
	labels     labeler
	state      *LayoutState
	placements []CablePlacement
}

// placeLeft draws a cable whose bottom-left corner is at (x, y).
func (pk *packer) placeLeft(b Bundle, sl slot, x, y float64) {
	r := pk.geo.radius(sl.diameter)
	pk.place(b, sl, x+r, y-r, r)
}

// placeRight draws a cable whose bottom-right corner is at (x, y).
func (pk *packer) placeRight(b Bundle, sl slot, x, y float64) {
	r := pk.geo.radius(sl.diameter)
	pk.place(b, sl, x-r, y-r, r)
}

func (pk *packer) place(b Bundle, sl slot, cx, cy, r float64) {
	pk.placements = append(pk.placements, CablePlacement{
		Cable:   sl.cable,
		Tag:     sl.cable.Tag,
		Label:   pk.labels.label(sl.cable),
		Purpose: b.Purpose,
		Bucket:  b.Bucket,
		CenterX: cx,
		CenterY: cy,
		Radius:  r,
		Lifted:  sl.lifted,
	})
}

func floorEntry(b Bundle, sl slot) RowEntry {
	return newRowEntry(sl.cable, b.Purpose, b.Bucket, false)
}

// sentinels are two copies of the bundle's largest cable, reserving a gap
// before the next bundle.
func sentinels(seq bundleSequence) []RowEntry {
	e := newRowEntry(seq.largest, seq.Purpose, seq.Bucket, true)
	return []RowEntry{e, e}
}
