package engine

import "github.com/piwi3910/TrayLayout/internal/model"

// packMode is the packing strategy chosen for a bundle.
type packMode int

const (
	modeVerticalStack packMode = iota
	modeHexagonal
	modePhaseRotation
	modeGroupedHex
)

func (m packMode) String() string {
	switch m {
	case modeHexagonal:
		return "hexagonal"
	case modePhaseRotation:
		return "phase-rotation"
	case modeGroupedHex:
		return "grouped-hexagonal"
	default:
		return "vertical-stack"
	}
}

// Power bundles in these buckets are packed hexagonally.
func hexagonalBucket(b model.Bucket) bool {
	return b == model.Bucket40To45 || b == model.Bucket45To60
}

// VFD bundles in these buckets are grouped by destination.
func groupableBucket(b model.Bucket) bool {
	return b == model.Bucket30To40 || b == model.Bucket40To45
}

// liftsIntoHexRow reports whether the i-th cable of a hexagonal sequence is
// lifted off the floor into the second row.
func liftsIntoHexRow(i int, diameter, usableHeight float64) bool {
	return i != 0 && i%2 == 0 && diameter <= model.HexLiftMaxDiameter && usableHeight > model.HexLiftMaxDiameter
}

// slot is one cable in packing order.
type slot struct {
	cable    model.Cable
	diameter float64
	index    int  // position within the bundle, or within its group for grouped VFD
	row      int  // 0 on the floor
	lifted   bool // sits in a hexagonal second row
}

func (s slot) onFloor() bool { return s.row == 0 && !s.lifted }

// bundleSequence is a bundle's cables in the order they are packed, each
// already classified as floor or upper row. Drawing and width calculation
// both consume it, so they cannot disagree.
type bundleSequence struct {
	Bundle
	mode    packMode
	rows    int
	slots   []slot
	groups  [][]slot // grouped VFD only
	largest model.Cable
}

// floorSlots returns the slots resting on the floor, in packing order.
func (s bundleSequence) floorSlots() []slot {
	var out []slot
	for _, sl := range s.slots {
		if sl.onFloor() {
			out = append(out, sl)
		}
	}
	return out
}

// sequenceBundle orders and classifies a bundle's cables for packing.
func sequenceBundle(b Bundle, usableHeight float64) (bundleSequence, error) {
	seq := bundleSequence{Bundle: b}

	rows, _, err := PlanRowsColumns(usableHeight, b.Cables, b.Purpose)
	if err != nil {
		return seq, err
	}
	seq.rows = rows

	sorted := sortedByDiameter(b.Cables)
	seq.largest = sorted[0]

	switch {
	case b.Purpose == model.PurposeMV:
		seq.mode = modePhaseRotation
		for i, c := range phaseRotate(sorted) {
			lifted := i%3 == 2
			seq.slots = append(seq.slots, newSlot(c, i, lifted, 0))
		}
	case b.Purpose == model.PurposePower && hexagonalBucket(b.Bucket):
		seq.mode = modeHexagonal
		for i, c := range sorted {
			lifted := liftsIntoHexRow(i, c.Diameter(), usableHeight)
			seq.slots = append(seq.slots, newSlot(c, i, lifted, 0))
		}
	case b.Purpose == model.PurposeVFD && groupableBucket(b.Bucket):
		seq.mode = modeGroupedHex
		for _, group := range groupByDestination(b.Cables) {
			var gs []slot
			for i, c := range sortedByDiameter(group) {
				lifted := liftsIntoHexRow(i, c.Diameter(), usableHeight)
				gs = append(gs, newSlot(c, i, lifted, 0))
			}
			seq.groups = append(seq.groups, gs)
			seq.slots = append(seq.slots, gs...)
		}
	default:
		seq.mode = modeVerticalStack
		for i, c := range sorted {
			seq.slots = append(seq.slots, newSlot(c, i, false, i%rows))
		}
	}
	return seq, nil
}

func newSlot(c model.Cable, i int, lifted bool, row int) slot {
	if lifted {
		row = 1
	}
	return slot{cable: c, diameter: c.Diameter(), index: i, row: row, lifted: lifted}
}

// phaseRotate reorders cables in blocks of six as [1 2 0 5 4 3]. A short
// final block follows the same rule over the cables it has.
func phaseRotate(cables []model.Cable) []model.Cable {
	const blockSize = 6
	out := make([]model.Cable, 0, len(cables))
	for start := 0; start < len(cables); start += blockSize {
		block := cables[start:min(start+blockSize, len(cables))]
		half := min(blockSize/2, len(block))
		out = append(out, block[1:half]...)
		out = append(out, block[0])
		for i := len(block) - 1; i >= half; i-- {
			out = append(out, block[i])
		}
	}
	return out
}

// groupByDestination splits cables by ToLocation, groups ordered by first appearance.
func groupByDestination(cables []model.Cable) [][]model.Cable {
	index := make(map[string]int)
	var groups [][]model.Cable
	for _, c := range cables {
		i, ok := index[c.ToLocation]
		if !ok {
			i = len(groups)
			index[c.ToLocation] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}

// sequencePurpose sequences every bundle of one purpose, largest bucket first.
func sequencePurpose(bundles BundleMap, p model.Purpose, usableHeight float64) ([]bundleSequence, error) {
	var out []bundleSequence
	for _, b := range bundles.Bundles(p) {
		seq, err := sequenceBundle(b, usableHeight)
		if err != nil {
			return nil, err
		}
		out = append(out, seq)
	}
	return out, nil
}
