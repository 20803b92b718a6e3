package engine

import (
	"sort"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// Bundle is the set of cables on a tray sharing one purpose and diameter bucket.
type Bundle struct {
	Purpose model.Purpose
	Bucket  model.Bucket
	Cables  []model.Cable
}

// BundleMap groups a tray's cables by purpose, then by diameter bucket.
// Cables keep their insertion order within a bucket.
type BundleMap map[model.Purpose]map[model.Bucket][]model.Cable

// CableRepository supplies the cables routed over a tray.
type CableRepository interface {
	CablesOnTray(tray model.Tray) ([]model.Cable, error)
	CableBundles(tray model.Tray) (BundleMap, error)
}

// BuildBundleMap buckets every cable by purpose and diameter.
// The first cable with an unresolved type, unknown purpose or invalid
// diameter aborts the build.
func BuildBundleMap(cables []model.Cable) (BundleMap, error) {
	m := make(BundleMap)
	for _, c := range cables {
		if err := m.Add(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends one cable to its bundle.
func (m BundleMap) Add(c model.Cable) error {
	p, err := c.Purpose()
	if err != nil {
		return err
	}
	d, err := cableDiameter(c)
	if err != nil {
		return err
	}
	b, err := model.BucketFor(d)
	if err != nil {
		return &model.CableError{Tag: c.Tag, Err: err}
	}
	if m[p] == nil {
		m[p] = make(map[model.Bucket][]model.Cable)
	}
	m[p][b] = append(m[p][b], c)
	return nil
}

// Purposes returns the purposes present in the map, in layout order.
func (m BundleMap) Purposes() []model.Purpose {
	var out []model.Purpose
	for _, p := range model.Purposes() {
		if len(m.Bundles(p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Bundles returns the non-empty bundles of a purpose, largest bucket first.
func (m BundleMap) Bundles(p model.Purpose) []Bundle {
	buckets := m[p]
	out := make([]Bundle, 0, len(buckets))
	for b, cables := range buckets {
		if len(cables) == 0 {
			continue
		}
		out = append(out, Bundle{Purpose: p, Bucket: b, Cables: cables})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket > out[j].Bucket })
	return out
}

// Len returns the total number of cables in the map.
func (m BundleMap) Len() int {
	n := 0
	for _, buckets := range m {
		for _, cables := range buckets {
			n += len(cables)
		}
	}
	return n
}

// sortedByDiameter returns a copy of cables ordered largest first.
// Equal diameters keep their original order.
func sortedByDiameter(cables []model.Cable) []model.Cable {
	out := make([]model.Cable, len(cables))
	copy(out, cables)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Diameter() > out[j].Diameter() })
	return out
}
