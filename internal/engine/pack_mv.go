package engine

import "github.com/piwi3910/TrayLayout/internal/model"

// packMV continues from the left cursor after Power. MV floor cables join
// the Power bottom row. No sentinels are added between MV bundles.
func (pk *packer) packMV(seqs []bundleSequence, cur LayoutCursor) LayoutCursor {
	for _, seq := range seqs {
		cur = pk.phaseRotationLeft(seq, cur)
	}
	return cur
}

// phaseRotationLeft lays triads: two cables on the floor and the third
// nested on top of them, then skips two cable widths before the next triad.
func (pk *packer) phaseRotationLeft(seq bundleSequence, cur LayoutCursor) LayoutCursor {
	s := pk.geo.scale
	floor := pk.geo.floorY()
	x, y := cur.X, floor
	bottom := x
	top := x + (seq.slots[0].diameter/2+model.Spacing/2)*s

	for _, sl := range seq.slots {
		step := (sl.diameter + model.Spacing) * s
		if sl.lifted {
			y = floor - pk.geo.hexLift(sl.diameter)
			x = top
		}
		pk.placeLeft(seq.Bundle, sl, x, y)
		y = floor
		if sl.lifted {
			bottom += 2 * step
			x = bottom
			top += 4 * step
			continue
		}
		pk.state.Power = append(pk.state.Power, floorEntry(seq.Bundle, sl))
		x += step
		bottom = x
	}
	return LayoutCursor{X: x, Y: floor}
}
