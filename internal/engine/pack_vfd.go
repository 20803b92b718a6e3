package engine

import "github.com/piwi3910/TrayLayout/internal/model"

// packVFD continues leftwards from the right cursor. Groupable buckets are
// packed per destination; the rest are stacked like Control.
func (pk *packer) packVFD(seqs []bundleSequence, cur LayoutCursor) LayoutCursor {
	x := cur.X
	for i, seq := range seqs {
		if seq.mode == modeGroupedHex {
			x = pk.groupedRight(seq, x)
		} else {
			x = pk.stackVFDRight(seq, x)
		}
		if i != len(seqs)-1 {
			pk.state.VFD = append(pk.state.VFD, sentinels(seq)...)
			x -= 2 * (seq.largest.Diameter() + model.Spacing) * pk.geo.scale
		}
	}
	return LayoutCursor{X: x, Y: pk.geo.floorY()}
}

// groupedRight packs each destination group hexagonally, leaving a wide gap
// after every lifted cable.
func (pk *packer) groupedRight(seq bundleSequence, x float64) float64 {
	s := pk.geo.scale
	floor := pk.geo.floorY()
	for _, group := range seq.groups {
		y := floor
		for _, sl := range group {
			if sl.lifted {
				y = floor - pk.geo.hexLift(sl.diameter)
				x += (sl.diameter*s + pk.geo.spacing) * 1.5
			}
			pk.placeRight(seq.Bundle, sl, x, y)
			if sl.lifted {
				y = floor
				x -= sl.diameter * s * 3.5
				continue
			}
			pk.state.VFD = append(pk.state.VFD, floorEntry(seq.Bundle, sl))
			x -= (sl.diameter + model.Spacing) * s
		}
	}
	return x
}

// stackVFDRight stacks columns from x, moving left by each column's floor
// cable. A partly filled last column still consumes its width.
func (pk *packer) stackVFDRight(seq bundleSequence, x float64) float64 {
	floor := pk.geo.floorY()
	y := floor
	var column float64
	open := false
	for _, sl := range seq.slots {
		pk.placeRight(seq.Bundle, sl, x, y)
		y -= sl.diameter*pk.geo.scale + pk.geo.spacing
		if sl.row == 0 {
			pk.state.VFD = append(pk.state.VFD, floorEntry(seq.Bundle, sl))
			column = (sl.diameter + model.Spacing) * pk.geo.scale
			open = true
		}
		if sl.row == seq.rows-1 {
			x -= column
			y = floor
			open = false
		}
	}
	if open {
		x -= column
	}
	return x
}
