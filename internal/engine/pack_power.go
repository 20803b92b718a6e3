package engine

// packPower lays Power bundles from the left edge. Every bundle except the
// last is followed by two sentinel entries.
func (pk *packer) packPower(seqs []bundleSequence, cur LayoutCursor) LayoutCursor {
	for i, seq := range seqs {
		if seq.mode == modeHexagonal {
			pk.hexagonalLeft(seq, cur)
		} else {
			pk.stackLeft(seq, cur)
		}
		if i != len(seqs)-1 {
			pk.state.Power = append(pk.state.Power, sentinels(seq)...)
		}
		cur = LayoutCursor{X: pk.geo.leftEdge(pk.state.Power), Y: pk.geo.floorY()}
	}
	return cur
}

// stackLeft fills columns bottom-up, rows cables high, moving right.
func (pk *packer) stackLeft(seq bundleSequence, cur LayoutCursor) {
	floor := pk.geo.floorY()
	x, y := cur.X, cur.Y
	for _, sl := range seq.slots {
		pk.placeLeft(seq.Bundle, sl, x, y)
		y -= sl.diameter*pk.geo.scale + pk.geo.spacing
		if sl.row == 0 {
			pk.state.Power = append(pk.state.Power, floorEntry(seq.Bundle, sl))
		}
		if sl.row == seq.rows-1 {
			x = pk.geo.leftEdge(pk.state.Power)
			y = floor
		}
	}
}

// hexagonalLeft lays cables on the floor, nesting lifted cables in the
// hollow between the last two floor cables.
func (pk *packer) hexagonalLeft(seq bundleSequence, cur LayoutCursor) {
	floor := pk.geo.floorY()
	x, y := cur.X, floor
	for _, sl := range seq.slots {
		if sl.lifted {
			y = floor - pk.geo.hexLift(sl.diameter)
			x = pk.geo.leftEdge(pk.state.Power) - (sl.diameter*pk.geo.scale+pk.geo.spacing)*1.5
		}
		pk.placeLeft(seq.Bundle, sl, x, y)
		y = floor
		if !sl.lifted {
			pk.state.Power = append(pk.state.Power, floorEntry(seq.Bundle, sl))
		}
		x = pk.geo.leftEdge(pk.state.Power)
	}
}
