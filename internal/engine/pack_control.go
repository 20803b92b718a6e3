package engine

// packControl stacks Control bundles from the right edge, moving left.
func (pk *packer) packControl(seqs []bundleSequence, cur LayoutCursor) LayoutCursor {
	for i, seq := range seqs {
		pk.stackRight(seq, cur)
		if i != len(seqs)-1 {
			pk.state.Control = append(pk.state.Control, sentinels(seq)...)
		}
		cur = LayoutCursor{X: pk.geo.rightEdge(pk.state.Control), Y: pk.geo.floorY()}
	}
	return cur
}

func (pk *packer) stackRight(seq bundleSequence, cur LayoutCursor) {
	floor := pk.geo.floorY()
	x, y := cur.X, cur.Y
	for _, sl := range seq.slots {
		pk.placeRight(seq.Bundle, sl, x, y)
		y -= sl.diameter*pk.geo.scale + pk.geo.spacing
		if sl.row == 0 {
			pk.state.Control = append(pk.state.Control, floorEntry(seq.Bundle, sl))
		}
		if sl.row == seq.rows-1 {
			x = pk.geo.rightEdge(pk.state.Control)
			y = floor
		}
	}
}
