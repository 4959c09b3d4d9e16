package togyzkumalak

// Diversion records stones that were redirected into an existing tuzdyk
// during a sowing pass, credited to the tuzdyk owner's kazan.
type Diversion struct {
	Owner  Side `json:"owner"`
	Amount int  `json:"amount"`
}

// SowResult describes one completed sowing pass.
type SowResult struct {
	// LastFilled is the global index of the pit where the final stone
	// came to rest, or NoPit if the final stone fell into a tuzdyk and
	// was diverted to a kazan. Capture resolution never applies to a
	// diverted final stone.
	LastFilled int
	Diverted   []Diversion
}

// sow empties the mover's pit and distributes its stones around the ring.
//
// With a single stone the stone moves to the next pit and the origin stays
// empty. With more than one stone the first stone drops back into the
// origin itself and the rest continue outward one pit at a time. Any stone
// landing on a pit marked as a tuzdyk never accumulates there: it is
// redirected to the tuzdyk owner's kazan on the spot. Kazans are never
// direct sowing targets.
//
// The caller guarantees the pit belongs to side and is non-empty.
func sow(board *Board, side Side, local int) SowResult {
	origin := globalIndex(side, local)
	stones := board.clearPit(origin)

	var diverted [2]int
	lastFilled := NoPit

	pit := origin
	for i := 0; i < stones; i++ {
		if i > 0 || stones == 1 {
			pit = nextPit(pit)
		}

		if owner, ok := board.TuzdykOwner(pit); ok {
			board.addToKazan(owner, 1)
			diverted[owner]++
			if i == stones-1 {
				lastFilled = NoPit
			}
			continue
		}

		board.addStone(pit)
		if i == stones-1 {
			lastFilled = pit
		}
	}

	result := SowResult{LastFilled: lastFilled}
	for _, owner := range []Side{SideA, SideB} {
		if diverted[owner] > 0 {
			result.Diverted = append(result.Diverted, Diversion{Owner: owner, Amount: diverted[owner]})
		}
	}

	return result
}
