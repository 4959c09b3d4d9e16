package togyzkumalak

// CaptureKind tags the outcome of capture resolution after a sowing pass.
type CaptureKind int

const (
	CaptureNone CaptureKind = iota
	EvenCapture
	TuzdykCreated
)

func (that CaptureKind) String() string {
	switch that {
	case EvenCapture:
		return "even-capture"
	case TuzdykCreated:
		return "tuzdyk-created"
	default:
		return "none"
	}
}

// CaptureOutcome describes what, if anything, happened at the final
// landing pit. Amount is the number of stones moved into the mover's
// kazan (3 for a freshly created tuzdyk).
type CaptureOutcome struct {
	Kind   CaptureKind `json:"kind"`
	Pit    int         `json:"pit"`
	Amount int         `json:"amount"`
}

// resolveCapture applies the capture rules to the pit where the final
// sowing stone came to rest. A move produces at most one capture or
// tuzdyk event, always at the final landing pit; pits merely passed
// through are never captured.
//
// Rules in order: a landing that raises an opponent pit to exactly 3
// attempts tuzdyk creation; otherwise an even count greater than zero is
// captured whole; anything else (odd count, rejected tuzdyk, own-side or
// diverted landing) changes nothing. A rejected tuzdyk attempt never
// falls back to an even capture since 3 is odd.
func resolveCapture(board *Board, mover Side, lastFilled int) CaptureOutcome {
	none := CaptureOutcome{Kind: CaptureNone, Pit: NoPit}

	if lastFilled == NoPit || sideOfPit(lastFilled) != mover.Opponent() {
		return none
	}

	stones := board.pits[lastFilled]

	if stones == 3 {
		if !canCreateTuzdyk(board, mover, lastFilled) {
			return none
		}
		board.markTuzdyk(mover, lastFilled)
		board.addToKazan(mover, board.clearPit(lastFilled))
		return CaptureOutcome{Kind: TuzdykCreated, Pit: lastFilled, Amount: 3}
	}

	if stones > 0 && stones%2 == 0 {
		board.addToKazan(mover, board.clearPit(lastFilled))
		return CaptureOutcome{Kind: EvenCapture, Pit: lastFilled, Amount: stones}
	}

	return none
}

// canCreateTuzdyk enforces the tuzdyk restrictions: one tuzdyk per player,
// never in the opponent's ninth pit, and never in the pit symmetric (same
// local number) to the opponent's existing tuzdyk.
func canCreateTuzdyk(board *Board, mover Side, pit int) bool {
	if board.tuzdyks[mover] != NoPit {
		return false
	}
	if localOf(pit) == PitsPerSide {
		return false
	}
	if opp := board.tuzdyks[mover.Opponent()]; opp != NoPit && localOf(opp) == localOf(pit) {
		return false
	}
	return true
}
