package togyzkumalak

// Board geometry and stone counts. Pits live in a single circular index
// space 0..17: side A owns 0..8, side B owns 9..17, and sowing walks the
// ring by incrementing modulo 18. Local pit numbers 1..9 are what players
// see; which physical direction they are labeled in is a presentation
// concern and never enters the rules.
const (
	PitsPerSide = 9
	TotalPits   = 2 * PitsPerSide
	TotalStones = 162

	initialPitStones = 9

	// NoPit marks the absence of a pit index (no tuzdyk, or a final
	// sowing stone that was diverted into a kazan).
	NoPit = -1
)

// Side identifies one of the two players.
type Side int

const (
	SideA Side = iota
	SideB
)

func (that Side) Opponent() Side {
	if that == SideA {
		return SideB
	}
	return SideA
}

func (that Side) String() string {
	if that == SideA {
		return "A"
	}
	return "B"
}

// ParseSide maps the textual side label back to a Side.
func ParseSide(label string) (Side, error) {
	switch label {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	default:
		return SideA, ErrUnknownSide
	}
}

// Board holds the mutable position: pit counts, kazan totals, tuzdyk
// ownership and the side to move. It is a plain data container; all rules
// live in the sowing and capture code. The standing invariant
// sum(pits) + kazanA + kazanB == 162 is checked by tests, not per call.
type Board struct {
	pits    [TotalPits]int
	kazans  [2]int
	tuzdyks [2]int // global pit index owned by each side, NoPit when not created
	toMove  Side
}

// NewBoard returns the starting position: every pit holds 9 stones, both
// kazans are empty and no tuzdyk exists.
func NewBoard(firstMover Side) *Board {
	board := &Board{
		tuzdyks: [2]int{NoPit, NoPit},
		toMove:  firstMover,
	}
	for i := range board.pits {
		board.pits[i] = initialPitStones
	}
	return board
}

// globalIndex maps a side's local pit number 1..9 into the circular space.
func globalIndex(side Side, local int) int {
	return int(side)*PitsPerSide + local - 1
}

// sideOfPit returns which side owns the given global pit index.
func sideOfPit(pit int) Side {
	if pit < PitsPerSide {
		return SideA
	}
	return SideB
}

// localOf returns the local pit number 1..9 for a global index.
func localOf(pit int) int {
	return pit%PitsPerSide + 1
}

func nextPit(pit int) int {
	return (pit + 1) % TotalPits
}

func (that *Board) PitCount(side Side, local int) int {
	return that.pits[globalIndex(side, local)]
}

func (that *Board) KazanTotal(side Side) int {
	return that.kazans[side]
}

// TuzdykOwner reports which side, if any, owns a tuzdyk at the given
// global pit index.
func (that *Board) TuzdykOwner(pit int) (Side, bool) {
	if that.tuzdyks[SideA] == pit {
		return SideA, true
	}
	if that.tuzdyks[SideB] == pit {
		return SideB, true
	}
	return SideA, false
}

// TuzdykPit returns the global pit index of the side's tuzdyk, or NoPit.
func (that *Board) TuzdykPit(side Side) int {
	return that.tuzdyks[side]
}

func (that *Board) ToMove() Side {
	return that.toMove
}

func (that *Board) addStone(pit int) {
	that.pits[pit]++
}

func (that *Board) addToKazan(side Side, amount int) {
	that.kazans[side] += amount
}

// clearPit empties the pit and returns the stones that were in it.
func (that *Board) clearPit(pit int) int {
	stones := that.pits[pit]
	that.pits[pit] = 0
	return stones
}

func (that *Board) markTuzdyk(side Side, pit int) {
	that.tuzdyks[side] = pit
}

func (that *Board) flipToMove() {
	that.toMove = that.toMove.Opponent()
}

// stonesOn returns the number of stones lying in the side's nine pits.
func (that *Board) stonesOn(side Side) int {
	total := 0
	for local := 1; local <= PitsPerSide; local++ {
		total += that.pits[globalIndex(side, local)]
	}
	return total
}

// sweepAll empties every pit on the board into the collector's kazan and
// returns the amount collected. Used for the atsyz kalu forced end.
func (that *Board) sweepAll(collector Side) int {
	total := 0
	for pit := range that.pits {
		total += that.clearPit(pit)
	}
	that.addToKazan(collector, total)
	return total
}
