package togyzkumalak

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadNotation = errors.New("malformed position notation")

// The canonical textual form of a position is
//
//	A|9-9-9-9-9-9-9-9-9,9-9-9-9-9-9-9-9-9|0,0|-,-
//
// side to move, then side A and side B pit counts, kazan totals, and each
// side's tuzdyk as a global pit index or "-". Notation adds "|n" with the
// move number. The position part doubles as the repetition key.

// position renders the board without the move number.
func (that *Board) position() string {
	rows := make([]string, 2)
	for _, side := range []Side{SideA, SideB} {
		counts := make([]string, PitsPerSide)
		for local := 1; local <= PitsPerSide; local++ {
			counts[local-1] = strconv.Itoa(that.PitCount(side, local))
		}
		rows[side] = strings.Join(counts, "-")
	}

	tuz := func(pit int) string {
		if pit == NoPit {
			return "-"
		}
		return strconv.Itoa(pit)
	}

	return fmt.Sprintf("%s|%s,%s|%d,%d|%s,%s",
		that.toMove,
		rows[SideA], rows[SideB],
		that.kazans[SideA], that.kazans[SideB],
		tuz(that.tuzdyks[SideA]), tuz(that.tuzdyks[SideB]),
	)
}

// Notation serializes the game to its canonical textual form. The result
// round-trips losslessly through ParseNotation.
func (that *Game) Notation() string {
	return fmt.Sprintf("%s|%d", that.board.position(), that.moveNum)
}

// Position returns the canonical position string without the move number.
// Two game states with equal Position strings are identical for the
// purpose of repetition claims.
func (that *Game) Position() string {
	return that.board.position()
}

// ParseNotation rebuilds a game from its canonical textual form. The
// restored game carries no repetition history beyond the position itself.
func ParseNotation(notation string) (*Game, error) {
	parts := strings.Split(notation, "|")
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: want 5 fields, got %d", ErrBadNotation, len(parts))
	}

	side, err := ParseSide(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: side %q", ErrBadNotation, parts[0])
	}

	snap := Snapshot{ToMove: side, TuzdykA: NoPit, TuzdykB: NoPit}

	rows := strings.Split(parts[1], ",")
	if len(rows) != 2 {
		return nil, fmt.Errorf("%w: want 2 pit rows, got %d", ErrBadNotation, len(rows))
	}
	for row, rowText := range rows {
		counts := strings.Split(rowText, "-")
		if len(counts) != PitsPerSide {
			return nil, fmt.Errorf("%w: want %d pits per row, got %d", ErrBadNotation, PitsPerSide, len(counts))
		}
		for i, text := range counts {
			stones, err := strconv.Atoi(text)
			if err != nil || stones < 0 {
				return nil, fmt.Errorf("%w: pit count %q", ErrBadNotation, text)
			}
			snap.Pits[row*PitsPerSide+i] = stones
		}
	}

	kazans := strings.Split(parts[2], ",")
	if len(kazans) != 2 {
		return nil, fmt.Errorf("%w: want 2 kazan totals", ErrBadNotation)
	}
	if snap.KazanA, err = strconv.Atoi(kazans[0]); err != nil {
		return nil, fmt.Errorf("%w: kazan %q", ErrBadNotation, kazans[0])
	}
	if snap.KazanB, err = strconv.Atoi(kazans[1]); err != nil {
		return nil, fmt.Errorf("%w: kazan %q", ErrBadNotation, kazans[1])
	}

	tuzdyks := strings.Split(parts[3], ",")
	if len(tuzdyks) != 2 {
		return nil, fmt.Errorf("%w: want 2 tuzdyk markers", ErrBadNotation)
	}
	if snap.TuzdykA, err = parseTuzdyk(tuzdyks[0]); err != nil {
		return nil, err
	}
	if snap.TuzdykB, err = parseTuzdyk(tuzdyks[1]); err != nil {
		return nil, err
	}

	if snap.MoveNumber, err = strconv.Atoi(parts[4]); err != nil || snap.MoveNumber < 1 {
		return nil, fmt.Errorf("%w: move number %q", ErrBadNotation, parts[4])
	}

	return Restore(snap)
}

func parseTuzdyk(text string) (int, error) {
	if text == "-" {
		return NoPit, nil
	}
	pit, err := strconv.Atoi(text)
	if err != nil {
		return NoPit, fmt.Errorf("%w: tuzdyk %q", ErrBadNotation, text)
	}
	return pit, nil
}
