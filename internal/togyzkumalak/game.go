package togyzkumalak

import (
	"errors"
	"fmt"
)

const (
	winThreshold = 82
	drawKazan    = 81
)

var (
	ErrInvalidPitIndex  = errors.New("pit index must be between 1 and 9")
	ErrEmptyPitSelected = errors.New("selected pit is empty")
	ErrNotSideToMove    = errors.New("it is not that side's turn")
	ErrGameAlreadyOver  = errors.New("game is already over")
	ErrNoRepetition     = errors.New("position has not occurred three times")
	ErrUnknownSide      = errors.New("unknown side label")
	ErrInvalidState     = errors.New("invalid game state")
)

// GameResult is the authoritative outcome of a game.
type GameResult int

const (
	ResultInProgress GameResult = iota
	ResultWinA
	ResultWinB
	ResultDraw
)

func (that GameResult) String() string {
	switch that {
	case ResultWinA:
		return "win-a"
	case ResultWinB:
		return "win-b"
	case ResultDraw:
		return "draw"
	default:
		return "in-progress"
	}
}

// Winner returns the winning side when the result is a win.
func (that GameResult) Winner() (Side, bool) {
	switch that {
	case ResultWinA:
		return SideA, true
	case ResultWinB:
		return SideB, true
	default:
		return SideA, false
	}
}

func winResult(side Side) GameResult {
	if side == SideA {
		return ResultWinA
	}
	return ResultWinB
}

// MoveOutcome describes everything a successfully applied move changed.
type MoveOutcome struct {
	LastFilled int            `json:"last_filled"`
	Capture    CaptureOutcome `json:"capture"`
	Diverted   []Diversion    `json:"diverted,omitempty"`
	Swept      int            `json:"swept,omitempty"`
	Result     GameResult     `json:"result"`
}

// Snapshot is the full public state of a game, sufficient to restore it
// losslessly. Tuzdyk fields hold global pit indices, NoPit for none.
type Snapshot struct {
	Pits       [TotalPits]int `json:"pits"`
	KazanA     int            `json:"kazan_a"`
	KazanB     int            `json:"kazan_b"`
	TuzdykA    int            `json:"tuzdyk_a"`
	TuzdykB    int            `json:"tuzdyk_b"`
	ToMove     Side           `json:"to_move"`
	MoveNumber int            `json:"move_number"`
	Result     GameResult     `json:"result"`
	// History holds the canonical position strings reached so far, in
	// order, for threefold-repetition draw claims.
	History []string `json:"history,omitempty"`
}

// Game is the deterministic state machine for one match: it validates
// moves, drives sowing and capture resolution, owns turn alternation and
// produces the authoritative result. A Game instance must be driven by
// one caller at a time; independent games share nothing.
type Game struct {
	board   *Board
	result  GameResult
	history *historyTracker
	moveNum int
}

// NewGame returns a fresh game with the configured first mover.
func NewGame(firstMover Side) *Game {
	game := &Game{
		board:   NewBoard(firstMover),
		result:  ResultInProgress,
		history: newHistoryTracker(),
		moveNum: 1,
	}
	game.history.record(game.board.position())
	return game
}

// ApplyMove validates and applies one move for the given side from its
// local pit 1..9. Validation failures leave the game untouched: either
// the whole move applies or nothing changes.
func (that *Game) ApplyMove(side Side, local int) (MoveOutcome, error) {
	if that.result != ResultInProgress {
		return MoveOutcome{}, ErrGameAlreadyOver
	}
	if local < 1 || local > PitsPerSide {
		return MoveOutcome{}, fmt.Errorf("%w: got %d", ErrInvalidPitIndex, local)
	}
	if side != that.board.toMove {
		return MoveOutcome{}, ErrNotSideToMove
	}
	if that.board.PitCount(side, local) == 0 {
		return MoveOutcome{}, ErrEmptyPitSelected
	}

	sown := sow(that.board, side, local)
	capture := resolveCapture(that.board, side, sown.LastFilled)

	outcome := MoveOutcome{
		LastFilled: sown.LastFilled,
		Capture:    capture,
		Diverted:   sown.Diverted,
	}

	that.moveNum++
	that.board.flipToMove()
	outcome.Swept = that.settleTermination()
	outcome.Result = that.result

	if that.result == ResultInProgress {
		that.history.record(that.board.position())
	}

	return outcome, nil
}

// settleTermination evaluates the end-of-game conditions against the
// current board, with the side to move already flipped to the next
// player. Returns the number of stones swept by a forced end.
//
// Order: atsyz kalu (next player's pits all empty, previous mover sweeps
// the whole board), then the 82-stone win threshold, then the 81/81 draw.
func (that *Game) settleTermination() int {
	swept := 0
	if that.board.stonesOn(that.board.toMove) == 0 {
		swept = that.board.sweepAll(that.board.toMove.Opponent())
	}

	switch {
	case that.board.kazans[SideA] >= winThreshold:
		that.result = ResultWinA
	case that.board.kazans[SideB] >= winThreshold:
		that.result = ResultWinB
	case that.board.kazans[SideA] == drawKazan && that.board.kazans[SideB] == drawKazan:
		that.result = ResultDraw
	}

	return swept
}

// ClaimDraw succeeds only when the current position, including the side
// to move, has occurred at least three times. Repetition never ends the
// game by itself; it must be claimed.
func (that *Game) ClaimDraw() error {
	if that.result != ResultInProgress {
		return ErrGameAlreadyOver
	}
	if that.history.occurrences(that.board.position()) < 3 {
		return ErrNoRepetition
	}
	that.result = ResultDraw
	return nil
}

// LegalMoves returns the local pit numbers the side to move may play.
// Empty when the game is over.
func (that *Game) LegalMoves() []int {
	if that.result != ResultInProgress {
		return nil
	}
	var moves []int
	for local := 1; local <= PitsPerSide; local++ {
		if that.board.PitCount(that.board.toMove, local) > 0 {
			moves = append(moves, local)
		}
	}
	return moves
}

func (that *Game) Result() GameResult {
	return that.result
}

func (that *Game) ToMove() Side {
	return that.board.toMove
}

// Snapshot returns the full public state of the game.
func (that *Game) Snapshot() Snapshot {
	return Snapshot{
		Pits:       that.board.pits,
		KazanA:     that.board.kazans[SideA],
		KazanB:     that.board.kazans[SideB],
		TuzdykA:    that.board.tuzdyks[SideA],
		TuzdykB:    that.board.tuzdyks[SideB],
		ToMove:     that.board.toMove,
		MoveNumber: that.moveNum,
		Result:     that.result,
		History:    that.history.positions(),
	}
}

// Restore rebuilds a game from a snapshot, validating the stone
// conservation and tuzdyk invariants. A restored in-progress position
// whose side to move has no stones is settled as a forced end
// immediately.
func Restore(snap Snapshot) (*Game, error) {
	board := &Board{
		pits:    snap.Pits,
		kazans:  [2]int{snap.KazanA, snap.KazanB},
		tuzdyks: [2]int{snap.TuzdykA, snap.TuzdykB},
		toMove:  snap.ToMove,
	}

	if err := validateBoard(board); err != nil {
		return nil, err
	}

	game := &Game{
		board:   board,
		result:  snap.Result,
		history: newHistoryTracker(),
		moveNum: snap.MoveNumber,
	}
	if game.moveNum < 1 {
		game.moveNum = 1
	}

	for _, position := range snap.History {
		game.history.record(position)
	}
	if len(snap.History) == 0 {
		game.history.record(board.position())
	}

	if game.result == ResultInProgress {
		game.settleTermination()
	}

	return game, nil
}

func validateBoard(board *Board) error {
	if board.toMove != SideA && board.toMove != SideB {
		return fmt.Errorf("%w: side to move %d", ErrInvalidState, board.toMove)
	}

	total := board.kazans[SideA] + board.kazans[SideB]
	if board.kazans[SideA] < 0 || board.kazans[SideB] < 0 {
		return fmt.Errorf("%w: negative kazan total", ErrInvalidState)
	}
	for pit, stones := range board.pits {
		if stones < 0 {
			return fmt.Errorf("%w: negative count in pit %d", ErrInvalidState, pit)
		}
		total += stones
	}
	if total != TotalStones {
		return fmt.Errorf("%w: %d stones on board, want %d", ErrInvalidState, total, TotalStones)
	}

	for _, side := range []Side{SideA, SideB} {
		pit := board.tuzdyks[side]
		if pit == NoPit {
			continue
		}
		if pit < 0 || pit >= TotalPits {
			return fmt.Errorf("%w: tuzdyk index %d out of range", ErrInvalidState, pit)
		}
		if sideOfPit(pit) != side.Opponent() {
			return fmt.Errorf("%w: side %s tuzdyk on its own row", ErrInvalidState, side)
		}
		if localOf(pit) == PitsPerSide {
			return fmt.Errorf("%w: tuzdyk in pit #9", ErrInvalidState)
		}
		if board.pits[pit] != 0 {
			return fmt.Errorf("%w: tuzdyk pit %d holds stones", ErrInvalidState, pit)
		}
	}
	tuzA, tuzB := board.tuzdyks[SideA], board.tuzdyks[SideB]
	if tuzA != NoPit && tuzB != NoPit && localOf(tuzA) == localOf(tuzB) {
		return fmt.Errorf("%w: symmetric tuzdyk pits", ErrInvalidState)
	}

	return nil
}
