package togyzkumalak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stonesTotal(snap Snapshot) int {
	total := snap.KazanA + snap.KazanB
	for _, stones := range snap.Pits {
		total += stones
	}
	return total
}

func TestNewGameInitialState(t *testing.T) {
	// Given: a fresh game with side B configured as first mover
	game := NewGame(SideB)

	// Then: the starting position holds and B is to move
	snap := game.Snapshot()
	for _, stones := range snap.Pits {
		assert.Equal(t, 9, stones)
	}
	assert.Equal(t, 0, snap.KazanA)
	assert.Equal(t, 0, snap.KazanB)
	assert.Equal(t, NoPit, snap.TuzdykA)
	assert.Equal(t, NoPit, snap.TuzdykB)
	assert.Equal(t, SideB, snap.ToMove)
	assert.Equal(t, ResultInProgress, snap.Result)
	assert.Equal(t, TotalStones, stonesTotal(snap))
}

func TestApplyMoveValidation(t *testing.T) {
	t.Run("rejects a pit index outside 1..9", func(t *testing.T) {
		game := NewGame(SideA)

		_, err := game.ApplyMove(SideA, 0)
		assert.ErrorIs(t, err, ErrInvalidPitIndex)

		_, err = game.ApplyMove(SideA, 10)
		assert.ErrorIs(t, err, ErrInvalidPitIndex)
	})

	t.Run("rejects a move out of turn", func(t *testing.T) {
		game := NewGame(SideA)

		_, err := game.ApplyMove(SideB, 1)
		assert.ErrorIs(t, err, ErrNotSideToMove)
	})

	t.Run("rejects an empty pit", func(t *testing.T) {
		// Given: A's first pit has been emptied by a single-stone sow
		game := position(t, SideA, map[int]int{
			globalIndex(SideA, 2): 81,
			globalIndex(SideB, 2): 81,
		}, 0, 0, NoPit, NoPit)

		_, err := game.ApplyMove(SideA, 1)
		assert.ErrorIs(t, err, ErrEmptyPitSelected)
	})

	t.Run("rejects moves after the game is over", func(t *testing.T) {
		// Given: a game already won by A
		snap := NewGame(SideA).Snapshot()
		snap.Pits[globalIndex(SideA, 1)] = 0
		snap.KazanA = 9
		snap.Result = ResultWinA
		game, err := Restore(snap)
		require.NoError(t, err)

		_, err = game.ApplyMove(SideA, 2)
		assert.ErrorIs(t, err, ErrGameAlreadyOver)
	})

	t.Run("a rejected move leaves the state untouched", func(t *testing.T) {
		game := NewGame(SideA)
		before := game.Snapshot()

		_, err := game.ApplyMove(SideB, 3)
		require.Error(t, err)

		assert.Equal(t, before, game.Snapshot())
	})
}

func TestOpeningMoveScenario(t *testing.T) {
	// Given: a fresh game
	game := NewGame(SideA)

	// When: side A sows its first pit of 9 stones
	outcome, err := game.ApplyMove(SideA, 1)
	require.NoError(t, err)

	// Then: pit 1 keeps the refill stone, pits 2..9 each gain one, the
	// last stone lands on A's own ninth pit, and nothing is captured
	snap := game.Snapshot()
	assert.Equal(t, 1, snap.Pits[globalIndex(SideA, 1)])
	for local := 2; local <= 9; local++ {
		assert.Equal(t, 10, snap.Pits[globalIndex(SideA, local)])
	}
	assert.Equal(t, globalIndex(SideA, 9), outcome.LastFilled)
	assert.Equal(t, CaptureNone, outcome.Capture.Kind)
	assert.Equal(t, SideB, snap.ToMove)
	assert.Equal(t, TotalStones, stonesTotal(snap))
}

func TestTenStoneCaptureScenario(t *testing.T) {
	// Given: side A's ninth pit holds 10 stones after the opening move
	game := position(t, SideA, map[int]int{
		globalIndex(SideA, 1): 1,
		globalIndex(SideA, 2): 10, globalIndex(SideA, 3): 10, globalIndex(SideA, 4): 10,
		globalIndex(SideA, 5): 10, globalIndex(SideA, 6): 10, globalIndex(SideA, 7): 10,
		globalIndex(SideA, 8): 10, globalIndex(SideA, 9): 10,
		globalIndex(SideB, 1): 9, globalIndex(SideB, 2): 9, globalIndex(SideB, 3): 9,
		globalIndex(SideB, 4): 9, globalIndex(SideB, 5): 9, globalIndex(SideB, 6): 9,
		globalIndex(SideB, 7): 9, globalIndex(SideB, 8): 9, globalIndex(SideB, 9): 9,
	}, 0, 0, NoPit, NoPit)

	// When: side A sows the ninth pit
	outcome, err := game.ApplyMove(SideA, 9)
	require.NoError(t, err)

	// Then: the pass refills the origin, walks B's whole row and the last
	// stone raises B's ninth pit to an even 10, captured by A
	snap := game.Snapshot()
	assert.Equal(t, 1, snap.Pits[globalIndex(SideA, 9)])
	for local := 1; local <= 8; local++ {
		assert.Equal(t, 10, snap.Pits[globalIndex(SideB, local)])
	}
	assert.Equal(t, EvenCapture, outcome.Capture.Kind)
	assert.Equal(t, 10, outcome.Capture.Amount)
	assert.Equal(t, 10, snap.KazanA)
	assert.Equal(t, 0, snap.Pits[globalIndex(SideB, 9)])
	assert.Equal(t, TotalStones, stonesTotal(snap))
}

func TestForcedEnd(t *testing.T) {
	t.Run("mover sweeps the board when the opponent is left empty", func(t *testing.T) {
		// Given: B's row is empty and A's move stays on its own side
		game := position(t, SideA, map[int]int{
			globalIndex(SideA, 1): 3,
			globalIndex(SideA, 5): 9,
		}, 75, 75, NoPit, NoPit)

		// When: side A sows pit 1
		outcome, err := game.ApplyMove(SideA, 1)
		require.NoError(t, err)

		// Then: A collects every remaining stone and wins on threshold
		assert.Equal(t, 12, outcome.Swept)
		assert.Equal(t, ResultWinA, outcome.Result)

		snap := game.Snapshot()
		assert.Equal(t, 87, snap.KazanA)
		assert.Equal(t, 75, snap.KazanB)
		for _, stones := range snap.Pits {
			assert.Equal(t, 0, stones)
		}
		assert.Equal(t, TotalStones, stonesTotal(snap))
	})

	t.Run("a restored position with an empty mover settles immediately", func(t *testing.T) {
		// Given: side B to move with no stones in its row
		snap := Snapshot{TuzdykA: NoPit, TuzdykB: NoPit, ToMove: SideB, KazanA: 70, KazanB: 80}
		snap.Pits[globalIndex(SideA, 4)] = 12

		// When: the game is restored
		game, err := Restore(snap)
		require.NoError(t, err)

		// Then: A collected the remaining stones and won
		assert.Equal(t, ResultWinA, game.Result())
		assert.Equal(t, 82, game.Snapshot().KazanA)
	})
}

func TestWinThreshold(t *testing.T) {
	// Given: a capture that pushes A's kazan past 82
	game := position(t, SideA, map[int]int{
		globalIndex(SideA, 9): 1,
		globalIndex(SideB, 1): 3,
		globalIndex(SideB, 5): 9,
	}, 78, 71, NoPit, NoPit)

	// When: A's lone stone raises B's first pit to an even 4
	outcome, err := game.ApplyMove(SideA, 9)
	require.NoError(t, err)

	// Then: A reaches 82 and wins
	assert.Equal(t, EvenCapture, outcome.Capture.Kind)
	assert.Equal(t, ResultWinA, outcome.Result)
	assert.Equal(t, 82, game.Snapshot().KazanA)

	winner, ok := outcome.Result.Winner()
	require.True(t, ok)
	assert.Equal(t, SideA, winner)
}

func TestMutualExhaustionDraw(t *testing.T) {
	// Given: the last two stones on the board, with both kazans at 81
	// once A captures them
	game := position(t, SideA, map[int]int{
		globalIndex(SideA, 9): 1,
		globalIndex(SideB, 1): 1,
	}, 79, 81, NoPit, NoPit)

	// When: A captures the final even pit
	outcome, err := game.ApplyMove(SideA, 9)
	require.NoError(t, err)

	// Then: both kazans hold exactly 81 and the game is drawn
	assert.Equal(t, ResultDraw, outcome.Result)

	snap := game.Snapshot()
	assert.Equal(t, 81, snap.KazanA)
	assert.Equal(t, 81, snap.KazanB)

	_, ok := outcome.Result.Winner()
	assert.False(t, ok)
}

func TestClaimDraw(t *testing.T) {
	t.Run("rejected before threefold repetition", func(t *testing.T) {
		game := NewGame(SideA)

		err := game.ClaimDraw()
		assert.ErrorIs(t, err, ErrNoRepetition)
		assert.Equal(t, ResultInProgress, game.Result())
	})

	t.Run("accepted once the position occurred three times", func(t *testing.T) {
		// Given: a game whose current position is on record three times
		fresh := NewGame(SideA)
		snap := fresh.Snapshot()
		key := fresh.Position()
		snap.History = []string{key, key, key}

		game, err := Restore(snap)
		require.NoError(t, err)

		// When: a draw is claimed
		err = game.ClaimDraw()

		// Then: the claim succeeds and the game is drawn
		require.NoError(t, err)
		assert.Equal(t, ResultDraw, game.Result())

		// And: no further moves are accepted
		_, err = game.ApplyMove(SideA, 1)
		assert.ErrorIs(t, err, ErrGameAlreadyOver)
	})

	t.Run("rejected after the game is over", func(t *testing.T) {
		game := position(t, SideA, map[int]int{
			globalIndex(SideA, 9): 1,
			globalIndex(SideB, 1): 1,
		}, 79, 81, NoPit, NoPit)

		_, err := game.ApplyMove(SideA, 9)
		require.NoError(t, err)

		err = game.ClaimDraw()
		assert.ErrorIs(t, err, ErrGameAlreadyOver)
	})
}

func TestLegalMoves(t *testing.T) {
	t.Run("fresh game offers all nine pits", func(t *testing.T) {
		game := NewGame(SideA)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, game.LegalMoves())
	})

	t.Run("empty pits are not offered", func(t *testing.T) {
		game := position(t, SideB, map[int]int{
			globalIndex(SideB, 2): 80,
			globalIndex(SideB, 7): 2,
			globalIndex(SideA, 1): 80,
		}, 0, 0, NoPit, NoPit)

		assert.Equal(t, []int{2, 7}, game.LegalMoves())
	})
}

func TestStoneConservationAcrossAGame(t *testing.T) {
	// Given: a fresh game
	game := NewGame(SideA)

	// When: both sides keep playing their lowest legal pit
	// Then: every reachable state holds exactly 162 stones
	for move := 0; move < 60 && game.Result() == ResultInProgress; move++ {
		moves := game.LegalMoves()
		require.NotEmpty(t, moves)

		_, err := game.ApplyMove(game.ToMove(), moves[0])
		require.NoError(t, err)

		assert.Equal(t, TotalStones, stonesTotal(game.Snapshot()))
	}
}
