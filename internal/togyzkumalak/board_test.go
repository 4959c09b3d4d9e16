package togyzkumalak

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	// Given: a fresh board with side A to move
	board := NewBoard(SideA)

	// Then: every pit holds 9 stones, kazans are empty, no tuzdyks
	for _, side := range []Side{SideA, SideB} {
		for local := 1; local <= PitsPerSide; local++ {
			assert.Equal(t, 9, board.PitCount(side, local))
		}
		assert.Equal(t, 0, board.KazanTotal(side))
		assert.Equal(t, NoPit, board.TuzdykPit(side))
	}
	assert.Equal(t, SideA, board.ToMove())
}

func TestPitIndexing(t *testing.T) {
	t.Run("local pits map onto one circular space", func(t *testing.T) {
		// Given: the canonical index mapping
		// Then: side A occupies 0..8 and side B occupies 9..17
		assert.Equal(t, 0, globalIndex(SideA, 1))
		assert.Equal(t, 8, globalIndex(SideA, 9))
		assert.Equal(t, 9, globalIndex(SideB, 1))
		assert.Equal(t, 17, globalIndex(SideB, 9))
	})

	t.Run("sowing order wraps from B9 back to A1", func(t *testing.T) {
		assert.Equal(t, 9, nextPit(8))
		assert.Equal(t, 0, nextPit(17))
	})

	t.Run("global indices resolve to owning side and local number", func(t *testing.T) {
		assert.Equal(t, SideA, sideOfPit(0))
		assert.Equal(t, SideB, sideOfPit(9))
		assert.Equal(t, 1, localOf(0))
		assert.Equal(t, 9, localOf(8))
		assert.Equal(t, 1, localOf(9))
		assert.Equal(t, 9, localOf(17))
	})
}

func TestTuzdykOwner(t *testing.T) {
	// Given: side A owns a tuzdyk in B's second pit
	board := NewBoard(SideA)
	board.clearPit(globalIndex(SideB, 2))
	board.markTuzdyk(SideA, globalIndex(SideB, 2))

	// When: asking for the owner of that pit
	owner, ok := board.TuzdykOwner(globalIndex(SideB, 2))

	// Then: side A owns it, and other pits are unowned
	require.True(t, ok)
	assert.Equal(t, SideA, owner)

	_, ok = board.TuzdykOwner(globalIndex(SideB, 3))
	assert.False(t, ok)
}

func TestSweepAll(t *testing.T) {
	// Given: a fresh board
	board := NewBoard(SideA)

	// When: side B collects every stone on the board
	swept := board.sweepAll(SideB)

	// Then: all 162 stones sit in B's kazan and the pits are empty
	assert.Equal(t, TotalStones, swept)
	assert.Equal(t, TotalStones, board.KazanTotal(SideB))
	assert.Equal(t, 0, board.stonesOn(SideA))
	assert.Equal(t, 0, board.stonesOn(SideB))
}

func TestParseSide(t *testing.T) {
	side, err := ParseSide("A")
	require.NoError(t, err)
	assert.Equal(t, SideA, side)

	side, err = ParseSide("B")
	require.NoError(t, err)
	assert.Equal(t, SideB, side)

	_, err = ParseSide("X")
	assert.ErrorIs(t, err, ErrUnknownSide)
}
