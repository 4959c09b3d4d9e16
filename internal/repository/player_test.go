package repository

import (
	"testing"

	"github.com/qazaqgames/togyzkumalak-backend/internal/entity"
	"github.com/qazaqgames/togyzkumalak-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player assigned to a match
	player := &entity.Player{ID: "p1", Side: "A", MatchID: "123"}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored player
		player := &entity.Player{ID: "p1", Side: "B", MatchID: "123"}
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		// When: GetByID is called with the existing ID
		retrieved, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player matches the saved one
		require.NoError(t, err)
		assert.Equal(t, player.ID, retrieved.ID)
		assert.Equal(t, player.Side, retrieved.Side)
		assert.Equal(t, player.MatchID, retrieved.MatchID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrieved, err := playerRepo.GetByID(ctx, "nobody")

		// Then: an ErrPlayerNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrPlayerNotFound, err)
		assert.Empty(t, retrieved.ID)
	})
}
