package entity

import (
	"errors"
	"fmt"

	"github.com/qazaqgames/togyzkumalak-backend/internal/apperror"
	"github.com/qazaqgames/togyzkumalak-backend/internal/togyzkumalak"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	SideDraw = "-"
)

const (
	PublicType  = "public"
	PrivateType = "private"
)

var ErrPlayerNotInMatch = errors.New("player does not belong to this match")

// Match is the persisted form of one game: metadata for matchmaking plus
// the engine snapshot it rehydrates from. The rules themselves live in
// the togyzkumalak package; Match only carries state across storage.
type Match struct {
	ID      string                `json:"id"`
	Type    string                `json:"type,omitempty"`
	Status  string                `json:"status"`
	Winner  string                `json:"winner,omitempty"`
	State   togyzkumalak.Snapshot `json:"state"`
	Players []*Player             `json:"players,omitempty"`
}

func NewMatch(id, matchType string) *Match {
	return &Match{
		ID:     id,
		Type:   matchType,
		Status: StatusWaiting,
		State:  togyzkumalak.NewGame(togyzkumalak.SideA).Snapshot(),
	}
}

// Game rehydrates the rules engine from the stored snapshot.
func (that *Match) Game() (*togyzkumalak.Game, error) {
	game, err := togyzkumalak.Restore(that.State)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game state: %w", err)
	}
	return game, nil
}

// ApplyState stores the game's current snapshot back into the match and
// updates status and winner accordingly.
func (that *Match) ApplyState(game *togyzkumalak.Game) {
	that.State = game.Snapshot()

	switch result := game.Result(); result {
	case togyzkumalak.ResultInProgress:
		// keep current status
	case togyzkumalak.ResultDraw:
		that.Status = StatusFinished
		that.Winner = SideDraw
	default:
		winner, _ := result.Winner()
		that.Status = StatusFinished
		that.Winner = winner.String()
	}
}

// SideOf returns the board side the player controls in this match.
func (that *Match) SideOf(playerID string) (togyzkumalak.Side, error) {
	for _, player := range that.Players {
		if player.ID == playerID {
			return togyzkumalak.ParseSide(player.Side)
		}
	}
	return togyzkumalak.SideA, fmt.Errorf("%w: player %s", ErrPlayerNotInMatch, playerID)
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Match) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrMatchIsNotStarted
	case that.IsFinished():
		return apperror.ErrMatchFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownMatchStatus, that.Status)
	}
}
