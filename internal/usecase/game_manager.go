package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/qazaqgames/togyzkumalak-backend/internal/apperror"
	"github.com/qazaqgames/togyzkumalak-backend/internal/entity"
	"github.com/qazaqgames/togyzkumalak-backend/internal/pkg"
	"github.com/qazaqgames/togyzkumalak-backend/internal/repository"
	"github.com/qazaqgames/togyzkumalak-backend/internal/togyzkumalak"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	DeleteByID(ctx context.Context, id string) error

	EnqueueWaiting(ctx context.Context, id string) error
	TakeWaiting(ctx context.Context) (*entity.Match, error)
}

// GameManager owns the lifecycle of matches: creating and joining them,
// driving the rules engine for each move, and cleaning up finished games.
// Moves on the same match are serialized here; the engine itself is a
// plain state machine with no locking of its own.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	matchRepo  matchRepo

	matchLocks sync.Map // match ID -> *sync.Mutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, matchRepo matchRepo) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (that *GameManager) lockMatch(matchID string) func() {
	value, _ := that.matchLocks.LoadOrStore(matchID, &sync.Mutex{})
	mutex, _ := value.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

// GetOrCreatePlayer returns the stored player or registers a new one.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		playerID = pkg.GenerateNewSessionID()
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	player = &entity.Player{ID: playerID}
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetOrCreateMatch returns the player's current match or creates a new
// private one with the player seated as side A.
func (that *GameManager) GetOrCreateMatch(ctx context.Context, playerID, matchType string) (*entity.Match, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID != "" {
		match, err := that.matchRepo.GetByID(ctx, player.MatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get match by id: %w", err)
		}
		return match, nil
	}

	return that.createMatch(ctx, player, matchType)
}

// CreateOrJoinPublicMatch seats the player in the oldest waiting public
// match, or opens a new one when none is waiting.
func (that *GameManager) CreateOrJoinPublicMatch(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID != "" {
		match, err := that.matchRepo.GetByID(ctx, player.MatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get match by id: %w", err)
		}
		return match, nil
	}

	match, err := that.matchRepo.TakeWaiting(ctx)
	if errors.Is(err, repository.ErrNoWaitingMatches) {
		match, err = that.createMatch(ctx, player, entity.PublicType)
		if err != nil {
			return nil, err
		}
		if err = that.matchRepo.EnqueueWaiting(ctx, match.ID); err != nil {
			return nil, fmt.Errorf("failed to enqueue waiting match: %w", err)
		}
		return match, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take waiting match: %w", err)
	}

	return that.seatPlayer(ctx, match, player)
}

// ConnectToMatch joins a player into an existing match by ID. The second
// seat gets side B and the match starts.
func (that *GameManager) ConnectToMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error) {
	defer that.lockMatch(matchID)()

	match, err := that.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID == match.ID {
		return match, nil
	}

	return that.seatPlayer(ctx, match, player)
}

// GetMatchByPlayerID returns the match the player currently sits in.
func (that *GameManager) GetMatchByPlayerID(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.MatchID == "" {
		return nil, apperror.ErrNotInMatch
	}

	match, err := that.matchRepo.GetByID(ctx, player.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return match, nil
}

// MakeMove applies one move for the player's side and persists the
// resulting state. Finished matches are cleaned up and reported with
// apperror.ErrMatchFinished, mirroring the outcome to the caller.
func (that *GameManager) MakeMove(ctx context.Context, playerID string, pit int) (*entity.Match, *togyzkumalak.MoveOutcome, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	if player.MatchID == "" {
		return nil, nil, apperror.ErrNotInMatch
	}

	defer that.lockMatch(player.MatchID)()

	match, err := that.matchRepo.GetByID(ctx, player.MatchID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	if err = match.ConfirmOngoingState(); err != nil {
		return match, nil, err
	}

	side, err := match.SideOf(playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve player side: %w", err)
	}

	game, err := match.Game()
	if err != nil {
		return nil, nil, err
	}

	outcome, err := game.ApplyMove(side, pit)
	if err != nil {
		return match, nil, fmt.Errorf("failed to make move: %w", err)
	}

	match.ApplyState(game)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, nil, fmt.Errorf("failed to update match: %w", err)
	}

	if match.IsFinished() {
		that.cleanupMatch(ctx, match)
		return match, &outcome, apperror.ErrMatchFinished
	}

	return match, &outcome, nil
}

// ClaimDraw resolves a threefold-repetition draw claim for the player's
// match. The claim is checked by the engine; nothing is ever auto-drawn.
func (that *GameManager) ClaimDraw(ctx context.Context, playerID string) (*entity.Match, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	if player.MatchID == "" {
		return nil, apperror.ErrNotInMatch
	}

	defer that.lockMatch(player.MatchID)()

	match, err := that.matchRepo.GetByID(ctx, player.MatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	if err = match.ConfirmOngoingState(); err != nil {
		return match, err
	}

	game, err := match.Game()
	if err != nil {
		return nil, err
	}

	if err = game.ClaimDraw(); err != nil {
		return match, fmt.Errorf("draw claim rejected: %w", err)
	}

	match.ApplyState(game)
	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	that.cleanupMatch(ctx, match)

	return match, nil
}

func (that *GameManager) createMatch(ctx context.Context, player *entity.Player, matchType string) (*entity.Match, error) {
	matchID, err := pkg.GenerateMatchID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate match id: %w", err)
	}

	match := entity.NewMatch(matchID, matchType)

	player.MatchID = match.ID
	player.Side = togyzkumalak.SideA.String()
	match.Players = []*entity.Player{player}

	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if err = that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

func (that *GameManager) seatPlayer(ctx context.Context, match *entity.Match, player *entity.Player) (*entity.Match, error) {
	if len(match.Players) >= 2 {
		return nil, fmt.Errorf("%w: match id %s", apperror.ErrMatchAlreadyFull, match.ID)
	}

	player.MatchID = match.ID
	player.Side = togyzkumalak.SideB.String()
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	match.Players = append(match.Players, player)
	match.Status = entity.StatusOngoing
	if err := that.matchRepo.CreateOrUpdate(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	return match, nil
}

// cleanupMatch unbinds the players and deletes the stored match once it
// is finished.
func (that *GameManager) cleanupMatch(ctx context.Context, match *entity.Match) {
	log := that.logger.With("method", "cleanupMatch", "matchID", match.ID)

	if err := that.matchRepo.DeleteByID(ctx, match.ID); err != nil {
		log.Error("failed to delete match", "error", err)
	}

	for _, player := range match.Players {
		player.MatchID = ""
		player.Side = ""
		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "player", player.ID, "error", err)
		}
	}

	that.matchLocks.Delete(match.ID)
}
