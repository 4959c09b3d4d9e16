package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/qazaqgames/togyzkumalak-backend/internal/apperror"
	"github.com/qazaqgames/togyzkumalak-backend/internal/entity"
	"github.com/qazaqgames/togyzkumalak-backend/internal/togyzkumalak"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return err
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	that.rememberConnection(player.ID, bufrw)

	payloadResp := Payload{Player: player}

	if player.MatchID != "" {
		match, err := that.gameUseCase.GetMatchByPlayerID(ctx, player.ID)
		if err != nil {
			log.Error("failed to get match", "matchID", player.MatchID, "error", err)
			return that.sendErrorResponse(bufrw, msg.Action, "failed to get the match")
		}
		payloadResp.Match = match
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "player is required")
	}

	that.rememberConnection(payloadReq.Player.ID, bufrw)

	matchType := entity.PrivateType
	if payloadReq.Match != nil && payloadReq.Match.IsPublic() {
		matchType = entity.PublicType
	}

	var match *entity.Match
	if matchType == entity.PublicType {
		match, err = that.gameUseCase.CreateOrJoinPublicMatch(ctx, payloadReq.Player.ID)
	} else {
		match, err = that.gameUseCase.GetOrCreateMatch(ctx, payloadReq.Player.ID, matchType)
	}
	if err != nil {
		log.Error("failed to create or join match", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new match")
	}

	that.broadcastMatch(msg.Action, match, nil)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil || payloadReq.Match == nil || payloadReq.Match.ID == "" {
		log.Error("player or match is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "player and match id are required")
	}

	that.rememberConnection(payloadReq.Player.ID, bufrw)

	match, err := that.gameUseCase.ConnectToMatch(ctx, payloadReq.Match.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join match", "matchID", payloadReq.Match.ID, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to join the match")
	}

	that.broadcastMatch(msg.Action, match, nil)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "player is required")
	}

	that.rememberConnection(payloadReq.Player.ID, bufrw)

	match, outcome, err := that.gameUseCase.MakeMove(ctx, payloadReq.Player.ID, payloadReq.Pit)

	switch {
	case err == nil, errors.Is(err, apperror.ErrMatchFinished):
		that.broadcastMatch(msg.Action, match, outcome)
		return nil
	case isMoveRejection(err):
		log.Info("move rejected", "playerID", payloadReq.Player.ID, "pit", payloadReq.Pit, "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, moveRejectionText(err))
	default:
		log.Error("failed to make move", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to make the move")
	}
}

func (that *Server) handleClaimDraw(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleClaimDraw")

	payloadReq, err := parsePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "player is required")
	}

	that.rememberConnection(payloadReq.Player.ID, bufrw)

	match, err := that.gameUseCase.ClaimDraw(ctx, payloadReq.Player.ID)
	if err != nil {
		if errors.Is(err, togyzkumalak.ErrNoRepetition) {
			return that.sendErrorResponse(bufrw, msg.Action, "position has not repeated three times")
		}
		log.Error("failed to claim draw", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to claim a draw")
	}

	that.broadcastMatch(msg.Action, match, nil)

	return nil
}

// broadcastMatch sends the updated match state to every seated player
// that still has a live connection.
func (that *Server) broadcastMatch(action string, match *entity.Match, outcome *togyzkumalak.MoveOutcome) {
	log := that.logger.With("method", "broadcastMatch", "matchID", match.ID)

	for _, player := range match.Players {
		conn, ok := that.connectionOf(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payload := Payload{Player: player, Match: match, Outcome: outcome}
		if err := that.sendMessage(conn, action, payload); err != nil {
			log.Error("failed to send match update", "playerID", player.ID, "error", err)
		}
	}
}

func parsePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

// isMoveRejection reports whether the error is an ordinary rule
// violation the player can correct, as opposed to an internal failure.
func isMoveRejection(err error) bool {
	return errors.Is(err, togyzkumalak.ErrInvalidPitIndex) ||
		errors.Is(err, togyzkumalak.ErrEmptyPitSelected) ||
		errors.Is(err, togyzkumalak.ErrNotSideToMove) ||
		errors.Is(err, togyzkumalak.ErrGameAlreadyOver) ||
		errors.Is(err, apperror.ErrMatchIsNotStarted) ||
		errors.Is(err, apperror.ErrNotInMatch)
}

func moveRejectionText(err error) string {
	switch {
	case errors.Is(err, togyzkumalak.ErrInvalidPitIndex):
		return "pit index must be between 1 and 9"
	case errors.Is(err, togyzkumalak.ErrEmptyPitSelected):
		return "selected pit is empty"
	case errors.Is(err, togyzkumalak.ErrNotSideToMove):
		return "it's not your turn"
	case errors.Is(err, togyzkumalak.ErrGameAlreadyOver):
		return "game is already over"
	case errors.Is(err, apperror.ErrMatchIsNotStarted):
		return "match has not started yet"
	default:
		return "you are not in a match"
	}
}
