package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/playdice/farkle-backend/internal/apperror"
	"github.com/playdice/farkle-backend/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	playerID := ""
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)

		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, gameErr := that.uGame.GetGameByPlayerID(ctx, player.ID)
		if gameErr != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", gameErr)
			return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
		}

		payloadResp.Game = game
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player")

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	game, err := that.uGame.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new game")
	}

	log.Info("game ready", "gameID", game.ID)

	return that.sendGame(bufrw, msg.Action, game, nil)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	game, err := that.uGame.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to get the game")
	}

	return that.sendGame(bufrw, msg.Action, game, nil)
}

func (that *Server) handleGameRoll(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRoll")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	game, err := that.uGame.Roll(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrWrongPhase) {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to roll", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to roll the dice")
	}

	log.Info("dice rolled", "gameID", game.ID, "roll", game.Roll)

	return that.sendGame(bufrw, msg.Action, game, nil)
}

func (that *Server) handleGameKeep(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameKeep")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	game, outcome, err := that.uGame.Keep(ctx, payloadReq.Player.ID, payloadReq.Positions)
	if errors.Is(err, apperror.ErrWrongPhase) ||
		errors.Is(err, entity.ErrInvalidPosition) ||
		errors.Is(err, entity.ErrDuplicatePosition) {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to keep dice", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to keep the dice")
	}

	log.Info("dice kept", "gameID", game.ID, "kept", outcome.Kept, "score", outcome.Score, "busted", outcome.Busted)

	return that.sendGame(bufrw, msg.Action, game, outcome)
}

func (that *Server) handleGameBank(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameBank")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	if payloadReq.Bank == nil {
		log.Error("Bank decision is missing in payload")
		return that.sendErrorResponse(bufrw, msg.Action, "Bank decision is required")
	}

	game, err := that.uGame.Bank(ctx, payloadReq.Player.ID, *payloadReq.Bank)
	if errors.Is(err, apperror.ErrWrongPhase) {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to bank", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to resolve the banking decision")
	}

	if game.IsFinished() {
		log.Info("game finished", "gameID", game.ID, "total", game.TotalScore)
	}

	return that.sendGame(bufrw, msg.Action, game, nil)
}

func (that *Server) handleGameForfeit(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameForfeit")

	payloadReq, err := that.parsePlayerPayload(msg, bufrw)
	if payloadReq == nil {
		return err
	}

	game, err := that.uGame.Forfeit(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to forfeit", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to forfeit the game")
	}

	log.Info("game forfeited", "gameID", game.ID)

	return that.sendGame(bufrw, msg.Action, game, nil)
}

// parsePlayerPayload unmarshals the payload and requires a player in
// it. A nil payload return means the caller should stop; the error is
// what it should propagate.
func (that *Server) parsePlayerPayload(msg *Message, bufrw *bufio.ReadWriter) (*Payload, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		that.logger.Error("Player is missing in payload", "action", msg.Action)
		return nil, that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	return &payloadReq, nil
}

func (that *Server) sendGame(bufrw *bufio.ReadWriter, action string, game *entity.Game, outcome *entity.TurnOutcome) error {
	payload := Payload{
		Game:    game,
		Outcome: outcome,
	}

	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
