package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playdice/farkle-backend/internal/entity"
	"github.com/playdice/farkle-backend/internal/farkle"
	"github.com/playdice/farkle-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager drives a player's Farkle session action by action:
// every roll, keep and bank decision arrives as its own call, mutates
// the game entity and is persisted before the response goes out.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	dice       farkle.DieSource
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, dice farkle.DieSource) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		dice:       dice,
	}
}

// GetOrCreateGame returns the player's current game, creating one if
// the player is not in a game yet.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		game, gameErr := that.getGameByID(ctx, player.GameID)
		if gameErr != nil {
			return nil, fmt.Errorf("failed get game by id: %w", gameErr)
		}

		return game, nil
	}

	return that.createGame(ctx, player)
}

// GetGameByPlayerID returns the game the player is currently in.
func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, nil
}

// Roll rolls the game's current dice pool.
func (that *GameManager) Roll(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	dice := farkle.RollDice(game.PoolSize, that.dice)

	if err = game.ApplyRoll(dice); err != nil {
		return nil, fmt.Errorf("failed to apply roll: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// Keep scores the selected dice positions against the current roll.
func (that *GameManager) Keep(ctx context.Context, playerID string, positions []int) (*entity.Game, *entity.TurnOutcome, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := game.ApplyKeep(positions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to apply keep: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, &outcome, nil
}

// Bank resolves the player's banking decision. A finished game (the
// target score was reached) is removed from storage.
func (that *GameManager) Bank(ctx context.Context, playerID string, bank bool) (*entity.Game, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.ApplyBank(bank); err != nil {
		return nil, fmt.Errorf("failed to apply bank: %w", err)
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	return game, nil
}

// Forfeit abandons the player's game, whatever its phase.
func (that *GameManager) Forfeit(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.Status = entity.StatusFinished
	that.deleteGame(ctx, game)

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()
	player.GameID = gameID

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	newGame := entity.NewGame(gameID, player.ID)

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame")

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	player, err := that.getPlayerByID(ctx, game.PlayerID)
	if err != nil {
		log.Error("failed to get player", "error", err)
		return
	}

	player.GameID = ""
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		log.Error("failed to update player", "error", err)
	}

	log.Info("game deleted", "gameID", game.ID)
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	playerID := pkg.GenerateNewSessionID()

	player := &entity.Player{
		ID: playerID,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
