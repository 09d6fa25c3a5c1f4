package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/playdice/farkle-backend/internal/apperror"
	"github.com/playdice/farkle-backend/internal/entity"
	"github.com/playdice/farkle-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPlayerRepo is an in-memory playerRepo.
type memPlayerRepo struct {
	players map[string]entity.Player
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: make(map[string]entity.Player)}
}

func (that *memPlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.players[player.ID] = *player
	return nil
}

func (that *memPlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return &entity.Player{}, repository.ErrPlayerNotFound
	}
	return &player, nil
}

// memGameRepo is an in-memory gameRepo.
type memGameRepo struct {
	games map[string]entity.Game
}

func newMemGameRepo() *memGameRepo {
	return &memGameRepo{games: make(map[string]entity.Game)}
}

func (that *memGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = *game
	return nil
}

func (that *memGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, repository.ErrGameNotFound
	}
	return &game, nil
}

func (that *memGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

// scriptedDice replays a fixed sequence of die values.
type scriptedDice struct {
	values []int
	next   int
}

func (that *scriptedDice) NextDie() int {
	value := that.values[that.next%len(that.values)]
	that.next++
	return value
}

func newTestManager(t *testing.T, dice []int) (*GameManager, *memPlayerRepo, *memGameRepo) {
	t.Helper()

	logger := slog.Default()
	playerRepo := newMemPlayerRepo()
	gameRepo := newMemGameRepo()
	manager := NewGameManager(logger, playerRepo, gameRepo, &scriptedDice{values: dice})

	return manager, playerRepo, gameRepo
}

func TestGameManager_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when playerID is empty", func(t *testing.T) {
		// Given: a manager over empty repositories
		manager, playerRepo, _ := newTestManager(t, []int{1})

		// When: calling GetOrCreatePlayer with an empty playerID
		player, err := manager.GetOrCreatePlayer(ctx, "")

		// Then: a new player is created and persisted
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Contains(t, playerRepo.players, player.ID)
	})

	t.Run("Returns existing player when playerID is not empty", func(t *testing.T) {
		// Given: a stored player
		manager, playerRepo, _ := newTestManager(t, []int{1})
		playerRepo.players["player123"] = entity.Player{ID: "player123"}

		// When: calling GetOrCreatePlayer with a known playerID
		player, err := manager.GetOrCreatePlayer(ctx, "player123")

		// Then: the existing player is returned
		require.NoError(t, err)
		assert.Equal(t, "player123", player.ID)
	})

	t.Run("Returns error for unknown playerID", func(t *testing.T) {
		// Given: a manager over empty repositories
		manager, _, _ := newTestManager(t, []int{1})

		// When: calling GetOrCreatePlayer with an unknown playerID
		_, err := manager.GetOrCreatePlayer(ctx, "missing")

		// Then: the not-found error surfaces
		require.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a game for a free player", func(t *testing.T) {
		// Given: a player without a game
		manager, playerRepo, gameRepo := newTestManager(t, []int{1})
		playerRepo.players["p1"] = entity.Player{ID: "p1"}

		// When: getting or creating the game
		game, err := manager.GetOrCreateGame(ctx, "p1")

		// Then: a fresh game is persisted and linked to the player
		require.NoError(t, err)
		assert.Equal(t, "p1", game.PlayerID)
		assert.Equal(t, entity.PhaseRolling, game.Phase)
		assert.Contains(t, gameRepo.games, game.ID)
		assert.Equal(t, game.ID, playerRepo.players["p1"].GameID)
	})

	t.Run("Returns the game the player is already in", func(t *testing.T) {
		// Given: a player already linked to a game
		manager, playerRepo, gameRepo := newTestManager(t, []int{1})
		playerRepo.players["p1"] = entity.Player{ID: "p1", GameID: "g1"}
		gameRepo.games["g1"] = *entity.NewGame("g1", "p1")

		// When: getting or creating the game
		game, err := manager.GetOrCreateGame(ctx, "p1")

		// Then: the existing game comes back
		require.NoError(t, err)
		assert.Equal(t, "g1", game.ID)
	})
}

func TestGameManager_PlayFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Roll, keep, bank", func(t *testing.T) {
		// Given: a player in a fresh game and a rigged first roll
		manager, playerRepo, _ := newTestManager(t, []int{1, 1, 1, 2, 3, 4})
		playerRepo.players["p1"] = entity.Player{ID: "p1"}

		_, err := manager.GetOrCreateGame(ctx, "p1")
		require.NoError(t, err)

		// When: rolling the pool
		game, err := manager.Roll(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, []int{1, 1, 1, 2, 3, 4}, game.Roll)

		// When: keeping the three ones
		game, outcome, err := manager.Keep(ctx, "p1", []int{1, 2, 3})
		require.NoError(t, err)
		require.Equal(t, 1000, outcome.Score)
		require.Equal(t, entity.PhaseDeciding, game.Phase)

		// When: banking
		game, err = manager.Bank(ctx, "p1", true)

		// Then: the total holds the banked round
		require.NoError(t, err)
		assert.Equal(t, 1000, game.TotalScore)
		assert.Zero(t, game.RoundScore)
	})

	t.Run("Rolling in the wrong phase fails", func(t *testing.T) {
		// Given: a game already holding a roll
		manager, playerRepo, _ := newTestManager(t, []int{2, 3, 4, 6, 2, 3})
		playerRepo.players["p1"] = entity.Player{ID: "p1"}

		_, err := manager.GetOrCreateGame(ctx, "p1")
		require.NoError(t, err)

		_, err = manager.Roll(ctx, "p1")
		require.NoError(t, err)

		// When: rolling again before keeping
		_, err = manager.Roll(ctx, "p1")

		// Then: ErrWrongPhase should surface
		require.ErrorIs(t, err, apperror.ErrWrongPhase)
	})

	t.Run("Winning bank deletes the game", func(t *testing.T) {
		// Given: a game one bank away from the target score
		manager, playerRepo, gameRepo := newTestManager(t, []int{1, 1, 1, 2, 3, 4})
		playerRepo.players["p1"] = entity.Player{ID: "p1"}

		created, err := manager.GetOrCreateGame(ctx, "p1")
		require.NoError(t, err)

		stored := gameRepo.games[created.ID]
		stored.TotalScore = entity.TargetScore - 500
		gameRepo.games[created.ID] = stored

		_, err = manager.Roll(ctx, "p1")
		require.NoError(t, err)

		_, _, err = manager.Keep(ctx, "p1", []int{1, 2, 3})
		require.NoError(t, err)

		// When: banking past the target
		game, err := manager.Bank(ctx, "p1", true)

		// Then: the game finishes, is removed, and the player is freed
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.True(t, game.Won)
		assert.NotContains(t, gameRepo.games, game.ID)
		assert.Empty(t, playerRepo.players["p1"].GameID)
	})

	t.Run("Forfeit removes the game", func(t *testing.T) {
		// Given: a player in a game
		manager, playerRepo, gameRepo := newTestManager(t, []int{1})
		playerRepo.players["p1"] = entity.Player{ID: "p1"}

		created, err := manager.GetOrCreateGame(ctx, "p1")
		require.NoError(t, err)

		// When: forfeiting
		game, err := manager.Forfeit(ctx, "p1")

		// Then: the game is gone and the player unlinked
		require.NoError(t, err)
		assert.Equal(t, created.ID, game.ID)
		assert.NotContains(t, gameRepo.games, game.ID)
		assert.Empty(t, playerRepo.players["p1"].GameID)
	})
}
