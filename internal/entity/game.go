package entity

import (
	"errors"
	"fmt"

	"github.com/playdice/farkle-backend/internal/apperror"
	"github.com/playdice/farkle-backend/internal/farkle"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// Phases of the roll-keep-decide cycle within a round.
	PhaseRolling  = "rolling"
	PhaseKeeping  = "keeping"
	PhaseDeciding = "deciding"

	// TargetScore ends the game once the banked total reaches it.
	TargetScore = 10000
)

var (
	ErrInvalidPosition   = errors.New("invalid dice position")
	ErrDuplicatePosition = errors.New("duplicate dice position")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Game is one player's Farkle session: the banked total plus the
// in-progress round state (pool size, current roll, unbanked score).
type Game struct {
	ID          string `json:"id"`
	PlayerID    string `json:"player_id"`
	Status      string `json:"status"`
	Phase       string `json:"phase"`
	PoolSize    int    `json:"pool_size"`
	Roll        []int  `json:"roll,omitempty"`
	RoundScore  int    `json:"round_score"`
	TotalScore  int    `json:"total_score"`
	TargetScore int    `json:"target_score"`
	Won         bool   `json:"won,omitempty"`
}

// TurnOutcome reports what a keep selection did to the game.
type TurnOutcome struct {
	Kept    []int `json:"kept"`
	Score   int   `json:"score"`
	Busted  bool  `json:"busted"`
	HotDice bool  `json:"hot_dice"`
}

func NewGame(id, playerID string) *Game {
	return &Game{
		ID:          id,
		PlayerID:    playerID,
		Status:      StatusOngoing,
		Phase:       PhaseRolling,
		PoolSize:    farkle.TotalDice,
		TargetScore: TargetScore,
	}
}

// ApplyRoll records a fresh roll of the current pool and moves the
// game to the keeping phase.
func (that *Game) ApplyRoll(dice []int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Phase != PhaseRolling {
		return fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.Phase)
	}

	that.Roll = dice
	that.Phase = PhaseKeeping

	return nil
}

// ApplyKeep scores the selected dice against the current roll. A bust
// (no dice kept, or no scoring dice) forfeits the round score and
// starts a fresh round; otherwise the game moves to the deciding
// phase with the pool shrunk, or restored to six on hot dice.
func (that *Game) ApplyKeep(positions []int) (TurnOutcome, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return TurnOutcome{}, err
	}

	if that.Phase != PhaseKeeping {
		return TurnOutcome{}, fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.Phase)
	}

	if err := that.validatePositions(positions); err != nil {
		return TurnOutcome{}, err
	}

	kept := farkle.KeepByPositions(that.Roll, positions)

	score, err := farkle.Score(kept)
	if err != nil {
		return TurnOutcome{}, fmt.Errorf("failed to score kept dice: %w", err)
	}

	outcome := TurnOutcome{Kept: kept, Score: score}

	if len(kept) == 0 || score == 0 {
		outcome.Busted = true
		that.startNewRound()

		return outcome, nil
	}

	that.PoolSize = farkle.NextPoolSize(that.PoolSize, len(kept))
	outcome.HotDice = that.PoolSize == farkle.TotalDice

	that.RoundScore += score
	that.Roll = nil
	that.Phase = PhaseDeciding

	return outcome, nil
}

// ApplyBank resolves the deciding phase: banking locks the round score
// into the total and may finish the game; rolling on keeps the round
// alive with the current pool.
func (that *Game) ApplyBank(bank bool) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Phase != PhaseDeciding {
		return fmt.Errorf("%w: %s", apperror.ErrWrongPhase, that.Phase)
	}

	if bank {
		that.TotalScore += that.RoundScore
		that.startNewRound()

		if that.TotalScore >= that.TargetScore {
			that.Status = StatusFinished
			that.Won = true
		}

		return nil
	}

	that.Phase = PhaseRolling

	return nil
}

func (that *Game) startNewRound() {
	that.RoundScore = 0
	that.PoolSize = farkle.TotalDice
	that.Roll = nil
	that.Phase = PhaseRolling
}

func (that *Game) validatePositions(positions []int) error {
	seen := make(map[int]bool, len(positions))
	for _, pos := range positions {
		if pos < 1 || pos > len(that.Roll) {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
		}

		if seen[pos] {
			return fmt.Errorf("%w: %d", ErrDuplicatePosition, pos)
		}

		seen[pos] = true
	}

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
