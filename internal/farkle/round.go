package farkle

import "fmt"

// Round runs roll-keep-score turns until the player busts or banks.
// It owns the round's state for the round's lifetime; nothing is
// shared or persisted.
type Round struct {
	dice    DieSource
	input   InputPort
	display Display
}

func NewRound(dice DieSource, input InputPort, display Display) *Round {
	return &Round{
		dice:    dice,
		input:   input,
		display: display,
	}
}

// Play runs the round to completion and returns its score: 0 on a
// bust, otherwise the exact sum of all turn scores accrued before
// banking. A quit from the input port aborts the round with
// apperror.ErrQuitRequested wrapped in the returned error.
func (that *Round) Play() (int, error) {
	roundScore := 0
	poolSize := TotalDice

	for {
		result, err := that.playTurn(poolSize)
		if err != nil {
			return 0, fmt.Errorf("turn failed: %w", err)
		}

		if result.Busted() {
			that.display.ShowBust()
			return 0, nil
		}

		poolSize = NextPoolSize(poolSize, len(result.Kept))
		if poolSize == TotalDice {
			that.display.ShowHotDice()
		}

		roundScore += result.Score
		that.display.ShowRoundScore(roundScore)

		bank, err := that.input.PromptBank()
		if err != nil {
			return 0, fmt.Errorf("failed to get banking decision: %w", err)
		}

		if bank {
			return roundScore, nil
		}
	}
}
