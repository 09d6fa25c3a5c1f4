package farkle

import "fmt"

// InputPort supplies the player's decisions. Implementations own all
// input validation and re-prompting; the machines receive only
// validated values. A quit wish is reported as apperror.ErrQuitRequested.
type InputPort interface {
	// PromptKeep returns the 1-indexed positions of the dice to keep,
	// each in [1, poolSize], without duplicates. An empty selection is
	// legal and busts the turn.
	PromptKeep(poolSize int) ([]int, error)

	// PromptBank reports whether the player banks the round score.
	PromptBank() (bool, error)
}

// Display receives game events for observability only; correctness
// never depends on it.
type Display interface {
	ShowRoll(dice []int)
	ShowKept(dice []int, score int)
	ShowHotDice()
	ShowRoundScore(score int)
	ShowBust()
}

// TurnResult is the outcome of one roll-keep-score cycle.
type TurnResult struct {
	Rolled []int
	Kept   []int
	Score  int
}

// Busted reports whether the turn ended the round: the player kept no
// dice, or the kept dice scored nothing.
func (that TurnResult) Busted() bool {
	return len(that.Kept) == 0 || that.Score == 0
}

// NextPoolSize computes the dice pool for the next roll. Scoring every
// rolled die is hot dice: the full pool comes back.
func NextPoolSize(poolSize, keptCount int) int {
	if poolSize-keptCount <= 0 {
		return TotalDice
	}

	return poolSize - keptCount
}

// playTurn rolls poolSize dice, obtains the keep selection and scores it.
func (that *Round) playTurn(poolSize int) (TurnResult, error) {
	rolled := RollDice(poolSize, that.dice)
	that.display.ShowRoll(rolled)

	positions, err := that.input.PromptKeep(poolSize)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to get keep selection: %w", err)
	}

	kept := KeepByPositions(rolled, positions)

	score, err := Score(kept)
	if err != nil {
		return TurnResult{}, fmt.Errorf("failed to score kept dice: %w", err)
	}

	that.display.ShowKept(kept, score)

	return TurnResult{Rolled: rolled, Kept: kept, Score: score}, nil
}
