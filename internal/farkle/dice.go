// Package farkle implements the scoring rules and turn progression of
// the dice game Farkle.
package farkle

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// TotalDice is the size of the standing dice pool.
	TotalDice = 6

	minDieValue = 1
	maxDieValue = 6
)

var (
	ErrInvalidDie  = errors.New("die value out of range")
	ErrTooManyDice = errors.New("too many dice")
)

// DieSource produces uniform independent die values in [1,6].
type DieSource interface {
	NextDie() int
}

type randDieSource struct{}

// NewDieSource returns a DieSource backed by math/rand.
func NewDieSource() DieSource {
	return &randDieSource{}
}

func (that *randDieSource) NextDie() int {
	return rand.Intn(maxDieValue) + minDieValue //nolint: gosec // it's ok
}

// ValidateDice checks that dice fits the scoring domain: at most
// TotalDice values, each in [1,6].
func ValidateDice(dice []int) error {
	if len(dice) > TotalDice {
		return fmt.Errorf("%w: got %d", ErrTooManyDice, len(dice))
	}

	for _, die := range dice {
		if die < minDieValue || die > maxDieValue {
			return fmt.Errorf("%w: %d", ErrInvalidDie, die)
		}
	}

	return nil
}

// CountDice builds a die value -> multiplicity map.
func CountDice(dice []int) map[int]int {
	counts := make(map[int]int, len(dice))
	for _, die := range dice {
		counts[die]++
	}

	return counts
}

// RollDice draws n dice from the source.
func RollDice(n int, source DieSource) []int {
	dice := make([]int, n)
	for i := range dice {
		dice[i] = source.NextDie()
	}

	return dice
}

// KeepByPositions selects dice by their 1-indexed positions, preserving
// roll order. Positions are assumed validated by the caller.
func KeepByPositions(dice []int, positions []int) []int {
	keepMask := make([]bool, len(dice))
	for _, pos := range positions {
		if pos >= 1 && pos <= len(dice) {
			keepMask[pos-1] = true
		}
	}

	kept := make([]int, 0, len(positions))
	for i, die := range dice {
		if keepMask[i] {
			kept = append(kept, die)
		}
	}

	return kept
}
