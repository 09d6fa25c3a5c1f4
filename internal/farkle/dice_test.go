package farkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDice(t *testing.T) {
	t.Run("Counts multiplicities", func(t *testing.T) {
		// Given: a dice set with repeated values
		dice := []int{1, 1, 1, 2, 2, 3}

		// When: counting the dice
		counts := CountDice(dice)

		// Then: every value maps to its multiplicity
		require.Equal(t, map[int]int{1: 3, 2: 2, 3: 1}, counts)
	})

	t.Run("Empty input yields empty map", func(t *testing.T) {
		// When: counting no dice
		counts := CountDice(nil)

		// Then: the map is empty
		require.Empty(t, counts)
	})

	t.Run("Multiplicities sum to input length", func(t *testing.T) {
		// Given: assorted dice sets up to the full pool
		sets := [][]int{
			{},
			{4},
			{1, 5},
			{2, 2, 2},
			{1, 2, 3, 4, 5, 6},
			{6, 6, 6, 6, 6, 6},
		}

		for _, dice := range sets {
			// When: counting each set
			counts := CountDice(dice)

			// Then: the multiplicities sum to the set's length
			sum := 0
			for _, count := range counts {
				sum += count
			}
			assert.Equal(t, len(dice), sum)
		}
	})
}

func TestValidateDice(t *testing.T) {
	t.Run("Accepts the whole domain", func(t *testing.T) {
		// Given: a full pool of in-range dice
		dice := []int{1, 2, 3, 4, 5, 6}

		// When: validating
		err := ValidateDice(dice)

		// Then: no error is returned
		require.NoError(t, err)
	})

	t.Run("Rejects more than six dice", func(t *testing.T) {
		// Given: seven dice
		dice := []int{1, 1, 1, 1, 1, 1, 1}

		// When: validating
		err := ValidateDice(dice)

		// Then: ErrTooManyDice should be returned
		require.ErrorIs(t, err, ErrTooManyDice)
	})

	t.Run("Rejects out of range values", func(t *testing.T) {
		// When: validating dice outside [1,6]
		errLow := ValidateDice([]int{0, 2, 3})
		errHigh := ValidateDice([]int{1, 7})

		// Then: ErrInvalidDie should be returned for both
		assert.ErrorIs(t, errLow, ErrInvalidDie)
		assert.ErrorIs(t, errHigh, ErrInvalidDie)
	})
}

func TestRollDice(t *testing.T) {
	// Given: a scripted die source
	source := &scriptedDice{values: []int{3, 1, 4, 1, 5}}

	// When: rolling five dice
	dice := RollDice(5, source)

	// Then: the roll reproduces the source's draws in order
	require.Equal(t, []int{3, 1, 4, 1, 5}, dice)
}

func TestRollDice_RandomSource(t *testing.T) {
	// Given: the production die source
	source := NewDieSource()

	// When: rolling a full pool many times
	for i := 0; i < 100; i++ {
		dice := RollDice(TotalDice, source)

		// Then: every die stays in [1,6]
		require.Len(t, dice, TotalDice)
		require.NoError(t, ValidateDice(dice))
	}
}

func TestKeepByPositions(t *testing.T) {
	t.Run("Keeps by 1-indexed position", func(t *testing.T) {
		// Given: a six-dice roll
		dice := []int{3, 1, 4, 1, 5, 2}

		// When: keeping the 1st, 3rd and 5th dice
		kept := KeepByPositions(dice, []int{1, 3, 5})

		// Then: the selected dice survive in roll order
		require.Equal(t, []int{3, 4, 5}, kept)
	})

	t.Run("Empty selection keeps nothing", func(t *testing.T) {
		// When: keeping no positions
		kept := KeepByPositions([]int{1, 2, 3}, nil)

		// Then: the kept set is empty
		require.Empty(t, kept)
	})

	t.Run("Selection order does not matter", func(t *testing.T) {
		// Given: a roll and a selection in reverse order
		dice := []int{6, 5, 4, 3}

		// When: keeping positions out of order
		kept := KeepByPositions(dice, []int{4, 2})

		// Then: the kept dice still follow roll order
		require.Equal(t, []int{5, 3}, kept)
	})
}
