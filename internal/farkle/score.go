package farkle

import "fmt"

const (
	scoreTwoTriplets = 2500
	scoreThreePair   = 1500
	scoreStraight    = 1500
	scoreSixOfAKind  = 5000
	scoreFiveOfAKind = 3000
	scoreFourOfAKind = 2000
	scoreThreeOnes   = 1000

	scoreSingleOne  = 100
	scoreSingleFive = 50
)

// Score computes the point total for a kept dice set.
//
// Six-dice patterns (two triplets, three pairs, straight, six of a
// kind) consume the whole set and score alone. A five, four or three
// of a kind scores its group and then the leftover singles: every 1
// outside a 3+ group is worth 100 and every 5 is worth 50. A total of
// zero is a Farkle.
func Score(dice []int) (int, error) {
	if err := ValidateDice(dice); err != nil {
		return 0, fmt.Errorf("invalid dice set: %w", err)
	}

	score := 0

	switch Classify(dice) {
	case TwoTriplets:
		return scoreTwoTriplets, nil
	case ThreePair:
		return scoreThreePair, nil
	case Straight:
		return scoreStraight, nil
	case SixOfAKind:
		return scoreSixOfAKind, nil
	case FiveOfAKind:
		score += scoreFiveOfAKind
	case FourOfAKind:
		score += scoreFourOfAKind
	case ThreeOfAKind:
		group := KeepRepeats(dice)
		if group[0] == 1 {
			score += scoreThreeOnes
		} else {
			score += group[0] * 100
		}
	case CombinationNone:
	}

	// Leftover 1s and 5s. StripRepeats excludes the group scored
	// above, since that group has multiplicity >= 3.
	for _, die := range StripRepeats(dice) {
		switch die {
		case 1:
			score += scoreSingleOne
		case 5:
			score += scoreSingleFive
		}
	}

	return score, nil
}
