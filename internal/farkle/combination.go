package farkle

// Combination is a named scoring pattern a kept dice set can exhibit.
type Combination int

const (
	CombinationNone Combination = iota
	TwoTriplets
	ThreePair
	Straight
	SixOfAKind
	FiveOfAKind
	FourOfAKind
	ThreeOfAKind
)

func (that Combination) String() string {
	switch that {
	case TwoTriplets:
		return "two triplets"
	case ThreePair:
		return "three pairs"
	case Straight:
		return "straight"
	case SixOfAKind:
		return "six of a kind"
	case FiveOfAKind:
		return "five of a kind"
	case FourOfAKind:
		return "four of a kind"
	case ThreeOfAKind:
		return "three of a kind"
	default:
		return "none"
	}
}

// Classify returns the single combination a dice set scores as.
// The order is fixed: a set that satisfies several patterns (six of a
// kind is trivially also three of a kind) takes the first match.
func Classify(dice []int) Combination {
	switch {
	case IsTwoTriplets(dice):
		return TwoTriplets
	case IsThreePair(dice):
		return ThreePair
	case IsStraight(dice):
		return Straight
	case IsOfAKind(6, dice):
		return SixOfAKind
	case IsOfAKind(5, dice):
		return FiveOfAKind
	case IsOfAKind(4, dice):
		return FourOfAKind
	case IsOfAKind(3, dice):
		return ThreeOfAKind
	default:
		return CombinationNone
	}
}

// IsTwoTriplets reports whether exactly two distinct values each appear
// three or more times.
func IsTwoTriplets(dice []int) bool {
	triplets := 0
	for _, count := range CountDice(dice) {
		if count >= 3 {
			triplets++
		}
	}

	return triplets == 2
}

// IsThreePair reports whether exactly three distinct values each appear
// exactly twice.
func IsThreePair(dice []int) bool {
	pairs := 0
	for _, count := range CountDice(dice) {
		if count == 2 {
			pairs++
		}
	}

	return pairs == 3
}

// IsStraight reports whether every value 1 through 6 is present.
func IsStraight(dice []int) bool {
	counts := CountDice(dice)
	for value := minDieValue; value <= maxDieValue; value++ {
		if counts[value] == 0 {
			return false
		}
	}

	return true
}

// IsOfAKind reports whether some value appears at least n times.
func IsOfAKind(n int, dice []int) bool {
	for _, count := range CountDice(dice) {
		if count >= n {
			return true
		}
	}

	return false
}

// StripRepeats returns the dice whose value appears fewer than three
// times, preserving roll order. Any 3-or-more group is removed whole.
func StripRepeats(dice []int) []int {
	counts := CountDice(dice)

	stripped := make([]int, 0, len(dice))
	for _, die := range dice {
		if counts[die] < 3 {
			stripped = append(stripped, die)
		}
	}

	return stripped
}

// KeepRepeats returns the dice whose value appears three or more times,
// preserving roll order. The complement of StripRepeats.
func KeepRepeats(dice []int) []int {
	counts := CountDice(dice)

	kept := make([]int, 0, len(dice))
	for _, die := range dice {
		if counts[die] >= 3 {
			kept = append(kept, die)
		}
	}

	return kept
}
