// Package rewards computes the coins and grades earned in a race.
package rewards

const (
	// StreakThreshold is the streak length from which each correct answer
	// pays StreakCoins instead of BaseCoins.
	StreakThreshold = 3

	BaseCoins   = 1
	StreakCoins = 2

	PerfectBonus   = 5
	HighBonus      = 3
	HighBonusRatio = 0.90
)

// CoinsForAnswer returns the coins earned by one answer. streak is the
// streak length after the answer was counted.
func CoinsForAnswer(correct bool, streak int) int {
	if !correct {
		return 0
	}
	if streak >= StreakThreshold {
		return StreakCoins
	}
	return BaseCoins
}

// AccuracyBonus returns the end-of-race bonus: PerfectBonus at 100%,
// HighBonus at 90% or more, otherwise nothing.
func AccuracyBonus(correct, total int) int {
	if total <= 0 {
		return 0
	}
	switch {
	case correct >= total:
		return PerfectBonus
	case float64(correct)/float64(total) >= HighBonusRatio:
		return HighBonus
	default:
		return 0
	}
}
