package goal

import "math"

// DefaultDailyLiters is the fallback daily goal used whenever no goal is
// configured or the suggestion service is unavailable.
const DefaultDailyLiters = 2.5

const (
	feetToMeters = 0.3048
	lbsToKg      = 0.453592
)

// IsMet reports whether a day's accumulated liters reach the daily goal.
func IsMet(totalLiters, goalLiters float64) bool {
	return totalLiters >= goalLiters
}

// PercentFill returns the progress toward the goal clamped to [0, 1].
func PercentFill(totalLiters, goalLiters float64) float64 {
	if goalLiters <= 0 {
		return 0
	}
	return math.Min(totalLiters/goalLiters, 1.0)
}

// BMI computes body mass index from a height and weight in the user's chosen
// units ("cm" or "feet", "kg" or "lbs"), rounded to two decimals. Returns 0
// when the converted height is not positive.
func BMI(weight, height float64, weightUnit, heightUnit string) float64 {
	heightM := height / 100.0
	if heightUnit == "feet" {
		heightM = height * feetToMeters
	}

	weightKg := weight
	if weightUnit == "lbs" {
		weightKg = weight * lbsToKg
	}

	if heightM <= 0 {
		return 0
	}

	return math.Round(weightKg/(heightM*heightM)*100) / 100
}
