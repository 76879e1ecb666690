package utils

import "math"

// CalculateHydrationScore folds the streak, lifetime completed days and
// today's progress into one display number for the stats screen. Streak
// dominates, history and today's fill nudge it.
func CalculateHydrationScore(currentStreak, totalCompletedDays int, todayPercentFill float64) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	historyScore := float64(totalCompletedDays) * 0.05
	todayScore := todayPercentFill * 10.0

	return math.Round((streakScore+historyScore+todayScore)*100) / 100
}
