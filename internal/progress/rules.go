package progress

import "time"

// Progression rules and defaults. Every manager takes its numbers from here.
const (
	XPPerLevel           = 1000
	AchievementRewardXP  = 500
	WorkoutBaseXP        = 200
	WorkoutPerExerciseXP = 20
	SetResultXP          = 15

	// DefaultSets applies to exercises stored without a set count.
	DefaultSets = 3
	// DefaultBurnRate is kcal per minute for exercises without one.
	DefaultBurnRate = 5.0

	MuscleVolumeWindow = 7 * 24 * time.Hour
)

// Level is the level for a given XP total.
func Level(xp int) int {
	if xp <= 0 {
		return 0
	}
	return xp / XPPerLevel
}

// CoinsFor is the coin grant accompanying an XP grant. Flooring is applied
// per grant, not on the running total.
func CoinsFor(xp int) int {
	if xp <= 0 {
		return 0
	}
	return xp / 2
}

// WorkoutXP is the XP granted for completing a session with n exercises.
func WorkoutXP(n int) int {
	return WorkoutBaseXP + WorkoutPerExerciseXP*n
}

// SetsOrDefault returns sets, or DefaultSets when unspecified.
func SetsOrDefault(sets int) int {
	if sets <= 0 {
		return DefaultSets
	}
	return sets
}

// BurnRateOrDefault returns rate, or DefaultBurnRate when unspecified.
func BurnRateOrDefault(rate float64) float64 {
	if rate <= 0 {
		return DefaultBurnRate
	}
	return rate
}

// LevelProgress describes how far the profile is into its current level.
type LevelProgress struct {
	Level       int `json:"level"`
	XP          int `json:"xp"`
	IntoLevel   int `json:"intoLevel"`
	ToNextLevel int `json:"toNextLevel"`
}

// ProgressFor computes LevelProgress for an XP total.
func ProgressFor(xp int) LevelProgress {
	lvl := Level(xp)
	into := xp - lvl*XPPerLevel
	if into < 0 {
		into = 0
	}
	return LevelProgress{
		Level:       lvl,
		XP:          xp,
		IntoLevel:   into,
		ToNextLevel: XPPerLevel - into,
	}
}
