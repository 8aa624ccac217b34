package models

// Goal is the user's stated training goal.
type Goal string

const (
	GoalLoseWeight Goal = "lose_weight"
	GoalGainMuscle Goal = "gain_muscle"
	GoalStrength   Goal = "strength"
	GoalEndurance  Goal = "endurance"
	GoalStayFit    Goal = "stay_fit"
)

// Experience is the self-reported training experience.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Rank orders experience levels so they can be compared with exercise difficulty.
func (e Experience) Rank() int {
	switch e {
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	default:
		return 1
	}
}

// Profile is the single user record created at onboarding.
type Profile struct {
	Name               string     `json:"name"`
	Age                int        `json:"age"`
	Weight             float64    `json:"weight"`
	Height             float64    `json:"height"`
	Goal               Goal       `json:"goal"`
	Experience         Experience `json:"experience"`
	Equipment          []string   `json:"equipment"`
	Injuries           []string   `json:"injuries"`
	CoachStyle         string     `json:"coachStyle"`
	WorkoutDuration    int        `json:"workoutDuration"`  // minutes
	WorkoutFrequency   int        `json:"workoutFrequency"` // sessions per week
	OnboardingComplete bool       `json:"onboardingComplete"`

	XP           int    `json:"xp"`
	LevelNumber  int    `json:"levelNumber"`
	Coins        int    `json:"coins"`
	EquippedSkin string `json:"equippedSkin,omitempty"`
}
