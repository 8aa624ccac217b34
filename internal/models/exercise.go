package models

// MuscleGroup is the primary muscle group an exercise trains.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleLegs      MuscleGroup = "legs"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleArms      MuscleGroup = "arms"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full_body"
	MuscleCardio    MuscleGroup = "cardio"
)

// AllMuscleGroups lists every muscle group, in display order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleLegs, MuscleShoulders,
	MuscleArms, MuscleCore, MuscleFullBody, MuscleCardio,
}

// Valid reports whether g is a known muscle group.
func (g MuscleGroup) Valid() bool {
	for _, m := range AllMuscleGroups {
		if m == g {
			return true
		}
	}
	return false
}

// Difficulty is the catalog difficulty of an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Rank orders difficulties; unknown values rank as beginner.
func (d Difficulty) Rank() int {
	return Experience(d).Rank()
}

// Exercise is an immutable catalog entry. Sessions and templates hold copies
// whose Reps and Sets may be overridden.
type Exercise struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Category          string      `json:"category" yaml:"category"`
	MuscleGroup       MuscleGroup `json:"muscleGroup" yaml:"muscle_group"`
	Difficulty        Difficulty  `json:"difficulty" yaml:"difficulty"`
	ImageURL          string      `json:"imageUrl,omitempty" yaml:"image_url"`
	VideoURL          string      `json:"videoUrl,omitempty" yaml:"video_url"`
	Description       string      `json:"description,omitempty" yaml:"description"`
	Instructions      []string    `json:"instructions,omitempty" yaml:"instructions"`
	Tips              []string    `json:"tips,omitempty" yaml:"tips"`
	Reps              int         `json:"reps,omitempty" yaml:"reps"`
	Sets              int         `json:"sets,omitempty" yaml:"sets"`
	Duration          int         `json:"duration,omitempty" yaml:"duration"` // seconds, for timed exercises
	Equipment         []string    `json:"equipment,omitempty" yaml:"equipment"`
	CaloriesPerMinute float64     `json:"caloriesPerMinute,omitempty" yaml:"calories_per_minute"`
}
