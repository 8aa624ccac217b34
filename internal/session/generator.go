package session

import (
	"math/rand/v2"
	"slices"

	"github.com/meltforce/fitquest/internal/models"
)

const (
	minGeneratedExercises = 3
	maxGeneratedExercises = 8
	minutesPerExercise    = 5
	defaultWorkoutMinutes = 30
)

// injuryAvoids maps an injury tag to the muscle groups a generated workout
// leaves out.
var injuryAvoids = map[string][]models.MuscleGroup{
	"knee":     {models.MuscleLegs, models.MuscleCardio},
	"back":     {models.MuscleBack, models.MuscleFullBody},
	"shoulder": {models.MuscleShoulders, models.MuscleChest},
	"wrist":    {models.MuscleChest, models.MuscleArms},
}

// goalNames titles generated workouts.
var goalNames = map[models.Goal]string{
	models.GoalLoseWeight: "Queima Total",
	models.GoalGainMuscle: "Hipertrofia",
	models.GoalStrength:   "Força Máxima",
	models.GoalEndurance:  "Resistência",
	models.GoalStayFit:    "Treino do Dia",
}

type volume struct{ sets, reps int }

var goalVolume = map[models.Goal]volume{
	models.GoalLoseWeight: {sets: 3, reps: 15},
	models.GoalGainMuscle: {sets: 4, reps: 10},
	models.GoalStrength:   {sets: 5, reps: 5},
	models.GoalEndurance:  {sets: 3, reps: 20},
}

// GenerateWorkout builds a randomized session for the profile. Exercises
// need only equipment the profile has, avoid muscle groups flagged by its
// injuries and never exceed its experience. The exercise count follows the
// preferred duration, and reps/sets follow the goal. The same rng seed
// yields the same workout.
func (m *Manager) GenerateWorkout(p models.Profile, rng *rand.Rand) models.WorkoutSession {
	candidates := m.candidates(p, true)
	if len(candidates) == 0 {
		candidates = m.candidates(p, false)
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	picked := pickVaried(candidates, exerciseCount(p.WorkoutDuration))

	vol, hasVolume := goalVolume[p.Goal]
	for i := range picked {
		if !hasVolume {
			continue
		}
		picked[i].Sets = vol.sets
		if picked[i].Duration == 0 {
			picked[i].Reps = vol.reps
		}
	}

	name, ok := goalNames[p.Goal]
	if !ok {
		name = goalNames[models.GoalStayFit]
	}
	return models.WorkoutSession{Name: name, Exercises: picked}
}

// candidates filters the catalog for p. With strict unset, only exercises
// needing no equipment are kept and difficulty is ignored.
func (m *Manager) candidates(p models.Profile, strict bool) []models.Exercise {
	avoid := make(map[models.MuscleGroup]bool)
	for _, inj := range p.Injuries {
		for _, g := range injuryAvoids[inj] {
			avoid[g] = true
		}
	}

	var out []models.Exercise
	for _, ex := range m.catalog.Exercises() {
		if avoid[ex.MuscleGroup] {
			continue
		}
		if strict {
			if ex.Difficulty.Rank() > p.Experience.Rank() || !hasEquipment(p.Equipment, ex.Equipment) {
				continue
			}
		} else if len(ex.Equipment) > 0 {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func hasEquipment(have, need []string) bool {
	for _, n := range need {
		if !slices.Contains(have, n) {
			return false
		}
	}
	return true
}

func exerciseCount(minutes int) int {
	if minutes <= 0 {
		minutes = defaultWorkoutMinutes
	}
	return min(max(minutes/minutesPerExercise, minGeneratedExercises), maxGeneratedExercises)
}

// pickVaried takes up to n exercises from a shuffled list, one per muscle
// group first, then fills from what is left.
func pickVaried(shuffled []models.Exercise, n int) []models.Exercise {
	picked := make([]models.Exercise, 0, n)
	used := make([]bool, len(shuffled))
	seen := make(map[models.MuscleGroup]bool)
	for i, ex := range shuffled {
		if len(picked) == n {
			return picked
		}
		if seen[ex.MuscleGroup] {
			continue
		}
		seen[ex.MuscleGroup] = true
		used[i] = true
		picked = append(picked, ex)
	}
	for i, ex := range shuffled {
		if len(picked) == n {
			break
		}
		if !used[i] {
			picked = append(picked, ex)
		}
	}
	return picked
}
