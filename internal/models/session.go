package models

import "time"

// WorkoutSession is one planned, in-progress or completed workout.
type WorkoutSession struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Exercises        []Exercise `json:"exercises"`
	Completed        bool       `json:"completed"`
	CaloriesBurned   int        `json:"caloriesBurned"`
	DurationTaken    int        `json:"durationTaken"` // seconds
	DateCreated      time.Time  `json:"dateCreated"`
	IsProgramWorkout bool       `json:"isProgramWorkout"`
	ProgramID        string     `json:"programId,omitempty"`
	ProgramDay       int        `json:"programDay,omitempty"`
}

// ProgramStatus tracks progress through a multi-day program.
type ProgramStatus struct {
	ProgramID     string `json:"programId,omitempty"`
	CurrentDay    int    `json:"currentDay"`
	CompletedDays []int  `json:"completedDays"`
}

// IsCompleted reports whether day has been marked complete.
func (s ProgramStatus) IsCompleted(day int) bool {
	for _, d := range s.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}

// WorkoutTemplate is a user-saved exercise list that can seed new sessions.
type WorkoutTemplate struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
}
