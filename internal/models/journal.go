package models

import "time"

// ExerciseSetLog is one logged set for an exercise.
type ExerciseSetLog struct {
	ID           string    `json:"id"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName,omitempty"`
	Reps         int       `json:"reps"`
	Weight       float64   `json:"weight,omitempty"` // kg
	Timestamp    time.Time `json:"timestamp"`
}

// MealItem is one food entry in a daily nutrition log.
type MealItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Meal      string    `json:"meal,omitempty"` // breakfast, lunch, dinner, snack
	Calories  int       `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Timestamp time.Time `json:"timestamp"`
}

// DailyNutritionLog holds the meal items for one calendar date.
type DailyNutritionLog struct {
	Date  string     `json:"date"`
	Items []MealItem `json:"items"`
}

// NutritionTotals sums a day's meal items.
type NutritionTotals struct {
	Date     string  `json:"date"`
	Items    int     `json:"items"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// HabitLog maps habit id to done for one calendar date.
type HabitLog map[string]bool

// RitualLog lists the ritual ids completed on one calendar date.
type RitualLog []string
