package kv

import "time"

// Persisted key layout.
const (
	ProfileKey        = "fitquest_profile"
	HistoryKey        = "fitquest_history"
	CurrentWorkoutKey = "fitquest_current_workout"
	AchievementsKey   = "fitquest_achievements"
	TemplatesKey      = "fitquest_templates"
	InventoryKey      = "fitquest_inventory"
	ProgramStatusKey  = "fitquest_program_status"
	SetLogsKey        = "fitquest_set_logs"

	HabitsPrefix    = "fitquest_habits_"
	NutritionPrefix = "fitquest_nutrition_"
	RitualsPrefix   = "fitquest_rituals_"
)

// DateLayout is the calendar-date format used in per-day keys.
const DateLayout = "2006-01-02"

// DateString formats t as a calendar-date key component in t's location.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

func HabitsKey(date string) string    { return HabitsPrefix + date }
func NutritionKey(date string) string { return NutritionPrefix + date }
func RitualsKey(date string) string   { return RitualsPrefix + date }
