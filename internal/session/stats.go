package session

import (
	"context"
	"time"

	"github.com/meltforce/fitquest/internal/kv"
)

// Stats summarizes the workout history.
type Stats struct {
	TotalWorkouts  int `json:"totalWorkouts"`
	ActiveDays     int `json:"activeDays"`
	TotalMinutes   int `json:"totalMinutes"`
	TotalCalories  int `json:"totalCalories"`
	CurrentStreak  int `json:"currentStreak"`
	WorkoutsLast7d int `json:"workoutsLast7d"`
}

// GetStats computes history totals. The streak counts consecutive calendar
// days with a workout ending today, or yesterday if today has none yet.
func (m *Manager) GetStats(ctx context.Context) Stats {
	now := m.now()
	weekAgo := now.Add(-7 * 24 * time.Hour)

	var st Stats
	days := make(map[string]bool)
	seconds := 0
	for _, s := range m.GetHistory(ctx) {
		st.TotalWorkouts++
		st.TotalCalories += s.CaloriesBurned
		seconds += s.DurationTaken
		if !s.DateCreated.IsZero() {
			days[kv.DateString(s.DateCreated.In(now.Location()))] = true
		}
		if !s.DateCreated.Before(weekAgo) {
			st.WorkoutsLast7d++
		}
	}
	st.TotalMinutes = seconds / 60
	st.ActiveDays = len(days)

	day := now
	if !days[kv.DateString(day)] {
		day = day.AddDate(0, 0, -1)
	}
	for days[kv.DateString(day)] {
		st.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}
	return st
}
