// Package session owns the current-workout slot, the completed-workout
// history and program-day progression.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/fitquest/internal/catalog"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/observability"
	"github.com/meltforce/fitquest/internal/progress"
)

// XPGranter grants XP for completed work.
type XPGranter interface {
	AddXP(ctx context.Context, amount int) error
}

// Manager implements the session and history operations.
type Manager struct {
	store   *kv.Store
	catalog *catalog.Catalog
	xp      XPGranter
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Manager.
func New(store *kv.Store, cat *catalog.Catalog, xp XPGranter, log *slog.Logger) *Manager {
	return &Manager{store: store, catalog: cat, xp: xp, log: log, now: time.Now}
}

// SetClock replaces the time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// GetCurrentWorkout returns the in-progress session, or nil.
func (m *Manager) GetCurrentWorkout(ctx context.Context) *models.WorkoutSession {
	return kv.Get[*models.WorkoutSession](ctx, m.store, kv.CurrentWorkoutKey, nil)
}

// SaveCurrentWorkout replaces the current-workout slot. A nil session clears it.
func (m *Manager) SaveCurrentWorkout(ctx context.Context, s *models.WorkoutSession) error {
	if s == nil {
		if err := m.store.Remove(ctx, kv.CurrentWorkoutKey); err != nil {
			return fmt.Errorf("clearing current workout: %w", err)
		}
		return nil
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.DateCreated.IsZero() {
		s.DateCreated = m.now()
	}
	if err := m.store.Set(ctx, kv.CurrentWorkoutKey, s); err != nil {
		return fmt.Errorf("saving current workout: %w", err)
	}
	return nil
}

// GetHistory returns completed sessions in insertion order.
func (m *Manager) GetHistory(ctx context.Context) []models.WorkoutSession {
	return kv.Get(ctx, m.store, kv.HistoryKey, []models.WorkoutSession{})
}

// SaveWorkoutSession appends s to history. For program workouts it completes
// the program day held in the status at call time, not s.ProgramDay. It then
// grants 200 + 20 XP per exercise.
func (m *Manager) SaveWorkoutSession(ctx context.Context, s models.WorkoutSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.DateCreated.IsZero() {
		s.DateCreated = m.now()
	}

	history := append(m.GetHistory(ctx), s)
	if err := m.store.Set(ctx, kv.HistoryKey, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	if s.IsProgramWorkout {
		status := m.GetProgramStatus(ctx)
		if s.ProgramDay != 0 && s.ProgramDay != status.CurrentDay {
			m.log.Warn("program session day differs from status, completing status day",
				"session_day", s.ProgramDay, "status_day", status.CurrentDay)
		}
		if _, err := m.CompleteProgramDay(ctx, status.CurrentDay); err != nil {
			return err
		}
	}

	observability.RecordWorkout(s.IsProgramWorkout)
	m.log.Info("workout saved", "id", s.ID, "name", s.Name, "exercises", len(s.Exercises), "program", s.IsProgramWorkout)
	return m.xp.AddXP(ctx, progress.WorkoutXP(len(s.Exercises)))
}

// FinishCurrentWorkout completes the in-progress session with the measured
// calories and duration, records it and clears the slot. It returns the
// saved session, or nil when there is no current workout.
func (m *Manager) FinishCurrentWorkout(ctx context.Context, calories, durationSec int) (*models.WorkoutSession, error) {
	cur := m.GetCurrentWorkout(ctx)
	if cur == nil {
		return nil, nil
	}
	cur.Completed = true
	cur.CaloriesBurned = calories
	cur.DurationTaken = durationSec
	if cur.CaloriesBurned <= 0 {
		cur.CaloriesBurned = EstimateCalories(cur.Exercises, durationSec)
	}

	if err := m.SaveWorkoutSession(ctx, *cur); err != nil {
		return nil, err
	}
	if err := m.SaveCurrentWorkout(ctx, nil); err != nil {
		return nil, err
	}
	return cur, nil
}

// EstimateCalories spreads the duration evenly over the exercises and applies
// each one's burn rate, defaulting unknown rates.
func EstimateCalories(exercises []models.Exercise, durationSec int) int {
	if len(exercises) == 0 || durationSec <= 0 {
		return 0
	}
	perExercise := float64(durationSec) / 60 / float64(len(exercises))
	var kcal float64
	for _, ex := range exercises {
		kcal += perExercise * progress.BurnRateOrDefault(ex.CaloriesPerMinute)
	}
	return int(kcal + 0.5)
}

// GetMuscleVolumeStats sums sets per muscle group over sessions created in
// the trailing seven days. Every muscle group is present in the result.
func (m *Manager) GetMuscleVolumeStats(ctx context.Context) map[models.MuscleGroup]int {
	stats := make(map[models.MuscleGroup]int, len(models.AllMuscleGroups))
	for _, g := range models.AllMuscleGroups {
		stats[g] = 0
	}

	cutoff := m.now().Add(-progress.MuscleVolumeWindow)
	for _, s := range m.GetHistory(ctx) {
		if s.DateCreated.Before(cutoff) {
			continue
		}
		for _, ex := range s.Exercises {
			if !ex.MuscleGroup.Valid() {
				continue
			}
			stats[ex.MuscleGroup] += progress.SetsOrDefault(ex.Sets)
		}
	}
	return stats
}
