// Package journal keeps the retrospective logs: daily nutrition, exercise
// sets, habits and rituals.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/progress"
)

// XPGranter grants XP for logged work.
type XPGranter interface {
	AddXP(ctx context.Context, amount int) error
}

// Journal implements the logging operations.
type Journal struct {
	store *kv.Store
	xp    XPGranter
	log   *slog.Logger
	now   func() time.Time
}

// New creates a Journal.
func New(store *kv.Store, xp XPGranter, log *slog.Logger) *Journal {
	return &Journal{store: store, xp: xp, log: log, now: time.Now}
}

// SetClock replaces the time source.
func (j *Journal) SetClock(now func() time.Time) {
	j.now = now
}

// Today returns the current calendar date key.
func (j *Journal) Today() string {
	return kv.DateString(j.now())
}

// GetDailyNutrition returns the log for date. A missing log is empty, never nil.
func (j *Journal) GetDailyNutrition(ctx context.Context, date string) models.DailyNutritionLog {
	l := kv.Get(ctx, j.store, kv.NutritionKey(date), models.DailyNutritionLog{})
	l.Date = date
	if l.Items == nil {
		l.Items = []models.MealItem{}
	}
	return l
}

// AddMealItem appends item to today's log, assigning an id and timestamp
// when missing.
func (j *Journal) AddMealItem(ctx context.Context, item models.MealItem) (models.MealItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = j.now()
	}

	date := j.Today()
	l := j.GetDailyNutrition(ctx, date)
	l.Items = append(l.Items, item)
	if err := j.store.Set(ctx, kv.NutritionKey(date), l); err != nil {
		return models.MealItem{}, fmt.Errorf("saving nutrition log: %w", err)
	}
	return item, nil
}

// RemoveMealItem drops itemID from the log for date. It returns false if no
// item matched.
func (j *Journal) RemoveMealItem(ctx context.Context, itemID, date string) (bool, error) {
	l := j.GetDailyNutrition(ctx, date)
	kept := make([]models.MealItem, 0, len(l.Items))
	for _, it := range l.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(l.Items) {
		return false, nil
	}
	l.Items = kept
	if err := j.store.Set(ctx, kv.NutritionKey(date), l); err != nil {
		return false, fmt.Errorf("saving nutrition log: %w", err)
	}
	return true, nil
}

// DailyTotals sums calories and macros for date.
func (j *Journal) DailyTotals(ctx context.Context, date string) models.NutritionTotals {
	t := models.NutritionTotals{Date: date}
	for _, it := range j.GetDailyNutrition(ctx, date).Items {
		t.Items++
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
	}
	return t
}

// ScanBarcode returns a fixed sample product for any code. There is no
// nutrition database behind it.
func (j *Journal) ScanBarcode(code string) models.MealItem {
	j.log.Debug("barcode scanned", "code", code)
	return models.MealItem{
		Name:     "Barra de Proteína (exemplo)",
		Meal:     "snack",
		Calories: 210,
		Protein:  20,
		Carbs:    22,
		Fat:      7,
	}
}

// GetSetLogs returns logged sets, filtered to exerciseID when it is not empty.
func (j *Journal) GetSetLogs(ctx context.Context, exerciseID string) []models.ExerciseSetLog {
	logs := kv.Get(ctx, j.store, kv.SetLogsKey, []models.ExerciseSetLog{})
	if exerciseID == "" {
		return logs
	}
	out := []models.ExerciseSetLog{}
	for _, l := range logs {
		if l.ExerciseID == exerciseID {
			out = append(out, l)
		}
	}
	return out
}

// SaveSetResult appends a set record and grants 15 XP. It returns true once
// the record is stored.
func (j *Journal) SaveSetResult(ctx context.Context, l models.ExerciseSetLog) (bool, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = j.now()
	}

	logs := append(j.GetSetLogs(ctx, ""), l)
	if err := j.store.Set(ctx, kv.SetLogsKey, logs); err != nil {
		return false, fmt.Errorf("saving set logs: %w", err)
	}
	if err := j.xp.AddXP(ctx, progress.SetResultXP); err != nil {
		return true, err
	}
	return true, nil
}
