package journal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
)

// GetHabits returns the habit log for date, never nil.
func (j *Journal) GetHabits(ctx context.Context, date string) models.HabitLog {
	h := kv.Get(ctx, j.store, kv.HabitsKey(date), models.HabitLog{})
	if h == nil {
		h = models.HabitLog{}
	}
	return h
}

// ToggleHabit flips habitID for date and returns its new state.
func (j *Journal) ToggleHabit(ctx context.Context, date, habitID string) (bool, error) {
	h := j.GetHabits(ctx, date)
	h[habitID] = !h[habitID]
	if err := j.store.Set(ctx, kv.HabitsKey(date), h); err != nil {
		return false, fmt.Errorf("saving habits: %w", err)
	}
	return h[habitID], nil
}

// CollectHabits gathers every stored habit log keyed by date.
func CollectHabits(ctx context.Context, store *kv.Store) (map[string]models.HabitLog, error) {
	keys, err := store.Keys(ctx, kv.HabitsPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing habit logs: %w", err)
	}
	out := make(map[string]models.HabitLog, len(keys))
	for _, k := range keys {
		out[strings.TrimPrefix(k, kv.HabitsPrefix)] = kv.Get(ctx, store, k, models.HabitLog{})
	}
	return out, nil
}

// GetRituals returns the ritual ids completed on date, never nil.
func (j *Journal) GetRituals(ctx context.Context, date string) models.RitualLog {
	r := kv.Get(ctx, j.store, kv.RitualsKey(date), models.RitualLog{})
	if r == nil {
		r = models.RitualLog{}
	}
	return r
}

// CompleteRitual marks ritualID done for date. It returns false if it was
// already done.
func (j *Journal) CompleteRitual(ctx context.Context, date, ritualID string) (bool, error) {
	r := j.GetRituals(ctx, date)
	if slices.Contains(r, ritualID) {
		return false, nil
	}
	r = append(r, ritualID)
	if err := j.store.Set(ctx, kv.RitualsKey(date), r); err != nil {
		return false, fmt.Errorf("saving rituals: %w", err)
	}
	return true, nil
}
