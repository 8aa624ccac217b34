package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
)

// GetProgramStatus returns the program status, starting at day 1.
func (m *Manager) GetProgramStatus(ctx context.Context) models.ProgramStatus {
	st := kv.Get(ctx, m.store, kv.ProgramStatusKey, models.ProgramStatus{CurrentDay: 1})
	if st.CurrentDay < 1 {
		st.CurrentDay = 1
	}
	if st.CompletedDays == nil {
		st.CompletedDays = []int{}
	}
	return st
}

// CompleteProgramDay marks day complete and moves the current day to day+1.
// It returns false with no change when day is already complete or is not the
// current day, so the current day never decreases or skips.
func (m *Manager) CompleteProgramDay(ctx context.Context, day int) (bool, error) {
	st := m.GetProgramStatus(ctx)
	if st.IsCompleted(day) {
		return false, nil
	}
	if day != st.CurrentDay {
		m.log.Info("program day out of sequence, ignored", "day", day, "current_day", st.CurrentDay)
		return false, nil
	}

	st.CompletedDays = append(st.CompletedDays, day)
	slices.Sort(st.CompletedDays)
	st.CurrentDay = day + 1
	if err := m.store.Set(ctx, kv.ProgramStatusKey, st); err != nil {
		return false, fmt.Errorf("saving program status: %w", err)
	}
	m.log.Info("program day completed", "day", day, "program", st.ProgramID)
	return true, nil
}

// ProgramDayWorkout builds the session for one day of a catalog program.
func (m *Manager) ProgramDayWorkout(programID string, day int) (models.WorkoutSession, bool) {
	p, ok := m.catalog.Program(programID)
	if !ok {
		return models.WorkoutSession{}, false
	}
	pd, ok := p.Day(day)
	if !ok {
		return models.WorkoutSession{}, false
	}
	return models.WorkoutSession{
		Name:             fmt.Sprintf("%s - Dia %d: %s", p.Title, pd.Day, pd.Title),
		Exercises:        append([]models.Exercise(nil), pd.Exercises...),
		IsProgramWorkout: true,
		ProgramID:        p.ID,
		ProgramDay:       pd.Day,
	}, true
}

// StartProgramDay loads the status's current day of programID into the
// current-workout slot. It returns nil when the program is unknown or every
// day has been completed.
func (m *Manager) StartProgramDay(ctx context.Context, programID string) (*models.WorkoutSession, error) {
	st := m.GetProgramStatus(ctx)
	s, ok := m.ProgramDayWorkout(programID, st.CurrentDay)
	if !ok {
		return nil, nil
	}
	if st.ProgramID != programID {
		st.ProgramID = programID
		if err := m.store.Set(ctx, kv.ProgramStatusKey, st); err != nil {
			return nil, fmt.Errorf("saving program status: %w", err)
		}
	}
	if err := m.SaveCurrentWorkout(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
