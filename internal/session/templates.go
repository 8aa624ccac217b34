package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
)

// ListTemplates returns the saved workout templates.
func (m *Manager) ListTemplates(ctx context.Context) []models.WorkoutTemplate {
	return kv.Get(ctx, m.store, kv.TemplatesKey, []models.WorkoutTemplate{})
}

// SaveTemplate stores t, replacing a template with the same id. A template
// without an id gets a new one.
func (m *Manager) SaveTemplate(ctx context.Context, t models.WorkoutTemplate) (models.WorkoutTemplate, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = m.now()
	}

	templates := m.ListTemplates(ctx)
	replaced := false
	for i := range templates {
		if templates[i].ID == t.ID {
			templates[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, t)
	}
	if err := m.store.Set(ctx, kv.TemplatesKey, templates); err != nil {
		return models.WorkoutTemplate{}, fmt.Errorf("saving templates: %w", err)
	}
	return t, nil
}

// DeleteTemplate removes the template with id. It returns false if none matched.
func (m *Manager) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	templates := m.ListTemplates(ctx)
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(templates) {
		return false, nil
	}
	if err := m.store.Set(ctx, kv.TemplatesKey, kept); err != nil {
		return false, fmt.Errorf("saving templates: %w", err)
	}
	return true, nil
}

// StartTemplate copies a template into the current-workout slot.
func (m *Manager) StartTemplate(ctx context.Context, id string) (*models.WorkoutSession, error) {
	for _, t := range m.ListTemplates(ctx) {
		if t.ID != id {
			continue
		}
		s := &models.WorkoutSession{
			Name:      t.Name,
			Exercises: append([]models.Exercise(nil), t.Exercises...),
		}
		if err := m.SaveCurrentWorkout(ctx, s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, nil
}
