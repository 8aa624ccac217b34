// Package backup exports, imports and resets the whole store.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/meltforce/fitquest/internal/journal"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
)

// Version is the backup document format version written by Export.
const Version = 1

// Document is the backup file.
type Document struct {
	Version      int                        `json:"version"`
	GeneratedAt  time.Time                  `json:"generatedAt"`
	Profile      *models.Profile            `json:"profile"`
	History      []models.WorkoutSession    `json:"history"`
	Habits       map[string]models.HabitLog `json:"habits"`
	Achievements []models.UserAchievement   `json:"achievements"`
}

// Service implements export, import and reset over a store.
type Service struct {
	store *kv.Store
	log   *slog.Logger
	now   func() time.Time
}

// New creates a Service.
func New(store *kv.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Export bundles profile, history, every per-date habit log and the unlocked
// achievements.
func (s *Service) Export(ctx context.Context) (Document, error) {
	habits, err := journal.CollectHabits(ctx, s.store)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Version:      Version,
		GeneratedAt:  s.now(),
		Profile:      kv.Get[*models.Profile](ctx, s.store, kv.ProfileKey, nil),
		History:      kv.Get(ctx, s.store, kv.HistoryKey, []models.WorkoutSession{}),
		Habits:       habits,
		Achievements: kv.Get(ctx, s.store, kv.AchievementsKey, []models.UserAchievement{}),
	}, nil
}

// WriteExport writes the export document as indented JSON.
func (s *Service) WriteExport(ctx context.Context, w io.Writer) error {
	doc, err := s.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import reads a backup document and overwrites the profile and history.
// Habits and achievements in the document are not restored. A document that
// does not parse or carries no profile returns false with no change; only
// store failures return an error.
func (s *Service) Import(ctx context.Context, r io.Reader) (bool, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		s.log.Warn("backup import rejected", "error", err)
		return false, nil
	}
	if doc.Profile == nil {
		s.log.Warn("backup import rejected", "error", "document has no profile")
		return false, nil
	}
	if doc.History == nil {
		doc.History = []models.WorkoutSession{}
	}

	if err := s.store.Set(ctx, kv.ProfileKey, doc.Profile); err != nil {
		return false, fmt.Errorf("restoring profile: %w", err)
	}
	if err := s.store.Set(ctx, kv.HistoryKey, doc.History); err != nil {
		return false, fmt.Errorf("restoring history: %w", err)
	}
	s.log.Info("backup imported", "version", doc.Version, "generated_at", doc.GeneratedAt, "sessions", len(doc.History))
	return true, nil
}

// Reset clears every key. Irreversible.
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Clear(ctx)
}
