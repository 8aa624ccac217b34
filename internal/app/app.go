// Package app wires the managers around one store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/fitquest/internal/backup"
	"github.com/meltforce/fitquest/internal/catalog"
	"github.com/meltforce/fitquest/internal/config"
	"github.com/meltforce/fitquest/internal/journal"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/progress"
	"github.com/meltforce/fitquest/internal/session"
)

// App is the single-user application: one store, one writer at a time.
type App struct {
	Store    *kv.Store
	Catalog  *catalog.Catalog
	Progress *progress.Manager
	Sessions *session.Manager
	Journal  *journal.Journal
	Backup   *backup.Service

	mu  sync.Mutex
	log *slog.Logger
}

// New builds the managers over store.
func New(store *kv.Store, cat *catalog.Catalog, log *slog.Logger) *App {
	pm := progress.New(store, cat, log)
	return &App{
		Store:    store,
		Catalog:  cat,
		Progress: pm,
		Sessions: session.New(store, cat, pm, log),
		Journal:  journal.New(store, pm, log),
		Backup:   backup.New(store, log),
		log:      log,
	}
}

// Open loads the catalog, opens the configured backend and builds the App.
func Open(ctx context.Context, cfg config.StorageConfig, db config.DatabaseConfig, log *slog.Logger) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}
	backend, err := OpenBackend(ctx, cfg, db, log)
	if err != nil {
		return nil, err
	}
	return New(kv.NewStore(backend, log), cat, log), nil
}

// OpenBackend opens the storage backend selected by cfg.Driver.
func OpenBackend(ctx context.Context, cfg config.StorageConfig, db config.DatabaseConfig, log *slog.Logger) (kv.Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		b, err := kv.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		log.Info("storage ready", "driver", cfg.Driver, "path", cfg.Path)
		return b, nil
	case config.DriverPostgres:
		b, err := kv.OpenPostgres(ctx, db.DSN())
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		log.Info("storage ready", "driver", cfg.Driver, "host", db.Host, "database", db.Name)
		return b, nil
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SetClock replaces the time source of every manager.
func (a *App) SetClock(now func() time.Time) {
	a.Progress.SetClock(now)
	a.Sessions.SetClock(now)
	a.Journal.SetClock(now)
	a.Backup.SetClock(now)
}

// Writer returns the lock every mutating operation must hold.
func (a *App) Writer() sync.Locker {
	return &a.mu
}

// Close closes the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// WorkoutResult is the outcome of finishing a workout.
type WorkoutResult struct {
	Session  *models.WorkoutSession `json:"session"`
	Unlocked []string               `json:"unlocked"`
	Profile  *models.Profile        `json:"profile"`
}

// FinishWorkout completes the current workout and then evaluates
// achievements, in that order. Session is nil when there was no current
// workout. The caller holds Writer.
func (a *App) FinishWorkout(ctx context.Context, calories, durationSec int) (WorkoutResult, error) {
	s, err := a.Sessions.FinishCurrentWorkout(ctx, calories, durationSec)
	if err != nil {
		return WorkoutResult{}, err
	}
	res := WorkoutResult{Session: s, Unlocked: []string{}}
	if s != nil {
		if res.Unlocked, err = a.Progress.CheckAndUnlockAchievements(ctx); err != nil {
			return WorkoutResult{}, err
		}
	}
	res.Profile = a.Progress.GetProfile(ctx)
	return res, nil
}

// LogSet records a set result and evaluates achievements. The caller holds Writer.
func (a *App) LogSet(ctx context.Context, l models.ExerciseSetLog) ([]string, error) {
	if _, err := a.Journal.SaveSetResult(ctx, l); err != nil {
		return nil, err
	}
	return a.Progress.CheckAndUnlockAchievements(ctx)
}
