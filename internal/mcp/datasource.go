package mcp

import (
	"context"

	"github.com/meltforce/fitquest/internal/app"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/session"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface.
//
// An empty date means today in the data owner's calendar.
type DataSource interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	GetHistory(ctx context.Context) ([]models.WorkoutSession, error)
	GetStats(ctx context.Context) (session.Stats, error)
	GetMuscleVolume(ctx context.Context) (map[models.MuscleGroup]int, error)
	GetProgramStatus(ctx context.Context) (models.ProgramStatus, error)
	GetNutrition(ctx context.Context, date string) (models.DailyNutritionLog, error)
	GetNutritionTotals(ctx context.Context, date string) (models.NutritionTotals, error)
	GetSetLogs(ctx context.Context, exerciseID string) ([]models.ExerciseSetLog, error)
	GetAchievements(ctx context.Context) ([]models.UserAchievement, error)
}

// Local reads straight from an open app.
type Local struct {
	app *app.App
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps a for MCP use.
func NewLocal(a *app.App) *Local {
	return &Local{app: a}
}

func (l *Local) GetProfile(ctx context.Context) (*models.Profile, error) {
	return l.app.Progress.GetProfile(ctx), nil
}

func (l *Local) GetHistory(ctx context.Context) ([]models.WorkoutSession, error) {
	return l.app.Sessions.GetHistory(ctx), nil
}

func (l *Local) GetStats(ctx context.Context) (session.Stats, error) {
	return l.app.Sessions.GetStats(ctx), nil
}

func (l *Local) GetMuscleVolume(ctx context.Context) (map[models.MuscleGroup]int, error) {
	return l.app.Sessions.GetMuscleVolumeStats(ctx), nil
}

func (l *Local) GetProgramStatus(ctx context.Context) (models.ProgramStatus, error) {
	return l.app.Sessions.GetProgramStatus(ctx), nil
}

func (l *Local) GetNutrition(ctx context.Context, date string) (models.DailyNutritionLog, error) {
	return l.app.Journal.GetDailyNutrition(ctx, l.date(date)), nil
}

func (l *Local) GetNutritionTotals(ctx context.Context, date string) (models.NutritionTotals, error) {
	return l.app.Journal.DailyTotals(ctx, l.date(date)), nil
}

func (l *Local) GetSetLogs(ctx context.Context, exerciseID string) ([]models.ExerciseSetLog, error) {
	return l.app.Journal.GetSetLogs(ctx, exerciseID), nil
}

func (l *Local) GetAchievements(ctx context.Context) ([]models.UserAchievement, error) {
	return l.app.Progress.GetAchievements(ctx), nil
}

func (l *Local) date(d string) string {
	if d == "" {
		return l.app.Journal.Today()
	}
	return d
}
