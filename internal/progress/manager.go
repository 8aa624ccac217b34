// Package progress owns the profile record and everything derived from it:
// XP, coins, level, achievements and the cosmetic inventory.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/meltforce/fitquest/internal/catalog"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/observability"
)

// Manager implements the profile and progression operations. It holds no
// state of its own; every call re-reads what it needs from the store.
type Manager struct {
	store   *kv.Store
	catalog *catalog.Catalog
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Manager.
func New(store *kv.Store, cat *catalog.Catalog, log *slog.Logger) *Manager {
	return &Manager{store: store, catalog: cat, log: log, now: time.Now}
}

// SetClock replaces the time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// GetProfile returns the profile, or nil before onboarding.
func (m *Manager) GetProfile(ctx context.Context) *models.Profile {
	return kv.Get[*models.Profile](ctx, m.store, kv.ProfileKey, nil)
}

// SaveProfile overwrites the stored profile.
func (m *Manager) SaveProfile(ctx context.Context, p models.Profile) error {
	if err := m.store.Set(ctx, kv.ProfileKey, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// AddXP grants amount XP and floor(amount/2) coins. The level is recomputed
// from XP and only ever raised here. No-op without a profile.
func (m *Manager) AddXP(ctx context.Context, amount int) error {
	if amount <= 0 {
		return nil
	}
	p := m.GetProfile(ctx)
	if p == nil {
		m.log.Debug("xp grant skipped, no profile", "amount", amount)
		return nil
	}

	p.XP += amount
	p.Coins += CoinsFor(amount)
	if lvl := Level(p.XP); lvl > p.LevelNumber {
		m.log.Info("level up", "from", p.LevelNumber, "to", lvl, "xp", p.XP)
		p.LevelNumber = lvl
		observability.RecordLevelUp()
	}

	if err := m.SaveProfile(ctx, *p); err != nil {
		return err
	}
	observability.RecordXP(amount)
	return nil
}

// LevelProgress returns level progress for the stored profile, or false
// before onboarding.
func (m *Manager) LevelProgress(ctx context.Context) (LevelProgress, bool) {
	p := m.GetProfile(ctx)
	if p == nil {
		return LevelProgress{}, false
	}
	return ProgressFor(p.XP), true
}

// GetAchievements returns the unlocked achievements in unlock order.
func (m *Manager) GetAchievements(ctx context.Context) []models.UserAchievement {
	return kv.Get(ctx, m.store, kv.AchievementsKey, []models.UserAchievement{})
}

// CheckAndUnlockAchievements evaluates every achievement against current
// state and unlocks the newly satisfied ones, granting each reward once.
// Rewards change the profile, so evaluation repeats against the rewarded
// state until a pass unlocks nothing. It returns the titles unlocked by this
// call only.
func (m *Manager) CheckAndUnlockAchievements(ctx context.Context) ([]string, error) {
	titles := []string{}
	for {
		fresh, err := m.unlockPass(ctx)
		if err != nil {
			return titles, err
		}
		if len(fresh) == 0 {
			return titles, nil
		}
		for _, a := range fresh {
			titles = append(titles, a.Title)
		}
		for _, a := range fresh {
			m.log.Info("achievement unlocked", "id", a.ID, "title", a.Title)
			observability.RecordAchievement(a.ID)
			if err := m.AddXP(ctx, AchievementRewardXP); err != nil {
				return titles, fmt.Errorf("granting reward for %s: %w", a.ID, err)
			}
		}
	}
}

// unlockPass records every satisfied achievement not yet unlocked. The
// unlock set is persisted before any reward is granted so a failed grant is
// never retried into a duplicate reward.
func (m *Manager) unlockPass(ctx context.Context) ([]Achievement, error) {
	facts := m.facts(ctx)
	unlocked := m.GetAchievements(ctx)

	have := make(map[string]bool, len(unlocked))
	for _, ua := range unlocked {
		have[ua.ID] = true
	}

	now := m.now()
	var fresh []Achievement
	for _, a := range Achievements {
		if have[a.ID] || !a.unlocked(facts) {
			continue
		}
		unlocked = append(unlocked, models.UserAchievement{ID: a.ID, UnlockedAt: now})
		fresh = append(fresh, a)
	}
	if len(fresh) == 0 {
		return nil, nil
	}
	if err := m.store.Set(ctx, kv.AchievementsKey, unlocked); err != nil {
		return nil, fmt.Errorf("saving achievements: %w", err)
	}
	return fresh, nil
}

func (m *Manager) facts(ctx context.Context) Facts {
	return Facts{
		History:       kv.Get(ctx, m.store, kv.HistoryKey, []models.WorkoutSession{}),
		Profile:       m.GetProfile(ctx),
		ProgramStatus: kv.Get(ctx, m.store, kv.ProgramStatusKey, models.ProgramStatus{}),
		SetLogCount:   len(kv.Get(ctx, m.store, kv.SetLogsKey, []models.ExerciseSetLog{})),
	}
}
