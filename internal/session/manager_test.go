package session

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/meltforce/fitquest/internal/catalog"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/progress"
)

var fixedNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

type recordingGranter struct{ grants []int }

func (g *recordingGranter) AddXP(_ context.Context, amount int) error {
	g.grants = append(g.grants, amount)
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return cat
}

func newTestManager(t *testing.T) (*Manager, *recordingGranter) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := &recordingGranter{}
	m := New(kv.NewStore(kv.NewMemory(), log), testCatalog(t), g, log)
	m.SetClock(func() time.Time { return fixedNow })
	return m, g
}

func exercises(groups ...models.MuscleGroup) []models.Exercise {
	var out []models.Exercise
	for _, g := range groups {
		out = append(out, models.Exercise{ID: string(g), Name: string(g), MuscleGroup: g})
	}
	return out
}

// TestCurrentWorkoutSlot verifies the singleton slot save, read and clear.
func TestCurrentWorkoutSlot(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if cur := m.GetCurrentWorkout(ctx); cur != nil {
		t.Fatalf("GetCurrentWorkout = %+v, want nil", cur)
	}

	s := &models.WorkoutSession{Name: "Push", Exercises: exercises(models.MuscleChest)}
	if err := m.SaveCurrentWorkout(ctx, s); err != nil {
		t.Fatal(err)
	}
	cur := m.GetCurrentWorkout(ctx)
	if cur == nil || cur.Name != "Push" || cur.ID == "" || !cur.DateCreated.Equal(fixedNow) {
		t.Errorf("GetCurrentWorkout = %+v", cur)
	}

	if err := m.SaveCurrentWorkout(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if cur := m.GetCurrentWorkout(ctx); cur != nil {
		t.Errorf("slot not cleared: %+v", cur)
	}
}

// TestSaveWorkoutSessionGrantsXP verifies history append order and the
// 200 + 20 per exercise grant.
func TestSaveWorkoutSessionGrantsXP(t *testing.T) {
	m, g := newTestManager(t)
	ctx := context.Background()

	for i, n := range []int{3, 0} {
		s := models.WorkoutSession{Name: string(rune('A' + i)), Exercises: exercises(models.AllMuscleGroups[:n]...)}
		if err := m.SaveWorkoutSession(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	if want := []int{260, 200}; !reflect.DeepEqual(g.grants, want) {
		t.Errorf("grants = %v, want %v", g.grants, want)
	}
	h := m.GetHistory(ctx)
	if len(h) != 2 || h[0].Name != "A" || h[1].Name != "B" {
		t.Errorf("history = %+v, want A then B", h)
	}
	if h[0].ID == "" || h[0].ID == h[1].ID {
		t.Errorf("session ids not assigned uniquely: %q %q", h[0].ID, h[1].ID)
	}
}

// TestSaveWorkoutSessionAdvancesProgram verifies program workouts complete
// the status day read at call time.
func TestSaveWorkoutSessionAdvancesProgram(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if st := m.GetProgramStatus(ctx); st.CurrentDay != 1 || len(st.CompletedDays) != 0 {
		t.Fatalf("initial status = %+v", st)
	}

	// A stale session claiming day 5 still completes the status day.
	s := models.WorkoutSession{Name: "P", IsProgramWorkout: true, ProgramDay: 5}
	if err := m.SaveWorkoutSession(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveWorkoutSession(ctx, models.WorkoutSession{Name: "P2", IsProgramWorkout: true}); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveWorkoutSession(ctx, models.WorkoutSession{Name: "free"}); err != nil {
		t.Fatal(err)
	}

	st := m.GetProgramStatus(ctx)
	if st.CurrentDay != 3 || !reflect.DeepEqual(st.CompletedDays, []int{1, 2}) {
		t.Errorf("status = %+v, want currentDay 3 completed [1 2]", st)
	}
}

// TestCompleteProgramDay verifies idempotent completion and that days are
// never skipped.
func TestCompleteProgramDay(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	ok, err := m.CompleteProgramDay(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("CompleteProgramDay(1) = %v, %v", ok, err)
	}
	ok, _ = m.CompleteProgramDay(ctx, 1)
	if ok {
		t.Error("second CompleteProgramDay(1) = true")
	}
	ok, _ = m.CompleteProgramDay(ctx, 4)
	if ok {
		t.Error("CompleteProgramDay(4) skipped ahead")
	}

	st := m.GetProgramStatus(ctx)
	if st.CurrentDay != 2 || !reflect.DeepEqual(st.CompletedDays, []int{1}) {
		t.Errorf("status = %+v, want currentDay 2 completed [1]", st)
	}
}

// TestStartProgramDay verifies the current day's exercises are loaded from
// the catalog and the run ends after the last day.
func TestStartProgramDay(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.StartProgramDay(ctx, "iniciante_7")
	if err != nil || s == nil {
		t.Fatalf("StartProgramDay = %v, %v", s, err)
	}
	if !s.IsProgramWorkout || s.ProgramDay != 1 || len(s.Exercises) != 4 || s.Exercises[0].ID != "jumping_jack" {
		t.Errorf("day 1 session = %+v", s)
	}
	if cur := m.GetCurrentWorkout(ctx); cur == nil || cur.ID != s.ID {
		t.Errorf("current workout = %+v, want started session", cur)
	}
	if st := m.GetProgramStatus(ctx); st.ProgramID != "iniciante_7" {
		t.Errorf("status program = %q", st.ProgramID)
	}

	for day := 1; day <= 7; day++ {
		if ok, _ := m.CompleteProgramDay(ctx, day); !ok {
			t.Fatalf("CompleteProgramDay(%d) = false", day)
		}
	}
	if s, _ := m.StartProgramDay(ctx, "iniciante_7"); s != nil {
		t.Errorf("finished program started day %d", s.ProgramDay)
	}
	if s, _ := m.StartProgramDay(ctx, "missing"); s != nil {
		t.Error("unknown program started")
	}
}

// TestFinishCurrentWorkout verifies the slot is recorded and cleared.
func TestFinishCurrentWorkout(t *testing.T) {
	m, g := newTestManager(t)
	ctx := context.Background()

	if s, err := m.FinishCurrentWorkout(ctx, 100, 600); s != nil || err != nil {
		t.Fatalf("finish with empty slot = %v, %v", s, err)
	}

	if err := m.SaveCurrentWorkout(ctx, &models.WorkoutSession{Name: "Legs", Exercises: exercises(models.MuscleLegs, models.MuscleCore)}); err != nil {
		t.Fatal(err)
	}
	s, err := m.FinishCurrentWorkout(ctx, 0, 600)
	if err != nil || s == nil {
		t.Fatalf("FinishCurrentWorkout = %v, %v", s, err)
	}
	if !s.Completed || s.DurationTaken != 600 || s.CaloriesBurned != 50 {
		t.Errorf("finished = %+v, want completed, 600s, 50 kcal", s)
	}
	if m.GetCurrentWorkout(ctx) != nil {
		t.Error("slot not cleared")
	}
	if h := m.GetHistory(ctx); len(h) != 1 || h[0].Name != "Legs" {
		t.Errorf("history = %+v", h)
	}
	if !reflect.DeepEqual(g.grants, []int{240}) {
		t.Errorf("grants = %v, want [240]", g.grants)
	}
}

// TestEstimateCalories verifies per-exercise burn rates and the default rate.
func TestEstimateCalories(t *testing.T) {
	ex := []models.Exercise{{CaloriesPerMinute: 10}, {}}
	if got := EstimateCalories(ex, 120); got != 15 {
		t.Errorf("EstimateCalories = %d, want 15", got)
	}
	if got := EstimateCalories(nil, 120); got != 0 {
		t.Errorf("EstimateCalories(nil) = %d, want 0", got)
	}
}

// TestGetMuscleVolumeStats verifies the trailing window, the default of 3
// sets and zero-filling.
func TestGetMuscleVolumeStats(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	recent := models.WorkoutSession{
		DateCreated: fixedNow.Add(-2 * 24 * time.Hour),
		Exercises: []models.Exercise{
			{MuscleGroup: models.MuscleChest, Sets: 4},
			{MuscleGroup: models.MuscleLegs},
			{MuscleGroup: models.MuscleChest, Sets: 2},
		},
	}
	old := models.WorkoutSession{
		DateCreated: fixedNow.Add(-8 * 24 * time.Hour),
		Exercises:   []models.Exercise{{MuscleGroup: models.MuscleBack, Sets: 5}},
	}
	for _, s := range []models.WorkoutSession{old, recent} {
		if err := m.SaveWorkoutSession(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	got := m.GetMuscleVolumeStats(ctx)
	if len(got) != len(models.AllMuscleGroups) {
		t.Errorf("got %d groups, want %d", len(got), len(models.AllMuscleGroups))
	}
	want := map[models.MuscleGroup]int{models.MuscleChest: 6, models.MuscleLegs: 3}
	for _, g := range models.AllMuscleGroups {
		if got[g] != want[g] {
			t.Errorf("%s = %d, want %d", g, got[g], want[g])
		}
	}
}

// TestGetStats verifies totals and the streak calculation.
func TestGetStats(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	day := 24 * time.Hour
	for _, s := range []models.WorkoutSession{
		{DateCreated: fixedNow.Add(-10 * day), DurationTaken: 1200, CaloriesBurned: 100},
		{DateCreated: fixedNow.Add(-2 * day), DurationTaken: 1800, CaloriesBurned: 200},
		{DateCreated: fixedNow.Add(-1 * day), DurationTaken: 600, CaloriesBurned: 50},
		{DateCreated: fixedNow.Add(-1*day - time.Hour), DurationTaken: 630, CaloriesBurned: 60},
	} {
		if err := m.SaveWorkoutSession(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	got := m.GetStats(ctx)
	want := Stats{
		TotalWorkouts:  4,
		ActiveDays:     3,
		TotalMinutes:   70,
		TotalCalories:  410,
		CurrentStreak:  2,
		WorkoutsLast7d: 3,
	}
	if got != want {
		t.Errorf("GetStats = %+v, want %+v", got, want)
	}
}

// TestTemplates covers save, replace, start and delete.
func TestTemplates(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	tpl, err := m.SaveTemplate(ctx, models.WorkoutTemplate{Name: "Upper", Exercises: exercises(models.MuscleChest)})
	if err != nil || tpl.ID == "" {
		t.Fatalf("SaveTemplate = %+v, %v", tpl, err)
	}
	tpl.Name = "Upper v2"
	if _, err := m.SaveTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}
	list := m.ListTemplates(ctx)
	if len(list) != 1 || list[0].Name != "Upper v2" {
		t.Errorf("templates = %+v, want one Upper v2", list)
	}

	s, err := m.StartTemplate(ctx, tpl.ID)
	if err != nil || s == nil || s.Name != "Upper v2" {
		t.Fatalf("StartTemplate = %+v, %v", s, err)
	}

	if ok, _ := m.DeleteTemplate(ctx, "nope"); ok {
		t.Error("DeleteTemplate(nope) = true")
	}
	if ok, _ := m.DeleteTemplate(ctx, tpl.ID); !ok {
		t.Error("DeleteTemplate = false")
	}
	if list := m.ListTemplates(ctx); len(list) != 0 {
		t.Errorf("templates after delete = %+v", list)
	}
}

// TestFirstWorkoutUnlocksAchievement runs the first-workout scenario against
// the real progression manager.
func TestFirstWorkoutUnlocksAchievement(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewStore(kv.NewMemory(), log)
	cat := testCatalog(t)
	pm := progress.New(store, cat, log)
	pm.SetClock(func() time.Time { return fixedNow })
	sm := New(store, cat, pm, log)
	sm.SetClock(func() time.Time { return fixedNow })
	ctx := context.Background()

	if err := pm.SaveProfile(ctx, models.Profile{Name: "x", OnboardingComplete: true}); err != nil {
		t.Fatal(err)
	}
	if got, _ := pm.CheckAndUnlockAchievements(ctx); len(got) != 0 {
		t.Fatalf("empty history unlocked %v", got)
	}
	if err := sm.SaveWorkoutSession(ctx, models.WorkoutSession{Name: "A", Exercises: exercises(models.MuscleChest, models.MuscleLegs)}); err != nil {
		t.Fatal(err)
	}
	got, _ := pm.CheckAndUnlockAchievements(ctx)
	if !slices.Equal(got, []string{"Batismo de Fogo"}) {
		t.Errorf("unlocked %v, want [Batismo de Fogo]", got)
	}
	if got, _ := pm.CheckAndUnlockAchievements(ctx); len(got) != 0 {
		t.Errorf("repeat check unlocked %v", got)
	}
	if p := pm.GetProfile(ctx); p.XP != 240+500 || p.Coins != 120+250 {
		t.Errorf("profile xp %d coins %d, want 740/370", p.XP, p.Coins)
	}
}
