package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/fitquest/internal/app"
	"github.com/meltforce/fitquest/internal/catalog"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
)

var fixedNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestHandlers(t *testing.T) (*handlers, *app.App) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatal(err)
	}
	log := testLogger()
	a := app.New(kv.NewStore(kv.NewMemory(), log), cat, log)
	a.SetClock(func() time.Time { return fixedNow })
	return &handlers{ds: NewLocal(a), log: log}, a
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func callTool(t *testing.T, fn func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := fn(context.Background(), req)
	if err != nil {
		t.Fatalf("tool returned error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("content is %T, want text", res.Content[0])
	return ""
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	var v T
	if err := json.Unmarshal([]byte(resultText(t, res)), &v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return v
}

// TestDefaultTimeRange verifies time range defaults (last 7 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 7 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 167 || diff.Hours() > 169 { // ~168 hours = 7 days
		t.Errorf("default range = %.0f hours, want ~168", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("end = %v, want end of 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestGetProfileTool verifies the tool errors before onboarding and reports
// level progress afterwards.
func TestGetProfileTool(t *testing.T) {
	h, a := newTestHandlers(t)

	if res := callTool(t, h.getProfile, nil); !res.IsError {
		t.Error("expected tool error without a profile")
	}

	if err := a.Progress.SaveProfile(context.Background(), models.Profile{Name: "Ana", XP: 2200}); err != nil {
		t.Fatal(err)
	}
	got := decodeResult[struct {
		Profile  models.Profile `json:"profile"`
		Progress struct {
			Level       int `json:"level"`
			ToNextLevel int `json:"toNextLevel"`
		} `json:"progress"`
	}](t, callTool(t, h.getProfile, nil))

	if got.Profile.Name != "Ana" {
		t.Errorf("name = %q, want Ana", got.Profile.Name)
	}
	if got.Progress.Level != 2 || got.Progress.ToNextLevel != 800 {
		t.Errorf("progress = %+v, want level 2, 800 to next", got.Progress)
	}
}

// TestGetWorkoutHistoryTool verifies the date range filter includes the
// whole end date.
func TestGetWorkoutHistoryTool(t *testing.T) {
	h, a := newTestHandlers(t)
	ctx := context.Background()
	for _, d := range []time.Time{
		time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	} {
		if err := a.Sessions.SaveWorkoutSession(ctx, models.WorkoutSession{Name: d.Format("Jan 2"), DateCreated: d}); err != nil {
			t.Fatal(err)
		}
	}

	got := decodeResult[[]models.WorkoutSession](t, callTool(t, h.getWorkoutHistory, map[string]any{
		"start": "2026-03-01",
		"end":   "2026-03-10",
	}))
	if len(got) != 3 {
		t.Fatalf("got %d sessions, want 3", len(got))
	}
	if got[0].Name != "Mar 5" || got[2].Name != "Mar 10" {
		t.Errorf("range = %q..%q, want Mar 5..Mar 10", got[0].Name, got[2].Name)
	}

	if res := callTool(t, h.getWorkoutHistory, map[string]any{"start": "yesterday"}); !res.IsError {
		t.Error("expected error for invalid start")
	}
}

// TestGetNutritionTool verifies the default date and the totals.
func TestGetNutritionTool(t *testing.T) {
	h, a := newTestHandlers(t)
	if _, err := a.Journal.AddMealItem(context.Background(), models.MealItem{Name: "Ovos", Calories: 150, Protein: 12}); err != nil {
		t.Fatal(err)
	}

	got := decodeResult[struct {
		Log    models.DailyNutritionLog `json:"log"`
		Totals models.NutritionTotals   `json:"totals"`
	}](t, callTool(t, h.getNutrition, nil))

	if got.Log.Date != "2026-03-10" || len(got.Log.Items) != 1 {
		t.Errorf("log = %+v", got.Log)
	}
	if got.Totals.Calories != 150 || got.Totals.Protein != 12 {
		t.Errorf("totals = %+v", got.Totals)
	}

	if res := callTool(t, h.getNutrition, map[string]any{"date": "10/03/2026"}); !res.IsError {
		t.Error("expected error for invalid date")
	}
}

// TestGetSetLogsTool verifies the exercise argument is required and filters.
func TestGetSetLogsTool(t *testing.T) {
	h, a := newTestHandlers(t)
	ctx := context.Background()
	for _, l := range []models.ExerciseSetLog{
		{ExerciseID: "squat", Reps: 10},
		{ExerciseID: "pushup", Reps: 8},
		{ExerciseID: "squat", Reps: 12},
	} {
		if _, err := a.LogSet(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	if res := callTool(t, h.getSetLogs, nil); !res.IsError {
		t.Error("expected error without exercise")
	}
	got := decodeResult[[]models.ExerciseSetLog](t, callTool(t, h.getSetLogs, map[string]any{"exercise": "squat"}))
	if len(got) != 2 || got[1].Reps != 12 {
		t.Errorf("set logs = %+v", got)
	}
}

// TestGetAchievementsTool verifies unlocked and locked achievements are split.
func TestGetAchievementsTool(t *testing.T) {
	h, a := newTestHandlers(t)
	ctx := context.Background()
	if err := a.Progress.SaveProfile(ctx, models.Profile{Name: "Ana"}); err != nil {
		t.Fatal(err)
	}
	if err := a.Sessions.SaveWorkoutSession(ctx, models.WorkoutSession{Name: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Progress.CheckAndUnlockAchievements(ctx); err != nil {
		t.Fatal(err)
	}

	type view struct {
		ID         string     `json:"id"`
		Title      string     `json:"title"`
		UnlockedAt *time.Time `json:"unlockedAt"`
	}
	got := decodeResult[struct {
		Unlocked []view `json:"unlocked"`
		Locked   []view `json:"locked"`
	}](t, callTool(t, h.getAchievements, nil))

	if len(got.Unlocked) != 1 || got.Unlocked[0].ID != "first_blood" || got.Unlocked[0].UnlockedAt == nil {
		t.Errorf("unlocked = %+v", got.Unlocked)
	}
	for _, l := range got.Locked {
		if l.ID == "first_blood" {
			t.Error("first_blood listed as locked")
		}
		if l.UnlockedAt != nil {
			t.Errorf("%s has unlockedAt", l.ID)
		}
	}
}

// TestStatsAndVolumeTools verifies the aggregate tools pass through.
func TestStatsAndVolumeTools(t *testing.T) {
	h, a := newTestHandlers(t)
	ctx := context.Background()
	sess := models.WorkoutSession{
		Name:          "Pernas",
		DurationTaken: 1800,
		Exercises:     []models.Exercise{{ID: "squat", MuscleGroup: models.MuscleLegs, Sets: 4}},
	}
	if err := a.Sessions.SaveWorkoutSession(ctx, sess); err != nil {
		t.Fatal(err)
	}

	st := decodeResult[struct {
		TotalWorkouts int `json:"totalWorkouts"`
		TotalMinutes  int `json:"totalMinutes"`
	}](t, callTool(t, h.getTrainingStats, nil))
	if st.TotalWorkouts != 1 || st.TotalMinutes != 30 {
		t.Errorf("stats = %+v", st)
	}

	mv := decodeResult[map[string]int](t, callTool(t, h.getMuscleVolume, nil))
	if mv["legs"] != 4 || mv["chest"] != 0 {
		t.Errorf("muscle volume = %v", mv)
	}

	ps := decodeResult[models.ProgramStatus](t, callTool(t, h.getProgramStatus, nil))
	if ps.CurrentDay != 1 {
		t.Errorf("currentDay = %d, want 1", ps.CurrentDay)
	}
}

// TestProgressSummaryResource verifies the summary resource document.
func TestProgressSummaryResource(t *testing.T) {
	h, a := newTestHandlers(t)
	if err := a.Progress.SaveProfile(context.Background(), models.Profile{Name: "Ana", XP: 600}); err != nil {
		t.Fatal(err)
	}

	var req mcp.ReadResourceRequest
	req.Params.URI = "fitquest://progress_summary"
	contents, err := h.progressSummary(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents is %T", contents[0])
	}
	if text.URI != req.Params.URI {
		t.Errorf("uri = %q", text.URI)
	}
	if !strings.Contains(text.Text, `"progress"`) || !strings.Contains(text.Text, `"Ana"`) {
		t.Errorf("summary = %s", text.Text)
	}
}

// TestNewRegistersServer verifies the MCP server builds with a data source.
func TestNewRegistersServer(t *testing.T) {
	h, _ := newTestHandlers(t)
	if s := New(h.ds, "test", h.log); s == nil {
		t.Fatal("New returned nil")
	}
}
