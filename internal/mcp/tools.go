package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/progress"
)

// defaultTimeRange returns start/end defaulting to the last 7 days. A
// date-only end covers that whole day.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if _, derr := time.Parse(time.DateOnly, endStr); derr == nil {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// sessionsBetween keeps sessions created in [start, end].
func sessionsBetween(history []models.WorkoutSession, start, end time.Time) []models.WorkoutSession {
	out := []models.WorkoutSession{}
	for _, s := range history {
		if s.DateCreated.Before(start) || s.DateCreated.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// --- Tool definitions ---

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Get the athlete profile (goal, experience, equipment, injuries) with XP, coins and progress toward the next level."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("List completed workouts with their exercises, duration and calories burned."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Totals over the whole history: workouts, active days, minutes, calories, current streak and workouts in the last 7 days."),
)

var toolGetMuscleVolume = mcp.NewTool("get_muscle_volume",
	mcp.WithDescription("Sets per muscle group over the last 7 days. Every muscle group is listed, untrained ones with 0."),
)

var toolGetProgramStatus = mcp.NewTool("get_program_status",
	mcp.WithDescription("Current day and completed days of the training program."),
)

var toolGetNutrition = mcp.NewTool("get_nutrition",
	mcp.WithDescription("Meal items logged for a day plus calorie and macro totals."),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD. Defaults to today.")),
)

var toolGetSetLogs = mcp.NewTool("get_set_logs",
	mcp.WithDescription("Logged sets (reps and weight) for one exercise, oldest first."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise id (e.g. squat, pushup)")),
)

var toolGetAchievements = mcp.NewTool("get_achievements",
	mcp.WithDescription("Unlocked achievements with unlock time, and the ones still locked."),
)

// --- Tool handlers ---

func (h *handlers) getProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := h.ds.GetProfile(ctx)
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if p == nil {
		return mcp.NewToolResultError("no profile: onboarding not completed"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"profile":  p,
		"progress": progress.ProgressFor(p.XP),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	history, err := h.ds.GetHistory(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessionsBetween(history, start, end))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(st)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleVolume(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mv, err := h.ds.GetMuscleVolume(ctx)
	if err != nil {
		h.log.Error("mcp get_muscle_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(mv)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgramStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ds.GetProgramStatus(ctx)
	if err != nil {
		h.log.Error("mcp get_program_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(st)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getNutrition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := req.GetString("date", "")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	log, err := h.ds.GetNutrition(ctx, date)
	if err != nil {
		h.log.Error("mcp get_nutrition", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	totals, err := h.ds.GetNutritionTotals(ctx, date)
	if err != nil {
		h.log.Error("mcp get_nutrition totals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"log":    log,
		"totals": totals,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSetLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	logs, err := h.ds.GetSetLogs(ctx, exercise)
	if err != nil {
		h.log.Error("mcp get_set_logs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

type achievementView struct {
	progress.Achievement
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

func (h *handlers) getAchievements(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	owned, err := h.ds.GetAchievements(ctx)
	if err != nil {
		h.log.Error("mcp get_achievements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	unlockedAt := make(map[string]time.Time, len(owned))
	for _, ua := range owned {
		unlockedAt[ua.ID] = ua.UnlockedAt
	}

	unlocked := []achievementView{}
	locked := []achievementView{}
	for _, a := range progress.Achievements {
		if at, ok := unlockedAt[a.ID]; ok {
			unlocked = append(unlocked, achievementView{Achievement: a, UnlockedAt: &at})
			continue
		}
		locked = append(locked, achievementView{Achievement: a})
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"unlocked": unlocked,
		"locked":   locked,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
