package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/session"
)

var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the FitQuest REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s: %w", path, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// getJSON fetches path and decodes the body into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, what string, v any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", what, err)
	}
	return nil
}

func dateParams(date string) url.Values {
	if date == "" {
		return nil
	}
	return url.Values{"date": {date}}
}

// GetProfile returns nil without error when the remote has no profile yet.
func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := c.getJSON(ctx, "/api/v1/profile", nil, "profile", &p)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetHistory(ctx context.Context) ([]models.WorkoutSession, error) {
	var history []models.WorkoutSession
	if err := c.getJSON(ctx, "/api/v1/workouts/history", nil, "history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (session.Stats, error) {
	var st session.Stats
	err := c.getJSON(ctx, "/api/v1/workouts/stats", nil, "stats", &st)
	return st, err
}

func (c *HTTPClient) GetMuscleVolume(ctx context.Context) (map[models.MuscleGroup]int, error) {
	var mv map[models.MuscleGroup]int
	if err := c.getJSON(ctx, "/api/v1/workouts/muscle-volume", nil, "muscle volume", &mv); err != nil {
		return nil, err
	}
	return mv, nil
}

func (c *HTTPClient) GetProgramStatus(ctx context.Context) (models.ProgramStatus, error) {
	var st models.ProgramStatus
	err := c.getJSON(ctx, "/api/v1/program", nil, "program status", &st)
	return st, err
}

func (c *HTTPClient) GetNutrition(ctx context.Context, date string) (models.DailyNutritionLog, error) {
	var log models.DailyNutritionLog
	err := c.getJSON(ctx, "/api/v1/nutrition", dateParams(date), "nutrition", &log)
	return log, err
}

func (c *HTTPClient) GetNutritionTotals(ctx context.Context, date string) (models.NutritionTotals, error) {
	var totals models.NutritionTotals
	err := c.getJSON(ctx, "/api/v1/nutrition/totals", dateParams(date), "nutrition totals", &totals)
	return totals, err
}

func (c *HTTPClient) GetSetLogs(ctx context.Context, exerciseID string) ([]models.ExerciseSetLog, error) {
	var logs []models.ExerciseSetLog
	params := url.Values{"exercise": {exerciseID}}
	if err := c.getJSON(ctx, "/api/v1/sets", params, "set logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (c *HTTPClient) GetAchievements(ctx context.Context) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	if err := c.getJSON(ctx, "/api/v1/achievements", nil, "achievements", &unlocked); err != nil {
		return nil, err
	}
	return unlocked, nil
}
