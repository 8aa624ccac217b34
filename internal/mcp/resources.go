package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/fitquest/internal/progress"
)

func (h *handlers) progressSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	p, err := h.ds.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Warn("progress_summary: stats failed", "error", err)
	}

	program, err := h.ds.GetProgramStatus(ctx)
	if err != nil {
		h.log.Warn("progress_summary: program status failed", "error", err)
	}

	summary := map[string]any{
		"profile": p,
		"stats":   stats,
		"program": program,
	}
	if p != nil {
		summary["progress"] = progress.ProgressFor(p.XP)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	history, err := h.ds.GetHistory(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(sessionsBetween(history, start, end))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
