package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitQuest", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitQuest coaching server. Read the athlete's profile, level progress, workout history, training stats, program status, nutrition and set logs. All tools are read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetMuscleVolume, Handler: h.getMuscleVolume},
		server.ServerTool{Tool: toolGetProgramStatus, Handler: h.getProgramStatus},
		server.ServerTool{Tool: toolGetNutrition, Handler: h.getNutrition},
		server.ServerTool{Tool: toolGetSetLogs, Handler: h.getSetLogs},
		server.ServerTool{Tool: toolGetAchievements, Handler: h.getAchievements},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgressSummary, Handler: h.progressSummary},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgressSummary = mcp.NewResource(
	"fitquest://progress_summary",
	"Progress Summary",
	mcp.WithResourceDescription("Profile, level progress, training stats and program status in one document"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"fitquest://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
