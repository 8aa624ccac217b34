package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/fitquest/internal/app"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app    *app.App
	log    *slog.Logger
	apiKey string
	whois  WhoIser
	mcp    http.Handler
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the backup and reset endpoints open.
func New(a *app.App, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		app:    a,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale resolves request identities through the tailnet.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// SetMCP mounts an MCP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.mcp = h
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Handle("/mcp", http.HandlerFunc(s.serveMCP))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(SingleWriter(s.app.Writer()))

		r.Get("/me", s.handleMe)

		r.Get("/catalog/exercises", s.handleExercises)
		r.Get("/catalog/exercises/{id}", s.handleExercise)
		r.Get("/catalog/store", s.handleStoreItems)
		r.Get("/catalog/programs", s.handlePrograms)
		r.Get("/catalog/achievements", s.handleAchievementCatalog)

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleSaveProfile)
		r.Post("/profile/xp", s.handleAddXP)
		r.Get("/progress", s.handleLevelProgress)

		r.Get("/achievements", s.handleAchievements)
		r.Post("/achievements/check", s.handleCheckAchievements)

		r.Get("/inventory", s.handleInventory)
		r.Post("/store/{id}/buy", s.handleBuy)
		r.Post("/store/{id}/equip", s.handleEquip)

		r.Get("/workouts/current", s.handleGetCurrent)
		r.Put("/workouts/current", s.handleSaveCurrent)
		r.Delete("/workouts/current", s.handleClearCurrent)
		r.Post("/workouts/current/finish", s.handleFinish)
		r.Post("/workouts/generate", s.handleGenerate)
		r.Get("/workouts/history", s.handleHistory)
		r.Post("/workouts/history", s.handleSaveSession)
		r.Get("/workouts/stats", s.handleStats)
		r.Get("/workouts/muscle-volume", s.handleMuscleVolume)

		r.Get("/templates", s.handleTemplates)
		r.Post("/templates", s.handleSaveTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)
		r.Post("/templates/{id}/start", s.handleStartTemplate)

		r.Get("/program", s.handleProgramStatus)
		r.Post("/program/complete", s.handleCompleteDay)
		r.Post("/program/{id}/start", s.handleStartProgram)

		r.Get("/nutrition", s.handleNutrition)
		r.Get("/nutrition/totals", s.handleNutritionTotals)
		r.Post("/nutrition/items", s.handleAddMeal)
		r.Delete("/nutrition/items/{id}", s.handleRemoveMeal)
		r.Post("/nutrition/barcode", s.handleBarcode)

		r.Get("/sets", s.handleSetLogs)
		r.Post("/sets", s.handleSaveSet)

		r.Get("/habits", s.handleHabits)
		r.Post("/habits/{id}/toggle", s.handleToggleHabit)
		r.Get("/rituals", s.handleRituals)
		r.Post("/rituals/{id}/complete", s.handleCompleteRitual)

		// Whole-store operations (API key required when configured)
		r.Group(func(r chi.Router) {
			if s.apiKey != "" {
				r.Use(APIKeyAuth(s.apiKey))
			}
			r.Get("/backup/export", s.handleExport)
			r.Post("/backup/import", s.handleImport)
			r.Post("/reset", s.handleReset)
		})
	})
}

func (s *Server) serveMCP(w http.ResponseWriter, r *http.Request) {
	if s.mcp == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "mcp not enabled"})
		return
	}
	s.mcp.ServeHTTP(w, r)
}

// SetFrontend mounts the SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
