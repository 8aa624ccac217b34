package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/fitquest/internal/kv"
	"github.com/meltforce/fitquest/internal/models"
	"github.com/meltforce/fitquest/internal/progress"
)

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("muscle_group")
	all := s.app.Catalog.Exercises()
	if group == "" {
		writeJSON(w, http.StatusOK, all)
		return
	}
	out := all[:0]
	for _, ex := range all {
		if string(ex.MuscleGroup) == group {
			out = append(out, ex)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	ex, ok := s.app.Catalog.Exercise(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

type storeItemView struct {
	models.StoreItem
	Owned bool `json:"owned"`
}

func (s *Server) handleStoreItems(w http.ResponseWriter, r *http.Request) {
	items := s.app.Catalog.StoreItems()
	out := make([]storeItemView, 0, len(items))
	for _, it := range items {
		out = append(out, storeItemView{StoreItem: it, Owned: s.app.Progress.Owns(r.Context(), it.ID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Catalog.Programs())
}

func (s *Server) handleAchievementCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.Achievements)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// serverError logs err and answers 500.
func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op+" failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// dateParam reads the "date" query parameter (YYYY-MM-DD), defaulting to today.
func (s *Server) dateParam(r *http.Request) (string, error) {
	d := r.URL.Query().Get("date")
	if d == "" {
		return s.app.Journal.Today(), nil
	}
	if _, err := time.Parse(kv.DateLayout, d); err != nil {
		return "", fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}
