package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/fitquest/internal/models"
)

func (s *Server) handleNutrition(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.app.Journal.GetDailyNutrition(r.Context(), date))
}

func (s *Server) handleNutritionTotals(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.app.Journal.DailyTotals(r.Context(), date))
}

func (s *Server) handleAddMeal(w http.ResponseWriter, r *http.Request) {
	var item models.MealItem
	if !decodeBody(w, r, &item) {
		return
	}
	if item.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	saved, err := s.app.Journal.AddMealItem(r.Context(), item)
	if err != nil {
		s.serverError(w, "add meal item", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleRemoveMeal(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ok, err := s.app.Journal.RemoveMealItem(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		s.serverError(w, "remove meal item", err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "meal item not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) handleBarcode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, s.app.Journal.ScanBarcode(body.Code))
}

func (s *Server) handleSetLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Journal.GetSetLogs(r.Context(), r.URL.Query().Get("exercise")))
}

func (s *Server) handleSaveSet(w http.ResponseWriter, r *http.Request) {
	var l models.ExerciseSetLog
	if !decodeBody(w, r, &l) {
		return
	}
	if l.ExerciseID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exerciseId is required"})
		return
	}
	unlocked, err := s.app.LogSet(r.Context(), l)
	if err != nil {
		s.serverError(w, "save set result", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "unlocked": unlocked})
}

func (s *Server) handleHabits(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.app.Journal.GetHabits(r.Context(), date))
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	done, err := s.app.Journal.ToggleHabit(r.Context(), date, chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "toggle habit", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "done": done})
}

func (s *Server) handleRituals(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.app.Journal.GetRituals(r.Context(), date))
}

func (s *Server) handleCompleteRitual(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ok, err := s.app.Journal.CompleteRitual(r.Context(), date, chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "complete ritual", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "ok": ok})
}
