package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/fitquest/internal/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := s.app.Progress.GetProfile(r.Context())
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile, onboarding not completed"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if !decodeBody(w, r, &p) {
		return
	}
	if err := s.app.Progress.SaveProfile(r.Context(), p); err != nil {
		s.serverError(w, "save profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount int `json:"amount"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount must be positive"})
		return
	}
	if err := s.app.Progress.AddXP(r.Context(), body.Amount); err != nil {
		s.serverError(w, "add xp", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": s.app.Progress.GetProfile(r.Context())})
}

func (s *Server) handleLevelProgress(w http.ResponseWriter, r *http.Request) {
	lp, ok := s.app.Progress.LevelProgress(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile, onboarding not completed"})
		return
	}
	writeJSON(w, http.StatusOK, lp)
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Progress.GetAchievements(r.Context()))
}

func (s *Server) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	titles, err := s.app.Progress.CheckAndUnlockAchievements(r.Context())
	if err != nil {
		s.serverError(w, "check achievements", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unlocked": titles})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Progress.GetInventory(r.Context()))
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	ok, err := s.app.Progress.BuyItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "buy item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "profile": s.app.Progress.GetProfile(r.Context())})
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	ok, err := s.app.Progress.EquipItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "equip item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "profile": s.app.Progress.GetProfile(r.Context())})
}
