package server

import (
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/fitquest/internal/models"
)

func (s *Server) handleGetCurrent(w http.ResponseWriter, r *http.Request) {
	cur := s.app.Sessions.GetCurrentWorkout(r.Context())
	if cur == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no current workout"})
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleSaveCurrent(w http.ResponseWriter, r *http.Request) {
	var sess models.WorkoutSession
	if !decodeBody(w, r, &sess) {
		return
	}
	if err := s.app.Sessions.SaveCurrentWorkout(r.Context(), &sess); err != nil {
		s.serverError(w, "save current workout", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleClearCurrent(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Sessions.SaveCurrentWorkout(r.Context(), nil); err != nil {
		s.serverError(w, "clear current workout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CaloriesBurned int `json:"caloriesBurned"`
		DurationTaken  int `json:"durationTaken"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	res, err := s.app.FinishWorkout(r.Context(), body.CaloriesBurned, body.DurationTaken)
	if err != nil {
		s.serverError(w, "finish workout", err)
		return
	}
	if res.Session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no current workout"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGenerate builds a workout for the profile and puts it in the
// current slot. An optional "seed" query parameter makes it repeatable.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	p := s.app.Progress.GetProfile(r.Context())
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no profile, onboarding not completed"})
		return
	}

	seed := uint64(time.Now().UnixNano())
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "seed must be an unsigned integer"})
			return
		}
		seed = parsed
	}

	sess := s.app.Sessions.GenerateWorkout(*p, rand.New(rand.NewPCG(seed, seed)))
	if len(sess.Exercises) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no exercises match the profile"})
		return
	}
	if err := s.app.Sessions.SaveCurrentWorkout(r.Context(), &sess); err != nil {
		s.serverError(w, "save generated workout", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sessions.GetHistory(r.Context()))
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var sess models.WorkoutSession
	if !decodeBody(w, r, &sess) {
		return
	}
	if err := s.app.Sessions.SaveWorkoutSession(r.Context(), sess); err != nil {
		s.serverError(w, "save workout session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile": s.app.Progress.GetProfile(r.Context()),
		"program": s.app.Sessions.GetProgramStatus(r.Context()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sessions.GetStats(r.Context()))
}

func (s *Server) handleMuscleVolume(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sessions.GetMuscleVolumeStats(r.Context()))
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sessions.ListTemplates(r.Context()))
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.WorkoutTemplate
	if !decodeBody(w, r, &t) {
		return
	}
	if t.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	saved, err := s.app.Sessions.SaveTemplate(r.Context(), t)
	if err != nil {
		s.serverError(w, "save template", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	ok, err := s.app.Sessions.DeleteTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "delete template", err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleStartTemplate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.app.Sessions.StartTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "start template", err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleProgramStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Sessions.GetProgramStatus(r.Context()))
}

func (s *Server) handleCompleteDay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Day int `json:"day"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	ok, err := s.app.Sessions.CompleteProgramDay(r.Context(), body.Day)
	if err != nil {
		s.serverError(w, "complete program day", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": ok, "status": s.app.Sessions.GetProgramStatus(r.Context())})
}

func (s *Server) handleStartProgram(w http.ResponseWriter, r *http.Request) {
	sess, err := s.app.Sessions.StartProgramDay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, "start program day", err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found or already finished"})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
