package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.app.Backup.WriteExport(r.Context(), &buf); err != nil {
		s.serverError(w, "export", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="fitquest-backup-%s.json"`, time.Now().Format("2006-01-02")))
	w.Write(buf.Bytes())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ok, err := s.app.Backup.Import(r.Context(), r.Body)
	if err != nil {
		s.serverError(w, "import", err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "invalid backup document"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Backup.Reset(r.Context()); err != nil {
		s.serverError(w, "reset", err)
		return
	}
	s.log.Warn("all data reset", "by", userInfoFromContext(r).Login)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
