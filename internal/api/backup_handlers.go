package api

import (
	"io"
	"net/http"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
)

func (s *Server) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	name, err := s.BackupService.Create(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, map[string]any{"name": name})
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	names, err := s.BackupService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"backups": names})
}

// handleRestore restores from a named backup, or from the latest one when no
// name is supplied.
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil && err != io.EOF {
		log.Warn("invalid restore payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	var err error
	if req.Name == "" {
		err = s.BackupService.RestoreLatest(r.Context())
	} else {
		err = s.BackupService.Restore(r.Context(), req.Name)
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
