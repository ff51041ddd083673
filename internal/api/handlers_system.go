package api

import (
	"errors"
	"net/http"

	"github.com/micro-nova/deskprofile/internal/maintenance"
	"github.com/micro-nova/deskprofile/internal/models"
)

func (h *Handlers) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sys.Info())
}

// createBackup triggers an immediate profiles backup and returns the file path.
func (h *Handlers) createBackup(w http.ResponseWriter, r *http.Request) {
	file, err := h.sys.Backup()
	if errors.Is(err, maintenance.ErrNothingToBackup) {
		writeError(w, models.ErrConflict(err.Error()))
		return
	}
	if err != nil {
		writeError(w, models.ErrInternal("backup: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file": file,
	})
}

func (h *Handlers) listBackups(w http.ResponseWriter, r *http.Request) {
	files, err := h.sys.Backups()
	if err != nil {
		writeError(w, models.ErrInternal("list backups: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, files)
}
