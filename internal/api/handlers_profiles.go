package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/micro-nova/deskprofile/internal/models"
)

func (h *Handlers) getProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, appErr := h.ctrl.Profiles()
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	p, appErr := h.ctrl.GetProfile(chi.URLParam(r, "id"))
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// saveProfile upserts by id.
func (h *Handlers) saveProfile(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if appErr := decodeBody(r, &p, false); appErr != nil {
		writeError(w, appErr)
		return
	}
	saved, appErr := h.ctrl.SaveProfile(r.Context(), p)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if appErr := h.ctrl.DeleteProfile(r.Context(), chi.URLParam(r, "id")); appErr != nil {
		writeError(w, appErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) applyProfile(w http.ResponseWriter, r *http.Request) {
	result, appErr := h.ctrl.ApplyProfile(r.Context(), chi.URLParam(r, "id"))
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
