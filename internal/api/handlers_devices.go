package api

import "net/http"

func (h *Handlers) getDisplays(w http.ResponseWriter, r *http.Request) {
	displays, appErr := h.ctrl.Displays(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, displays)
}

func (h *Handlers) getAudioDevices(w http.ResponseWriter, r *http.Request) {
	devices, appErr := h.ctrl.AudioDevices(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, devices)
}
