package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/micro-nova/deskprofile/internal/models"
)

// Invoke command names, as used by the desktop shell.
const (
	CmdGetDisplays     = "get_displays"
	CmdGetAudioDevices = "get_audio_devices"
	CmdSaveProfile     = "save_profile"
	CmdGetProfiles     = "get_profiles"
	CmdDeleteProfile   = "delete_profile"
	CmdApplyProfile    = "apply_profile"
)

// invoke dispatches an RPC-style call. The body is the argument object;
// commands without a return value answer with JSON null.
func (h *Handlers) invoke(w http.ResponseWriter, r *http.Request) {
	var args models.InvokeArgs
	if appErr := decodeBody(r, &args, true); appErr != nil {
		writeError(w, appErr)
		return
	}

	var (
		result interface{}
		appErr *models.AppError
	)
	switch cmd := chi.URLParam(r, "command"); cmd {
	case CmdGetDisplays:
		result, appErr = h.ctrl.Displays(r.Context())
	case CmdGetAudioDevices:
		result, appErr = h.ctrl.AudioDevices(r.Context())
	case CmdGetProfiles:
		result, appErr = h.ctrl.Profiles()
	case CmdSaveProfile:
		if args.Profile == nil {
			appErr = models.ErrMissingField("profile")
			break
		}
		_, appErr = h.ctrl.SaveProfile(r.Context(), *args.Profile)
	case CmdDeleteProfile:
		if args.ProfileID == "" {
			appErr = models.ErrMissingField("profile_id")
			break
		}
		appErr = h.ctrl.DeleteProfile(r.Context(), args.ProfileID)
	case CmdApplyProfile:
		if args.ProfileID == "" {
			appErr = models.ErrMissingField("profile_id")
			break
		}
		result, appErr = h.ctrl.ApplyProfile(r.Context(), args.ProfileID)
	default:
		appErr = models.ErrNotFound("unknown command " + cmd)
	}

	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
