// Package api implements the HTTP API for deskprofile.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/micro-nova/deskprofile/internal/models"
)

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	ctrl   Controller
	events EventBus
	sys    System
}

// Controller is the interface the handlers use to reach the profile store
// and the platform.
type Controller interface {
	Displays(ctx context.Context) ([]models.DisplayInfo, *models.AppError)
	AudioDevices(ctx context.Context) ([]models.AudioDevice, *models.AppError)
	Profiles() ([]models.Profile, *models.AppError)
	GetProfile(id string) (models.Profile, *models.AppError)
	SaveProfile(ctx context.Context, p models.Profile) (models.Profile, *models.AppError)
	DeleteProfile(ctx context.Context, id string) *models.AppError
	ApplyProfile(ctx context.Context, id string) (models.ApplyResult, *models.AppError)
}

// EventBus is the interface for subscribing to change events.
type EventBus interface {
	Subscribe(id string) <-chan models.Event
	Unsubscribe(id string)
}

// System provides host information and on-demand backups.
type System interface {
	Info() models.Info
	Backup() (string, error)
	Backups() ([]string, error)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response. Other errors become
// INTERNAL.
func writeError(w http.ResponseWriter, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.ErrInternal(err.Error())
	}
	writeJSON(w, appErr.Status, appErr)
}

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched when allowEmpty is set.
func decodeBody(r *http.Request, v interface{}, allowEmpty bool) *models.AppError {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return models.ErrBadRequest("invalid JSON: " + err.Error())
}
