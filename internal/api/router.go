package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/micro-nova/deskprofile/internal/auth"
	"github.com/micro-nova/deskprofile/internal/models"
)

// NewRouter creates and returns the main HTTP router.
func NewRouter(ctrl Controller, authSvc *auth.Service, bus EventBus, sys System) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(middleware.CleanPath)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, models.ErrNotFound("no route for "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, &models.AppError{
			Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed on " + r.URL.Path,
		})
	})

	h := &Handlers{ctrl: ctrl, events: bus, sys: sys}

	r.Group(func(r chi.Router) {
		r.Use(authSvc.Middleware)

		// Platform
		r.Get("/api/displays", h.getDisplays)
		r.Get("/api/audio/devices", h.getAudioDevices)

		// Profiles
		r.Get("/api/profiles", h.getProfiles)
		r.Post("/api/profiles", h.saveProfile)
		r.Get("/api/profiles/{id}", h.getProfile)
		r.Delete("/api/profiles/{id}", h.deleteProfile)
		r.Post("/api/profiles/{id}/apply", h.applyProfile)

		// RPC-style calls used by the desktop shell
		r.Post("/api/invoke/{command}", h.invoke)

		// System
		r.Get("/api/info", h.getInfo)
		r.Post("/api/backup", h.createBackup)
		r.Get("/api/backups", h.listBackups)

		// SSE
		r.Get("/api/subscribe", h.sseEvents)
	})

	return r
}

// corsMiddleware adds permissive CORS headers so a local web UI on another
// port can call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
