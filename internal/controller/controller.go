// Package controller owns the profile collection and dispatches apply
// requests to the platform controllers. Every operation holds one mutex
// for its whole duration, including helper processes started by apply.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/events"
	"github.com/micro-nova/deskprofile/internal/models"
	"github.com/micro-nova/deskprofile/internal/platform"
)

// Controller is the profile store plus apply dispatch.
type Controller struct {
	mu       sync.Mutex
	profiles []models.Profile
	store    config.Store
	displays platform.DisplayController
	audio    platform.AudioController
	bus      *events.Bus
}

// New creates a Controller and loads the stored profiles. A failed load is
// logged and the controller starts with an empty collection; the next
// successful save overwrites the file. bus may be nil.
func New(store config.Store, displays platform.DisplayController, audio platform.AudioController, bus *events.Bus) *Controller {
	c := &Controller{
		profiles: []models.Profile{},
		store:    store,
		displays: displays,
		audio:    audio,
		bus:      bus,
	}

	profiles, err := store.Load()
	if err != nil {
		slog.Error("controller: initial profile load failed, starting empty", "path", store.Path(), "err", err)
		return c
	}
	c.profiles = profiles
	slog.Info("controller: profiles loaded", "path", store.Path(), "count", len(profiles))
	return c
}

// Reload re-reads the store and publishes profiles_changed if the
// collection differs from memory. Used by the file watcher.
func (c *Controller) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	profiles, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("reload profiles: %w", err)
	}
	if reflect.DeepEqual(profiles, c.profiles) {
		return nil
	}
	c.profiles = profiles
	slog.Info("controller: profiles reloaded", "count", len(profiles))
	c.publishChanged()
	return nil
}

// publishChanged must be called with c.mu held.
func (c *Controller) publishChanged() {
	c.bus.Publish(models.Event{
		Type:     models.EventProfilesChanged,
		Profiles: models.CopyProfiles(c.profiles),
	})
}

// toAppError maps a platform or store error to the API error taxonomy.
func toAppError(op string, err error) *models.AppError {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	msg := fmt.Sprintf("%s: %v", op, err)
	if platform.IsHelperFailure(err) {
		return models.ErrHelperFailed(msg)
	}
	return models.ErrInternal(msg)
}
