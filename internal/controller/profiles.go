package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/micro-nova/deskprofile/internal/models"
)

// Profiles reloads the collection from the store and returns a copy.
func (c *Controller) Profiles() ([]models.Profile, *models.AppError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	profiles, err := c.store.Load()
	if err != nil {
		return nil, toAppError("load profiles", err)
	}
	c.profiles = profiles
	return models.CopyProfiles(c.profiles), nil
}

// GetProfile returns the in-memory profile with the given id.
func (c *Controller) GetProfile(id string) (models.Profile, *models.AppError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := lo.Find(c.profiles, func(p models.Profile) bool { return p.ID == id })
	if !ok {
		return models.Profile{}, models.ErrNotFound(fmt.Sprintf("profile %q not found", id))
	}
	return p.DeepCopy(), nil
}

// SaveProfile replaces the profile with the same id in place, or appends it,
// then persists the whole collection. Memory is only updated once the store
// write succeeded.
func (c *Controller) SaveProfile(_ context.Context, p models.Profile) (models.Profile, *models.AppError) {
	if p.ID == "" {
		return models.Profile{}, models.ErrMissingField("id")
	}
	if p.Displays == nil {
		p.Displays = []models.DisplayInfo{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := models.CopyProfiles(c.profiles)
	_, idx, found := lo.FindIndexOf(next, func(existing models.Profile) bool { return existing.ID == p.ID })
	if found {
		next[idx] = p.DeepCopy()
	} else {
		next = append(next, p.DeepCopy())
	}

	if err := c.store.Save(next); err != nil {
		return models.Profile{}, toAppError("save profiles", err)
	}
	c.profiles = next
	slog.Info("controller: profile saved", "id", p.ID, "name", p.Name, "replaced", found)
	c.publishChanged()
	return p.DeepCopy(), nil
}

// DeleteProfile removes every profile with the given id and persists the
// collection. An unknown id is not an error.
func (c *Controller) DeleteProfile(_ context.Context, id string) *models.AppError {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := lo.Reject(models.CopyProfiles(c.profiles), func(p models.Profile, _ int) bool { return p.ID == id })
	if err := c.store.Save(next); err != nil {
		return toAppError("save profiles", err)
	}
	removed := len(c.profiles) - len(next)
	c.profiles = next
	if removed > 0 {
		slog.Info("controller: profile deleted", "id", id)
		c.publishChanged()
	}
	return nil
}

// ApplyProfile applies the display layout and then the audio settings of
// the profile. There is no rollback: if the audio step fails the display
// layout stays applied.
func (c *Controller) ApplyProfile(ctx context.Context, id string) (models.ApplyResult, *models.AppError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := lo.Find(c.profiles, func(p models.Profile) bool { return p.ID == id })
	if !ok {
		return models.ApplyResult{}, models.ErrNotFound(fmt.Sprintf("profile %q not found", id))
	}

	result := models.ApplyResult{ProfileID: id, Warnings: []string{}}

	warnings, err := c.displays.ApplyDisplays(ctx, p.Displays)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		slog.Error("controller: display apply failed", "id", id, "err", err)
		return result, toAppError("apply displays", err)
	}

	warnings, err = c.audio.ApplyAudio(ctx, p.AudioSettings)
	result.Warnings = append(result.Warnings, warnings...)
	if err != nil {
		slog.Error("controller: audio apply failed", "id", id, "err", err)
		return result, toAppError("apply audio", err)
	}

	slog.Info("controller: profile applied", "id", id, "warnings", len(result.Warnings))
	c.bus.Publish(models.Event{
		Type:      models.EventProfileApplied,
		ProfileID: id,
		Warnings:  result.Warnings,
	})
	return result, nil
}
