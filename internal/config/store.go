// Package config handles persisting profiles, loading settings and locating
// the per-user data directory.
package config

import "github.com/micro-nova/deskprofile/internal/models"

// Store is the interface for persisting the profile collection.
type Store interface {
	// Load reads the stored profiles. Returns an empty list if nothing has
	// been saved yet; malformed content is an error.
	Load() ([]models.Profile, error)

	// Save replaces the stored collection with profiles.
	Save(profiles []models.Profile) error

	// Path returns the file path used by this store.
	Path() string
}
