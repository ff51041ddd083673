package config

import (
	"sync"

	"github.com/micro-nova/deskprofile/internal/models"
)

// MemStore is an in-memory Store for tests that never writes to disk.
type MemStore struct {
	mu       sync.Mutex
	profiles []models.Profile
	saves    int
	failSave error
	failLoad error
}

// NewMemStore returns a new, empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns a copy of the stored profiles.
func (m *MemStore) Load() ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad != nil {
		return nil, m.failLoad
	}
	return models.CopyProfiles(m.profiles), nil
}

// Save stores a deep copy of the given profiles in memory.
func (m *MemStore) Save(profiles []models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.profiles = models.CopyProfiles(profiles)
	m.saves++
	return nil
}

// Path returns ":memory:" to indicate this is an in-memory store.
func (m *MemStore) Path() string { return ":memory:" }

// Saves returns how many successful Save calls the store has seen.
func (m *MemStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetFailSave makes every subsequent Save return err (nil clears it).
func (m *MemStore) SetFailSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = err
}

// SetFailLoad makes every subsequent Load return err (nil clears it).
func (m *MemStore) SetFailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = err
}

// Ensure MemStore implements config.Store
var _ Store = (*MemStore)(nil)
