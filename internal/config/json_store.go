package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/micro-nova/deskprofile/internal/models"
)

// ProfilesFileName is the name of the profile file inside the data directory.
const ProfilesFileName = "profiles.json"

// JSONStore keeps the profile collection in a single pretty-printed JSON
// array. Every Save rewrites the whole file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a new JSON store in the given data directory.
func NewJSONStore(dataDir string) *JSONStore {
	return &JSONStore{
		path: filepath.Join(dataDir, ProfilesFileName),
	}
}

// Path returns the file path used by this store.
func (s *JSONStore) Path() string { return s.path }

// Load reads the profiles from disk. A missing file is an empty collection.
func (s *JSONStore) Load() ([]models.Profile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Profile{}, nil
		}
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var profiles []models.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	normalizeProfiles(profiles)
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

// Save writes the full collection, creating the data directory if needed.
func (s *JSONStore) Save(profiles []models.Profile) error {
	if profiles == nil {
		profiles = []models.Profile{}
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	// Write to temp file, then rename so readers never see a torn file
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write profiles file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("write profiles file: %w", err)
	}
	return nil
}

// Ensure JSONStore implements config.Store
var _ Store = (*JSONStore)(nil)
