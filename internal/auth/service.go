// Package auth guards the HTTP API with the optional api_key from
// settings.yaml. With no key configured every request is allowed.
package auth

import (
	"crypto/subtle"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/micro-nova/deskprofile/internal/config"
)

// Service holds the current API key and follows edits to the settings file.
type Service struct {
	mu           sync.RWMutex
	settingsPath string
	key          string
	watcher      *fsnotify.Watcher
}

// NewService loads the key from the settings file at settingsPath and
// watches it for changes. A missing file means open mode; a malformed one
// is an error.
func NewService(settingsPath string) (*Service, error) {
	s := &Service{settingsPath: filepath.Clean(settingsPath)}
	if err := s.Reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("auth: could not create fsnotify watcher", "err", err)
		return s, nil
	}
	if err := watcher.Add(filepath.Dir(s.settingsPath)); err != nil {
		slog.Warn("auth: could not watch settings dir", "err", err)
		watcher.Close()
		return s, nil
	}
	s.watcher = watcher

	go s.watchLoop()
	return s, nil
}

// NewStaticService returns a Service with a fixed key and no watcher.
func NewStaticService(key string) *Service {
	return &Service{key: key}
}

// Reload re-reads the API key from the settings file.
func (s *Service) Reload() error {
	settings, err := config.LoadSettings(s.settingsPath)
	if err != nil {
		return err
	}
	s.SetKey(settings.APIKey)
	slog.Debug("auth: reloaded api key", "open", settings.APIKey == "")
	return nil
}

// SetKey replaces the accepted key. An empty key switches to open mode.
func (s *Service) SetKey(key string) {
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
}

// IsOpenMode returns true if no API key is configured.
func (s *Service) IsOpenMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key == ""
}

// VerifyKey reports whether key matches the configured key. Empty keys are
// always rejected. Uses constant-time comparison.
func (s *Service) VerifyKey(key string) bool {
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(s.key)) == 1
}

// Close stops the file watcher.
func (s *Service) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.settingsPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if err := s.Reload(); err != nil {
					slog.Warn("auth: failed to reload settings, keeping previous key", "err", err)
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("auth: watcher error", "err", err)
		}
	}
}
