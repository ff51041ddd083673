// Package maintenance keeps dated copies of profiles.json and prunes old
// ones.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/micro-nova/deskprofile/internal/config"
)

const (
	backupDirName = "backups"
	backupPrefix  = "profiles-"
	backupSuffix  = ".json"
	backupHour    = 2
)

// ErrNothingToBackup is returned when profiles.json does not exist yet.
var ErrNothingToBackup = errors.New("no profiles file to back up")

// Service runs the daily backup.
type Service struct {
	dataDir string
	keep    time.Duration
	now     func() time.Time
}

// New creates a Service for dataDir keeping backups for keepDays days.
func New(dataDir string, keepDays int) *Service {
	if keepDays <= 0 {
		keepDays = 30
	}
	return &Service{
		dataDir: dataDir,
		keep:    time.Duration(keepDays) * 24 * time.Hour,
		now:     time.Now,
	}
}

// BackupDir returns the directory backups are written to.
func (s *Service) BackupDir() string {
	return filepath.Join(s.dataDir, backupDirName)
}

// Start runs the daily backup at 2am until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	for {
		now := s.now()
		next := time.Date(now.Year(), now.Month(), now.Day(), backupHour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
			path, err := s.RunBackupNow()
			switch {
			case errors.Is(err, ErrNothingToBackup):
				slog.Debug("maintenance: no profiles yet, backup skipped")
			case err != nil:
				slog.Error("maintenance: backup failed", "err", err)
			default:
				slog.Info("maintenance: backup created", "file", path)
			}
		}
	}
}

// RunBackupNow copies profiles.json to backups/profiles-YYYY-MM-DD.json,
// replacing a backup from the same day, then prunes old backups.
func (s *Service) RunBackupNow() (string, error) {
	src := filepath.Join(s.dataDir, config.ProfilesFileName)
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNothingToBackup
		}
		return "", fmt.Errorf("read profiles: %w", err)
	}

	dir := s.BackupDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dest := filepath.Join(dir, backupPrefix+s.now().Format("2006-01-02")+backupSuffix)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename backup: %w", err)
	}

	s.pruneOldBackups()
	return dest, nil
}

// ListBackups returns the backup files sorted by name (newest last).
func (s *Service) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.BackupDir())
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, e := range entries {
		if isBackup(e) {
			files = append(files, filepath.Join(s.BackupDir(), e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// pruneOldBackups deletes backups whose modification time is older than
// the retention period.
func (s *Service) pruneOldBackups() {
	entries, err := os.ReadDir(s.BackupDir())
	if err != nil {
		return
	}

	cutoff := s.now().Add(-s.keep)
	for _, e := range entries {
		if !isBackup(e) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.BackupDir(), e.Name())
			if err := os.Remove(path); err != nil {
				slog.Warn("maintenance: failed to prune old backup", "file", path, "err", err)
			} else {
				slog.Info("maintenance: pruned old backup", "file", path)
			}
		}
	}
}

func isBackup(e os.DirEntry) bool {
	return !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), backupSuffix)
}
