package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user's config root.
const AppDirName = "deskprofile"

// DefaultDataDir returns the platform-standard per-user data directory:
// ~/Library/Application Support/deskprofile on macOS, %AppData%\deskprofile
// on Windows and $XDG_CONFIG_HOME/deskprofile elsewhere.
func DefaultDataDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(root, AppDirName), nil
}

// ResolveDataDir returns override if set, else DefaultDataDir, and makes
// sure the directory exists.
func ResolveDataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		var err error
		dir, err = DefaultDataDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return dir, nil
}
