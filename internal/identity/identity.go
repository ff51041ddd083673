// Package identity reports what host deskprofile runs on and which helper
// binaries it can find.
package identity

import (
	"os"
	"os/exec"
	"runtime"
	"runtime/debug"

	"github.com/samber/lo"

	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/models"
)

// DefaultVersion is reported when no version was stamped at build time and
// the build info carries none.
const DefaultVersion = "0.1.0-dev"

// Version is set with -ldflags "-X .../identity.Version=...".
var Version = ""

// lookPath is a variable so tests can fake PATH lookups.
var lookPath = exec.LookPath

// GetHostname returns the system hostname.
func GetHostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return h
}

// GetVersion returns the stamped version, else the module version from the
// build info, else DefaultVersion.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return DefaultVersion
}

// HelpersFor returns the helper names relevant on goos.
func HelpersFor(goos string, h config.Helpers) []string {
	switch goos {
	case "darwin":
		return []string{h.Displayplacer, h.SwitchAudioSource, h.Osascript}
	case "windows":
		return []string{h.Nircmd, h.PowerShell}
	default:
		return nil
	}
}

// HelperStatuses resolves each helper on PATH.
func HelperStatuses(names []string) []models.HelperStatus {
	return lo.Map(names, func(name string, _ int) models.HelperStatus {
		path, err := lookPath(name)
		if err != nil {
			return models.HelperStatus{Name: name}
		}
		return models.HelperStatus{Name: name, Path: path, Available: true}
	})
}

// Collect builds the info response for the running host.
func Collect(dataDir string, helpers config.Helpers) models.Info {
	return models.Info{
		Hostname: GetHostname(),
		Version:  GetVersion(),
		OS:       runtime.GOOS + "/" + runtime.GOARCH,
		DataDir:  dataDir,
		Helpers:  HelperStatuses(HelpersFor(runtime.GOOS, helpers)),
	}
}
