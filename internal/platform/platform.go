// Package platform hides the per-OS ways of reading and changing the
// display layout and audio routing behind two small interfaces. The
// variant for the running OS is chosen once at startup by New.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/models"
)

// DisplayController enumerates monitors and applies a stored layout.
type DisplayController interface {
	// Displays returns the connected monitors in OS enumeration order.
	Displays(ctx context.Context) ([]models.DisplayInfo, error)

	// ApplyDisplays makes the live layout match displays. Warnings name
	// steps the platform cannot perform; err means a requested step failed.
	ApplyDisplays(ctx context.Context, displays []models.DisplayInfo) (warnings []string, err error)
}

// AudioController enumerates audio endpoints and applies audio settings.
type AudioController interface {
	// AudioDevices returns the known endpoints. A missing helper falls back
	// to synthetic devices instead of failing.
	AudioDevices(ctx context.Context) ([]models.AudioDevice, error)

	// ApplyAudio switches devices and volumes. Same warning/error contract
	// as ApplyDisplays.
	ApplyAudio(ctx context.Context, settings models.AudioSettings) (warnings []string, err error)
}

// New returns the controllers for goos (normally runtime.GOOS).
func New(goos string, runner helper.Runner, helpers config.Helpers) (DisplayController, AudioController) {
	switch goos {
	case "darwin":
		return &Displayplacer{Runner: runner, Bin: helpers.Displayplacer, Enumerate: nativeDisplays},
			&SwitchAudio{Runner: runner, Bin: helpers.SwitchAudioSource, Osascript: helpers.Osascript}
	case "windows":
		return &NativeDisplays{
				Enumerate:   nativeDisplays,
				Unsupported: "display layout changes are not supported on windows",
			},
			&WindowsAudio{Runner: runner, Nircmd: helpers.Nircmd, PowerShell: helpers.PowerShell}
	default:
		return &NativeDisplays{Enumerate: nativeDisplays}, StaticAudio{}
	}
}

// NewForHost is New for the running OS.
func NewForHost(runner helper.Runner, helpers config.Helpers) (DisplayController, AudioController) {
	slog.Debug("platform: selecting controllers", "os", runtime.GOOS)
	return New(runtime.GOOS, runner, helpers)
}

// helperError adds the operation and an install hint to a runner error.
func helperError(op, bin string, err error) error {
	if errors.Is(err, helper.ErrNotInstalled) {
		return fmt.Errorf("%s: %s could not be started, make sure it is installed: %w", op, bin, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsHelperFailure reports whether err came from a helper that was missing
// or exited non-zero.
func IsHelperFailure(err error) bool {
	var exitErr *helper.ExitError
	return errors.Is(err, helper.ErrNotInstalled) || errors.As(err, &exitErr)
}
