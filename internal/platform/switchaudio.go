package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/models"
)

// SwitchAudio lists and switches devices with the SwitchAudioSource CLI and
// sets volumes through osascript (macOS).
type SwitchAudio struct {
	Runner    helper.Runner
	Bin       string
	Osascript string
}

// AudioDevices lists devices with "SwitchAudioSource -a". Each non-blank
// line is one output device whose id and name are the line itself; default
// detection is not implemented. The input placeholder is always appended.
func (s *SwitchAudio) AudioDevices(ctx context.Context) ([]models.AudioDevice, error) {
	var devices []models.AudioDevice

	res, err := s.Runner.Run(ctx, s.Bin, "-a")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("platform: audio device listing unavailable, using default output", "helper", s.Bin, "err", err)
		devices = append(devices, models.SyntheticOutput())
	} else {
		devices = lo.Map(helper.NonBlank(res.Stdout), func(line string, _ int) models.AudioDevice {
			return models.AudioDevice{
				ID:         line,
				Name:       line,
				IsDefault:  false,
				DeviceType: models.DeviceOutput,
			}
		})
	}

	devices = append(devices, models.SyntheticInput())
	return devices, nil
}

// ApplyAudio switches the output device; failure is an error. Input device
// and volumes are best effort and only produce warnings. Volumes are only
// touched for a direction whose device the profile names.
func (s *SwitchAudio) ApplyAudio(ctx context.Context, settings models.AudioSettings) ([]string, error) {
	warnings := placeholderWarnings(settings)

	if out, ok := requestedDevice(settings.OutputDevice, models.DefaultOutputID); ok {
		if _, err := s.Runner.Run(ctx, s.Bin, "-s", out); err != nil {
			return warnings, helperError("set output device", s.Bin, err)
		}
		slog.Info("platform: output device set", "device", out)

		if err := s.setVolume(ctx, "output", settings.OutputVolume); err != nil {
			warnings = append(warnings, fmt.Sprintf("output volume not set: %v", err))
		}
	}

	if in, ok := requestedDevice(settings.InputDevice, models.DefaultInputID); ok {
		if _, err := s.Runner.Run(ctx, s.Bin, "-t", "input", "-s", in); err != nil {
			warnings = append(warnings, fmt.Sprintf("input device %q not set: %v", in, err))
		} else if err := s.setVolume(ctx, "input", settings.InputVolume); err != nil {
			warnings = append(warnings, fmt.Sprintf("input volume not set: %v", err))
		}
	}

	for _, w := range warnings {
		slog.Warn("platform: " + w)
	}
	return warnings, nil
}

func (s *SwitchAudio) setVolume(ctx context.Context, direction string, volume uint32) error {
	script := fmt.Sprintf("set volume %s volume %d", direction, clampVolume(volume))
	if _, err := s.Runner.Run(ctx, s.Osascript, "-e", script); err != nil {
		return helperError("set "+direction+" volume", s.Osascript, err)
	}
	return nil
}

// requestedDevice returns the device id a profile asks for, ignoring unset
// ids and the synthetic placeholder.
func requestedDevice(id *string, placeholder string) (string, bool) {
	if id == nil || *id == "" || *id == placeholder {
		return "", false
	}
	return *id, true
}

// placeholderWarnings reports directions whose device is one of the synthetic
// placeholders. Those are never switched to.
func placeholderWarnings(settings models.AudioSettings) []string {
	var warnings []string
	if settings.OutputDevice != nil && *settings.OutputDevice == models.DefaultOutputID {
		warnings = append(warnings, "output device is the placeholder, left unchanged")
	}
	if settings.InputDevice != nil && *settings.InputDevice == models.DefaultInputID {
		warnings = append(warnings, "input device is the placeholder, left unchanged")
	}
	return warnings
}

func clampVolume(v uint32) uint32 {
	return min(v, 100)
}

var _ AudioController = (*SwitchAudio)(nil)
