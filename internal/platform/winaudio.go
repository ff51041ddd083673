package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/models"
)

// listAudioScript needs the AudioDeviceCmdlets PowerShell module.
const listAudioScript = "Get-AudioDevice -List | Select-Object Name, ID, Type, Default | ConvertTo-Json"

// WindowsAudio uses nircmd, falling back to AudioDeviceCmdlets in PowerShell.
type WindowsAudio struct {
	Runner     helper.Runner
	Nircmd     string
	PowerShell string
}

// psAudioDevice is one element of the Get-AudioDevice JSON output.
type psAudioDevice struct {
	Name    string `json:"Name"`
	ID      string `json:"ID"`
	Type    string `json:"Type"` // "Playback" | "Recording"
	Default bool   `json:"Default"`
}

// AudioDevices lists devices through PowerShell. Any failure falls back to
// the synthetic output and input devices.
func (w *WindowsAudio) AudioDevices(ctx context.Context) ([]models.AudioDevice, error) {
	res, err := w.Runner.Run(ctx, w.PowerShell, "-NoProfile", "-NonInteractive", "-Command", listAudioScript)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("platform: audio device listing unavailable, using defaults", "helper", w.PowerShell, "err", err)
		return models.SyntheticAudioDevices(), nil
	}

	devices, err := parseAudioDeviceJSON(strings.Join(res.Stdout, "\n"))
	if err != nil || len(devices) == 0 {
		slog.Warn("platform: could not parse audio device list, using defaults", "err", err)
		return models.SyntheticAudioDevices(), nil
	}
	return devices, nil
}

// parseAudioDeviceJSON accepts either a single object or an array, as
// ConvertTo-Json emits a bare object for one-element lists.
func parseAudioDeviceJSON(out string) ([]models.AudioDevice, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, errors.New("empty output")
	}

	var raw []psAudioDevice
	if strings.HasPrefix(out, "{") {
		var one psAudioDevice
		if err := json.Unmarshal([]byte(out), &one); err != nil {
			return nil, fmt.Errorf("decode audio device: %w", err)
		}
		raw = append(raw, one)
	} else if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("decode audio devices: %w", err)
	}

	return lo.FilterMap(raw, func(d psAudioDevice, _ int) (models.AudioDevice, bool) {
		var typ string
		switch strings.ToLower(d.Type) {
		case "playback":
			typ = models.DeviceOutput
		case "recording":
			typ = models.DeviceInput
		default:
			return models.AudioDevice{}, false
		}
		id := d.ID
		if id == "" {
			id = d.Name
		}
		return models.AudioDevice{ID: id, Name: d.Name, IsDefault: d.Default, DeviceType: typ}, true
	}), nil
}

// ApplyAudio sets the default output device with nircmd, then PowerShell.
// If both fail the step fails. Input device and output volume are best
// effort; input volume is not supported.
func (w *WindowsAudio) ApplyAudio(ctx context.Context, settings models.AudioSettings) ([]string, error) {
	warnings := placeholderWarnings(settings)

	if out, ok := requestedDevice(settings.OutputDevice, models.DefaultOutputID); ok {
		if err := w.setDefaultDevice(ctx, out); err != nil {
			return warnings, fmt.Errorf("set output device: %w", err)
		}
		slog.Info("platform: output device set", "device", out)

		level := clampVolume(settings.OutputVolume) * 65535 / 100
		if _, err := w.Runner.Run(ctx, w.Nircmd, "setsysvolume", fmt.Sprint(level)); err != nil {
			warnings = append(warnings, fmt.Sprintf("output volume not set: %v", helperError("set output volume", w.Nircmd, err)))
		}
	}

	if in, ok := requestedDevice(settings.InputDevice, models.DefaultInputID); ok {
		if err := w.setDefaultDevice(ctx, in); err != nil {
			warnings = append(warnings, fmt.Sprintf("input device %q not set: %v", in, err))
		}
		warnings = append(warnings, "input volume is not supported on windows")
	}

	for _, msg := range warnings {
		slog.Warn("platform: " + msg)
	}
	return warnings, nil
}

func (w *WindowsAudio) setDefaultDevice(ctx context.Context, id string) error {
	_, nirErr := w.Runner.Run(ctx, w.Nircmd, "setdefaultsounddevice", id)
	if nirErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	slog.Debug("platform: nircmd failed, trying PowerShell", "err", nirErr)

	script := fmt.Sprintf("Set-AudioDevice -Name '%s'", psQuote(id))
	_, psErr := w.Runner.Run(ctx, w.PowerShell, "-NoProfile", "-NonInteractive", "-Command", script)
	if psErr == nil {
		return nil
	}
	return errors.Join(helperError("nircmd", w.Nircmd, nirErr), helperError("powershell", w.PowerShell, psErr))
}

// psQuote escapes s for use inside a single-quoted PowerShell string.
func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

var _ AudioController = (*WindowsAudio)(nil)
