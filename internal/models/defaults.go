package models

// Synthetic records returned when the platform offers no real enumeration.
const (
	DefaultOutputID = "default_output"
	DefaultInputID  = "default_input"
)

// SyntheticDisplay returns the placeholder display used on platforms
// without native enumeration.
func SyntheticDisplay() DisplayInfo {
	return DisplayInfo{
		ID:          1,
		Name:        "Primary Display",
		Width:       1920,
		Height:      1080,
		X:           0,
		Y:           0,
		ScaleFactor: 1.0,
		IsPrimary:   true,
		Rotation:    0,
	}
}

// SyntheticOutput returns the placeholder default output device.
func SyntheticOutput() AudioDevice {
	return AudioDevice{
		ID:         DefaultOutputID,
		Name:       "Default Output",
		IsDefault:  true,
		DeviceType: DeviceOutput,
	}
}

// SyntheticInput returns the placeholder default input device.
func SyntheticInput() AudioDevice {
	return AudioDevice{
		ID:         DefaultInputID,
		Name:       "Default Input",
		IsDefault:  true,
		DeviceType: DeviceInput,
	}
}

// SyntheticAudioDevices returns the default output and input placeholders.
func SyntheticAudioDevices() []AudioDevice {
	return []AudioDevice{SyntheticOutput(), SyntheticInput()}
}
