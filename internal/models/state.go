// Package models defines the data structures for deskprofile.
// JSON field names are the snake_case names used by profiles.json.
package models

// Device types reported in AudioDevice.DeviceType.
const (
	DeviceOutput = "output"
	DeviceInput  = "input"
)

// DisplayInfo is one connected monitor. IDs are assigned by the OS and are
// not stable across reboots or reconnects.
type DisplayInfo struct {
	ID          uint32  `json:"id"`
	Name        string  `json:"name"`
	Width       uint32  `json:"width"`
	Height      uint32  `json:"height"`
	X           int32   `json:"x"`
	Y           int32   `json:"y"`
	ScaleFactor float64 `json:"scale_factor"`
	IsPrimary   bool    `json:"is_primary"`
	Rotation    uint32  `json:"rotation"` // degrees: 0 | 90 | 180 | 270
}

// AudioDevice is one audio endpoint. ID is platform specific and opaque.
type AudioDevice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsDefault  bool   `json:"is_default"`
	DeviceType string `json:"device_type"` // "output" | "input"
}

// AudioSettings is the desired audio configuration stored in a profile.
type AudioSettings struct {
	OutputDevice *string `json:"output_device"`
	InputDevice  *string `json:"input_device"`
	OutputVolume uint32  `json:"output_volume"` // 0-100
	InputVolume  uint32  `json:"input_volume"`  // 0-100
}

// Profile is the persisted unit: a named snapshot of displays and audio.
type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Displays      []DisplayInfo `json:"displays"`
	AudioSettings AudioSettings `json:"audio_settings"`
	CreatedAt     string        `json:"created_at"`
}

// ApplyResult reports the outcome of applying a profile. Warnings describe
// steps the platform could not perform; they are not failures.
type ApplyResult struct {
	ProfileID string   `json:"profile_id"`
	Warnings  []string `json:"warnings"`
}

// DeepCopy returns a copy of the profile that shares no memory with p.
func (p Profile) DeepCopy() Profile {
	next := p
	if p.Displays != nil {
		next.Displays = make([]DisplayInfo, len(p.Displays))
		copy(next.Displays, p.Displays)
	}
	if p.AudioSettings.OutputDevice != nil {
		v := *p.AudioSettings.OutputDevice
		next.AudioSettings.OutputDevice = &v
	}
	if p.AudioSettings.InputDevice != nil {
		v := *p.AudioSettings.InputDevice
		next.AudioSettings.InputDevice = &v
	}
	return next
}

// CopyProfiles deep-copies a profile list. A nil list yields an empty one so
// callers always serialise "[]".
func CopyProfiles(profiles []Profile) []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p.DeepCopy()
	}
	return out
}

// StringPtr returns a pointer to s. Handy for optional AudioSettings ids.
func StringPtr(s string) *string { return &s }
