package models

import "time"

// Event types published on the event bus.
const (
	EventProfilesChanged = "profiles_changed"
	EventProfileApplied  = "profile_applied"
)

// Event is a change notification delivered to SSE subscribers.
type Event struct {
	Type      string    `json:"type"`
	ProfileID string    `json:"profile_id,omitempty"`
	Profiles  []Profile `json:"profiles,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	Time      time.Time `json:"time"`
}

// InvokeArgs is the argument object of an RPC-style invoke call. Only the
// fields relevant to the invoked command are read.
type InvokeArgs struct {
	Profile   *Profile `json:"profile,omitempty"`
	ProfileID string   `json:"profile_id,omitempty"`
}

// Info is the system information response.
type Info struct {
	Hostname string         `json:"hostname"`
	Version  string         `json:"version"`
	OS       string         `json:"os"`
	DataDir  string         `json:"data_dir"`
	Helpers  []HelperStatus `json:"helpers"`
}

// HelperStatus reports whether an external helper binary is on PATH.
type HelperStatus struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Available bool   `json:"available"`
}
