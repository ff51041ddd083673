package config_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/models"
)

// --- JSONStore tests ---

func newTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "deskprofile-config-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func sampleProfile(id, name string) models.Profile {
	return models.Profile{
		ID:   id,
		Name: name,
		Displays: []models.DisplayInfo{
			{ID: 1, Name: "Display 1", Width: 2560, Height: 1440, ScaleFactor: 1, IsPrimary: true},
			{ID: 2, Name: "Display 2", Width: 1920, Height: 1080, X: 2560, Y: -200, ScaleFactor: 1, Rotation: 90},
		},
		AudioSettings: models.AudioSettings{
			OutputDevice: models.StringPtr("Speakers"),
			OutputVolume: 40,
			InputVolume:  70,
		},
		CreatedAt: "2024-05-01T09:00:00Z",
	}
}

func TestJSONStore_LoadMissingFile_ReturnsEmpty(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	profiles, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if profiles == nil {
		t.Fatal("Load() returned nil slice, want empty")
	}
	if len(profiles) != 0 {
		t.Errorf("Load() = %d profiles, want 0", len(profiles))
	}
}

func TestJSONStore_SaveLoadRoundTrip(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	want := []models.Profile{sampleProfile("a", "Work"), sampleProfile("b", "Home")}
	want[1].AudioSettings.OutputDevice = nil
	want[1].AudioSettings.InputDevice = models.StringPtr("USB Mic")

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %d profiles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name || got[i].CreatedAt != want[i].CreatedAt {
			t.Errorf("profile[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if len(got[i].Displays) != len(want[i].Displays) {
			t.Fatalf("profile[%d] displays = %d, want %d", i, len(got[i].Displays), len(want[i].Displays))
		}
		for j := range want[i].Displays {
			if got[i].Displays[j] != want[i].Displays[j] {
				t.Errorf("profile[%d].Displays[%d] = %+v, want %+v", i, j, got[i].Displays[j], want[i].Displays[j])
			}
		}
	}
	if got[0].AudioSettings.OutputDevice == nil || *got[0].AudioSettings.OutputDevice != "Speakers" {
		t.Errorf("profile[0] output device = %v, want Speakers", got[0].AudioSettings.OutputDevice)
	}
	if got[1].AudioSettings.OutputDevice != nil {
		t.Errorf("profile[1] output device = %q, want nil", *got[1].AudioSettings.OutputDevice)
	}
	if got[1].AudioSettings.InputDevice == nil || *got[1].AudioSettings.InputDevice != "USB Mic" {
		t.Errorf("profile[1] input device = %v, want USB Mic", got[1].AudioSettings.InputDevice)
	}
}

func TestJSONStore_SaveWritesPrettyArray(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	if err := store.Save([]models.Profile{sampleProfile("a", "Work")}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {") {
		t.Errorf("file does not start with a pretty-printed array: %q", string(data[:10]))
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if raw[0]["audio_settings"] == nil {
		t.Error("expected snake_case audio_settings key in file")
	}
}

func TestJSONStore_SaveNilWritesEmptyArray(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("file = %q, want []", data)
	}
}

func TestJSONStore_SaveCreatesParentDirs(t *testing.T) {
	dir := filepath.Join(newTempDir(t), "nested", "deeper")
	store := config.NewJSONStore(dir)

	if err := store.Save([]models.Profile{sampleProfile("a", "Work")}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("expected file at %q, got: %v", store.Path(), err)
	}
	if _, err := os.Stat(store.Path() + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestJSONStore_CorruptJSON_ReturnsError(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	path := filepath.Join(dir, config.ProfilesFileName)
	if err := os.WriteFile(path, []byte("{invalid json!!!"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	profiles, err := store.Load()
	if err == nil {
		t.Fatalf("Load() = %v, want parse error", profiles)
	}
	if !strings.Contains(err.Error(), "parse profiles") {
		t.Errorf("error = %q, want it to mention parse profiles", err)
	}
}

func TestJSONStore_NormalizesMissingDisplays(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	raw := `[
  {"id": "a", "name": "Old", "displays": null, "audio_settings": {"output_volume": 10, "input_volume": 0}, "created_at": ""},
  {"id": "b", "name": "NoScale", "displays": [{"id": 4, "name": "Display 1", "width": 800, "height": 600, "x": 0, "y": 0, "is_primary": true, "rotation": 0}], "audio_settings": {}, "created_at": ""}
]`
	if err := os.WriteFile(store.Path(), []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	profiles, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if profiles[0].Displays == nil {
		t.Error("null displays should load as an empty slice")
	}
	if profiles[1].Displays[0].ScaleFactor != 0 {
		t.Errorf("missing scale_factor = %v, want it left at 0", profiles[1].Displays[0].ScaleFactor)
	}
}

func TestJSONStore_DuplicateIDsKeptOnLoad(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)

	raw := `[{"id": "a", "name": "one"}, {"id": "a", "name": "two"}]`
	if err := os.WriteFile(store.Path(), []byte(raw), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	profiles, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("Load() = %d profiles, want 2 (duplicates are not collapsed on read)", len(profiles))
	}
}

func TestJSONStore_Path(t *testing.T) {
	dir := newTempDir(t)
	store := config.NewJSONStore(dir)
	if got, want := store.Path(), filepath.Join(dir, "profiles.json"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

// --- MemStore tests ---

func TestMemStore_LoadEmpty(t *testing.T) {
	store := config.NewMemStore()
	profiles, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("Load() = %v, want empty slice", profiles)
	}
}

func TestMemStore_SaveIsolatesCaller(t *testing.T) {
	store := config.NewMemStore()

	in := []models.Profile{sampleProfile("a", "Work")}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	in[0].Name = "mutated"
	in[0].Displays[0].Width = 1

	out, _ := store.Load()
	if out[0].Name != "Work" || out[0].Displays[0].Width != 2560 {
		t.Errorf("MemStore kept a reference to the caller's slice: %+v", out[0])
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", store.Saves())
	}
}

func TestMemStore_FailSave(t *testing.T) {
	store := config.NewMemStore()
	store.SetFailSave(errors.New("disk full"))
	if err := store.Save(nil); err == nil {
		t.Fatal("Save() error = nil, want configured failure")
	}
	store.SetFailSave(nil)
	if err := store.Save(nil); err != nil {
		t.Fatalf("Save() after clearing failure: %v", err)
	}
}

func TestMemStore_Path(t *testing.T) {
	if p := config.NewMemStore().Path(); p != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", p)
	}
}
