package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFileName is the optional YAML settings file inside the data directory.
const SettingsFileName = "settings.yaml"

const (
	defaultListen      = "127.0.0.1:7420"
	defaultHelperRate  = 4.0
	defaultHelperBurst = 4
	defaultBackupDays  = 30
)

// Helpers holds the executable name or path of every external helper.
type Helpers struct {
	Displayplacer     string `yaml:"displayplacer"`
	SwitchAudioSource string `yaml:"switch_audio_source"`
	Osascript         string `yaml:"osascript"`
	Nircmd            string `yaml:"nircmd"`
	PowerShell        string `yaml:"powershell"`
}

// Backup controls the daily profiles.json backup.
type Backup struct {
	Enabled  bool `yaml:"enabled"`
	KeepDays int  `yaml:"keep_days"`
}

// Settings is the daemon/CLI configuration read from settings.yaml.
type Settings struct {
	Listen      string  `yaml:"listen"`
	APIKey      string  `yaml:"api_key"`
	MDNS        bool    `yaml:"mdns"`
	LogFile     string  `yaml:"log_file"`
	HelperRate  float64 `yaml:"helper_rate"`  // helper spawns per second
	HelperBurst int     `yaml:"helper_burst"` // helper spawns allowed at once
	Helpers     Helpers `yaml:"helpers"`
	Backup      Backup  `yaml:"backup"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Listen:      defaultListen,
		HelperRate:  defaultHelperRate,
		HelperBurst: defaultHelperBurst,
		Helpers: Helpers{
			Displayplacer:     "displayplacer",
			SwitchAudioSource: "SwitchAudioSource",
			Osascript:         "osascript",
			Nircmd:            "nircmd",
			PowerShell:        "powershell",
		},
		Backup: Backup{
			Enabled:  true,
			KeepDays: defaultBackupDays,
		},
	}
}

// SettingsPath returns the settings file path inside dataDir.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, SettingsFileName)
}

// LoadSettings reads settings from path on top of DefaultSettings.
// A missing file yields the defaults; unknown keys are an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := decodeStrictYAML(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	s.fillDefaults()
	return s, nil
}

// fillDefaults restores defaults for fields a file explicitly blanked.
func (s *Settings) fillDefaults() {
	def := DefaultSettings()
	if s.Listen == "" {
		s.Listen = def.Listen
	}
	if s.HelperRate <= 0 {
		s.HelperRate = def.HelperRate
	}
	if s.HelperBurst <= 0 {
		s.HelperBurst = def.HelperBurst
	}
	if s.Backup.KeepDays <= 0 {
		s.Backup.KeepDays = def.Backup.KeepDays
	}
	h := &s.Helpers
	if h.Displayplacer == "" {
		h.Displayplacer = def.Helpers.Displayplacer
	}
	if h.SwitchAudioSource == "" {
		h.SwitchAudioSource = def.Helpers.SwitchAudioSource
	}
	if h.Osascript == "" {
		h.Osascript = def.Helpers.Osascript
	}
	if h.Nircmd == "" {
		h.Nircmd = def.Helpers.Nircmd
	}
	if h.PowerShell == "" {
		h.PowerShell = def.Helpers.PowerShell
	}
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
