package config

import (
	"log/slog"

	"github.com/micro-nova/deskprofile/internal/models"
)

// normalizeProfiles replaces a missing displays list with an empty one.
// Display fields are kept as stored. Duplicate ids are reported but kept:
// uniqueness is only enforced when a profile is saved.
func normalizeProfiles(profiles []models.Profile) {
	seen := make(map[string]int, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if p.Displays == nil {
			p.Displays = []models.DisplayInfo{}
		}
		if prev, ok := seen[p.ID]; ok {
			slog.Warn("config: duplicate profile id in file", "id", p.ID, "first", prev, "index", i)
			continue
		}
		seen[p.ID] = i
	}
}
