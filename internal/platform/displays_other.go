//go:build !windows && !(darwin && cgo)

package platform

import "github.com/micro-nova/deskprofile/internal/models"

// nativeDisplays has no OS source here and reports one synthetic monitor.
func nativeDisplays() ([]models.DisplayInfo, error) {
	return []models.DisplayInfo{models.SyntheticDisplay()}, nil
}
