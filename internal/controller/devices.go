package controller

import (
	"context"

	"github.com/micro-nova/deskprofile/internal/models"
)

// Displays returns the connected monitors.
func (c *Controller) Displays(ctx context.Context) ([]models.DisplayInfo, *models.AppError) {
	displays, err := c.displays.Displays(ctx)
	if err != nil {
		return nil, toAppError("enumerate displays", err)
	}
	if displays == nil {
		displays = []models.DisplayInfo{}
	}
	return displays, nil
}

// AudioDevices returns the known audio endpoints.
func (c *Controller) AudioDevices(ctx context.Context) ([]models.AudioDevice, *models.AppError) {
	devices, err := c.audio.AudioDevices(ctx)
	if err != nil {
		return nil, toAppError("enumerate audio devices", err)
	}
	if devices == nil {
		devices = []models.AudioDevice{}
	}
	return devices, nil
}
