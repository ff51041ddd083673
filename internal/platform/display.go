package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/models"
)

// Displayplacer enumerates natively and applies layouts with the
// displayplacer CLI in a single call.
type Displayplacer struct {
	Runner    helper.Runner
	Bin       string
	Enumerate func() ([]models.DisplayInfo, error)
}

// Displays returns the natively enumerated monitors.
func (d *Displayplacer) Displays(_ context.Context) ([]models.DisplayInfo, error) {
	return d.Enumerate()
}

// ApplyDisplays runs displayplacer with one descriptor per display.
func (d *Displayplacer) ApplyDisplays(ctx context.Context, displays []models.DisplayInfo) ([]string, error) {
	if len(displays) == 0 {
		return []string{"profile has no displays, layout left unchanged"}, nil
	}
	args := PlacementArgs(displays)
	if _, err := d.Runner.Run(ctx, d.Bin, args...); err != nil {
		return nil, helperError("apply display layout", d.Bin, err)
	}
	slog.Info("platform: display layout applied", "displays", len(displays))
	return nil, nil
}

// PlacementArgs renders displayplacer descriptors, e.g.
// "id:1 res:1920x1080 origin:(0,0) degree:0".
func PlacementArgs(displays []models.DisplayInfo) []string {
	args := make([]string, 0, len(displays))
	for _, d := range displays {
		args = append(args, fmt.Sprintf("id:%d res:%dx%d origin:(%d,%d) degree:%d",
			d.ID, d.Width, d.Height, d.X, d.Y, d.Rotation))
	}
	return args
}

// NativeDisplays enumerates natively and cannot change the layout. Apply
// succeeds; if Unsupported is set it is returned as a warning.
type NativeDisplays struct {
	Enumerate   func() ([]models.DisplayInfo, error)
	Unsupported string
}

// Displays returns the natively enumerated monitors.
func (n *NativeDisplays) Displays(_ context.Context) ([]models.DisplayInfo, error) {
	return n.Enumerate()
}

// ApplyDisplays is a no-op.
func (n *NativeDisplays) ApplyDisplays(_ context.Context, displays []models.DisplayInfo) ([]string, error) {
	if n.Unsupported == "" || len(displays) == 0 {
		return nil, nil
	}
	slog.Warn("platform: "+n.Unsupported, "displays", len(displays))
	return []string{n.Unsupported}, nil
}

var (
	_ DisplayController = (*Displayplacer)(nil)
	_ DisplayController = (*NativeDisplays)(nil)
)
