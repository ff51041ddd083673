//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>
*/
import "C"

import (
	"fmt"

	"github.com/micro-nova/deskprofile/internal/models"
)

const maxDisplays = 32

// nativeDisplays reads the active display list from Core Graphics. Scale
// factor and rotation are not read yet and stay at 1.0 and 0.
func nativeDisplays() ([]models.DisplayInfo, error) {
	var ids [maxDisplays]C.CGDirectDisplayID
	var count C.uint32_t

	if rc := C.CGGetActiveDisplayList(C.uint32_t(maxDisplays), &ids[0], &count); rc != 0 {
		return nil, fmt.Errorf("failed to get display list: CGError %d", int(rc))
	}

	mainID := C.CGMainDisplayID()
	displays := make([]models.DisplayInfo, 0, int(count))
	for i := 0; i < int(count); i++ {
		id := ids[i]
		bounds := C.CGDisplayBounds(id)
		displays = append(displays, models.DisplayInfo{
			ID:          uint32(id),
			Name:        fmt.Sprintf("Display %d", i+1),
			Width:       uint32(C.CGDisplayPixelsWide(id)),
			Height:      uint32(C.CGDisplayPixelsHigh(id)),
			X:           int32(bounds.origin.x),
			Y:           int32(bounds.origin.y),
			ScaleFactor: 1.0,
			IsPrimary:   id == mainID,
			Rotation:    0,
		})
	}
	return displays, nil
}
