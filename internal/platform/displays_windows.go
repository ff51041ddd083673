//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/micro-nova/deskprofile/internal/models"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")

	// Callbacks are a finite resource on windows; create exactly one.
	monitorEnumCallback = windows.NewCallback(monitorEnumProc)

	enumMu      sync.Mutex
	enumResults []models.DisplayInfo
)

const monitorInfoFPrimary = 0x1

// monitorInfo mirrors MONITORINFO.
type monitorInfo struct {
	cbSize    uint32
	rcMonitor windows.Rect
	rcWork    windows.Rect
	dwFlags   uint32
}

func monitorEnumProc(hmonitor windows.Handle, _ windows.Handle, _ *windows.Rect, _ uintptr) uintptr {
	var mi monitorInfo
	mi.cbSize = uint32(unsafe.Sizeof(mi))
	if ret, _, _ := procGetMonitorInfoW.Call(uintptr(hmonitor), uintptr(unsafe.Pointer(&mi))); ret != 0 {
		r := mi.rcMonitor
		enumResults = append(enumResults, models.DisplayInfo{
			ID:          uint32(hmonitor),
			Name:        fmt.Sprintf("Display %d", len(enumResults)+1),
			Width:       uint32(r.Right - r.Left),
			Height:      uint32(r.Bottom - r.Top),
			X:           r.Left,
			Y:           r.Top,
			ScaleFactor: 1.0,
			IsPrimary:   mi.dwFlags&monitorInfoFPrimary != 0,
			Rotation:    0,
		})
	}
	return 1 // continue enumeration
}

// nativeDisplays enumerates monitors with EnumDisplayMonitors. An empty
// but successful enumeration yields the synthetic primary display.
func nativeDisplays() ([]models.DisplayInfo, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumResults = nil
	ret, _, callErr := procEnumDisplayMonitors.Call(0, 0, monitorEnumCallback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("failed to enumerate display monitors: %w", callErr)
	}

	displays := enumResults
	enumResults = nil
	if len(displays) == 0 {
		displays = append(displays, models.SyntheticDisplay())
	}
	return displays, nil
}
