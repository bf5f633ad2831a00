//go:build windows

package action

import (
	"log/slog"

	"golang.org/x/sys/windows"
)

// EnableDPIAwareness makes the process per-monitor DPI aware so that screen
// coordinates from Tk, the selector and the capture backends agree on
// scaled displays. Falls back to system awareness on older Windows.
func EnableDPIAwareness(logger *slog.Logger) {
	const processPerMonitorDPIAware = 2
	shcore := windows.NewLazySystemDLL("shcore.dll")
	setAwareness := shcore.NewProc("SetProcessDpiAwareness")
	if err := setAwareness.Find(); err == nil {
		ret, _, _ := setAwareness.Call(uintptr(processPerMonitorDPIAware))
		if logger != nil {
			logger.Debug("dpi awareness", "mode", "per-monitor", "hresult", ret)
		}
		return
	}
	user32 := windows.NewLazySystemDLL("user32.dll")
	setAware := user32.NewProc("SetProcessDPIAware")
	if err := setAware.Find(); err != nil {
		if logger != nil {
			logger.Warn("dpi awareness unavailable", "error", err)
		}
		return
	}
	ret, _, _ := setAware.Call()
	if logger != nil {
		logger.Debug("dpi awareness", "mode", "system", "ok", ret != 0)
	}
}
