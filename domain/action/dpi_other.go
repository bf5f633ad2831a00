//go:build !windows

package action

import "log/slog"

// EnableDPIAwareness is a no-op outside Windows.
func EnableDPIAwareness(*slog.Logger) {}
