//go:build !linux

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger is a no-op off Linux; RSS sampling uses procfs.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {}
