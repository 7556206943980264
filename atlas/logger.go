package atlas

import (
	"log/slog"

	"github.com/gogpu/glyphbrush/internal/logger"
)

// slogger returns the shared package logger.
func slogger() *slog.Logger { return logger.Get() }
