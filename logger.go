package glyphbrush

import (
	"log/slog"

	"github.com/gogpu/glyphbrush/internal/logger"
)

// SetLogger configures the logger for glyphbrush and all its sub-packages.
// By default, glyphbrush produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by glyphbrush:
//   - [slog.LevelDebug]: draw decisions, atlas growth, rasterization fallbacks
//   - [slog.LevelInfo]: GPU texture lifecycle
//   - [slog.LevelWarn]: resource release errors
//
// Example:
//
//	glyphbrush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger used by glyphbrush.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Get()
}
