// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/glyphbrush/internal/logger"
)

// slogger returns the shared package logger.
func slogger() *slog.Logger { return logger.Get() }
