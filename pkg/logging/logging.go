/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog default logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the log level.
const EnvLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
// Unknown names fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// levelFromEnv returns the level from LOG_LEVEL, or fallback when unset.
func levelFromEnv(fallback slog.Level) slog.Level {
	if v := os.Getenv(EnvLogLevel); v != "" {
		return ParseLevel(v)
	}
	return fallback
}

// NewStructuredLogger returns a JSON logger tagged with the module name and version.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultStructuredLogger installs a JSON logger on stderr as the slog default.
// Used by long running services.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, levelFromEnv(slog.LevelInfo)))
}

// SetDefaultCLILogger installs a text logger on stderr as the slog default.
// LOG_LEVEL overrides level when set. When json is true, a JSON handler is used instead.
func SetDefaultCLILogger(level slog.Level, json bool) {
	opts := &slog.HandlerOptions{Level: levelFromEnv(level)}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
