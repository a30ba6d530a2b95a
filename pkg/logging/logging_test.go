/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	if got := levelFromEnv(slog.LevelDebug); got != slog.LevelError {
		t.Fatalf("levelFromEnv = %v, want %v", got, slog.LevelError)
	}

	t.Setenv(EnvLogLevel, "")
	if got := levelFromEnv(slog.LevelDebug); got != slog.LevelDebug {
		t.Fatalf("levelFromEnv = %v, want fallback %v", got, slog.LevelDebug)
	}
}

func TestNewStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, "dxd", "1.2.3", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("started", "port", 8080)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["module"] != "dxd" || entry["version"] != "1.2.3" {
		t.Fatalf("missing module/version attrs: %v", entry)
	}
	if entry["msg"] != "started" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
}
