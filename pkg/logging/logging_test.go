package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for name, want := range cases {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: slog.LevelInfo, Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("parsed", "terms", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out)
	}
	if !strings.Contains(out, "msg=parsed") || !strings.Contains(out, "terms=3") {
		t.Fatalf("unexpected text output %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("parse started", "bytes", 12)
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if record["msg"] != "parse started" || record["bytes"] != float64(12) {
		t.Fatalf("unexpected record %v", record)
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "")
	if got, err := LevelFromEnv(slog.LevelWarn); err != nil || got != slog.LevelWarn {
		t.Fatalf("expected fallback, got %v %v", got, err)
	}
	t.Setenv(EnvLevel, "debug")
	if got, err := LevelFromEnv(slog.LevelWarn); err != nil || got != slog.LevelDebug {
		t.Fatalf("expected debug, got %v %v", got, err)
	}
	t.Setenv(EnvLevel, "nope")
	if _, err := LevelFromEnv(slog.LevelWarn); err == nil || !strings.Contains(err.Error(), EnvLevel) {
		t.Fatalf("expected error naming %s, got %v", EnvLevel, err)
	}
}
