package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "linkcheck.log")

	logger, err := New(Config{Level: "debug", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.With(Component("submit")).Warn("check failed",
		String("url", "https://example.com"),
		Int("depth", 2),
		Err(errors.New("boom")),
	)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	if entry["msg"] != "check failed" {
		t.Fatalf("msg = %v, want check failed", entry["msg"])
	}
	if entry["level"] != "warn" {
		t.Fatalf("level = %v, want warn", entry["level"])
	}
	if entry["component"] != "submit" {
		t.Fatalf("component = %v, want submit", entry["component"])
	}
	if entry["depth"] != float64(2) {
		t.Fatalf("depth = %v, want 2", entry["depth"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("error = %v, want boom", entry["error"])
	}
}

func TestLevelFiltersEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkcheck.log")

	logger, err := New(Config{Level: "error", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("dropped")
	logger.Error("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") {
		t.Fatalf("info entry written at error level: %s", data)
	}
	if !strings.Contains(string(data), "kept") {
		t.Fatalf("error entry missing: %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNopAndOrNop(t *testing.T) {
	var l Logger
	l = OrNop(l)
	l.With(String("k", "v")).Info("ignored")
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}

	real := NewNop()
	if OrNop(real) != real {
		t.Fatalf("OrNop replaced a non-nil logger")
	}
}
