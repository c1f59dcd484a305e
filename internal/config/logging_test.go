package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("ROCKFALL_TEST_KEY", "set")
	if got := GetEnv("ROCKFALL_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("GetEnv: got %q, want %q", got, "set")
	}
	if got := GetEnv("ROCKFALL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv missing: got %q, want %q", got, "fallback")
	}
}

func TestSetupLoggingWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)
	t.Setenv("LOG_LEVEL", "debug")

	closeLog, err := SetupLogging(io.Discard)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	log.Debug("hello from test", "k", 1)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	log.SetOutput(io.Discard)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got %q", data)
	}
}

func TestSetupLoggingRejectsBadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := SetupLogging(io.Discard); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFailClosesLogBeforeExit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)
	t.Setenv("LOG_LEVEL", "info")

	closeLog, err := SetupLogging(io.Discard)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer log.SetOutput(io.Discard)

	closed := false
	var code int
	exit = func(c int) {
		if !closed {
			t.Error("exit called before the log was closed")
		}
		code = c
	}
	defer func() { exit = os.Exit }()

	Fail(func() error {
		closed = true
		return closeLog()
	}, "raw mode failed", errors.New("not a tty"))

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "raw mode failed") || !strings.Contains(string(data), "not a tty") {
		t.Errorf("log file missing failure, got %q", data)
	}
}
