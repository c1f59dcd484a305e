package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogging configures the default logger from LOG_LEVEL and LOG_FILE.
// When LOG_FILE is unset, logs go to fallback. The returned closer must be
// called on exit; it is a no-op when no file was opened.
func SetupLogging(fallback io.Writer) (func() error, error) {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	path := GetEnv("LOG_FILE", "")
	if path == "" {
		log.SetOutput(fallback)
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}

// exit is replaced in tests.
var exit = os.Exit

// Fail logs err, closes the log and exits with status 1. Use it instead of
// log.Fatal once SetupLogging has run so the log file is flushed.
func Fail(closeLog func() error, msg string, err error) {
	log.Error(msg, "err", err)
	if closeLog != nil {
		_ = closeLog()
	}
	exit(1)
}
