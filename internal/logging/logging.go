// Package logging builds the charmbracelet loggers shared by the CLI and TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New creates a text logger writing to w at the given level.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           level,
	})
}

// Stderr is used by the one-shot commands, which own stdout for results.
func Stderr(prefix, level string) *log.Logger {
	return New(os.Stderr, prefix, parseLevel(level))
}

// File opens (appending) the log file at path. The returned closer must be
// called once the program exits. The interactive screen logs here because
// bubbletea owns the terminal.
func File(path, prefix, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, prefix, parseLevel(level)), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, "", log.FatalLevel)
}

func parseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
