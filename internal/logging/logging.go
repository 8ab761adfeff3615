// Package logging builds the charmbracelet/log loggers used across dashd.
// The terminal belongs to the TUI, so output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type Options struct {
	Path   string
	Level  string
	Prefix string
}

// New opens (appending) the log file and returns a logger writing to it.
// The returned closer releases the file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, nil, fmt.Errorf("logging: empty log path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: create dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return NewWriter(f, level, opts.Prefix), f, nil
}

func NewWriter(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("logging: unknown level %q", s)
	}
}
